package api

import (
	"net/http"
	"strconv"

	"github.com/sells-group/targets-navigator/internal/prefs"
)

type themeResponse struct {
	prefs.ThemePrefs
	Resolved prefs.ThemeMode `json:"resolved"`
}

type themeRequest struct {
	Mode string `json:"mode"`
}

// systemDark reads the caller's colour-scheme preference from the
// Sec-CH-Prefers-Color-Scheme client hint or ?system=dark.
func systemDark(r *http.Request) bool {
	if v := r.URL.Query().Get("system"); v != "" {
		return v == "dark"
	}
	return r.Header.Get("Sec-CH-Prefers-Color-Scheme") == "dark"
}

func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	tp, err := s.prefs.Theme(r.Header.Get(clientHeader))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, themeResponse{ThemePrefs: tp, Resolved: prefs.Resolve(tp.Mode, systemDark(r))})
}

func (s *Server) putTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErr(w, err)
		return
	}
	mode, err := prefs.ParseThemeMode(req.Mode)
	if err != nil {
		writeErr(w, err)
		return
	}
	tp, err := s.prefs.SetTheme(r.Header.Get(clientHeader), mode)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, themeResponse{ThemePrefs: tp, Resolved: prefs.Resolve(tp.Mode, systemDark(r))})
}

// device reads the caller's form factor from ?device= or the
// Sec-CH-UA-Mobile client hint.
func device(r *http.Request) prefs.DeviceContext {
	if v := r.URL.Query().Get("device"); v != "" {
		return prefs.ParseDeviceContext(v)
	}
	if mobile, err := strconv.ParseBool(trimHint(r.Header.Get("Sec-CH-UA-Mobile"))); err == nil && mobile {
		return prefs.DeviceMobile
	}
	return prefs.DeviceDesktop
}

// trimHint turns a structured-header boolean ("?1") into "1".
func trimHint(v string) string {
	if len(v) > 0 && v[0] == '?' {
		return v[1:]
	}
	return v
}

func (s *Server) getSidebar(w http.ResponseWriter, r *http.Request) {
	sb, err := s.prefs.Sidebar(r.Header.Get(clientHeader), device(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, sb)
}

func (s *Server) putSidebar(w http.ResponseWriter, r *http.Request) {
	var u prefs.SidebarUpdate
	if err := decodeJSON(w, r, &u); err != nil {
		writeErr(w, err)
		return
	}
	sb, err := s.prefs.UpdateSidebar(r.Header.Get(clientHeader), u, device(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, sb)
}
