package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/targets-navigator/internal/chart"
	"github.com/sells-group/targets-navigator/internal/fields"
	"github.com/sells-group/targets-navigator/internal/model"
)

func (s *Server) listCompanies(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		writeErr(w, err)
		return
	}

	ctx, finish := s.track(r, "list", r.URL.RawQuery)
	res := s.reader.ListCompanies(ctx, q)
	if err := finish(); err != nil {
		superseded(w, err)
		return
	}
	writeResult(w, res)
}

func (s *Server) getCompany(w http.ResponseWriter, r *http.Request) {
	writeResult(w, s.reader.GetCompany(r.Context(), chi.URLParam(r, "key")))
}

func (s *Server) getDossier(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	ctx, finish := s.track(r, "dossier", key)
	res := s.reader.GetCompanyDossier(ctx, key)
	if err := finish(); err != nil {
		superseded(w, err)
		return
	}
	writeResult(w, res)
}

func (s *Server) getPillarDetails(w http.ResponseWriter, r *http.Request) {
	pt, err := fields.Parse(chi.URLParam(r, "pillar"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeResult(w, s.reader.GetPillarDetails(r.Context(), chi.URLParam(r, "key"), pt))
}

// getRadar plots one pillar's sub-scores, or the six-spoke overview when
// no pillar (or "overview") is given.
func (s *Server) getRadar(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	name := r.URL.Query().Get("pillar")

	pt := model.PillarOverview
	if name != "" {
		var err error
		if pt, err = fields.Parse(name); err != nil {
			writeErr(w, err)
			return
		}
	}

	res := s.reader.GetPillarDetails(r.Context(), key, pt)
	if res.Failed() {
		writeResult(w, res)
		return
	}
	if res.Data == nil {
		writeError(w, http.StatusNotFound, eris.Errorf("no %s data for %s", pt, key).Error())
		return
	}

	var (
		series chart.RadarSeries
		err    error
	)
	if pt == model.PillarOverview {
		series, err = chart.OverviewRadar(*res.Data)
	} else {
		series, err = chart.DetailRadar(*res.Data)
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, series)
}

func (s *Server) pillarScores(w http.ResponseWriter, r *http.Request) {
	keys, err := decodeKeys(w, r)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeResult(w, s.reader.GetPillarScores(r.Context(), keys))
}
