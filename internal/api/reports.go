package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sells-group/targets-navigator/internal/report"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// writeReport streams a rendered report as an attachment, or the
// generation error in the JSON envelope.
func writeReport(w http.ResponseWriter, res report.Result, contentType string) {
	if !res.Success {
		writeError(w, http.StatusInternalServerError, res.Error)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Data) //nolint:errcheck
}

func (s *Server) companyReport(w http.ResponseWriter, r *http.Request) {
	res := s.reader.GetCompanyDossier(r.Context(), chi.URLParam(r, "key"))
	if res.Failed() {
		writeResult(w, res)
		return
	}
	writeReport(w, s.reports.Company(res.Data.Company, res.Data.Pillars), contentTypePDF)
}

func (s *Server) dossierReport(w http.ResponseWriter, r *http.Request) {
	res := s.reader.GetCompanyDossier(r.Context(), chi.URLParam(r, "key"))
	if res.Failed() {
		writeResult(w, res)
		return
	}
	writeReport(w, s.reports.Dossier(res.Data), contentTypePDF)
}

// compareReport renders the comparison set as a PDF, or as an XLSX
// workbook with ?format=xlsx.
func (s *Server) compareReport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "pdf" && format != "xlsx" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}
	keys, err := decodeKeys(w, r)
	if err != nil {
		writeErr(w, err)
		return
	}

	res := s.reader.Compare(r.Context(), keys)
	if res.Failed() {
		writeResult(w, res)
		return
	}
	if format == "xlsx" {
		writeReport(w, s.reports.CompareWorkbook(res.Data.Records), contentTypeXLSX)
		return
	}
	writeReport(w, s.reports.Compare(res.Data.Records), contentTypePDF)
}
