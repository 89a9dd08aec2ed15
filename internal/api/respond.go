package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/targets-navigator/internal/chart"
	"github.com/sells-group/targets-navigator/internal/compare"
	"github.com/sells-group/targets-navigator/internal/fields"
	"github.com/sells-group/targets-navigator/internal/inflight"
	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/prefs"
	"github.com/sells-group/targets-navigator/internal/ranking"
	"github.com/sells-group/targets-navigator/internal/resilience"
)

// envelope is the body of every JSON response.
type envelope struct {
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Debug("api: encode response", zap.Error(err))
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Error: msg})
}

// writeErr maps err onto a status code and writes it.
func writeErr(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		zap.L().Warn("api: request failed", zap.Int("status", status), zap.Error(err))
	}
	writeError(w, status, err.Error())
}

// writeResult writes a service Result: data on success, a mapped error
// status otherwise.
func writeResult[T any](w http.ResponseWriter, res model.Result[T]) {
	if res.Failed() {
		err := res.Err
		if err == nil {
			err = errors.New(res.Error)
		}
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, res.Data)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrCompanyNotFound):
		return http.StatusNotFound
	case errors.Is(err, fields.ErrUnknownPillarType),
		errors.Is(err, ranking.ErrInvalidSort),
		errors.Is(err, chart.ErrUnknownField),
		errors.Is(err, compare.ErrComparisonLimitExceeded),
		errors.Is(err, prefs.ErrInvalidTheme),
		errors.Is(err, prefs.ErrInvalidClient),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, inflight.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, model.ErrBackendUnavailable),
		errors.Is(err, resilience.ErrCircuitOpen),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
