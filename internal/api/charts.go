package api

import (
	"net/http"

	"github.com/sells-group/targets-navigator/internal/chart"
	"github.com/sells-group/targets-navigator/internal/dossier"
)

// Default bubble channels.
const (
	defaultBubbleX     = chart.FieldStrategicFit
	defaultBubbleY     = chart.FieldAbilityToExecute
	defaultBubbleSize  = chart.FieldRevenue
	defaultBubbleColor = chart.FieldTier
)

// bubbleChartLimit bounds how many companies one bubble chart plots.
const bubbleChartLimit = 1000

func parseField(raw string, def chart.Field) (chart.Field, error) {
	if raw == "" {
		return def, nil
	}
	return chart.ParseField(raw)
}

// bubbleChart plots the filtered company list. Channels come from x, y,
// size and color; selected highlights companies.
func (s *Server) bubbleChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	spec := chart.BubbleSpec{MinSize: s.cfg.MinBubble, MaxSize: s.cfg.MaxBubble}
	var err error
	if spec.X, err = parseField(q.Get("x"), defaultBubbleX); err != nil {
		writeErr(w, err)
		return
	}
	if spec.Y, err = parseField(q.Get("y"), defaultBubbleY); err != nil {
		writeErr(w, err)
		return
	}
	if spec.Size, err = parseField(q.Get("size"), defaultBubbleSize); err != nil {
		writeErr(w, err)
		return
	}
	if spec.Color, err = parseField(q.Get("color"), defaultBubbleColor); err != nil {
		writeErr(w, err)
		return
	}

	filters, err := parseFilters(q)
	if err != nil {
		writeErr(w, err)
		return
	}

	ctx, finish := s.track(r, "bubble", r.URL.RawQuery)
	res := s.reader.ListCompanies(ctx, dossier.ListQuery{Filters: filters, Limit: bubbleChartLimit})
	if err := finish(); err != nil {
		superseded(w, err)
		return
	}
	if res.Failed() {
		writeResult(w, res)
		return
	}
	writeData(w, http.StatusOK, chart.Bubble(res.Data.Companies, spec, multi(q, "selected")))
}
