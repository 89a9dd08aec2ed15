package dossier

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/targets-navigator/internal/chart"
	"github.com/sells-group/targets-navigator/internal/compare"
	"github.com/sells-group/targets-navigator/internal/model"
)

// Comparison is everything the compare view and report need for a set of
// at most compare.MaxCompanies companies.
type Comparison struct {
	Keys     []string              `json:"keys"`
	Records  []compare.Record      `json:"records"`
	Summary  *compare.Summary      `json:"summary,omitempty"`
	Radar    []chart.RadarSeries   `json:"radar"`
	Failures []model.PillarFailure `json:"failures,omitempty"`
}

// Compare reads and flattens the companies named by keys, in key order.
// More than compare.MaxCompanies keys fail with
// compare.ErrComparisonLimitExceeded before anything is read.
func (s *Service) Compare(ctx context.Context, keys []string) model.Result[Comparison] {
	set, err := compare.NewSet(keys...)
	if err != nil {
		return model.Fail[Comparison](eris.Wrap(err, "dossier: compare"))
	}
	keys = set.Keys()

	companies := s.GetCompanies(ctx, keys)
	if companies.Failed() {
		return model.Fail[Comparison](companies.Err)
	}
	scores := s.GetPillarScores(ctx, keys)
	if scores.Failed() {
		return model.Fail[Comparison](scores.Err)
	}

	radar, err := chart.CompareRadar(companies.Data, scores.Data.Scores, keys)
	if err != nil {
		return model.Fail[Comparison](eris.Wrap(err, "dossier: compare radar"))
	}

	out := Comparison{
		Keys:     keys,
		Records:  compare.Flatten(companies.Data, scores.Data.Scores),
		Radar:    radar,
		Failures: scores.Data.Failures,
	}
	if sum, ok := compare.Summarize(out.Records); ok {
		out.Summary = &sum
	}
	return model.OK(out)
}
