package dossier

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/targets-navigator/internal/fields"
	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/pillar"
)

// pillarResult is one branch's outcome. Exactly one of detail, failure
// is set, or neither when the company has no row for the pillar.
type pillarResult struct {
	detail  *model.DetailedPillarScore
	failure *model.PillarFailure
}

// details reads the six pillars of key concurrently. A failed branch
// becomes a PillarFailure; it never cancels its siblings.
func (s *Service) details(ctx context.Context, key string) ([]model.DetailedPillarScore, []model.PillarFailure) {
	results := make([]pillarResult, len(model.Pillars))

	g, gctx := errgroup.WithContext(ctx)
	for i, pt := range model.Pillars {
		g.Go(func() error {
			results[i] = s.readDetail(gctx, pt, key)
			return nil // a failed pillar must not abort the others
		})
	}
	_ = g.Wait()

	var details []model.DetailedPillarScore
	var failures []model.PillarFailure
	for _, r := range results {
		if r.detail != nil {
			details = append(details, *r.detail)
		}
		if r.failure != nil {
			failures = append(failures, *r.failure)
		}
	}
	return details, failures
}

func (s *Service) readDetail(ctx context.Context, pt model.PillarType, key string) pillarResult {
	rec, err := s.pillarRecord(ctx, pt, key)
	if err == nil && rec == nil {
		return pillarResult{}
	}
	var d model.DetailedPillarScore
	if err == nil {
		d, err = pillar.NormalizeDetailed(pt, rec)
	}
	if err != nil {
		f := model.PillarFailure{Pillar: pt, Reason: err.Error()}
		logPillarFailure(key, f, err)
		return pillarResult{failure: &f}
	}
	return pillarResult{detail: &d}
}

// GetCompanyDossier reads the company, then its six pillars concurrently.
// Pillar failures are recorded on the dossier rather than failing it; only
// a failed company read or caller cancellation fails the result.
func (s *Service) GetCompanyDossier(ctx context.Context, key string) model.Result[*model.Dossier] {
	c, err := s.company(ctx, key)
	if err != nil {
		return model.Fail[*model.Dossier](eris.Wrap(err, "dossier: get dossier"))
	}

	details, failures := s.details(ctx, key)
	if err := ctx.Err(); err != nil {
		return model.Fail[*model.Dossier](eris.Wrap(err, "dossier: get dossier"))
	}

	d := &model.Dossier{
		Company:   c,
		Pillars:   make([]model.PillarScore, 0, len(details)),
		Details:   details,
		Overview:  pillar.OverviewWithSentinel(key, details, s.cfg.Sentinel),
		Failures:  failures,
		FetchedAt: s.now(),
	}
	if d.Details == nil {
		d.Details = []model.DetailedPillarScore{}
	}
	for _, ds := range details {
		d.Pillars = append(d.Pillars, ds.PillarScore)
	}
	return model.OK(d)
}

// GetPillarDetails reads one pillar's detailed score for key. Data is nil
// when the company has no row for the pillar. The overview pseudo-pillar
// is derived from all six pillars.
func (s *Service) GetPillarDetails(ctx context.Context, key string, pt model.PillarType) model.Result[*model.DetailedPillarScore] {
	if pt == model.PillarOverview {
		details, _ := s.details(ctx, key)
		if err := ctx.Err(); err != nil {
			return model.Fail[*model.DetailedPillarScore](eris.Wrap(err, "dossier: pillar details"))
		}
		ov := pillar.OverviewWithSentinel(key, details, s.cfg.Sentinel)
		return model.OK(&ov)
	}
	if _, err := fields.Lookup(pt); err != nil {
		return model.Fail[*model.DetailedPillarScore](eris.Wrap(err, "dossier: pillar details"))
	}

	rec, err := s.pillarRecord(ctx, pt, key)
	if err != nil {
		return model.Fail[*model.DetailedPillarScore](eris.Wrapf(err, "dossier: read %s", pt))
	}
	if rec == nil {
		return model.OK[*model.DetailedPillarScore](nil)
	}
	d, err := pillar.NormalizeDetailed(pt, rec)
	if err != nil {
		return model.Fail[*model.DetailedPillarScore](eris.Wrap(err, "dossier: pillar details"))
	}
	return model.OK(&d)
}

// PillarScores is a batch of pillar scores keyed by company, each list in
// fixed pillar order, plus the pillars whose batch read failed.
type PillarScores struct {
	Scores   map[string][]model.PillarScore `json:"scores"`
	Failures []model.PillarFailure          `json:"failures,omitempty"`
}

// GetPillarScores reads every pillar for keys, one concurrent batch read
// per pillar. Failed pillars are skipped and reported.
func (s *Service) GetPillarScores(ctx context.Context, keys []string) model.Result[PillarScores] {
	out := PillarScores{Scores: make(map[string][]model.PillarScore, len(keys))}
	if len(keys) == 0 {
		return model.OK(out)
	}

	batches := make([][]model.PillarScore, len(model.Pillars))
	failures := make([]*model.PillarFailure, len(model.Pillars))

	g, gctx := errgroup.WithContext(ctx)
	for i, pt := range model.Pillars {
		g.Go(func() error {
			recs, err := s.pillarRecords(gctx, pt, keys)
			if err != nil {
				f := model.PillarFailure{Pillar: pt, Reason: err.Error()}
				logPillarFailure("*", f, err)
				failures[i] = &f
				return nil // keep the other pillars
			}
			for _, rec := range recs {
				ps, err := pillar.NormalizeScore(pt, rec)
				if err != nil {
					continue
				}
				batches[i] = append(batches[i], ps)
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return model.Fail[PillarScores](eris.Wrap(err, "dossier: pillar scores"))
	}

	for i := range model.Pillars {
		for _, ps := range batches[i] {
			out.Scores[ps.CompanyKey] = append(out.Scores[ps.CompanyKey], ps)
		}
		if failures[i] != nil {
			out.Failures = append(out.Failures, *failures[i])
		}
	}
	return model.OK(out)
}
