package compare

import (
	"github.com/sells-group/targets-navigator/internal/model"
)

// PillarRow is one pillar's line in a flattened record.
type PillarRow struct {
	Pillar      model.PillarType `json:"pillar"`
	Title       string           `json:"title"`
	Score       *float64         `json:"score"`
	Rationale   string           `json:"rationale,omitempty"`
	TopFeatures []string         `json:"top_features"`
	Available   bool             `json:"available"`
}

// Record is a company flattened for comparison: identity, the three
// top-level scores, then six pillar rows in fixed order.
type Record struct {
	Key              string      `json:"key"`
	Name             string      `json:"name"`
	Ticker           string      `json:"ticker,omitempty"`
	Geography        string      `json:"geography"`
	Tier             model.Tier  `json:"tier"`
	Tags             []string    `json:"tags"`
	OverallScore     *float64    `json:"overall_score"`
	StrategicFit     *float64    `json:"strategic_fit"`
	AbilityToExecute *float64    `json:"ability_to_execute"`
	Pillars          []PillarRow `json:"pillars"`
}

// Flatten zips each company with its pillar scores. scores is keyed by
// company key; a pillar with no score entry is marked unavailable.
func Flatten(companies []model.Company, scores map[string][]model.PillarScore) []Record {
	out := make([]Record, 0, len(companies))
	for _, c := range companies {
		byPillar := make(map[model.PillarType]model.PillarScore, len(model.Pillars))
		for _, ps := range scores[c.Key] {
			byPillar[ps.Pillar] = ps
		}

		tags := c.Tags
		if tags == nil {
			tags = []string{}
		}
		r := Record{
			Key:              c.Key,
			Name:             c.Name,
			Ticker:           c.Ticker,
			Geography:        c.Geography,
			Tier:             c.Tier,
			Tags:             tags,
			OverallScore:     c.OverallScore,
			StrategicFit:     c.StrategicFit,
			AbilityToExecute: c.AbilityToExecute,
			Pillars:          make([]PillarRow, 0, len(model.Pillars)),
		}
		for _, pt := range model.Pillars {
			row := PillarRow{Pillar: pt, Title: pt.Title(), TopFeatures: []string{}}
			if ps, ok := byPillar[pt]; ok {
				row.Score = ps.Score
				row.Rationale = ps.Rationale
				if ps.TopFeatures != nil {
					row.TopFeatures = ps.TopFeatures
				}
				row.Available = true
			}
			r.Pillars = append(r.Pillars, row)
		}
		out = append(out, r)
	}
	return out
}

// Summary holds statistics over a comparison set.
type Summary struct {
	Count                   int      `json:"count"`
	AverageOverall          *float64 `json:"average_overall"`
	HighestStrategicFit     *float64 `json:"highest_strategic_fit"`
	StrategicFitLeader      string   `json:"strategic_fit_leader,omitempty"`
	HighestAbilityToExecute *float64 `json:"highest_ability_to_execute"`
	AbilityToExecuteLeader  string   `json:"ability_to_execute_leader,omitempty"`
}

// Summarize computes the set statistics. It returns false for fewer than
// two records. Missing scores are ignored; a statistic with no defined
// input stays nil.
func Summarize(records []Record) (Summary, bool) {
	if len(records) < 2 {
		return Summary{}, false
	}

	s := Summary{Count: len(records)}
	var sum float64
	var n int
	for _, r := range records {
		if r.OverallScore != nil {
			sum += *r.OverallScore
			n++
		}
		if r.StrategicFit != nil && (s.HighestStrategicFit == nil || *r.StrategicFit > *s.HighestStrategicFit) {
			s.HighestStrategicFit = r.StrategicFit
			s.StrategicFitLeader = r.Key
		}
		if r.AbilityToExecute != nil && (s.HighestAbilityToExecute == nil || *r.AbilityToExecute > *s.HighestAbilityToExecute) {
			s.HighestAbilityToExecute = r.AbilityToExecute
			s.AbilityToExecuteLeader = r.Key
		}
	}
	if n > 0 {
		avg := sum / float64(n)
		s.AverageOverall = &avg
	}
	return s, true
}
