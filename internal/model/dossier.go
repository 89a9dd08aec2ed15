package model

import "time"

// PillarFailure records a pillar whose read failed while assembling a
// dossier. The dossier still renders; the pillar shows as unavailable.
type PillarFailure struct {
	Pillar PillarType `json:"pillar"`
	Reason string     `json:"reason"`
}

// Dossier is the full per-company record: identity, top-level scores and
// whichever pillar scores could be read.
type Dossier struct {
	Company  Company               `json:"company"`
	Pillars  []PillarScore         `json:"pillars"`
	Details  []DetailedPillarScore `json:"details"`
	Overview DetailedPillarScore   `json:"overview"`
	Failures []PillarFailure       `json:"failures,omitempty"`

	FetchedAt time.Time `json:"fetched_at"`
}

// Pillar returns the score for p, or false when that pillar is unavailable.
func (d *Dossier) Pillar(p PillarType) (PillarScore, bool) {
	for _, ps := range d.Pillars {
		if ps.Pillar == p {
			return ps, true
		}
	}
	return PillarScore{}, false
}

// Detail returns the detailed score for p, or false when unavailable.
func (d *Dossier) Detail(p PillarType) (DetailedPillarScore, bool) {
	for _, ds := range d.Details {
		if ds.Pillar == p {
			return ds, true
		}
	}
	return DetailedPillarScore{}, false
}

// Unavailable lists the pillars that failed to load, in fixed order.
func (d *Dossier) Unavailable() []PillarType {
	var out []PillarType
	for _, p := range Pillars {
		if _, ok := d.Pillar(p); !ok {
			out = append(out, p)
		}
	}
	return out
}
