// Package compare holds the bounded comparison set and flattens it for
// side-by-side views and reports.
package compare

import (
	"slices"

	"github.com/rotisserie/eris"
)

// MaxCompanies is the hard upper bound on a comparison set.
const MaxCompanies = 5

// ErrComparisonLimitExceeded is returned when an add would exceed MaxCompanies.
var ErrComparisonLimitExceeded = eris.New("comparison limit exceeded")

// Set is an ordered set of company keys holding at most MaxCompanies
// members. The zero value is an empty set.
type Set struct {
	keys []string
}

// NewSet builds a set from keys, skipping duplicates. It fails without a
// partial result when more than MaxCompanies distinct keys are given.
func NewSet(keys ...string) (*Set, error) {
	s := &Set{}
	for _, k := range keys {
		if err := s.Add(k); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends key. Adding a member already present is a no-op. Adding to a
// full set returns ErrComparisonLimitExceeded and leaves the set unchanged.
func (s *Set) Add(key string) error {
	if s.Contains(key) {
		return nil
	}
	if len(s.keys) >= MaxCompanies {
		return eris.Wrapf(ErrComparisonLimitExceeded, "compare: add %q: set already holds %d companies", key, MaxCompanies)
	}
	s.keys = append(s.keys, key)
	return nil
}

// Remove drops key, reporting whether it was present.
func (s *Set) Remove(key string) bool {
	i := slices.Index(s.keys, key)
	if i < 0 {
		return false
	}
	s.keys = slices.Delete(s.keys, i, i+1)
	return true
}

// Toggle removes key if present, otherwise adds it.
func (s *Set) Toggle(key string) error {
	if s.Remove(key) {
		return nil
	}
	return s.Add(key)
}

// Contains reports membership.
func (s *Set) Contains(key string) bool {
	return slices.Contains(s.keys, key)
}

// Keys returns the members in insertion order.
func (s *Set) Keys() []string {
	return slices.Clone(s.keys)
}

// Len returns the member count.
func (s *Set) Len() int {
	return len(s.keys)
}

// Full reports whether another add would be rejected.
func (s *Set) Full() bool {
	return len(s.keys) >= MaxCompanies
}

// Clear empties the set.
func (s *Set) Clear() {
	s.keys = nil
}
