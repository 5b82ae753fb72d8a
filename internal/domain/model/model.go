// Package model defines the records flowing through one sync run.
// Nothing here outlives the run; all three types are plain values.
package model

// ScoredDomain is one entry from the ratings provider's portfolio.
// Domain is already normalized. Score and Grade may be absent: the provider
// returns entries before a rating is computed, and the matcher is the single
// place deciding what to do with them.
type ScoredDomain struct {
	Domain string
	Score  *float64
	Grade  string
}

// Rated reports whether both the numeric score and the letter grade are
// present. Only rated entries are eligible for board updates.
func (s ScoredDomain) Rated() bool {
	return s.Score != nil && s.Grade != ""
}

// BoardItem is one row of the tracking board. Domain is the normalized value
// of the configured domain column, or empty when the column held nothing
// usable. Name is carried solely for log readability.
type BoardItem struct {
	ID     string
	Name   string
	Domain string
}

// MatchedUpdate is the write produced for a board item whose domain matched
// a rated entry. The domain itself is not carried: identity is resolved, the
// item id is all the updater needs.
type MatchedUpdate struct {
	ItemID string
	Score  float64
	Grade  string
}

// Float64 returns a pointer to v. Convenience for building ScoredDomain
// values in call sites and tests.
func Float64(v float64) *float64 { return &v }
