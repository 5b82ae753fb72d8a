// Package match joins scored domains against board items on their
// normalized domain key.
package match

import (
	"github.com/mgeis2/ssc-to-monday/internal/domain/model"
)

// Result is the outcome of one join. Updates preserves board item order so
// runs are reproducible; the skip counters feed the completion summary.
type Result struct {
	Updates []model.MatchedUpdate

	// SkippedNoDomain counts items whose domain column held nothing usable.
	SkippedNoDomain int
	// SkippedUnmatched counts items whose domain has no portfolio entry.
	SkippedUnmatched int
	// SkippedUnrated counts items matched to an entry missing its score or grade.
	SkippedUnrated int
}

// Skipped is the total number of items that produced no update.
func (r Result) Skipped() int {
	return r.SkippedNoDomain + r.SkippedUnmatched + r.SkippedUnrated
}

// Join produces one MatchedUpdate per board item whose domain resolves to a
// rated portfolio entry. Duplicate domains in the portfolio collapse
// last-write-wins; every board item carrying a matching domain is updated,
// so two rows tracking the same vendor both receive the rating. Skips are
// silent: they are counted, never errors.
func Join(scores []model.ScoredDomain, items []model.BoardItem) Result {
	index := make(map[string]model.ScoredDomain, len(scores))
	for _, s := range scores {
		if s.Domain == "" {
			continue
		}
		index[s.Domain] = s
	}

	var res Result
	for _, item := range items {
		if item.Domain == "" {
			res.SkippedNoDomain++
			continue
		}
		s, ok := index[item.Domain]
		if !ok {
			res.SkippedUnmatched++
			continue
		}
		if !s.Rated() {
			res.SkippedUnrated++
			continue
		}
		res.Updates = append(res.Updates, model.MatchedUpdate{
			ItemID: item.ID,
			Score:  *s.Score,
			Grade:  s.Grade,
		})
	}
	return res
}
