// Package app orchestrates one sync run: fetch ratings, fetch board items,
// join on normalized domain, write back matched scores and grades.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mgeis2/ssc-to-monday/internal/domain/match"
	"github.com/mgeis2/ssc-to-monday/internal/domain/model"
	"github.com/mgeis2/ssc-to-monday/pkg/logger"
	"github.com/mgeis2/ssc-to-monday/pkg/metrics"
)

// RatingsSource lists every scored domain visible to the run.
type RatingsSource interface {
	Portfolio(ctx context.Context) ([]model.ScoredDomain, error)
}

// Board lists items and writes matched updates back.
type Board interface {
	Items(ctx context.Context) ([]model.BoardItem, error)
	Update(ctx context.Context, u model.MatchedUpdate) error
}

// Summary is the completion report of one run. Every item the run saw is
// reflected in exactly one of Updated, Failed, or Skipped.
type Summary struct {
	RunID    string
	Fetched  int
	Items    int
	Matched  int
	Updated  int
	Failed   int
	Skipped  int
	Duration time.Duration
}

// String renders the human-readable completion line.
func (s Summary) String() string {
	return fmt.Sprintf(
		"sync complete: fetched=%d items=%d matched=%d updated=%d failed=%d skipped=%d duration=%s",
		s.Fetched, s.Items, s.Matched, s.Updated, s.Failed, s.Skipped,
		s.Duration.Round(time.Millisecond))
}

// Service runs the pipeline. It owns no state between runs; every Run starts
// from scratch and discards its collections at return.
type Service struct {
	ratings RatingsSource
	board   Board
	meter   *metrics.Manager
	log     logger.Logger
}

// New constructs a Service from options. Ratings and board sources are
// required; Run reports ErrNotConfigured without them.
func New(opts ...Option) *Service {
	s := &Service{
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one full sync pass.
//
// A fetch failure on either side aborts the run with that error: the design
// prefers all-or-nothing visibility over a partial sync. Update failures are
// per-item and recoverable; they are logged, counted in Summary.Failed, and
// the remaining items still get their writes.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	sum := Summary{RunID: uuid.NewString()}
	if s.ratings == nil || s.board == nil {
		return sum, ErrNotConfigured
	}

	start := time.Now()
	log := s.log
	log.Info(ctx, "starting sync run", logger.String("run_id", sum.RunID))

	scores, err := s.ratings.Portfolio(ctx)
	if err != nil {
		return sum, fmt.Errorf("fetch ratings: %w", err)
	}
	sum.Fetched = len(scores)
	log.Info(ctx, "fetched scored domains", logger.Int("count", sum.Fetched))

	items, err := s.board.Items(ctx)
	if err != nil {
		return sum, fmt.Errorf("fetch board items: %w", err)
	}
	sum.Items = len(items)
	log.Info(ctx, "fetched board items", logger.Int("count", sum.Items))

	res := match.Join(scores, items)
	sum.Matched = len(res.Updates)
	sum.Skipped = res.Skipped()

	for _, u := range res.Updates {
		if err := s.board.Update(ctx, u); err != nil {
			sum.Failed++
			log.Error(ctx, "update failed",
				logger.String("item_id", u.ItemID),
				logger.Error(err))
			continue
		}
		sum.Updated++
		log.Info(ctx, "updated item",
			logger.String("item_id", u.ItemID),
			logger.Float64("score", u.Score),
			logger.String("grade", u.Grade))
	}

	sum.Duration = time.Since(start)
	s.record(sum)
	log.Info(ctx, sum.String(), logger.String("run_id", sum.RunID))
	return sum, nil
}

func (s *Service) record(sum Summary) {
	if s.meter == nil {
		return
	}
	s.meter.AddFetched(sum.Fetched)
	s.meter.AddItems(sum.Items)
	s.meter.AddMatched(sum.Matched)
	s.meter.AddUpdated(sum.Updated)
	s.meter.AddFailed(sum.Failed)
	s.meter.AddSkipped(sum.Skipped)
	s.meter.ObserveRun(sum.Duration)
}
