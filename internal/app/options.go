package app

import (
	"github.com/mgeis2/ssc-to-monday/pkg/logger"
	"github.com/mgeis2/ssc-to-monday/pkg/metrics"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRatings sets the ratings source.
func WithRatings(r RatingsSource) Option {
	return func(s *Service) {
		if r != nil {
			s.ratings = r
		}
	}
}

// WithBoard sets the board.
func WithBoard(b Board) Option {
	return func(s *Service) {
		if b != nil {
			s.board = b
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics attaches a metrics manager; without one the run is only
// observable through logs.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.meter = m
		}
	}
}
