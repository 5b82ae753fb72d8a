package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mgeis2/ssc-to-monday/internal/adapters/board"
	"github.com/mgeis2/ssc-to-monday/internal/adapters/scorecard"
	"github.com/mgeis2/ssc-to-monday/internal/app"
	"github.com/mgeis2/ssc-to-monday/internal/config"
	"github.com/mgeis2/ssc-to-monday/pkg/logger"
	"github.com/mgeis2/ssc-to-monday/pkg/metrics"
)

const pushTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

// run executes one sync pass and returns the process exit code: 0 when the
// run completed (even with zero matches or some failed item updates), 1 on a
// configuration or fetch error.
func run() int {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	log := logger.Named("sync")
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	meter := metrics.New()

	svc := app.New(
		app.WithLogger(log),
		app.WithMetrics(meter),
		app.WithRatings(scorecard.New(cfg.SSCAPIKey, cfg.SSCPortfolioID,
			scorecard.WithBaseURL(cfg.SSCBaseURL),
			scorecard.WithPageSize(cfg.SSCPageSize),
			scorecard.WithMaxDomains(cfg.SSCMaxDomains),
			scorecard.WithLogger(logger.Named("scorecard")),
		)),
		app.WithBoard(board.New(cfg.MondayAPIKey, cfg.MondayBoardID,
			board.Columns{
				Domain: cfg.DomainColumnID,
				Score:  cfg.ScoreColumnID,
				Grade:  cfg.GradeColumnID,
			},
			board.WithBaseURL(cfg.MondayBaseURL),
			board.WithPageSize(cfg.MondayPageSize),
			board.WithLogger(logger.Named("board")),
		)),
	)

	sum, err := svc.Run(ctx)
	if err != nil {
		log.Error(ctx, "sync run failed", logger.String("run_id", sum.RunID), logger.Error(err))
		return 1
	}

	// The summary is the run's primary observable output; keep it on stdout.
	fmt.Println(sum.String())

	if cfg.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		grouping := map[string]string{"run_id": sum.RunID}
		if err := meter.Push(pushCtx, cfg.PushgatewayURL, "ssc_to_monday", grouping); err != nil {
			// Metrics delivery is best-effort; the sync itself succeeded.
			log.Warn(ctx, "metrics push failed", logger.Error(err))
		}
	}

	return 0
}
