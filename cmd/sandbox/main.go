// Command sandbox serves fake ratings and board providers on one listener,
// so a sync run can be exercised locally with no credentials:
//
//	SSC_BASE_URL=http://localhost:8787/scorecard \
//	MONDAY_BASE_URL=http://localhost:8787/board \
//	SSC_API_KEY=sandbox SSC_PORTFOLIO_ID=pf-sandbox \
//	MONDAY_API_KEY=sandbox MONDAY_BOARD_ID=board-sandbox \
//	DOMAIN_COLUMN_ID=domain SCORE_COLUMN_ID=score GRADE_COLUMN_ID=grade \
//	go run ./cmd
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/mgeis2/ssc-to-monday/internal/domain/model"
	"github.com/mgeis2/ssc-to-monday/internal/sandbox"
	"github.com/mgeis2/ssc-to-monday/pkg/logger"
)

const (
	defaultAddr       = ":8787"
	readHeaderTimeout = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	ctx := context.Background()
	log := logger.Named("sandbox")

	ratings := &sandbox.Ratings{
		Key: "sandbox",
		Entries: []sandbox.RatingsEntry{
			{Domain: "example.com", Score: model.Float64(82), Grade: "B"},
			{Domain: "acme.example.net", Score: model.Float64(95), Grade: "A"},
			{Domain: "pending.example.org", Score: model.Float64(40)},
		},
	}

	board := &sandbox.Board{Key: "sandbox"}
	board.AddItem("Example Corp", map[string]string{"domain": "https://example.com/"})
	board.AddItem("Acme", map[string]string{"domain": "www.acme.example.net"})
	board.AddItem("Pending Vendor", map[string]string{"domain": "pending.example.org"})
	board.AddItem("Untracked Org", map[string]string{"domain": "other.org"})
	board.AddItem("No Domain Yet", map[string]string{})

	mux := http.NewServeMux()
	mux.Handle("/scorecard/", http.StripPrefix("/scorecard", ratings))
	mux.Handle("/board", board)

	addr := os.Getenv("SANDBOX_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Info(ctx, "sandbox providers listening",
		logger.String("addr", addr),
		logger.String("ratings", "/scorecard"),
		logger.String("board", "/board"))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error(ctx, "sandbox server failed", logger.Error(err))
		os.Exit(1)
	}
}
