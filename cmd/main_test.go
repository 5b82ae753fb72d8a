package main

import (
	"context"
	"os"
	"testing"

	"github.com/mgeis2/ssc-to-monday/internal/app"
	"github.com/mgeis2/ssc-to-monday/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			env := map[string]string{
				"SSC_API_KEY":      "ssc-key",
				"SSC_PORTFOLIO_ID": "pf-1",
				"MONDAY_API_KEY":   "monday-key",
				"MONDAY_BOARD_ID":  "board-1",
				"DOMAIN_COLUMN_ID": "domain",
				"SCORE_COLUMN_ID":  "score",
				"GRADE_COLUMN_ID":  "grade",
			}
			for k, v := range env {
				_ = os.Setenv(k, v)
			}
			defer func() {
				for k := range env {
					_ = os.Unsetenv(k)
				}
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.SSCPortfolioID, convey.ShouldEqual, "pf-1")
				convey.So(cfg.GradeColumnID, convey.ShouldEqual, "grade")
			})
		})

		convey.Convey("When building the service without sources", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then running it reports the missing configuration", func() {
				_, err := svc.Run(context.Background())
				convey.So(err, convey.ShouldEqual, app.ErrNotConfigured)
			})
		})
	})
}
