package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mgeis2/ssc-to-monday/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"LOG_LEVEL",
	"SSC_API_KEY",
	"SSC_PORTFOLIO_ID",
	"SSC_BASE_URL",
	"SSC_MAX_DOMAINS",
	"SSC_PAGE_SIZE",
	"MONDAY_API_KEY",
	"MONDAY_BOARD_ID",
	"MONDAY_BASE_URL",
	"MONDAY_PAGE_SIZE",
	"DOMAIN_COLUMN_ID",
	"SCORE_COLUMN_ID",
	"GRADE_COLUMN_ID",
	"PUSHGATEWAY_URL",
	"SSC_SYNC_CONFIG",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		_ = os.Unsetenv(v)
	}
}

func setRequiredEnvVars() {
	_ = os.Setenv("SSC_API_KEY", "ssc-key")
	_ = os.Setenv("SSC_PORTFOLIO_ID", "pf-1")
	_ = os.Setenv("MONDAY_API_KEY", "monday-key")
	_ = os.Setenv("MONDAY_BOARD_ID", "board-1")
	_ = os.Setenv("DOMAIN_COLUMN_ID", "domain")
	_ = os.Setenv("SCORE_COLUMN_ID", "score")
	_ = os.Setenv("GRADE_COLUMN_ID", "grade")
}

func TestLoad(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When all required variables are set", func() {
			clearConfigEnvVars()
			setRequiredEnvVars()
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it loads with defaults filled in", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.SSCAPIKey, convey.ShouldEqual, "ssc-key")
				convey.So(cfg.MondayBoardID, convey.ShouldEqual, "board-1")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.SSCMaxDomains, convey.ShouldEqual, 500)
				convey.So(cfg.SSCPageSize, convey.ShouldEqual, 100)
				convey.So(cfg.MondayPageSize, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When a required variable is missing", func() {
			clearConfigEnvVars()
			setRequiredEnvVars()
			_ = os.Unsetenv("GRADE_COLUMN_ID")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails with ErrInvalidConfig", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When environment variables override defaults", func() {
			clearConfigEnvVars()
			setRequiredEnvVars()
			_ = os.Setenv("LOG_LEVEL", "debug")
			_ = os.Setenv("SSC_MAX_DOMAINS", "50")
			_ = os.Setenv("PUSHGATEWAY_URL", "http://gateway:9091")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			convey.So(cfg.SSCMaxDomains, convey.ShouldEqual, 50)
			convey.So(cfg.PushgatewayURL, convey.ShouldEqual, "http://gateway:9091")
		})

		convey.Convey("When a YAML file provides settings", func() {
			clearConfigEnvVars()
			setRequiredEnvVars()
			defer clearConfigEnvVars()

			dir := t.TempDir()
			path := filepath.Join(dir, "sync.yaml")
			yaml := "log_level: warn\nssc_page_size: 25\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("SSC_SYNC_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values apply but env still wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.SSCPageSize, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When the YAML file path is bogus", func() {
			clearConfigEnvVars()
			setRequiredEnvVars()
			_ = os.Setenv("SSC_SYNC_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})
	})
}

func TestValidate(t *testing.T) {
	convey.Convey("Given a config value", t, func() {
		full := func() *config.Config {
			c := config.New(context.Background())
			c.SSCAPIKey = "k"
			c.SSCPortfolioID = "p"
			c.MondayAPIKey = "k"
			c.MondayBoardID = "b"
			c.DomainColumnID = "d"
			c.ScoreColumnID = "s"
			c.GradeColumnID = "g"
			return c
		}

		convey.Convey("When every required field is present", func() {
			convey.So(full().Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When the domain cap is non-positive", func() {
			c := full()
			c.SSCMaxDomains = 0
			convey.So(errors.Is(c.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a required field is empty", func() {
			c := full()
			c.SSCPortfolioID = ""
			err := c.Validate()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
