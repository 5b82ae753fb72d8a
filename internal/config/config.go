// Package config defines process configuration and loading.
//
// Conventions:
// - Settings carry koanf tags; loading layers defaults, an optional YAML
//   file, a .env file, and real environment variables.
// - Validation runs at load time: a missing required setting is a fatal
//   configuration error before either provider is contacted.
package config

import "context"

// Default configuration values.
const (
	defaultLogLevel   = "info"
	defaultMaxDomains = 500
	defaultPageSize   = 100
)

// Config contains everything one sync run needs.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// SSCAPIKey authenticates against SecurityScorecard. Required.
	SSCAPIKey string `koanf:"ssc_api_key"`

	// SSCPortfolioID names the portfolio whose companies are synced. Required.
	SSCPortfolioID string `koanf:"ssc_portfolio_id"`

	// SSCBaseURL overrides the ratings API endpoint (sandbox, tests).
	SSCBaseURL string `koanf:"ssc_base_url"`

	// SSCMaxDomains caps the number of scored domains fetched per run.
	SSCMaxDomains int `koanf:"ssc_max_domains"`

	// SSCPageSize sets the portfolio page size.
	SSCPageSize int `koanf:"ssc_page_size"`

	// MondayAPIKey authenticates against monday.com. Required.
	MondayAPIKey string `koanf:"monday_api_key"`

	// MondayBoardID names the board to read and update. Required.
	MondayBoardID string `koanf:"monday_board_id"`

	// MondayBaseURL overrides the board API endpoint (sandbox, tests).
	MondayBaseURL string `koanf:"monday_base_url"`

	// MondayPageSize sets the items_page size.
	MondayPageSize int `koanf:"monday_page_size"`

	// DomainColumnID is the board column holding the vendor domain. Required.
	DomainColumnID string `koanf:"domain_column_id"`

	// ScoreColumnID is the board column receiving the numeric score. Required.
	ScoreColumnID string `koanf:"score_column_id"`

	// GradeColumnID is the board column receiving the letter grade. Required.
	GradeColumnID string `koanf:"grade_column_id"`

	// PushgatewayURL, when set, receives the run's metrics at completion.
	PushgatewayURL string `koanf:"pushgateway_url"`
}

// New returns a Config holding only defaults. Context is accepted first to
// satisfy the project-wide convention; it is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       defaultLogLevel,
		SSCMaxDomains:  defaultMaxDomains,
		SSCPageSize:    defaultPageSize,
		MondayPageSize: defaultPageSize,
	}
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	required := []struct {
		name, value string
	}{
		{"SSC_API_KEY", c.SSCAPIKey},
		{"SSC_PORTFOLIO_ID", c.SSCPortfolioID},
		{"MONDAY_API_KEY", c.MondayAPIKey},
		{"MONDAY_BOARD_ID", c.MondayBoardID},
		{"DOMAIN_COLUMN_ID", c.DomainColumnID},
		{"SCORE_COLUMN_ID", c.ScoreColumnID},
		{"GRADE_COLUMN_ID", c.GradeColumnID},
	}
	for _, r := range required {
		if r.value == "" {
			return errMissing(r.name)
		}
	}
	if c.SSCMaxDomains <= 0 {
		return errInvalid("SSC_MAX_DOMAINS must be positive")
	}
	return nil
}
