package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New)
//  2. YAML file if SSC_SYNC_CONFIG points at one
//  3. environment variables (SSC_API_KEY, MONDAY_BOARD_ID, ...)
//
// A .env file in the working directory is read into the environment first,
// without overriding variables already set, matching how the original
// deployment supplied its settings.
func Load(ctx context.Context) (*Config, error) {
	// .env is optional; a missing file is not an error.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("%w: .env: %v", ErrLoadConfig, err)
		}
	}

	base := New(ctx)
	k := koanf.New(".")

	if path := os.Getenv("SSC_SYNC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// The settings keep their historical env names (no shared prefix), so
	// every variable is mapped to its lowercase form and the koanf tags
	// select the ones that matter.
	envProvider := env.Provider("", ".", strings.ToLower)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
