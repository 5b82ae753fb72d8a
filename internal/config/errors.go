package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

func errMissing(name string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidConfig, name)
}

func errInvalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}
