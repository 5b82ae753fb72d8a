package scorecard

import (
	"errors"
	"fmt"
)

// Sentinel kinds for ratings provider errors.
var (
	// ErrAuth means the provider rejected the API key. Fatal for the run.
	ErrAuth = errors.New("ratings provider rejected credentials")
	// ErrPageFetch means a page request failed. Also fatal: a partial
	// portfolio would make every downstream match decision unreliable.
	ErrPageFetch = errors.New("ratings page fetch failed")
)

func errAuth(status int) error {
	return fmt.Errorf("%w: status %d", ErrAuth, status)
}

func errPage(err error) error {
	return fmt.Errorf("%w: %v", ErrPageFetch, err)
}
