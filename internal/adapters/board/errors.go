package board

import (
	"errors"
	"fmt"
)

// Sentinel kinds for board errors.
var (
	// ErrAuth means the board rejected the API key. Fatal for the run.
	ErrAuth = errors.New("board rejected credentials")
	// ErrPageFetch means listing the board failed. Fatal: a partial listing
	// makes every match decision unreliable.
	ErrPageFetch = errors.New("board page fetch failed")
	// ErrUpdate means a single item write failed. Recoverable: the caller
	// counts it and continues with the remaining items.
	ErrUpdate = errors.New("board item update failed")
)

func errAuth(status int) error {
	return fmt.Errorf("%w: status %d", ErrAuth, status)
}

// errPage classifies a listing failure, preserving auth errors as-is.
func errPage(err error) error {
	if errors.Is(err, ErrAuth) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrPageFetch, err)
}

func errUpdate(itemID string, err error) error {
	if errors.Is(err, ErrAuth) {
		return err
	}
	return fmt.Errorf("%w: item %s: %v", ErrUpdate, itemID, err)
}
