package metrics

import (
	"errors"
	"fmt"
)

// Sentinel kinds for metrics errors.
var (
	ErrPushFailed = errors.New("metrics push failed")
)

func errPush(err error) error {
	return fmt.Errorf("%w: %v", ErrPushFailed, err)
}
