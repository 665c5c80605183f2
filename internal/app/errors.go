package app

import (
	"errors"
	"fmt"
)

// ErrClosed is returned when applying after Close.
var ErrClosed = errors.New("app closed")

// OperationError reports which configured entry failed.
type OperationError struct {
	Op     string // "mapping", "menu", "directive" or "script"
	Target string // entry index or script path
	Err    error
}

func (e *OperationError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
