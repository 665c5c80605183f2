package directive

import (
	"errors"
	"fmt"
)

// Errors returned by the directive surface. The line parser itself never
// fails.
var (
	ErrUnknownDirective = errors.New("unknown directive")
	ErrMissingArgument  = errors.New("missing argument")
)

// LineError reports a failure on one line of a directive script.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
