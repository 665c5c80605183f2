package command

import "fmt"

// Sink receives primitive commands one at a time.
type Sink interface {
	// Apply hands one command to the host. An error means the host
	// rejected the command; commands applied earlier are not undone.
	Apply(cmd Primitive) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(cmd Primitive) error

// Apply calls f(cmd).
func (f SinkFunc) Apply(cmd Primitive) error {
	return f(cmd)
}

// DispatchError reports a command the host rejected.
type DispatchError struct {
	Command Primitive
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatching %q: %v", e.Command.String(), e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// ApplyAll applies commands in order and stops at the first error, which is
// returned unchanged.
func ApplyAll(sink Sink, cmds []Primitive) error {
	for _, cmd := range cmds {
		if err := sink.Apply(cmd); err != nil {
			return err
		}
	}
	return nil
}
