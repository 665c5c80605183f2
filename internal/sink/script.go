package sink

import (
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/modemap/internal/command"
)

// Script writes one host command per line. Before the first command it
// writes a comment naming the run.
type Script struct {
	mu     sync.Mutex
	w      io.Writer
	runID  uuid.UUID
	header bool
	wrote  bool
}

// ScriptOption configures a Script.
type ScriptOption func(*Script)

// WithRunID sets the run id written in the header.
func WithRunID(id uuid.UUID) ScriptOption {
	return func(s *Script) {
		s.runID = id
	}
}

// WithoutHeader disables the run header.
func WithoutHeader() ScriptOption {
	return func(s *Script) {
		s.header = false
	}
}

// NewScript creates a script sink writing to w with a fresh run id.
func NewScript(w io.Writer, opts ...ScriptOption) *Script {
	s := &Script{
		w:      w,
		runID:  uuid.New(),
		header: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunID returns the id written in the header.
func (s *Script) RunID() uuid.UUID {
	return s.runID
}

// Apply writes cmd as a line of host text.
func (s *Script) Apply(cmd command.Primitive) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.header && !s.wrote {
		if _, err := io.WriteString(s.w, `" modemap run `+s.runID.String()+"\n"); err != nil {
			return &command.DispatchError{Command: cmd, Err: err}
		}
	}
	s.wrote = true

	if _, err := io.WriteString(s.w, cmd.String()+"\n"); err != nil {
		return &command.DispatchError{Command: cmd, Err: err}
	}
	return nil
}
