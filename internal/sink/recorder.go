package sink

import (
	"sync"

	"github.com/dshills/modemap/internal/command"
)

// Recorder keeps every command it receives.
type Recorder struct {
	mu   sync.Mutex
	cmds []command.Primitive
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Apply records cmd.
func (r *Recorder) Apply(cmd command.Primitive) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
	return nil
}

// Commands returns a copy of the recorded commands.
func (r *Recorder) Commands() []command.Primitive {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]command.Primitive(nil), r.cmds...)
}

// Strings returns the recorded commands as host text.
func (r *Recorder) Strings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.cmds))
	for i, c := range r.cmds {
		out[i] = c.String()
	}
	return out
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cmds)
}

// Reset forgets all recorded commands.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = nil
}
