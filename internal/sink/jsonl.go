package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/modemap/internal/command"
	"github.com/dshills/modemap/internal/mode"
)

// ErrInvalidRecord is returned by Replay for a line that is not a command
// record.
var ErrInvalidRecord = errors.New("invalid command record")

// JSONLines writes one JSON object per command:
//
//	{"run":"…","mode":"insert","command":"inoremap","lhs":"<C-S>","rhs":"…"}
type JSONLines struct {
	mu    sync.Mutex
	w     io.Writer
	runID uuid.UUID
}

// NewJSONLines creates a JSON lines sink writing to w. A zero id omits
// the run field.
func NewJSONLines(w io.Writer, runID uuid.UUID) *JSONLines {
	return &JSONLines{w: w, runID: runID}
}

// Apply writes cmd as one JSON line.
func (j *JSONLines) Apply(cmd command.Primitive) error {
	line, err := encodeRecord(cmd, j.runID)
	if err != nil {
		return &command.DispatchError{Command: cmd, Err: err}
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := io.WriteString(j.w, line+"\n"); err != nil {
		return &command.DispatchError{Command: cmd, Err: err}
	}
	return nil
}

func encodeRecord(cmd command.Primitive, runID uuid.UUID) (string, error) {
	line := "{}"
	var err error
	set := func(path, value string) {
		if err == nil {
			line, err = sjson.Set(line, path, value)
		}
	}
	if runID != uuid.Nil {
		set("run", runID.String())
	}
	set("mode", cmd.Mode.String())
	set("command", cmd.Command)
	set("lhs", cmd.LHS)
	set("rhs", cmd.RHS)
	return line, err
}

// Replay reads command records written by JSONLines and applies them to
// s in order. Blank lines are skipped. Replay stops at the first invalid
// record or sink error.
func Replay(r io.Reader, s command.Sink) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n, lineNo := 0, 0
	for sc.Scan() {
		lineNo++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		cmd, err := decodeRecord(text)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := s.Apply(cmd); err != nil {
			return n, fmt.Errorf("line %d: %w", lineNo, err)
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("reading records: %w", err)
	}
	return n, nil
}

func decodeRecord(text string) (command.Primitive, error) {
	if !gjson.Valid(text) {
		return command.Primitive{}, fmt.Errorf("%w: not JSON", ErrInvalidRecord)
	}
	fields := gjson.GetMany(text, "command", "lhs", "rhs", "mode")
	name, lhs, rhs := fields[0], fields[1], fields[2]
	if !name.Exists() || name.String() == "" {
		return command.Primitive{}, fmt.Errorf("%w: missing command", ErrInvalidRecord)
	}

	m := mode.ForCommand(name.String())
	if fields[3].Exists() {
		if parsed, ok := mode.Parse(fields[3].String()); ok {
			m = parsed
		}
	}
	return command.New(m, name.String(), lhs.String(), rhs.String()), nil
}
