package directive

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/modemap/internal/builder"
)

// Runner executes directive command lines such as
// ":10NVIMenu &File.Save :w<CR>".
type Runner struct {
	parser *Parser
}

// NewRunner creates a runner forwarding to b.
func NewRunner(b *builder.Builder) *Runner {
	return &Runner{parser: NewParser(b)}
}

// Parser returns the runner's line parser.
func (r *Runner) Parser() *Parser {
	return r.parser
}

// Split separates a command line into its directive name, optional count
// and argument text.
func Split(line string) (name, count, args string) {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, ":")
	line = strings.TrimSpace(line)

	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	count, line = line[:i], line[i:]

	j := 0
	for j < len(line) && isLetter(line[j]) {
		j++
	}
	name = line[:j]
	args = strings.TrimSpace(line[j:])
	return name, count, args
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Run executes one directive command line.
func (r *Runner) Run(line string) error {
	name, count, args := Split(line)
	d, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDirective, name)
	}
	return r.Exec(d, count, args)
}

// Exec runs directive d with the given count and argument text. A count
// inside args is used when count is empty.
func (r *Runner) Exec(d Directive, count, args string) error {
	switch d.Kind {
	case KindMap:
		if err := r.parser.Bind(args, d.Descriptor()); err != nil {
			return fmt.Errorf("%s: %w", d.Name, err)
		}
		return nil
	case KindMenu, KindMenuMap:
		return r.parser.Dispatch(args, d.Descriptor(), count, d.Kind == KindMenuMap)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDirective, d.Name)
	}
}

// RunScript executes every directive in rd. Blank lines and lines starting
// with '"' or '#' are skipped. Execution stops at the first failing line.
func (r *Runner) RunScript(rd io.Reader) error {
	sc := bufio.NewScanner(rd)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '"' || text[0] == '#' {
			continue
		}
		if err := r.Run(text); err != nil {
			return &LineError{Line: n, Text: text, Err: err}
		}
	}
	return sc.Err()
}
