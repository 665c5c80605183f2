// Package expand turns a shorthand multi-mode descriptor into the
// mode-specific primitive commands the host understands.
//
// A descriptor starting with "n" followed by any of "v", "i", "c", "o"
// names several modes at once:
//
//	e := expand.New(expand.DefaultCodes())
//	cmds := e.Expand("<C-S>", ":w<CR>", "nvinoremap")
//	// nnoremap <C-S> :w<CR>
//	// vnoremap <C-S> <C-C>:w<CR><C-\><C-G>
//	// inoremap <C-S> <C-\><C-O>:w<CR>
//
// The leading "a" alias stands for "nvico". Any other descriptor is a
// primitive command name and is passed through as a single command.
package expand

import (
	"strings"

	"github.com/dshills/modemap/internal/command"
	"github.com/dshills/modemap/internal/keys"
	"github.com/dshills/modemap/internal/mode"
)

// Codes are the control sequences wrapped around the rhs so that a
// command entered from another mode behaves like its normal-mode form.
type Codes struct {
	// Escape leaves visual, command-line and operator-pending mode.
	Escape string `toml:"escape" yaml:"escape"`

	// Reenter restores the originating mode after the rhs has run.
	Reenter string `toml:"reenter" yaml:"reenter"`

	// Insert runs one normal-mode command from insert mode.
	Insert string `toml:"insert" yaml:"insert"`
}

// DefaultCodes returns the codes Vim documents for :amenu.
func DefaultCodes() Codes {
	return Codes{
		Escape:  keys.CtrlC,
		Reenter: keys.CtrlBackslashCtrlG,
		Insert:  keys.CtrlBackslashCtrlO,
	}
}

// Wrap returns rhs wrapped for execution from m.
func (c Codes) Wrap(m mode.Mode, rhs string) string {
	switch m {
	case mode.Visual, mode.CommandLine, mode.OperatorPending:
		return c.Escape + rhs + c.Reenter
	case mode.Insert:
		return c.Insert + rhs
	default:
		return rhs
	}
}

// Expander expands descriptors. The zero value uses no transition codes;
// use New for the defaults.
type Expander struct {
	codes Codes
}

// New creates an expander with the given codes.
func New(codes Codes) *Expander {
	return &Expander{codes: codes}
}

// Codes returns the transition codes in use.
func (e *Expander) Codes() Codes {
	return e.codes
}

// Expand returns the primitive commands for one lhs. The normal-mode command
// comes first, followed by visual, insert, command-line and operator-pending
// commands for the letters present in the descriptor, in that order.
func (e *Expander) Expand(lhs, rhs, descriptor string) []command.Primitive {
	descriptor = ResolveAlias(descriptor)

	run, set, ok := Split(descriptor)
	if !ok {
		return []command.Primitive{
			command.New(mode.ForCommand(descriptor), descriptor, lhs, rhs),
		}
	}

	tail := descriptor[len(run):]
	cmds := make([]command.Primitive, 0, set.Len())
	for _, m := range set.With(mode.Normal).Modes() {
		name := string(m.Letter()) + tail
		cmds = append(cmds, command.New(m, name, lhs, e.codes.Wrap(m, rhs)))
	}
	return cmds
}

// ResolveAlias rewrites a leading "a" to "nvico", keeping the rest of the
// descriptor ("anoremap" becomes "nviconoremap"). Every descriptor that
// starts with "a" is rewritten, so "abbrev" expands like "nvicobbrev".
func ResolveAlias(descriptor string) string {
	if strings.HasPrefix(descriptor, "a") {
		return "nvico" + descriptor[1:]
	}
	return descriptor
}

// Split returns the leading mode-letter run of a multi-mode descriptor and
// the modes it names. ok is false for primitive descriptors: those not
// starting with "n" plus at least one of "v", "i", "c", "o", and those
// starting with the literal "nore".
func Split(descriptor string) (run string, set mode.Set, ok bool) {
	if !IsMultiMode(descriptor) {
		return "", 0, false
	}

	end := 1
	for end < len(descriptor) && strings.IndexByte(mode.SecondaryLetters, descriptor[end]) >= 0 {
		end++
	}
	run = descriptor[:end]

	// run only holds mode letters, so ParseLetters cannot fail
	set, _ = mode.ParseLetters(run)
	return run, set, true
}

// IsMultiMode reports whether the descriptor names several modes.
func IsMultiMode(descriptor string) bool {
	if len(descriptor) < 2 || descriptor[0] != 'n' || strings.HasPrefix(descriptor, "nore") {
		return false
	}
	return strings.IndexByte(mode.SecondaryLetters, descriptor[1]) >= 0
}
