// Package command defines the primitive host commands produced by
// multi-mode expansion and the Sink that receives them.
package command

import (
	"fmt"
	"strings"

	"github.com/dshills/modemap/internal/mode"
)

// Family is the kind of host primitive a command belongs to.
type Family uint8

const (
	// FamilyOther is any command that is neither a mapping nor a menu.
	FamilyOther Family = iota

	// FamilyMap covers the map/noremap commands.
	FamilyMap

	// FamilyMenu covers the menu/noremenu commands.
	FamilyMenu
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyMap:
		return "map"
	case FamilyMenu:
		return "menu"
	default:
		return "other"
	}
}

// Primitive is one mode-specific command understood by the host.
type Primitive struct {
	// Mode is the mode the command targets; None for pass-through
	// commands whose name does not start with a mode letter.
	Mode mode.Mode

	// Command is the command name with any native options, for example
	// "inoremap <silent>".
	Command string

	// LHS is the key sequence, or priority and menu path for menus.
	LHS string

	// RHS is the replacement, already wrapped in transition codes.
	RHS string

	// Family is derived from Command.
	Family Family

	// Recursive is false for the "nore" variants.
	Recursive bool

	// BufferLocal is true when Command carries "<buffer>".
	BufferLocal bool
}

// New builds a primitive, deriving Family, Recursive and BufferLocal from
// the command text.
func New(m mode.Mode, command, lhs, rhs string) Primitive {
	lower := strings.ToLower(command)
	name := lower
	if i := strings.IndexAny(name, " \t<"); i >= 0 {
		name = name[:i]
	}

	family := FamilyOther
	switch {
	case strings.Contains(name, "menu"):
		family = FamilyMenu
	case strings.HasSuffix(name, "map"):
		family = FamilyMap
	}

	return Primitive{
		Mode:        m,
		Command:     command,
		LHS:         lhs,
		RHS:         rhs,
		Family:      family,
		Recursive:   !strings.Contains(name, "nore"),
		BufferLocal: strings.Contains(lower, "<buffer>"),
	}
}

// Name returns the command name without native options.
func (p Primitive) Name() string {
	name := p.Command
	if i := strings.IndexAny(name, " \t<"); i >= 0 {
		name = name[:i]
	}
	return name
}

// Options returns the native options that follow the command name, such
// as "<silent>" or "<buffer>".
func (p Primitive) Options() []string {
	rest := p.Command[len(p.Name()):]
	var opts []string
	for {
		rest = strings.TrimLeft(rest, " \t")
		if !strings.HasPrefix(rest, "<") {
			return opts
		}
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return opts
		}
		opts = append(opts, rest[:end+1])
		rest = rest[end+1:]
	}
}

// String renders the command as host text.
func (p Primitive) String() string {
	return p.Command + " " + p.LHS + " " + p.RHS
}

// GoString implements fmt.GoStringer.
func (p Primitive) GoString() string {
	return fmt.Sprintf("command.Primitive{%s %q}", p.Mode, p.String())
}

// nativeModes are the modes covered by the mode-less natives "map",
// "noremap", "menu" and "noremenu".
var nativeModes = []mode.Mode{mode.Normal, mode.Visual, mode.OperatorPending}

// Modes returns the modes the command applies to on the host.
func (p Primitive) Modes() []mode.Mode {
	if p.Mode != mode.None {
		return []mode.Mode{p.Mode}
	}
	if p.Family == FamilyOther {
		return nil
	}
	return append([]mode.Mode(nil), nativeModes...)
}
