package mode

import "strings"

// Mode identifies one host editor mode.
type Mode uint8

const (
	// None marks a primitive command whose mode is not one of the five
	// expansion modes (for example "map" or "menu").
	None Mode = iota

	// Normal is the default command mode.
	Normal

	// Visual is characterwise, linewise or blockwise selection.
	Visual

	// Insert is text entry.
	Insert

	// CommandLine is the ":" command-line.
	CommandLine

	// OperatorPending is the state after an operator key and before its motion.
	OperatorPending
)

// Secondary lists the modes that follow Normal in an expansion, in the
// order their commands are emitted.
var Secondary = [...]Mode{Visual, Insert, CommandLine, OperatorPending}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Visual:
		return "visual"
	case Insert:
		return "insert"
	case CommandLine:
		return "cmdline"
	case OperatorPending:
		return "op-pending"
	default:
		return "none"
	}
}

// Letter returns the shorthand letter for the mode, or 0 for None.
func (m Mode) Letter() byte {
	switch m {
	case Normal:
		return 'n'
	case Visual:
		return 'v'
	case Insert:
		return 'i'
	case CommandLine:
		return 'c'
	case OperatorPending:
		return 'o'
	default:
		return 0
	}
}

// FromLetter returns the mode named by a shorthand letter.
func FromLetter(b byte) (Mode, bool) {
	switch b {
	case 'n':
		return Normal, true
	case 'v':
		return Visual, true
	case 'i':
		return Insert, true
	case 'c':
		return CommandLine, true
	case 'o':
		return OperatorPending, true
	default:
		return None, false
	}
}

// Parse returns the mode for a name as produced by String, or a single
// shorthand letter.
func Parse(name string) (Mode, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 1 {
		return FromLetter(name[0])
	}
	for _, m := range []Mode{Normal, Visual, Insert, CommandLine, OperatorPending} {
		if m.String() == name {
			return m, true
		}
	}
	return None, false
}

// ForCommand infers the mode of a primitive command from its name.
// "nnoremap", "vmenu <silent>" and "xmap" resolve to a mode; the
// multi-mode natives ("map", "noremap", "menu") resolve to None.
func ForCommand(command string) Mode {
	name := strings.ToLower(strings.TrimSpace(command))
	if name == "" || strings.HasPrefix(name, "nore") {
		return None
	}
	if name[0] == 'x' {
		return Visual
	}
	m, _ := FromLetter(name[0])
	return m
}
