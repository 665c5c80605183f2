package builder

import (
	"regexp"
	"strings"

	"github.com/dshills/modemap/internal/keys"
)

// Help is the hint shown right-aligned after a menu label. A list also
// binds every entry as a key sequence running the item's rhs.
type Help struct {
	Items  []string
	IsList bool
}

// HelpText returns plain hint text.
func HelpText(text string) Help {
	if text == "" {
		return Help{}
	}
	return Help{Items: []string{text}}
}

// HelpList returns key sequences that are shown as the hint (first entry)
// and bound to the item's rhs.
func HelpList(keySeqs ...string) Help {
	return Help{Items: keySeqs, IsList: true}
}

// Text returns the hint that is displayed.
func (h Help) Text() string {
	if len(h.Items) == 0 {
		return ""
	}
	return h.Items[0]
}

// MenuItem declares one menu entry.
type MenuItem struct {
	// Location is the parent menu path, for example "&File" or "&Edit.&Find".
	Location string

	// RHS is run when the entry is chosen.
	RHS string

	// Label is the entry name. When empty it is taken from an rhs of the
	// form ":name<CR>".
	Label string

	// Priority is the host priority text, for example "10" or ".20".
	Priority string

	// Help is the right-aligned hint.
	Help Help

	// Descriptor defaults to the builder's menu descriptor.
	Descriptor string
}

// labelFromRHS matches a leading ex command name.
var labelFromRHS = regexp.MustCompile(`^:(\w+)(?:\s|$|(?i:<CR>))`)

// DeriveLabel returns the ex command name at the start of rhs (":w<CR>"
// yields "w"), or "".
func DeriveLabel(rhs string) string {
	m := labelFromRHS.FindStringSubmatch(rhs)
	if m == nil {
		return ""
	}
	return m[1]
}

// EscapeLabel escapes spaces for the host menu path syntax.
func EscapeLabel(label string) string {
	return strings.ReplaceAll(label, " ", `\ `)
}

// MapDescriptor converts a menu descriptor into the matching mapping
// descriptor by replacing its last "menu" (any case) with "map":
// "anoremenu" becomes "anoremap", "vmenu <silent>" becomes "vmap <silent>".
func MapDescriptor(menuDescriptor string) string {
	i := strings.LastIndex(strings.ToLower(menuDescriptor), "menu")
	if i < 0 {
		return menuDescriptor
	}
	return menuDescriptor[:i] + "map" + menuDescriptor[i+len("menu"):]
}

// NormalizeLocation makes a non-empty location end with exactly one
// unescaped separator. A location of only separators is empty.
func NormalizeLocation(location string) string {
	for strings.HasSuffix(location, ".") && !escapedAt(location, len(location)-1) {
		location = location[:len(location)-1]
	}
	if location == "" {
		return ""
	}
	return location + "."
}

// escapedAt reports whether s[i] follows an odd run of backslashes.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// menuLHS assembles priority, path, label and hint into the host menu lhs.
func menuLHS(priority, location, label, help string) string {
	if priority != "" {
		priority += " "
	}
	if help != "" {
		help = keys.Tab + help
	}
	return priority + location + label + help
}
