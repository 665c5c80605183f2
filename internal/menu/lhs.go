package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultPriority is used for path levels without an explicit priority.
const DefaultPriority = 500

var (
	// ErrEmptyPath is returned for a menu lhs without a path.
	ErrEmptyPath = errors.New("empty menu path")

	// ErrNotMenu is returned when a non-menu command is applied.
	ErrNotMenu = errors.New("not a menu command")
)

// Entry is a parsed menu lhs such as ".10 &File.Save<Tab>Ctrl-S".
type Entry struct {
	// Path holds the unescaped names from the top menu down to the item.
	Path []string

	// Priorities aligns with Path; 0 means not given.
	Priorities []int

	Help string
}

// ParseLHS parses "[priority ]path[<Tab>help]". Path separators are
// unescaped dots; "\." and "\ " are kept inside a name.
func ParseLHS(lhs string) (Entry, error) {
	var e Entry
	lhs = strings.TrimSpace(lhs)

	prio := ""
	if i := strings.IndexAny(lhs, " \t"); i > 0 && isPriority(lhs[:i]) {
		prio, lhs = lhs[:i], strings.TrimLeft(lhs[i:], " \t")
	}

	if i := indexFold(lhs, "<Tab>"); i >= 0 {
		lhs, e.Help = lhs[:i], lhs[i+len("<Tab>"):]
	}

	e.Path = splitPath(lhs)
	if len(e.Path) == 0 {
		return Entry{}, fmt.Errorf("menu lhs %q: %w", lhs, ErrEmptyPath)
	}

	e.Priorities = make([]int, len(e.Path))
	if prio != "" {
		for i, p := range strings.Split(prio, ".") {
			if i >= len(e.Priorities) {
				break
			}
			if p == "" {
				continue
			}
			n, err := strconv.Atoi(p)
			if err != nil {
				return Entry{}, fmt.Errorf("menu priority %q: %w", prio, err)
			}
			e.Priorities[i] = n
		}
	}
	return e, nil
}

func isPriority(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '.' && (s[i] < '0' || s[i] > '9') {
			return false
		}
	}
	return s != ""
}

func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}

// splitPath splits a menu path on unescaped dots and unescapes each name.
func splitPath(path string) []string {
	var (
		parts []string
		b     strings.Builder
	)
	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case c == '\\' && i+1 < len(path):
			i++
			b.WriteByte(path[i])
		case c == '.':
			parts = append(parts, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	parts = append(parts, b.String())

	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Display strips the accelerator marker from a menu name: "&File" becomes
// "File" and "&&" becomes "&".
func Display(name string) string {
	if !strings.Contains(name, "&") {
		return name
	}
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if name[i] == '&' {
			if i+1 < len(name) && name[i+1] == '&' {
				b.WriteByte('&')
				i++
			}
			continue
		}
		b.WriteByte(name[i])
	}
	return b.String()
}
