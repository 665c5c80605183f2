package mode

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
)

// Set is a bitset over the expansion modes.
type Set uint8

// All is the set named by the "a" alias together with Normal.
const All = Set(1<<Normal | 1<<Visual | 1<<Insert | 1<<CommandLine | 1<<OperatorPending)

// SetOf builds a set from modes. None is ignored.
func SetOf(modes ...Mode) Set {
	var s Set
	for _, m := range modes {
		s = s.With(m)
	}
	return s
}

// ParseLetters builds a set from shorthand letters in any order.
// Repeated letters are accepted.
func ParseLetters(letters string) (Set, error) {
	var s Set
	for i := 0; i < len(letters); i++ {
		m, ok := FromLetter(letters[i])
		if !ok {
			return 0, fmt.Errorf("unknown mode letter %q in %q", letters[i], letters)
		}
		s = s.With(m)
	}
	return s, nil
}

// With returns the set with m added.
func (s Set) With(m Mode) Set {
	if m == None {
		return s
	}
	return s | 1<<m
}

// Has reports whether m is in the set.
func (s Set) Has(m Mode) bool {
	return m != None && s&(1<<m) != 0
}

// Len returns the number of modes in the set.
func (s Set) Len() int {
	return bits.OnesCount8(uint8(s & All))
}

// Modes returns the modes in emission order: Normal first, then Secondary.
func (s Set) Modes() []Mode {
	modes := make([]Mode, 0, 5)
	if s.Has(Normal) {
		modes = append(modes, Normal)
	}
	for _, m := range Secondary {
		if s.Has(m) {
			modes = append(modes, m)
		}
	}
	return modes
}

// Prefix returns the canonical descriptor prefix for the set, or "" when
// the set is not a meaningful shorthand (it must contain Normal).
func (s Set) Prefix() string {
	return prefixes[s]
}

// String returns the mode letters in canonical order.
func (s Set) String() string {
	var b strings.Builder
	for _, m := range s.Modes() {
		b.WriteByte(m.Letter())
	}
	return b.String()
}

const (
	n = Set(1 << Normal)
	v = Set(1 << Visual)
	i = Set(1 << Insert)
	c = Set(1 << CommandLine)
	o = Set(1 << OperatorPending)
)

// prefixes maps every meaningful set to its canonical descriptor prefix.
var prefixes = map[Set]string{
	n:                 "n",
	n | v:             "nv",
	n | i:             "ni",
	n | c:             "nc",
	n | o:             "no",
	n | v | i:         "nvi",
	n | v | c:         "nvc",
	n | v | o:         "nvo",
	n | i | c:         "nic",
	n | i | o:         "nio",
	n | c | o:         "nco",
	n | v | i | c:     "nvic",
	n | v | i | o:     "nvio",
	n | v | c | o:     "nvco",
	n | i | c | o:     "nico",
	n | v | i | c | o: "nvico",
}

// Prefixes returns every canonical prefix, ordered by set size then value.
func Prefixes() []string {
	sets := make([]Set, 0, len(prefixes))
	for s := range prefixes {
		sets = append(sets, s)
	}
	sort.Slice(sets, func(a, b int) bool {
		if sets[a].Len() != sets[b].Len() {
			return sets[a].Len() < sets[b].Len()
		}
		return sets[a] < sets[b]
	})
	out := make([]string, len(sets))
	for k, s := range sets {
		out[k] = prefixes[s]
	}
	return out
}
