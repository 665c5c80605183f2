package mode

import (
	"sort"
	"sync"
)

// SecondaryLetters are the letters that may follow "n" in a shorthand.
const SecondaryLetters = "vico"

// Permutations returns the sorted, deduplicated arrangements of the
// characters of s produced by head removal.
//
// For inputs longer than two characters every position is tried as a head:
// the remaining characters are permuted recursively and each result is kept
// both on its own and with the head prepended. The set therefore holds the
// ordered arrangements of every non-empty subset, not only the full
// permutations. Directive names such as "NVMap" and "NVICMap" rely on the
// partial entries.
func Permutations(s string) []string {
	return sortedUnique(permute(s))
}

func permute(s string) []string {
	switch len(s) {
	case 0, 1:
		return []string{s}
	case 2:
		return []string{s[:1], s[1:], s, string([]byte{s[1], s[0]})}
	}

	var out []string
	for i := 0; i < len(s); i++ {
		head := s[i : i+1]
		rest := s[:i] + s[i+1:]
		for _, tail := range permute(rest) {
			out = append(out, tail, head+tail)
		}
	}
	return out
}

func sortedUnique(in []string) []string {
	sort.Strings(in)
	out := in[:0]
	for i, v := range in {
		if i > 0 && v == in[i-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}

var (
	catalogueOnce sync.Once
	catalogue     []string
)

// Catalogue returns Permutations(SecondaryLetters). It is computed once;
// callers must not modify the returned slice.
func Catalogue() []string {
	catalogueOnce.Do(func() {
		catalogue = Permutations(SecondaryLetters)
	})
	return catalogue
}
