package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/modemap/internal/command"
	"github.com/dshills/modemap/internal/keys"
	"github.com/dshills/modemap/internal/mode"
)

// ErrNotMapping is returned when a non-mapping command is applied.
var ErrNotMapping = errors.New("not a mapping command")

// Entry is one mapping in one mode.
type Entry struct {
	Mode mode.Mode

	// LHS is the normalised key sequence.
	LHS string

	RHS       string
	Recursive bool

	// Options holds native options such as "<silent>" and "<buffer>".
	Options []string

	seq uint64
}

// BufferLocal reports whether the mapping was made with <buffer>.
func (e Entry) BufferLocal() bool {
	for _, o := range e.Options {
		if o == "<buffer>" {
			return true
		}
	}
	return false
}

// Table holds mappings for every mode.
type Table struct {
	mu sync.RWMutex

	// entries holds mappings by mode and normalised lhs.
	entries map[mode.Mode]map[string]*Entry

	// tree indexes lhs token sequences for prefix lookup.
	tree *PrefixTree

	seq uint64
}

// NewTable creates an empty mapping table.
func NewTable() *Table {
	return &Table{
		entries: make(map[mode.Mode]map[string]*Entry),
		tree:    NewPrefixTree(),
	}
}

// Apply stores a map-family primitive. Mode-less natives such as
// "noremap" are stored in every mode they cover.
func (t *Table) Apply(cmd command.Primitive) error {
	if cmd.Family != command.FamilyMap {
		return &command.DispatchError{Command: cmd, Err: ErrNotMapping}
	}
	for _, m := range cmd.Modes() {
		err := t.Set(Entry{
			Mode:      m,
			LHS:       cmd.LHS,
			RHS:       cmd.RHS,
			Recursive: cmd.Recursive,
			Options:   cmd.Options(),
		})
		if err != nil {
			return &command.DispatchError{Command: cmd, Err: err}
		}
	}
	return nil
}

// Set adds or replaces a mapping. A replaced mapping keeps its position
// in All.
func (t *Table) Set(e Entry) error {
	tokens, err := keys.Tokenize(e.LHS)
	if err != nil {
		return fmt.Errorf("mapping lhs %q: %w", e.LHS, err)
	}
	e.LHS = keys.Join(tokens)

	t.mu.Lock()
	defer t.mu.Unlock()

	byLHS, ok := t.entries[e.Mode]
	if !ok {
		byLHS = make(map[string]*Entry)
		t.entries[e.Mode] = byLHS
	}

	if old, ok := byLHS[e.LHS]; ok {
		e.seq = old.seq
		*old = e
		return nil
	}

	t.seq++
	e.seq = t.seq
	stored := &e
	byLHS[e.LHS] = stored
	t.tree.Insert(tokens, e.Mode, stored)
	return nil
}

// Lookup returns the mapping for lhs in mode m.
func (t *Table) Lookup(m mode.Mode, lhs string) (Entry, bool) {
	norm, err := keys.Normalize(lhs)
	if err != nil {
		return Entry{}, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[m][norm]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// HasPrefix reports whether any mapping in mode m starts with lhs.
func (t *Table) HasPrefix(m mode.Mode, lhs string) bool {
	tokens, err := keys.Tokenize(lhs)
	if err != nil {
		return false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tree.HasPrefix(tokens, m)
}

// Delete removes the mapping for lhs in mode m and reports whether it
// existed.
func (t *Table) Delete(m mode.Mode, lhs string) bool {
	tokens, err := keys.Tokenize(lhs)
	if err != nil {
		return false
	}
	norm := keys.Join(tokens)

	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[m][norm]
	if !ok {
		return false
	}
	delete(t.entries[m], norm)
	t.tree.Remove(tokens, m, e)
	return true
}

// All returns the mappings of mode m in the order they were first set.
func (t *Table) All(m mode.Mode) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]Entry, 0, len(t.entries[m]))
	for _, e := range t.entries[m] {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].seq < result[j].seq
	})
	return result
}

// Len returns the number of mappings across all modes.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, byLHS := range t.entries {
		n += len(byLHS)
	}
	return n
}

// Reset removes every mapping.
func (t *Table) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = make(map[mode.Mode]map[string]*Entry)
	t.tree = NewPrefixTree()
}
