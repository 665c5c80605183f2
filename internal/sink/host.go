package sink

import (
	"errors"

	"github.com/dshills/modemap/internal/command"
	"github.com/dshills/modemap/internal/keymap"
	"github.com/dshills/modemap/internal/menu"
)

// ErrUnsupported is returned by Host for commands that are neither
// mappings nor menus.
var ErrUnsupported = errors.New("unsupported command")

// Host applies commands to an in-memory model of the host: mappings go to
// a keymap.Table and menus to a menu.Tree.
type Host struct {
	keymap *keymap.Table
	menus  *menu.Tree
}

// NewHost creates a host model. Nil tables are created empty.
func NewHost(table *keymap.Table, tree *menu.Tree) *Host {
	if table == nil {
		table = keymap.NewTable()
	}
	if tree == nil {
		tree = menu.NewTree()
	}
	return &Host{keymap: table, menus: tree}
}

// Keymap returns the mapping table.
func (h *Host) Keymap() *keymap.Table {
	return h.keymap
}

// Menus returns the menu tree.
func (h *Host) Menus() *menu.Tree {
	return h.menus
}

// Apply routes cmd by family.
func (h *Host) Apply(cmd command.Primitive) error {
	switch cmd.Family {
	case command.FamilyMap:
		return h.keymap.Apply(cmd)
	case command.FamilyMenu:
		return h.menus.Apply(cmd)
	default:
		return &command.DispatchError{Command: cmd, Err: ErrUnsupported}
	}
}

// Reset clears both tables.
func (h *Host) Reset() {
	h.keymap.Reset()
	h.menus.Reset()
}
