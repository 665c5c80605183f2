package menu

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/modemap/internal/command"
	"github.com/dshills/modemap/internal/mode"
)

// Node is a menu or menu item.
type Node struct {
	Name      string
	Priority  int
	Help      string
	RHS       string
	Recursive bool
	Options   []string
	Children  []*Node

	seq uint64
}

// IsSubmenu reports whether the node holds other entries.
func (n *Node) IsSubmenu() bool {
	return len(n.Children) > 0
}

func (n *Node) effectivePriority() int {
	if n.Priority == 0 {
		return DefaultPriority
	}
	return n.Priority
}

func (n *Node) child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (n *Node) sortChildren() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.effectivePriority() != b.effectivePriority() {
			return a.effectivePriority() < b.effectivePriority()
		}
		return a.seq < b.seq
	})
}

func (n *Node) clone() *Node {
	c := *n
	c.Options = append([]string(nil), n.Options...)
	c.Children = make([]*Node, len(n.Children))
	for i, ch := range n.Children {
		c.Children[i] = ch.clone()
	}
	return &c
}

// Tree holds a menu hierarchy per mode.
type Tree struct {
	mu    sync.RWMutex
	roots map[mode.Mode]*Node
	seq   uint64
}

// NewTree creates an empty menu tree.
func NewTree() *Tree {
	return &Tree{roots: make(map[mode.Mode]*Node)}
}

// Apply adds the item described by a menu-family primitive in every mode
// the command covers.
func (t *Tree) Apply(cmd command.Primitive) error {
	if cmd.Family != command.FamilyMenu {
		return &command.DispatchError{Command: cmd, Err: ErrNotMenu}
	}
	e, err := ParseLHS(cmd.LHS)
	if err != nil {
		return &command.DispatchError{Command: cmd, Err: err}
	}
	item := Node{
		RHS:       cmd.RHS,
		Recursive: cmd.Recursive,
		Options:   cmd.Options(),
		Help:      e.Help,
	}
	for _, m := range cmd.Modes() {
		t.Add(m, e, item)
	}
	return nil
}

// Add inserts or updates the item at e.Path in mode m. Missing parent
// menus are created. item supplies the leaf's rhs, help and flags.
func (t *Tree) Add(m mode.Mode, e Entry, item Node) {
	t.mu.Lock()
	defer t.mu.Unlock()

	root, ok := t.roots[m]
	if !ok {
		root = &Node{}
		t.roots[m] = root
	}

	node := root
	for i, name := range e.Path {
		prio := 0
		if i < len(e.Priorities) {
			prio = e.Priorities[i]
		}

		next := node.child(name)
		if next == nil {
			t.seq++
			next = &Node{Name: name, seq: t.seq}
			node.Children = append(node.Children, next)
		}
		if prio != 0 {
			next.Priority = prio
		}
		node.sortChildren()
		node = next
	}

	node.RHS = item.RHS
	node.Help = item.Help
	node.Recursive = item.Recursive
	node.Options = append([]string(nil), item.Options...)
}

// Find returns a copy of the node at path in mode m. path uses the menu
// lhs syntax, for example "&File.Save\ As".
func (t *Tree) Find(m mode.Mode, path string) (*Node, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.lookup(m, splitPath(path))
	if node == nil {
		return nil, false
	}
	return node.clone(), true
}

func (t *Tree) lookup(m mode.Mode, names []string) *Node {
	node := t.roots[m]
	if node == nil || len(names) == 0 {
		return nil
	}
	for _, name := range names {
		node = node.child(name)
		if node == nil {
			return nil
		}
	}
	return node
}

// Remove deletes the node at path, with its children, from mode m.
func (t *Tree) Remove(m mode.Mode, path string) bool {
	names := splitPath(path)
	if len(names) == 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	parent := t.roots[m]
	if len(names) > 1 {
		parent = t.lookup(m, names[:len(names)-1])
	}
	if parent == nil {
		return false
	}
	last := names[len(names)-1]
	for i, c := range parent.Children {
		if c.Name == last {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return true
		}
	}
	return false
}

// Menus returns copies of the top-level menus of mode m in display order.
func (t *Tree) Menus(m mode.Mode) []*Node {
	t.mu.RLock()
	defer t.mu.RUnlock()

	root := t.roots[m]
	if root == nil {
		return nil
	}
	return root.clone().Children
}

// Modes returns the modes that have menus, in mode order.
func (t *Tree) Modes() []mode.Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var result []mode.Mode
	for _, m := range append([]mode.Mode{mode.Normal}, mode.Secondary[:]...) {
		if root, ok := t.roots[m]; ok && len(root.Children) > 0 {
			result = append(result, m)
		}
	}
	return result
}

// Reset removes every menu.
func (t *Tree) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.roots = make(map[mode.Mode]*Node)
}

// Render writes an indented listing of the menus of mode m:
//
//	500 File
//	  10 Save	Ctrl-S	:w<CR>
func (t *Tree) Render(w io.Writer, m mode.Mode) error {
	for _, n := range t.Menus(m) {
		if err := render(w, n, 0); err != nil {
			return err
		}
	}
	return nil
}

func render(w io.Writer, n *Node, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&b, "%d %s", n.effectivePriority(), Display(n.Name))
	if n.Help != "" {
		b.WriteString("\t" + n.Help)
	}
	if !n.IsSubmenu() && n.RHS != "" {
		b.WriteString("\t" + n.RHS)
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := render(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
