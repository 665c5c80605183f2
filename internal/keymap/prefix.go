package keymap

import (
	"github.com/dshills/modemap/internal/keys"
	"github.com/dshills/modemap/internal/mode"
)

// PrefixTree indexes mappings by key token for prefix lookup.
type PrefixTree struct {
	root *prefixNode
}

type prefixNode struct {
	children map[string]*prefixNode
	entries  []prefixEntry
}

type prefixEntry struct {
	Mode  mode.Mode
	Entry *Entry
}

// NewPrefixTree creates a new prefix tree.
func NewPrefixTree() *PrefixTree {
	return &PrefixTree{root: newPrefixNode()}
}

func newPrefixNode() *prefixNode {
	return &prefixNode{children: make(map[string]*prefixNode)}
}

// Insert adds an entry at the node for tokens.
func (t *PrefixTree) Insert(tokens []keys.Token, m mode.Mode, e *Entry) {
	node := t.root
	for _, tok := range tokens {
		child, ok := node.children[tok.Text]
		if !ok {
			child = newPrefixNode()
			node.children[tok.Text] = child
		}
		node = child
	}
	node.entries = append(node.entries, prefixEntry{Mode: m, Entry: e})
}

// Remove deletes entry e for mode m and prunes empty nodes.
func (t *PrefixTree) Remove(tokens []keys.Token, m mode.Mode, e *Entry) {
	if len(tokens) == 0 {
		return
	}

	path := make([]*prefixNode, 0, len(tokens)+1)
	path = append(path, t.root)
	node := t.root
	for _, tok := range tokens {
		child, ok := node.children[tok.Text]
		if !ok {
			return
		}
		path = append(path, child)
		node = child
	}

	filtered := node.entries[:0]
	for _, pe := range node.entries {
		if !(pe.Mode == m && pe.Entry == e) {
			filtered = append(filtered, pe)
		}
	}
	node.entries = filtered

	// Prune from leaf to root.
	for i := len(path) - 1; i > 0; i-- {
		current := path[i]
		if len(current.entries) > 0 || len(current.children) > 0 {
			break
		}
		delete(path[i-1].children, tokens[i-1].Text)
	}
}

// Lookup returns the entries stored exactly at tokens for mode m.
func (t *PrefixTree) Lookup(tokens []keys.Token, m mode.Mode) []*Entry {
	node := t.find(tokens)
	if node == nil {
		return nil
	}
	var result []*Entry
	for _, pe := range node.entries {
		if pe.Mode == m {
			result = append(result, pe.Entry)
		}
	}
	return result
}

// HasPrefix reports whether an entry for mode m lives at or below tokens.
func (t *PrefixTree) HasPrefix(tokens []keys.Token, m mode.Mode) bool {
	node := t.find(tokens)
	if node == nil {
		return false
	}
	return hasMode(node, m)
}

func (t *PrefixTree) find(tokens []keys.Token) *prefixNode {
	node := t.root
	for _, tok := range tokens {
		child, ok := node.children[tok.Text]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

func hasMode(node *prefixNode, m mode.Mode) bool {
	for _, pe := range node.entries {
		if pe.Mode == m {
			return true
		}
	}
	for _, child := range node.children {
		if hasMode(child, m) {
			return true
		}
	}
	return false
}
