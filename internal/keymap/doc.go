// Package keymap keeps the host-side mapping table that mapping commands
// are applied to.
//
// Entries are stored per mode and keyed by the normalised key sequence of
// their lhs, so "<c-s>" and "<C-S>" name the same mapping. A prefix tree
// answers whether a partial sequence can still complete a mapping.
//
// # Usage
//
//	table := keymap.NewTable()
//	table.Apply(cmd) // a map-family command.Primitive
//
//	if e, ok := table.Lookup(mode.Insert, "<C-S>"); ok {
//	    fmt.Println(e.RHS)
//	}
//
//	if table.HasPrefix(mode.Normal, "g") {
//	    // wait for more keys
//	}
package keymap
