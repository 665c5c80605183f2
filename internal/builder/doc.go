// Package builder creates key mappings and menu entries across several
// modes from one declaration.
//
// A Builder owns an expander and the sink commands are dispatched to:
//
//	b := builder.New(expand.New(expand.DefaultCodes()), sink)
//
//	// nnoremap, inoremap for both key sequences
//	err := b.CreateMapping([]string{"<C-S>", "<F2>"}, ":w<CR>", "ninoremap")
//
//	// anoremenu .10 &File.Save<Tab><C-S> :w<CR>, plus the <C-S> mappings
//	err = b.CreateMenuItem(builder.MenuItem{
//	    Location:   "&File",
//	    RHS:        ":w<CR>",
//	    Label:      "Save",
//	    Priority:   ".10",
//	    Help:       builder.HelpList("<C-S>"),
//	    Descriptor: "anoremenu",
//	})
//
// Commands are dispatched in order and never rolled back: when the sink
// rejects one, the error is returned as is and earlier commands stay
// applied.
package builder
