// Package directive parses the free-form directive lines users type and
// turns them into mapping and menu declarations.
//
// A menu directive line has the shape
//
//	[count] [<special>...] menu.path ["label"] ["help"] rhs
//
// for example
//
//	10 <silent> &File.Save "Save file" "Ctrl-S" :w<CR>
//
// Parse splits such a line into Fields without ever failing: fields that
// cannot be read are left empty. A Parser hands the fields to a
// builder.Builder.
//
// Directive names come from the mode letter catalogue. Every letter set
// (NV, NVI, NIV, ..., plus N and A) is combined with Map, Noremap, Menu,
// Noremenu, MenuMap and NoremenuMap; a Runner executes lines such as
//
//	:NVIMap <C-S> :w<CR>
//	:10ANoremenu &File.Save "Save" :w<CR>
package directive
