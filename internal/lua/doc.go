// Package lua runs user scripts that declare mappings and menus.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. The modemap module is available as a global:
//
//	modemap.map({"<C-S>", "<F2>"}, ":w<CR>", "nvinoremap")
//	modemap.menu{location = "&File", label = "Save", rhs = ":w<CR>",
//	             priority = 10, help = {"<C-S>"}}
//	modemap.directive('&File.Quit "Quit" :q<CR>', "nnoremenu", "20")
//	modemap.run(":NVIMap <F5> :make<CR>")
//	local cmds = modemap.expand("<C-S>", ":w<CR>", "ninoremap")
//	local names = modemap.catalogue()
//
// Errors raised by the module surface as Go errors from DoFile and
// DoString.
package lua
