// Package config loads modemap configuration.
//
// Configuration is read from a TOML or YAML file, chosen by extension,
// on top of built-in defaults. Environment variables prefixed with
// MODEMAP_ override file values:
//
//	MODEMAP_LOG_LEVEL   log.level
//	MODEMAP_LOG_FILE    log.file
//	MODEMAP_SINK        sink.kind
//	MODEMAP_OUTPUT      sink.output
//
// A minimal TOML file:
//
//	directives = ['NVINoremenu 20 &File.Quit "Quit" :q<CR>']
//	scripts = ["init.lua"]
//
//	[log]
//	level = "debug"
//
//	[[mapping]]
//	lhs = ["<C-S>", "<F2>"]
//	rhs = ":w<CR>"
//	descriptor = "nvinoremap"
//
//	[[menu]]
//	location = "&File"
//	label = "Save"
//	rhs = ":w<CR>"
//	priority = "10"
//	help = "Ctrl-S"
//
// A Watcher reloads the file when it changes.
package config
