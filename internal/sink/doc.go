// Package sink provides command.Sink implementations: a recorder for
// tests and dry runs, a script writer that emits host command text, a
// host model backed by keymap and menu tables, fan-out and logging.
package sink
