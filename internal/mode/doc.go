// Package mode describes the host editor modes a primitive command can
// target and the shorthand letter sets used to name several of them at
// once.
//
// # Modes
//
// Five modes take part in multi-mode expansion:
//
//	n  Normal
//	v  Visual
//	i  Insert
//	c  CommandLine
//	o  OperatorPending
//
// A Set is a bitset over those modes. Every meaningful combination (normal
// plus at least one other mode, or normal alone) has a canonical letter
// prefix, always starting with "n" and following the n, v, i, c, o order:
//
//	mode.SetOf(mode.Normal, mode.Insert).Prefix() // "ni"
//
// # Permutations
//
// Shorthand letters may be written in any order ("nvi", "niv"). The
// catalogue of accepted orderings is produced by Permutations, which keeps
// partial arrangements alongside the full permutations:
//
//	mode.Permutations("abc") // a ab abc ac acb b ba bac bc bca c ca cab cb cba
//
// Catalogue returns the memoised result for "vico".
package mode
