// Package menu keeps the host-side menu tree that menu commands are
// applied to.
//
// A menu command's lhs has the form "[priority ]path[<Tab>help]", for
// example ".10 &File.Save\ As<Tab>Ctrl-Shift-S". Path names are separated
// by unescaped dots and the dotted priority assigns one value per level.
// Siblings are ordered by priority, then by the order they were added.
package menu
