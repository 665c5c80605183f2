package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/modemap/internal/builder"
	"github.com/dshills/modemap/internal/directive"
)

// ModuleName is the global the module is installed as.
const ModuleName = "modemap"

// Module exposes the builder and directive surface to scripts.
type Module struct {
	builder *builder.Builder
	runner  *directive.Runner
}

// NewModule creates a module forwarding to b.
func NewModule(b *builder.Builder) *Module {
	return &Module{builder: b, runner: directive.NewRunner(b)}
}

// Register installs the module into s.
func (m *Module) Register(s *State) {
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"map":       m.mapKeys,
		"menu":      m.menu,
		"directive": m.directive,
		"run":       m.run,
		"expand":    m.expand,
		"catalogue": m.catalogue,
	})
}

// map(lhs|{lhs...}, rhs, descriptor?) -> nil
func (m *Module) mapKeys(L *lua.LState) int {
	lhs := checkStrings(L, 1)
	rhs := L.CheckString(2)
	descriptor := L.OptString(3, "")

	if len(lhs) == 0 {
		L.ArgError(1, "lhs cannot be empty")
		return 0
	}
	if err := m.builder.CreateMapping(lhs, rhs, descriptor); err != nil {
		L.RaiseError("map: %v", err)
	}
	return 0
}

// menu{location, rhs, label?, priority?, help?, descriptor?} -> nil
// help is a string, or a list of key sequences that are also mapped.
func (m *Module) menu(L *lua.LState) int {
	tbl := L.CheckTable(1)

	item := builder.MenuItem{
		Location:   getTableString(L, tbl, "location"),
		RHS:        getTableString(L, tbl, "rhs"),
		Label:      getTableString(L, tbl, "label"),
		Priority:   getTableString(L, tbl, "priority"),
		Descriptor: getTableString(L, tbl, "descriptor"),
	}
	if item.RHS == "" {
		L.ArgError(1, "rhs cannot be empty")
		return 0
	}

	switch help := L.GetField(tbl, "help").(type) {
	case *lua.LTable:
		item.Help = builder.HelpList(tableStrings(help)...)
	case lua.LString:
		item.Help = builder.HelpText(string(help))
	}

	if err := m.builder.CreateMenuItem(item); err != nil {
		L.RaiseError("menu: %v", err)
	}
	return 0
}

// directive(line, mode?, priority?, bind?) -> nil
func (m *Module) directive(L *lua.LState) int {
	line := L.CheckString(1)
	mode := L.OptString(2, "")
	priority := optStringOrNumber(L, 3)
	bind := L.OptBool(4, false)

	if err := m.runner.Parser().Dispatch(line, mode, priority, bind); err != nil {
		L.RaiseError("directive: %v", err)
	}
	return 0
}

// run(command) -> nil
// Runs a directive command line such as ":NVIMap <F5> :make<CR>".
func (m *Module) run(L *lua.LState) int {
	if err := m.runner.Run(L.CheckString(1)); err != nil {
		L.RaiseError("run: %v", err)
	}
	return 0
}

// expand(lhs, rhs, descriptor) -> {string...}
func (m *Module) expand(L *lua.LState) int {
	cmds := m.builder.Expander().Expand(L.CheckString(1), L.CheckString(2), L.CheckString(3))

	result := L.NewTable()
	for i, c := range cmds {
		result.RawSetInt(i+1, lua.LString(c.String()))
	}
	L.Push(result)
	return 1
}

// catalogue() -> {string...}
func (m *Module) catalogue(L *lua.LState) int {
	result := L.NewTable()
	for i, d := range directive.Catalogue() {
		result.RawSetInt(i+1, lua.LString(d.Name))
	}
	L.Push(result)
	return 1
}

// checkStrings accepts a string or a list of strings at argument n.
func checkStrings(L *lua.LState, n int) []string {
	switch v := L.Get(n).(type) {
	case lua.LString:
		return []string{string(v)}
	case *lua.LTable:
		return tableStrings(v)
	default:
		L.TypeError(n, lua.LTString)
		return nil
	}
}

// tableStrings returns the string values of the array part of tbl.
func tableStrings(tbl *lua.LTable) []string {
	out := make([]string, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// getTableString gets a string field from a Lua table. Numbers are
// converted so priority = 10 works.
func getTableString(L *lua.LState, tbl *lua.LTable, field string) string {
	switch v := L.GetField(tbl, field).(type) {
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return v.String()
	}
	return ""
}

func optStringOrNumber(L *lua.LState, n int) string {
	switch v := L.Get(n).(type) {
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return v.String()
	}
	return ""
}
