package lua

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/modemap/internal/builder"
	"github.com/dshills/modemap/internal/command"
	"github.com/dshills/modemap/internal/expand"
)

type recorder struct {
	lines []string
}

func (r *recorder) Apply(cmd command.Primitive) error {
	r.lines = append(r.lines, cmd.String())
	return nil
}

func newTestState(t *testing.T) (*State, *recorder, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	rec := &recorder{}
	s := NewState(WithOutput(&out))
	t.Cleanup(func() { _ = s.Close() })

	NewModule(builder.New(expand.New(expand.DefaultCodes()), rec)).Register(s)
	return s, rec, &out
}

func TestSandbox(t *testing.T) {
	s, _, _ := newTestState(t)

	for _, name := range []string{"io", "os", "debug", "package", "dofile", "loadfile", "load", "require"} {
		if v := s.GetGlobal(name); v != lua.LNil {
			t.Errorf("global %s = %v, want nil", name, v)
		}
	}
	for _, name := range []string{"string", "table", "math", "pairs", ModuleName} {
		if v := s.GetGlobal(name); v == lua.LNil {
			t.Errorf("global %s missing", name)
		}
	}
}

func TestPrint(t *testing.T) {
	s, _, out := newTestState(t)

	if err := s.DoString(context.Background(), `print("a", 1, true)`); err != nil {
		t.Fatalf("DoString error = %v", err)
	}
	if out.String() != "a\t1\ttrue\n" {
		t.Errorf("print output = %q", out.String())
	}
}

func TestMap(t *testing.T) {
	s, rec, _ := newTestState(t)

	code := `
modemap.map("<C-S>", ":w<CR>", "ninoremap")
modemap.map({"<F2>", "<F3>"}, ":q<CR>")
`
	if err := s.DoString(context.Background(), code); err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	want := []string{
		"nnoremap <C-S> :w<CR>",
		`inoremap <C-S> <C-\><C-O>:w<CR>`,
		"noremap <F2> :q<CR>",
		"noremap <F3> :q<CR>",
	}
	if !reflect.DeepEqual(rec.lines, want) {
		t.Errorf("dispatched %q, want %q", rec.lines, want)
	}
}

func TestMapErrors(t *testing.T) {
	s, _, _ := newTestState(t)

	tests := []string{
		`modemap.map({}, "x")`,
		`modemap.map(42, "x")`,
		`modemap.map("a")`,
	}
	for _, code := range tests {
		if err := s.DoString(context.Background(), code); err == nil {
			t.Errorf("DoString(%q) error = nil", code)
		}
	}
}

func TestMenu(t *testing.T) {
	s, rec, _ := newTestState(t)

	code := `
modemap.menu{location = "&File", label = "Save file", rhs = ":w<CR>",
             priority = 10, help = "Ctrl-S", descriptor = "nnoremenu"}
modemap.menu{location = "&Build", rhs = ":make<CR>", help = {"<F7>"},
             descriptor = "nnoremenu"}
`
	if err := s.DoString(context.Background(), code); err != nil {
		t.Fatalf("DoString error = %v", err)
	}

	want := []string{
		`nnoremenu 10 &File.Save\ file<Tab>Ctrl-S :w<CR>`,
		"nnoremap <F7> :make<CR>",
		"nnoremenu &Build.make<Tab><F7> :make<CR>",
	}
	if !reflect.DeepEqual(rec.lines, want) {
		t.Errorf("dispatched %q, want %q", rec.lines, want)
	}
}

func TestMenuInvalidLabel(t *testing.T) {
	s, _, _ := newTestState(t)

	err := s.DoString(context.Background(), `modemap.menu{location = "&File", rhs = "somecommand"}`)
	if err == nil {
		t.Fatal("DoString error = nil")
	}
	if !strings.Contains(err.Error(), builder.ErrInvalidLabel.Error()) {
		t.Errorf("error %q does not mention the invalid label", err)
	}
}

func TestDirective(t *testing.T) {
	s, rec, _ := newTestState(t)

	code := `
modemap.directive('&File.Save "Save" "Ctrl-S" :w<CR>', "nnoremenu", 10)
modemap.run(":NNoremap <F5> :make<CR>")
`
	if err := s.DoString(context.Background(), code); err != nil {
		t.Fatalf("DoString error = %v", err)
	}
	want := []string{
		"nnoremenu .10 &File.Save.Save<Tab>Ctrl-S :w<CR>",
		"nnoremap <F5> :make<CR>",
	}
	if !reflect.DeepEqual(rec.lines, want) {
		t.Errorf("dispatched %q, want %q", rec.lines, want)
	}

	if err := s.DoString(context.Background(), `modemap.run("Bogus x y")`); err == nil {
		t.Error("run(Bogus) error = nil")
	}
}

func TestExpandAndCatalogue(t *testing.T) {
	s, rec, _ := newTestState(t)

	code := `
local cmds = modemap.expand("<C-S>", ":w<CR>", "anoremap")
assert(#cmds == 5, "expand returned " .. #cmds)
assert(cmds[1] == "nnoremap <C-S> :w<CR>", cmds[1])
names = modemap.catalogue()
`
	if err := s.DoString(context.Background(), code); err != nil {
		t.Fatalf("DoString error = %v", err)
	}
	if len(rec.lines) != 0 {
		t.Errorf("expand dispatched %q", rec.lines)
	}

	names, ok := s.GetGlobal("names").(*lua.LTable)
	if !ok {
		t.Fatal("names is not a table")
	}
	if names.Len() != 396 {
		t.Errorf("catalogue length = %d, want 396", names.Len())
	}
}

func TestDoFile(t *testing.T) {
	s, rec, _ := newTestState(t)

	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(`modemap.map("Y", "y$", "nnoremap")`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.DoFile(context.Background(), path); err != nil {
		t.Fatalf("DoFile error = %v", err)
	}
	if len(rec.lines) != 1 || rec.lines[0] != "nnoremap Y y$" {
		t.Errorf("dispatched %q", rec.lines)
	}

	if err := s.DoFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("DoFile(missing) error = nil")
	}
}

func TestContextCancel(t *testing.T) {
	s, _, _ := newTestState(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := s.DoString(ctx, `while true do end`); err == nil {
		t.Error("DoString(infinite loop) error = nil, want cancellation")
	}
}

func TestClosed(t *testing.T) {
	s := NewState()
	if err := s.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}
	if !s.IsClosed() {
		t.Error("IsClosed() = false")
	}
	if err := s.DoString(context.Background(), "x = 1"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString error = %v, want ErrStateClosed", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close error = %v", err)
	}
	if v := s.GetGlobal("x"); v != lua.LNil {
		t.Errorf("GetGlobal on closed state = %v", v)
	}
}
