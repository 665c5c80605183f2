package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestExpand(t *testing.T) {
	out, err := execute(t, "", "expand", "Q", "gq", "nvnoremap")
	require.NoError(t, err)
	require.Equal(t, []string{
		"nnoremap Q gq",
		`vnoremap Q <C-C>gq<C-\><C-G>`,
	}, lines(out))
}

func TestExpandArgs(t *testing.T) {
	_, err := execute(t, "", "expand", "Q", "gq")
	require.Error(t, err)
}

func TestMapRecord(t *testing.T) {
	out, err := execute(t, "", "--sink", "record", "map", "-d", "ninoremap", "--also", "<F2>", "<C-S>", ":w<CR>")
	require.NoError(t, err)
	require.Equal(t, []string{
		"nnoremap <C-S> :w<CR>",
		`inoremap <C-S> <C-\><C-O>:w<CR>`,
		"nnoremap <F2> :w<CR>",
		`inoremap <F2> <C-\><C-O>:w<CR>`,
	}, lines(out))
}

func TestMapScriptHeader(t *testing.T) {
	out, err := execute(t, "", "map", "-d", "nnoremap", "Q", "gq")
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 2)
	require.True(t, strings.HasPrefix(got[0], `" modemap run `), "header = %q", got[0])
	require.Equal(t, "nnoremap Q gq", got[1])
}

func TestMapTable(t *testing.T) {
	out, err := execute(t, "", "--sink", "table", "map", "-d", "nvnoremap", "Q", "gq")
	require.NoError(t, err)
	require.Contains(t, out, "n  Q")
	require.Contains(t, out, "v  Q")
	require.Contains(t, out, "* gq")
}

func TestMenuRecord(t *testing.T) {
	out, err := execute(t, "", "--sink", "record", "menu", "&File", ":w<CR>",
		"--label", "Save", "--priority", "10", "-d", "nnoremenu")
	require.NoError(t, err)
	require.Equal(t, []string{"nnoremenu 10 &File.Save :w<CR>"}, lines(out))
}

func TestMenuHelpAndBindExclusive(t *testing.T) {
	_, err := execute(t, "", "menu", "&File", ":w<CR>", "--help", "x", "--bind", "<C-S>")
	require.Error(t, err)
}

func TestDirective(t *testing.T) {
	out, err := execute(t, "", "--sink", "record", "directive", "--mode", "nnoremenu",
		`10 &File.Save "Save file" "Ctrl-S" :w<CR>`)
	require.NoError(t, err)
	require.Equal(t, []string{`nnoremenu .10 &File.Save.Save\ file<Tab>Ctrl-S :w<CR>`}, lines(out))
}

func TestDirectiveMap(t *testing.T) {
	out, err := execute(t, "", "--sink", "record", "directive", "--map", "--mode", "nnoremap", "Q", "gq")
	require.NoError(t, err)
	require.Equal(t, []string{"nnoremap Q gq"}, lines(out))
}

func TestSourceStdin(t *testing.T) {
	script := "\" comment\n\nNVNoremap Q gq\n# another\nNNoremap Y y$\n"
	out, err := execute(t, script, "--sink", "record", "source", "-")
	require.NoError(t, err)
	require.Equal(t, []string{
		"nnoremap Q gq",
		`vnoremap Q <C-C>gq<C-\><C-G>`,
		"nnoremap Y y$",
	}, lines(out))
}

func TestSourceError(t *testing.T) {
	_, err := execute(t, "NNoremap Q gq\nBogus x y\n", "--sink", "record", "source", "-")
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}

func TestCatalogue(t *testing.T) {
	out, err := execute(t, "", "catalogue")
	require.NoError(t, err)
	require.Len(t, lines(out), 396)

	out, err = execute(t, "", "catalogue", "--kind", "menumap")
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 132)
	for _, line := range got {
		require.Contains(t, line, "MenuMap")
	}
}

func TestLua(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "init.lua")
	require.NoError(t, os.WriteFile(path, []byte(`modemap.map("Y", "y$", "nnoremap")`), 0o644))

	out, err := execute(t, "", "--sink", "record", "lua", path)
	require.NoError(t, err)
	require.Equal(t, []string{"nnoremap Y y$"}, lines(out))
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modemap.yaml")
	content := `
sink:
  kind: record
mapping:
  - lhs: Q
    rhs: gq
    descriptor: nnoremap
directives:
  - NNoremap Y y$
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := execute(t, "", "--config", path, "apply")
	require.NoError(t, err)
	require.Equal(t, []string{"nnoremap Q gq", "nnoremap Y y$"}, lines(out))
}

func TestApplyBadSink(t *testing.T) {
	_, err := execute(t, "", "--sink", "nowhere", "apply")
	require.Error(t, err)
}

func TestWatchNeedsConfig(t *testing.T) {
	_, err := execute(t, "", "watch")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	require.Contains(t, out, "modemap "+version)
}

func TestJSONSinkAndReplay(t *testing.T) {
	recorded, err := execute(t, "", "--sink", "json", "map", "-d", "nvnoremap", "Q", "gq")
	require.NoError(t, err)
	require.Len(t, lines(recorded), 2)
	require.Contains(t, recorded, `"command":"vnoremap"`)

	out, err := execute(t, recorded, "--sink", "record", "replay", "-")
	require.NoError(t, err)
	require.Equal(t, []string{
		"nnoremap Q gq",
		`vnoremap Q <C-C>gq<C-\><C-G>`,
	}, lines(out))
}

func TestReplayInvalid(t *testing.T) {
	_, err := execute(t, "nnoremap Q gq\n", "--sink", "record", "replay", "-")
	require.Error(t, err)
}

func TestPad(t *testing.T) {
	require.Equal(t, "ab  ", pad("ab", 4))
	require.Equal(t, "日本", pad("日本", 4))
	require.Equal(t, "toolong", pad("toolong", 3))
}
