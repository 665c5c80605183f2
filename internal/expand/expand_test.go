package expand

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/modemap/internal/command"
	"github.com/dshills/modemap/internal/mode"
)

func render(cmds []command.Primitive) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.String()
	}
	return out
}

func TestExpand(t *testing.T) {
	e := New(DefaultCodes())

	tests := []struct {
		name       string
		lhs        string
		rhs        string
		descriptor string
		want       []string
	}{
		{
			name:       "normal visual and insert",
			lhs:        "<C-S>",
			rhs:        ":w<CR>",
			descriptor: "nvinoremap",
			want: []string{
				"nnoremap <C-S> :w<CR>",
				"vnoremap <C-S> <C-C>:w<CR><C-\\><C-G>",
				"inoremap <C-S> <C-\\><C-O>:w<CR>",
			},
		},
		{
			name:       "insert only after normal",
			lhs:        "<F2>",
			rhs:        ":update<CR>",
			descriptor: "ninoremap",
			want: []string{
				"nnoremap <F2> :update<CR>",
				"inoremap <F2> <C-\\><C-O>:update<CR>",
			},
		},
		{
			name:       "all alias",
			lhs:        "<F5>",
			rhs:        ":make<CR>",
			descriptor: "anoremap",
			want: []string{
				"nnoremap <F5> :make<CR>",
				"vnoremap <F5> <C-C>:make<CR><C-\\><C-G>",
				"inoremap <F5> <C-\\><C-O>:make<CR>",
				"cnoremap <F5> <C-C>:make<CR><C-\\><C-G>",
				"onoremap <F5> <C-C>:make<CR><C-\\><C-G>",
			},
		},
		{
			name:       "letter order does not matter",
			lhs:        "x",
			rhs:        "y",
			descriptor: "nocmap",
			want: []string{
				"nmap x y",
				"cmap x <C-C>y<C-\\><C-G>",
				"omap x <C-C>y<C-\\><C-G>",
			},
		},
		{
			name:       "repeated letters",
			lhs:        "x",
			rhs:        "y",
			descriptor: "nvvmap",
			want: []string{
				"nmap x y",
				"vmap x <C-C>y<C-\\><C-G>",
			},
		},
		{
			name:       "native options survive",
			lhs:        "<C-S>",
			rhs:        ":w<CR>",
			descriptor: "ninoremap <silent>",
			want: []string{
				"nnoremap <silent> <C-S> :w<CR>",
				"inoremap <silent> <C-S> <C-\\><C-O>:w<CR>",
			},
		},
		{
			name:       "menu family",
			lhs:        "10 &File.Save",
			rhs:        ":w<CR>",
			descriptor: "nvnoremenu",
			want: []string{
				"nnoremenu 10 &File.Save :w<CR>",
				"vnoremenu 10 &File.Save <C-C>:w<CR><C-\\><C-G>",
			},
		},
		{
			name:       "visual primitive passes through",
			lhs:        "x",
			rhs:        "y",
			descriptor: "vnoremap",
			want:       []string{"vnoremap x y"},
		},
		{
			name:       "nore is not a mode run",
			lhs:        "x",
			rhs:        "y",
			descriptor: "noremap",
			want:       []string{"noremap x y"},
		},
		{
			name:       "bare n is primitive",
			lhs:        "x",
			rhs:        "y",
			descriptor: "n",
			want:       []string{"n x y"},
		},
		{
			name:       "normal primitive",
			lhs:        "x",
			rhs:        "y",
			descriptor: "nnoremap",
			want:       []string{"nnoremap x y"},
		},
		{
			name:       "inner n is not reinterpreted",
			lhs:        "x",
			rhs:        "y",
			descriptor: "inoremap",
			want:       []string{"inoremap x y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(e.Expand(tt.lhs, tt.rhs, tt.descriptor))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand(%q, %q, %q)\n got  %q\n want %q", tt.lhs, tt.rhs, tt.descriptor, got, tt.want)
			}
		})
	}
}

func TestExpandModes(t *testing.T) {
	e := New(DefaultCodes())

	cmds := e.Expand("x", "y", "aunmenu")
	want := []mode.Mode{mode.Normal, mode.Visual, mode.Insert, mode.CommandLine, mode.OperatorPending}
	if len(cmds) != len(want) {
		t.Fatalf("len = %d, want %d", len(cmds), len(want))
	}
	for i, c := range cmds {
		if c.Mode != want[i] {
			t.Errorf("cmds[%d].Mode = %v, want %v", i, c.Mode, want[i])
		}
		if c.Family != command.FamilyMenu {
			t.Errorf("cmds[%d].Family = %v, want menu", i, c.Family)
		}
	}

	single := e.Expand("x", "y", "vnoremap")
	if single[0].Mode != mode.Visual || single[0].Recursive {
		t.Errorf("pass-through = %#v, want non-recursive visual", single[0])
	}
}

func TestCustomCodes(t *testing.T) {
	e := New(Codes{Escape: "<Esc>", Reenter: "gv", Insert: "<C-O>"})

	got := render(e.Expand("x", "y", "nvimap"))
	want := []string{"nmap x y", "vmap x <Esc>ygv", "imap x <C-O>y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		descriptor string
		run        string
		set        string
		ok         bool
	}{
		{"nvinoremap", "nvi", "nvi", true},
		{"nocvmenu", "nocv", "nvco", true},
		{"nviconoremap", "nvico", "nvico", true},
		{"noremap", "", "", false},
		{"nmap", "", "", false},
		{"vmap", "", "", false},
		{"n", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			run, set, ok := Split(tt.descriptor)
			if run != tt.run || set.String() != tt.set || ok != tt.ok {
				t.Errorf("Split(%q) = %q, %q, %v; want %q, %q, %v",
					tt.descriptor, run, set, ok, tt.run, tt.set, tt.ok)
			}
		})
	}
}

func TestResolveAlias(t *testing.T) {
	tests := map[string]string{
		"a":          "nvico",
		"anoremap":   "nviconoremap",
		"amenu":      "nvicomenu",
		"nvinoremap": "nvinoremap",
		"abbrev":     "nvicobbrev",
	}
	for in, want := range tests {
		if got := ResolveAlias(in); got != want {
			t.Errorf("ResolveAlias(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExpandIsPure(t *testing.T) {
	e := New(DefaultCodes())
	descriptor := rapid.SampledFrom([]string{
		"nvinoremap", "anoremap", "vnoremap", "n", "nocmenu", "amenu <silent>", "noremap",
	})

	rapid.Check(t, func(t *rapid.T) {
		lhs := rapid.StringMatching(`[a-z<>CS-]{1,8}`).Draw(t, "lhs")
		rhs := rapid.StringMatching(`:[a-z]{1,6}<CR>`).Draw(t, "rhs")
		d := descriptor.Draw(t, "descriptor")

		first := e.Expand(lhs, rhs, d)
		second := e.Expand(lhs, rhs, d)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("Expand not idempotent: %q vs %q", render(first), render(second))
		}
	})
}

func TestExpandShapeProperty(t *testing.T) {
	e := New(DefaultCodes())

	rapid.Check(t, func(t *rapid.T) {
		letters := rapid.SliceOfN(rapid.SampledFrom([]byte("vico")), 1, 6).Draw(t, "letters")
		suffix := rapid.SampledFrom([]string{"map", "noremap", "menu", "noremenu"}).Draw(t, "suffix")
		descriptor := "n" + string(letters) + suffix

		cmds := e.Expand("x", "y", descriptor)
		set, _ := mode.ParseLetters("n" + string(letters))
		if len(cmds) != set.Len() {
			t.Fatalf("Expand(%q) gave %d commands, want %d", descriptor, len(cmds), set.Len())
		}
		if cmds[0].Command != "n"+suffix || cmds[0].RHS != "y" {
			t.Fatalf("first command = %q, want unwrapped normal %s", cmds[0].String(), "n"+suffix)
		}
		for i := 1; i < len(cmds); i++ {
			if cmds[i].Mode <= cmds[i-1].Mode {
				t.Fatalf("modes out of order: %v before %v", cmds[i-1].Mode, cmds[i].Mode)
			}
		}
	})
}
