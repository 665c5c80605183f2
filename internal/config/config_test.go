package config

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/modemap/internal/builder"
	"github.com/dshills/modemap/internal/expand"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Sink.Kind != SinkScript {
		t.Errorf("Sink.Kind = %q, want %q", cfg.Sink.Kind, SinkScript)
	}
	if cfg.Codes != expand.DefaultCodes() {
		t.Errorf("Codes = %+v, want defaults", cfg.Codes)
	}
	if cfg.Defaults.MenuDescriptor != builder.DefaultMenuDescriptor {
		t.Errorf("Defaults.MenuDescriptor = %q", cfg.Defaults.MenuDescriptor)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestMappingKeys(t *testing.T) {
	tests := []struct {
		name    string
		lhs     any
		want    []string
		wantErr bool
	}{
		{"string", "<C-S>", []string{"<C-S>"}, false},
		{"list", []any{"<C-S>", "<F2>"}, []string{"<C-S>", "<F2>"}, false},
		{"string slice", []string{"a"}, []string{"a"}, false},
		{"nil", nil, nil, false},
		{"number", int64(3), nil, true},
		{"mixed list", []any{"a", int64(1)}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mapping{LHS: tt.lhs}.Keys()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Keys() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidValue) {
				t.Errorf("Keys() error = %v, want ErrInvalidValue", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keys() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMenuItem(t *testing.T) {
	m := Menu{Location: "&File", RHS: ":w<CR>", Label: "Save", Priority: "10", Help: "Ctrl-S"}
	item, err := m.Item()
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	want := builder.MenuItem{
		Location: "&File",
		RHS:      ":w<CR>",
		Label:    "Save",
		Priority: "10",
		Help:     builder.HelpText("Ctrl-S"),
	}
	if !reflect.DeepEqual(item, want) {
		t.Errorf("Item() = %+v, want %+v", item, want)
	}

	m.Help = []any{"<C-S>", "<F2>"}
	item, err = m.Item()
	if err != nil {
		t.Fatalf("Item() error = %v", err)
	}
	if !item.Help.IsList || !reflect.DeepEqual(item.Help.Items, []string{"<C-S>", "<F2>"}) {
		t.Errorf("Item().Help = %+v, want list", item.Help)
	}
}

func TestResolve(t *testing.T) {
	cfg := Default()
	if got := cfg.Resolve("init.lua"); got != "init.lua" {
		t.Errorf("Resolve without file = %q", got)
	}

	cfg.path = filepath.Join("/etc", "modemap", "config.toml")
	if got, want := cfg.Resolve("init.lua"), filepath.Join("/etc", "modemap", "init.lua"); got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
	if got := cfg.Resolve("/abs/x.lua"); got != "/abs/x.lua" {
		t.Errorf("Resolve(abs) = %q", got)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Sink.Kind = "printer"
	cfg.Mappings = []Mapping{
		{LHS: "<C-S>", RHS: ":w<CR>"},
		{LHS: nil, RHS: ""},
		{LHS: []any{"a", ""}, RHS: "x"},
	}
	cfg.Menus = []Menu{{Location: "&File", Help: 42}}
	cfg.Scripts = []string{""}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want errors")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Validate() error %T does not contain *ValidationError", err)
	}

	msg := err.Error()
	for _, path := range []string{
		"log.level",
		"sink.kind",
		"mapping[1].lhs",
		"mapping[1].rhs",
		"mapping[2].lhs",
		"menu[0].rhs",
		"menu[0].help",
		"scripts[0]",
	} {
		if !strings.Contains(msg, path+":") {
			t.Errorf("Validate() error missing %s:\n%s", path, msg)
		}
	}
	if strings.Contains(msg, "mapping[0]") {
		t.Errorf("valid mapping reported:\n%s", msg)
	}
}
