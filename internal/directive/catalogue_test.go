package directive

import (
	"sort"
	"testing"
)

func TestCatalogueSize(t *testing.T) {
	// 64 permutations of "vico" plus N and A, six kinds each.
	if got, want := len(Catalogue()), (64+2)*6; got != want {
		t.Errorf("len(Catalogue()) = %d, want %d", got, want)
	}
}

func TestCatalogueSorted(t *testing.T) {
	cat := Catalogue()
	if !sort.SliceIsSorted(cat, func(i, j int) bool { return cat[i].Name < cat[j].Name }) {
		t.Error("Catalogue() is not sorted by name")
	}
	for i := 1; i < len(cat); i++ {
		if cat[i].Name == cat[i-1].Name {
			t.Errorf("duplicate directive %q", cat[i].Name)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		kind       Kind
	}{
		{"NMap", "nmap", KindMap},
		{"ANoremap", "anoremap", KindMap},
		{"NVINoremap", "nvinoremap", KindMap},
		{"NIVMenu", "nivmenu", KindMenu},
		{"NOCNoremenu", "nocnoremenu", KindMenu},
		{"AMenuMap", "amenu", KindMenuMap},
		{"NVICONoremenuMap", "nviconoremenu", KindMenuMap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.name)
			}
			if d.Descriptor() != tt.descriptor {
				t.Errorf("Descriptor() = %q, want %q", d.Descriptor(), tt.descriptor)
			}
			if d.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", d.Kind, tt.kind)
			}
		})
	}

	for _, name := range []string{"nmap", "NVVMap", "VMap", "NMenumap", ""} {
		if _, ok := Lookup(name); ok {
			t.Errorf("Lookup(%q) found, want missing", name)
		}
	}
}
