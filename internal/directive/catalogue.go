package directive

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/modemap/internal/mode"
)

// Kind selects what a directive creates.
type Kind uint8

const (
	// KindMap creates key mappings.
	KindMap Kind = iota
	// KindMenu creates menu items.
	KindMenu
	// KindMenuMap creates menu items whose hint is also bound.
	KindMenuMap
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindMenu:
		return "menu"
	case KindMenuMap:
		return "menumap"
	default:
		return "unknown"
	}
}

// Directive is one entry in the directive catalogue.
type Directive struct {
	Name      string
	Letters   string
	Kind      Kind
	Recursive bool
}

// Descriptor returns the mode descriptor the directive forwards, such as
// "nvinoremap" or "amenu".
func (d Directive) Descriptor() string {
	var b strings.Builder
	b.WriteString(d.Letters)
	if !d.Recursive {
		b.WriteString("nore")
	}
	if d.Kind == KindMap {
		b.WriteString("map")
	} else {
		b.WriteString("menu")
	}
	return b.String()
}

type suffix struct {
	name      string
	kind      Kind
	recursive bool
}

var suffixes = []suffix{
	{"Map", KindMap, true},
	{"Noremap", KindMap, false},
	{"Menu", KindMenu, true},
	{"Noremenu", KindMenu, false},
	{"MenuMap", KindMenuMap, true},
	{"NoremenuMap", KindMenuMap, false},
}

var (
	catalogueOnce sync.Once
	catalogue     []Directive
	byName        map[string]Directive
)

func buildCatalogue() {
	letterSets := []string{"N", "A"}
	for _, p := range mode.Catalogue() {
		letterSets = append(letterSets, "N"+strings.ToUpper(p))
	}

	byName = make(map[string]Directive, len(letterSets)*len(suffixes))
	for _, l := range letterSets {
		for _, s := range suffixes {
			d := Directive{
				Name:      l + s.name,
				Letters:   strings.ToLower(l),
				Kind:      s.kind,
				Recursive: s.recursive,
			}
			byName[d.Name] = d
		}
	}

	catalogue = make([]Directive, 0, len(byName))
	for _, d := range byName {
		catalogue = append(catalogue, d)
	}
	sort.Slice(catalogue, func(i, j int) bool {
		return catalogue[i].Name < catalogue[j].Name
	})
}

// Catalogue returns every directive sorted by name. The slice is shared
// and must not be modified.
func Catalogue() []Directive {
	catalogueOnce.Do(buildCatalogue)
	return catalogue
}

// Lookup finds a directive by its exact name.
func Lookup(name string) (Directive, bool) {
	catalogueOnce.Do(buildCatalogue)
	d, ok := byName[name]
	return d, ok
}
