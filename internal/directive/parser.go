package directive

import (
	"github.com/dshills/modemap/internal/builder"
)

// Parser turns directive lines into menu items on a builder.
type Parser struct {
	builder *builder.Builder
}

// NewParser creates a parser that forwards to b.
func NewParser(b *builder.Builder) *Parser {
	return &Parser{builder: b}
}

// Builder returns the builder the parser forwards to.
func (p *Parser) Builder() *builder.Builder {
	return p.builder
}

// Item converts a parsed line into a menu item. When priority is empty
// the line's own count is used; with no priority at all no placeholders
// are added.
func Item(f Fields, mode, priority string, bind bool) builder.MenuItem {
	if priority == "" {
		priority = f.Count
	}
	if priority != "" {
		priority = Placeholders(f.MenuPath) + priority
	}

	help := builder.HelpText(f.Help)
	if bind {
		if f.Help != "" {
			help = builder.HelpList(f.Help)
		} else {
			help = builder.HelpList()
		}
	}

	descriptor := mode
	if f.Special != "" {
		descriptor += " " + f.Special
	}

	return builder.MenuItem{
		Location:   f.MenuPath,
		RHS:        f.RHS,
		Label:      f.Label,
		Priority:   priority,
		Help:       help,
		Descriptor: descriptor,
	}
}

// Dispatch parses line and creates the menu item it describes. An empty
// mode uses the builder's default menu descriptor.
func (p *Parser) Dispatch(line, mode, priority string, bind bool) error {
	if mode == "" {
		mode = p.builder.MenuDescriptor()
	}
	return p.builder.CreateMenuItem(Item(Parse(line), mode, priority, bind))
}

// Bind parses the argument text of a binding directive and creates the
// mapping.
func (p *Parser) Bind(line, mode string) error {
	special, lhs, rhs, err := ParseBinding(line)
	if err != nil {
		return err
	}
	if mode == "" {
		mode = p.builder.MapDescriptor()
	}
	if special != "" {
		mode += " " + special
	}
	return p.builder.CreateMapping([]string{lhs}, rhs, mode)
}
