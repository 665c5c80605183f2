package builder

import (
	"fmt"

	"github.com/dshills/modemap/internal/command"
	"github.com/dshills/modemap/internal/expand"
	"github.com/dshills/modemap/internal/log"
)

// Default descriptors used when a call leaves the descriptor empty.
const (
	DefaultMapDescriptor  = "noremap"
	DefaultMenuDescriptor = "noremenu"
)

// Builder expands declarations and dispatches the resulting commands.
// A Builder assumes exclusive use of its sink during a call.
type Builder struct {
	expander *expand.Expander
	sink     command.Sink
	logger   *log.Logger

	mapDescriptor  string
	menuDescriptor string
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger. Every dispatched command is logged at debug
// level.
func WithLogger(l *log.Logger) Option {
	return func(b *Builder) {
		b.logger = log.OrNop(l)
	}
}

// WithDefaultDescriptors overrides the descriptors used when a call passes
// an empty one. Empty arguments keep the current defaults.
func WithDefaultDescriptors(mapping, menu string) Option {
	return func(b *Builder) {
		if mapping != "" {
			b.mapDescriptor = mapping
		}
		if menu != "" {
			b.menuDescriptor = menu
		}
	}
}

// New creates a builder dispatching to sink.
func New(expander *expand.Expander, sink command.Sink, opts ...Option) *Builder {
	b := &Builder{
		expander:       expander,
		sink:           sink,
		logger:         log.Nop,
		mapDescriptor:  DefaultMapDescriptor,
		menuDescriptor: DefaultMenuDescriptor,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Expander returns the expander in use.
func (b *Builder) Expander() *expand.Expander {
	return b.expander
}

// MenuDescriptor returns the descriptor used for menus when none is given.
func (b *Builder) MenuDescriptor() string {
	return b.menuDescriptor
}

// MapDescriptor returns the descriptor used for mappings when none is given.
func (b *Builder) MapDescriptor() string {
	return b.mapDescriptor
}

// Sink returns the sink commands are dispatched to.
func (b *Builder) Sink() command.Sink {
	return b.sink
}

// CreateMapping maps every lhs to rhs in the modes named by descriptor.
// Commands for the first lhs are dispatched before those of the second, and
// so on. The first sink error is returned unchanged.
func (b *Builder) CreateMapping(lhs []string, rhs, descriptor string) error {
	if descriptor == "" {
		descriptor = b.mapDescriptor
	}
	for _, l := range lhs {
		if err := b.dispatch(b.expander.Expand(l, rhs, descriptor)); err != nil {
			return err
		}
	}
	return nil
}

// CreateMenuItem adds a menu entry in the modes named by the item's
// descriptor. With a help list the key sequences are mapped first.
func (b *Builder) CreateMenuItem(item MenuItem) error {
	descriptor := item.Descriptor
	if descriptor == "" {
		descriptor = b.menuDescriptor
	}

	label := EscapeLabel(item.Label)

	if item.Help.IsList {
		if err := b.CreateMapping(item.Help.Items, item.RHS, MapDescriptor(descriptor)); err != nil {
			return err
		}
	}

	location := NormalizeLocation(item.Location)
	if label == "" {
		label = DeriveLabel(item.RHS)
	}
	if label == "" {
		return fmt.Errorf("menu %q with rhs %q: %w", item.Location, item.RHS, ErrInvalidLabel)
	}

	lhs := menuLHS(item.Priority, location, label, item.Help.Text())
	return b.dispatch(b.expander.Expand(lhs, item.RHS, descriptor))
}

func (b *Builder) dispatch(cmds []command.Primitive) error {
	for _, cmd := range cmds {
		if b.logger.Enabled(log.LevelDebug) {
			b.logger.Debug("dispatch %s", cmd.String())
		}
		if err := b.sink.Apply(cmd); err != nil {
			return err
		}
	}
	return nil
}
