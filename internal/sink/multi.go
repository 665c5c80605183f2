package sink

import (
	"github.com/dshills/modemap/internal/command"
	"github.com/dshills/modemap/internal/log"
)

type multi []command.Sink

// Multi sends every command to each sink in order and stops at the first
// error.
func Multi(sinks ...command.Sink) command.Sink {
	return multi(append([]command.Sink(nil), sinks...))
}

func (m multi) Apply(cmd command.Primitive) error {
	for _, s := range m {
		if err := s.Apply(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Logging logs every command before passing it on.
type Logging struct {
	next   command.Sink
	logger *log.Logger
}

// NewLogging wraps next. A nil logger discards output.
func NewLogging(next command.Sink, logger *log.Logger) *Logging {
	return &Logging{
		next:   next,
		logger: log.OrNop(logger).WithComponent("sink"),
	}
}

// Apply logs cmd at debug level and any failure at error level.
func (l *Logging) Apply(cmd command.Primitive) error {
	fields := map[string]any{
		"mode":   cmd.Mode.String(),
		"family": cmd.Family.String(),
	}
	l.logger.WithFields(fields).Debug("apply %s", cmd.String())

	if err := l.next.Apply(cmd); err != nil {
		l.logger.WithFields(fields).Error("apply %s: %v", cmd.Name(), err)
		return err
	}
	return nil
}
