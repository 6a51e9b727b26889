package vessel

import (
	"log/slog"

	"github.com/hupe1980/vessel/resource"
)

type options struct {
	logger *Logger
	rc     *resource.Controller
}

// Option configures the container constructors.
type Option func(*options)

// WithLogger sets the logger containers report allocation events to.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMemoryLimit gives the container its own budget of limit bytes.
// Zero tracks usage without enforcing a limit.
func WithMemoryLimit(limit int64) Option {
	return func(o *options) {
		o.rc = resource.NewController(resource.Config{MemoryLimitBytes: limit})
	}
}

// WithController shares an existing budget between containers.
func WithController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

func applyOptions(container string, opts []Option) options {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	o.logger = o.logger.WithContainer(container)
	return o
}

func (o options) slogger() *slog.Logger {
	return o.logger.Logger
}
