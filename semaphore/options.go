package semaphore

import "github.com/rs/zerolog"

type options struct {
	factory Factory
	logger  zerolog.Logger
	name    string
}

// Option configures a Semaphore created by New.
type Option func(*options)

// WithPrimitive selects the platform primitive backing the semaphore. The
// default is NewCounter.
func WithPrimitive(f Factory) Option {
	return func(o *options) {
		if f != nil {
			o.factory = f
		}
	}
}

// WithLogger sets the logger used for debug diagnostics. The default logger
// discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithName labels the semaphore in log events and in String.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func newOptions(opts []Option) options {
	o := options{
		factory: NewCounter,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
