package section

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/notorious-go/sync/semaphore"
)

type options struct {
	timeout time.Duration
	logger  zerolog.Logger
}

// Option configures a Guard.
type Option func(*options)

// WithTimeout bounds how long RunOnce waits for the semaphore. A negative
// timeout waits forever and semaphore.Now does not wait at all.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	o := options{
		timeout: semaphore.Forever,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
