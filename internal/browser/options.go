package browser

import (
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

type options struct {
	logger     *zap.Logger
	runOptions *playwright.RunOptions
}

// Option customizes Acquire.
type Option func(*options)

// WithLogger attaches a logger; sessions log with a session_id field.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRunOptions passes driver options such as a custom driver directory.
func WithRunOptions(ro *playwright.RunOptions) Option {
	return func(o *options) { o.runOptions = ro }
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
