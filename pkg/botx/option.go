package botx

import "golang.org/x/exp/slog"

// Options defines options for Bot.
type Options struct {
	// Workers is the amount of updates handled at once, at least one.
	Workers int
	Logger  *slog.Logger
}

// Option defines a function that configures Bot.
type Option func(*Options)

// WithWorkers sets the number of concurrent handlers,
// non-positive values keep the default of a single worker.
func WithWorkers(workers int) Option {
	return func(o *Options) {
		if workers > 0 {
			o.Workers = workers
		}
	}
}

// WithLogger sets the logger for worker events and send failures,
// nil keeps the logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}
