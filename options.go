package arena

import "go.uber.org/zap"

type config struct {
	logger    *zap.Logger
	observers []Observer
	capacity  int
}

// Option configures an Arena.
type Option func(*config)

// WithCapacity preallocates room for n slots.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// WithLogger sets the logger for one arena instead of the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithObserver subscribes o to the arena's lifecycle events.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observers = append(c.observers, o)
	}
}
