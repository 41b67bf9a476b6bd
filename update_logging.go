package reactive

import "time"

// UpdateLogEvent describes one Update call for logging.
type UpdateLogEvent struct {
	Class     string
	Instance  string
	Requested []string
	Changed   []string
	Duration  time.Duration
	Err       error
}

// UpdateLogger records update events.
type UpdateLogger interface {
	LogUpdate(UpdateLogEvent)
}

// UpdateLoggerFunc adapts a function to UpdateLogger.
type UpdateLoggerFunc func(UpdateLogEvent)

// LogUpdate implements UpdateLogger.
func (f UpdateLoggerFunc) LogUpdate(event UpdateLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopUpdateLogger struct{}

func (noopUpdateLogger) LogUpdate(UpdateLogEvent) {}

// WithUpdateLogger attaches an update logger to the module.
func WithUpdateLogger(logger UpdateLogger) Option {
	return func(cfg *moduleConfig) {
		if logger == nil {
			cfg.logger = noopUpdateLogger{}
			return
		}
		cfg.logger = logger
	}
}
