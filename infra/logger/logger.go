package logger

import corelogger "github.com/kilianp07/predtrack/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// Options selects the level and output format of loggers built by New.
type Options struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

var defaults = Options{Level: "info"}

// Configure sets the options used by subsequent calls to New. Unknown
// levels fall back to info.
func Configure(o Options) {
	if o.Level == "" {
		o.Level = "info"
	}
	defaults = o
}

// New returns a Logger for the given component using the configured
// options. With no format configured the APP_ENV variable picks between
// console and JSON output.
func New(component string) Logger {
	return NewWithOptions(component, defaults)
}
