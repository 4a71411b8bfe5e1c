// Package logger declares the logging contract shared by the tracker
// packages. Adapters live in infra/logger.
package logger

// Logger exposes logging methods for common severity levels.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Fields attaches a fixed set of structured fields to every Debugw call
// of the wrapped logger.
func Fields(l Logger, fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	return fieldLogger{Logger: l, fields: fields}
}

type fieldLogger struct {
	Logger
	fields map[string]any
}

func (f fieldLogger) Debugw(msg string, fields map[string]any) {
	merged := make(map[string]any, len(f.fields)+len(fields))
	for k, v := range f.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	f.Logger.Debugw(msg, merged)
}
