package logging

// Logger is what client code logs through. Prefer the structured methods
// (InfoWith, ErrorWith, ...) over the printf helpers.
type Logger interface {
	TraceWith() LogEvent
	DebugWith() LogEvent
	InfoWith() LogEvent
	WarnWith() LogEvent
	ErrorWith() LogEvent

	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)

	// With creates a child logger whose events carry the given fields.
	// Example: reqLogger := logger.With().Str("request_id", id).Logger()
	With() LogContext
}

var _ Logger = (*Handle)(nil)
