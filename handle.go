package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// sprintPool reuses builders for the printf-style helpers.
var sprintPool = sync.Pool{
	New: func() interface{} {
		return new(strings.Builder)
	},
}

// Handle is a logger bound to one identity and one destination. A nil
// *Handle is valid and discards everything.
type Handle struct {
	identity    string
	destination string
	logger      atomic.Pointer[zerolog.Logger]
}

func newHandle(identity, destination string, w io.Writer, level zerolog.Level) *Handle {
	l := zerolog.New(w).Level(level).With().Timestamp().Str(loggerFieldName, identity).Logger()
	h := &Handle{identity: identity, destination: destination}
	h.logger.Store(&l)
	return h
}

// Identity returns the name the handle was requested with.
func (h *Handle) Identity() string {
	if h == nil {
		return emptyString
	}
	return h.identity
}

// Destination returns the name of the destination the handle writes to. It
// is empty for handles issued by a host's default configuration.
func (h *Handle) Destination() string {
	if h == nil {
		return emptyString
	}
	return h.destination
}

// Level returns the minimum level the handle emits.
func (h *Handle) Level() zerolog.Level {
	if l := h.load(); l != nil {
		return l.GetLevel()
	}
	return zerolog.Disabled
}

// Enabled reports whether an event at level would be written.
func (h *Handle) Enabled(level zerolog.Level) bool {
	l := h.load()
	return l != nil && level >= l.GetLevel() && level >= zerolog.GlobalLevel()
}

// SetLevel changes the minimum level of this handle only.
func (h *Handle) SetLevel(level zerolog.Level) {
	h.swap(func(l zerolog.Logger) zerolog.Logger { return l.Level(level) })
}

// Hook installs zerolog hooks on the handle.
func (h *Handle) Hook(hooks ...zerolog.Hook) {
	h.swap(func(l zerolog.Logger) zerolog.Logger { return l.Hook(hooks...) })
}

func (h *Handle) swap(fn func(zerolog.Logger) zerolog.Logger) {
	if h == nil {
		return
	}
	for {
		old := h.logger.Load()
		if old == nil {
			return
		}
		next := fn(*old)
		if h.logger.CompareAndSwap(old, &next) {
			return
		}
	}
}

func (h *Handle) load() *zerolog.Logger {
	if h == nil {
		return nil
	}
	return h.logger.Load()
}

// newEvent starts an event at level, recording the caller skip frames above
// newEvent's caller. It returns nil when the level is disabled.
func (h *Handle) newEvent(level zerolog.Level, skip int) *zerolog.Event {
	l := h.load()
	if l == nil {
		return nil
	}
	e := l.WithLevel(level)
	if e == nil {
		return nil
	}
	return e.Caller(skip)
}

func (h *Handle) TraceWith() LogEvent {
	return newLogEvent(h.newEvent(zerolog.TraceLevel, callerSkip))
}

func (h *Handle) DebugWith() LogEvent {
	return newLogEvent(h.newEvent(zerolog.DebugLevel, callerSkip))
}

// InfoWith returns a LogEvent for structured Info-level logging.
// Example: logger.InfoWith().Str("table", name).Int("partitions", n).Msg("table opened")
func (h *Handle) InfoWith() LogEvent {
	return newLogEvent(h.newEvent(zerolog.InfoLevel, callerSkip))
}

func (h *Handle) WarnWith() LogEvent {
	return newLogEvent(h.newEvent(zerolog.WarnLevel, callerSkip))
}

// ErrorWith returns a LogEvent for structured Error-level logging.
// Example: logger.ErrorWith().Err(err).Str("op", "get").Msg("read failed")
func (h *Handle) ErrorWith() LogEvent {
	return newLogEvent(h.newEvent(zerolog.ErrorLevel, callerSkip))
}

func (h *Handle) print(level zerolog.Level, args []any) {
	e := h.newEvent(level, callerSkip+1)
	if e == nil {
		return
	}
	buf := sprintPool.Get().(*strings.Builder)
	buf.Reset()
	defer sprintPool.Put(buf)

	fmt.Fprint(buf, args...)
	e.Msg(buf.String())
}

func (h *Handle) printf(level zerolog.Level, format string, args []any) {
	if e := h.newEvent(level, callerSkip+1); e != nil {
		e.Msgf(format, args...)
	}
}

func (h *Handle) Debug(args ...any)                 { h.print(zerolog.DebugLevel, args) }
func (h *Handle) Debugf(format string, args ...any) { h.printf(zerolog.DebugLevel, format, args) }
func (h *Handle) Info(args ...any)                  { h.print(zerolog.InfoLevel, args) }
func (h *Handle) Infof(format string, args ...any)  { h.printf(zerolog.InfoLevel, format, args) }
func (h *Handle) Warn(args ...any)                  { h.print(zerolog.WarnLevel, args) }
func (h *Handle) Warnf(format string, args ...any)  { h.printf(zerolog.WarnLevel, format, args) }
func (h *Handle) Error(args ...any)                 { h.print(zerolog.ErrorLevel, args) }
func (h *Handle) Errorf(format string, args ...any) { h.printf(zerolog.ErrorLevel, format, args) }

func (h *Handle) With() LogContext {
	l := h.load()
	if l == nil {
		return noopLogContext{}
	}
	return &logContext{context: l.With(), parent: h}
}
