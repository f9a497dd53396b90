package logging

import (
	"io"
	"sync"

	"go.uber.org/atomic"
)

// DestinationKind describes what sits behind a Destination.
type DestinationKind string

const (
	KindRollingFile DestinationKind = "rolling-file"
	KindLumberjack  DestinationKind = "lumberjack"
	KindStream      DestinationKind = "stream"
)

// FileBased reports whether the kind writes to a rotating file on disk.
func (k DestinationKind) FileBased() bool {
	return k == KindRollingFile || k == KindLumberjack
}

// Destination is a named log output held by a Host.
type Destination interface {
	io.WriteCloser
	Name() string
	Kind() DestinationKind
}

// Rotator is a Destination that can be rotated on demand.
type Rotator interface {
	Destination
	Rotate() error
}

// Compatible reports whether d is a file-based, rotation-capable destination
// that the registry may adopt as its sink.
func Compatible(d Destination) bool {
	if d == nil || !d.Kind().FileBased() {
		return false
	}
	_, ok := d.(Rotator)
	return ok
}

// streamDestination writes to an arbitrary io.Writer such as os.Stderr.
type streamDestination struct {
	name   string
	mu     sync.Mutex
	w      io.Writer
	closed atomic.Bool
}

// NewStreamDestination wraps w as a destination that cannot rotate. If w is
// an io.Closer it is closed with the destination.
func NewStreamDestination(name string, w io.Writer) Destination {
	return &streamDestination{name: name, w: w}
}

func (s *streamDestination) Name() string          { return s.name }
func (s *streamDestination) Kind() DestinationKind { return KindStream }

func (s *streamDestination) Write(p []byte) (int, error) {
	if s.closed.Load() {
		return 0, ErrDestinationClosed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *streamDestination) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// layoutDestination renders zerolog events through a Layout before handing
// them to the wrapped destination. Name, Kind and Rotate pass through.
type layoutDestination struct {
	Destination
	w *patternWriter
}

func withLayout(d Destination, l *Layout) *layoutDestination {
	return &layoutDestination{Destination: d, w: newPatternWriter(l, d)}
}

func (l *layoutDestination) Write(p []byte) (int, error) { return l.w.Write(p) }

func (l *layoutDestination) Rotate() error {
	if r, ok := l.Destination.(Rotator); ok {
		return r.Rotate()
	}
	return ErrNotRotatable
}

// Unwrap returns the destination that receives rendered lines.
func (l *layoutDestination) Unwrap() Destination { return l.Destination }
