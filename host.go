package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

//go:generate mockgen -source=host.go -destination=mock_host_test.go -package=logging

// Host is the logging backend the sink registers with: a registry of named
// destinations and of loggers bound to them.
type Host interface {
	// FindDestination returns the destination registered under name.
	FindDestination(name string) (Destination, bool)
	// RegisterDestination adds d under name. Registering a taken name fails.
	RegisterDestination(name string, d Destination) error
	// BindLogger returns a handle for identity writing to the named
	// destination at level. Binding the same identity twice is a no-op.
	BindLogger(identity, destination string, level zerolog.Level) (*Handle, error)
	// DefaultLogger resolves identity through the host's own configuration.
	DefaultLogger(identity string) *Handle
	// ReportError is the host's channel for failures inside logging itself.
	ReportError(err error)
}

var _ Host = (*Engine)(nil)

// Engine is a Host built on zerolog.
type Engine struct {
	mu           sync.RWMutex
	destinations map[string]Destination
	bindings     map[string]*Handle
	defaults     map[string]*Handle

	defaultOut   io.Writer
	defaultLevel zerolog.Level
	status       zerolog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithDefaultWriter sets where DefaultLogger handles write. Defaults to a
// console writer on stderr.
func WithDefaultWriter(w io.Writer) EngineOption {
	return func(e *Engine) { e.defaultOut = w }
}

// WithDefaultLevel sets the level of DefaultLogger handles.
func WithDefaultLevel(level zerolog.Level) EngineOption {
	return func(e *Engine) { e.defaultLevel = level }
}

// WithStatusWriter sets where ReportError writes.
func WithStatusWriter(w io.Writer) EngineOption {
	return func(e *Engine) { e.status = zerolog.New(w).With().Timestamp().Logger() }
}

// NewEngine returns an empty Engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		destinations: make(map[string]Destination),
		bindings:     make(map[string]*Handle),
		defaults:     make(map[string]*Handle),
		defaultOut:   zerolog.ConsoleWriter{Out: os.Stderr},
		defaultLevel: zerolog.InfoLevel,
		status: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Str(loggerFieldName, "logging.status").Logger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// DefaultEngine returns the process-wide Engine.
func DefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine()
	})
	return defaultEngine
}

func (e *Engine) FindDestination(name string) (Destination, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	d, ok := e.destinations[name]
	return d, ok
}

func (e *Engine) RegisterDestination(name string, d Destination) error {
	if name == emptyString || d == nil {
		return errors.New("logging: invalid destination registration")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.destinations[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDestination, name)
	}
	e.destinations[name] = d
	return nil
}

func (e *Engine) BindLogger(identity, destination string, level zerolog.Level) (*Handle, error) {
	e.mu.RLock()
	h, ok := e.bindings[identity]
	e.mu.RUnlock()
	if ok && h.destination == destination {
		return h, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if h, ok := e.bindings[identity]; ok && h.destination == destination {
		return h, nil
	}
	d, ok := e.destinations[destination]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDestination, destination)
	}
	h = newHandle(identity, destination, d, level)
	e.bindings[identity] = h
	return h, nil
}

func (e *Engine) DefaultLogger(identity string) *Handle {
	e.mu.RLock()
	h, ok := e.defaults[identity]
	e.mu.RUnlock()
	if ok {
		return h
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if h, ok := e.defaults[identity]; ok {
		return h
	}
	h = newHandle(identity, emptyString, e.defaultOut, e.defaultLevel)
	e.defaults[identity] = h
	return h
}

func (e *Engine) ReportError(err error) {
	if err == nil {
		return
	}
	e.status.Error().Err(err).Msg("logging internal failure")
}

// Destinations lists the registered destination names in lexicographic order.
func (e *Engine) Destinations() []string {
	e.mu.RLock()
	names := make([]string, 0, len(e.destinations))
	for n := range e.destinations {
		names = append(names, n)
	}
	e.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Close closes every registered destination. Handles bound to them fail
// their writes afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	var errs []error
	for _, d := range e.destinations {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
