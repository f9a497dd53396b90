package logging

import (
	"fmt"
	"sync"

	"github.com/Station-Manager/errors"
	"go.uber.org/atomic"
)

// State is the construction state of a Registry.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Sink is the destination a Ready registry binds loggers to.
type Sink struct {
	Name        string
	Destination Destination
	// Reused is true when the destination was found on the host rather than built.
	Reused bool
	// Policy is nil for reused destinations.
	Policy *RolloverPolicy
}

// Registry owns the lifecycle of the process sink. The sink is built on the
// first GetLogger call and published exactly once; later calls never touch
// the lock.
type Registry struct {
	cfg      SinkConfiguration
	host     Host
	resolver *ConflictResolver
	rolling  []RollingOption

	mu    sync.Mutex
	state atomic.Int32
	sink  atomic.Pointer[Sink]
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRollingOptions passes options to the RollingFile the registry builds.
// They apply after the default error handler, which forwards to the host.
func WithRollingOptions(opts ...RollingOption) RegistryOption {
	return func(r *Registry) { r.rolling = append(r.rolling, opts...) }
}

// NewRegistry returns an uninitialised registry for cfg. A nil host means
// DefaultEngine.
func NewRegistry(cfg SinkConfiguration, host Host, opts ...RegistryOption) *Registry {
	if host == nil {
		host = DefaultEngine()
	}
	r := &Registry{
		cfg:      cfg,
		host:     host,
		resolver: NewConflictResolver(host, cfg.ReusePolicy),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// GetLogger returns a handle for identity. With the custom sink disabled it
// comes straight from the host's default configuration. Otherwise the sink
// is built if needed and the handle is bound to it; a construction failure
// is returned and the next call tries again.
func (r *Registry) GetLogger(identity string) (*Handle, error) {
	const op errors.Op = "logging.Registry.GetLogger"
	if r == nil {
		return nil, errors.New(op).Msg(errMsgNilRegistry)
	}
	if !r.cfg.Enabled {
		return r.host.DefaultLogger(identity), nil
	}
	if _, err := r.ensure(); err != nil {
		return nil, err
	}
	return r.bind(identity)
}

// ensure builds and publishes the sink unless that already happened.
func (r *Registry) ensure() (*Sink, error) {
	if s := r.sink.Load(); s != nil {
		return s, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s := r.sink.Load(); s != nil {
		return s, nil
	}

	r.state.Store(int32(StateInitializing))
	published := false
	defer func() {
		if !published {
			r.state.Store(int32(StateUninitialized))
		}
	}()

	s, err := r.construct()
	if err != nil {
		return nil, err
	}
	r.sink.Store(s)
	r.state.Store(int32(StateReady))
	published = true
	return s, nil
}

func (r *Registry) construct() (*Sink, error) {
	const op errors.Op = "logging.Registry.construct"
	name := r.cfg.SinkName

	existing, found, err := r.resolver.Resolve(name)
	if err != nil {
		return nil, err
	}
	if found {
		return &Sink{Name: name, Destination: existing, Reused: true}, nil
	}

	policy, err := NewRolloverPolicy(r.cfg)
	if err != nil {
		return nil, err
	}
	layout, err := CompileLayout(r.cfg.LinePattern)
	if err != nil {
		return nil, configError("LinePattern", err)
	}

	var base Rotator
	switch r.cfg.Backend {
	case BackendLumberjack:
		base = newLumberjackFromPolicy(name, policy)
	default:
		opts := append([]RollingOption{WithErrorHandler(r.host.ReportError)}, r.rolling...)
		rf, err := NewRollingFile(name, policy, opts...)
		if err != nil {
			return nil, configError("PrimaryPath", errors.New(op).Err(err).Msg(errMsgBuildFailed))
		}
		base = rf
	}

	dest := withLayout(base, layout)
	if err := r.host.RegisterDestination(name, dest); err != nil {
		_ = dest.Close()
		return nil, configError("SinkName", fmt.Errorf("%s %w", errMsgRegisterFailed, err))
	}
	return &Sink{Name: name, Destination: dest, Policy: policy}, nil
}

// bind attaches identity to the published sink. Reaching it before
// publication is a programming error.
func (r *Registry) bind(identity string) (*Handle, error) {
	s := r.sink.Load()
	if s == nil {
		panic(ErrRegistryNotReady)
	}
	return r.host.BindLogger(identity, s.Name, r.cfg.MinLevel)
}

// State returns the current construction state.
func (r *Registry) State() State { return State(r.state.Load()) }

// Sink builds the sink if needed and returns it without binding a logger.
// A disabled registry has no sink and returns ErrSinkDisabled.
func (r *Registry) Sink() (*Sink, error) {
	if !r.cfg.Enabled {
		return nil, ErrSinkDisabled
	}
	return r.ensure()
}

// Current returns the published sink without ever starting construction.
func (r *Registry) Current() (*Sink, bool) {
	s := r.sink.Load()
	return s, s != nil
}

// Config returns the registry's copy of its configuration.
func (r *Registry) Config() SinkConfiguration { return r.cfg }

// Rotate forces a rotation of the published sink.
func (r *Registry) Rotate() error {
	s := r.sink.Load()
	if s == nil {
		return ErrRegistryNotReady
	}
	rot, ok := s.Destination.(Rotator)
	if !ok {
		return ErrNotRotatable
	}
	return rot.Rotate()
}
