package logging

import (
	"reflect"
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/utils"
	"go.uber.org/atomic"
)

// Factory is the entry point client code asks for loggers. It hides whether
// loggers come from the custom sink or from the host's default setup.
type Factory struct {
	registry *Registry
}

// NewFactory returns a factory over a fresh Registry for cfg.
func NewFactory(cfg SinkConfiguration, host Host, opts ...RegistryOption) *Factory {
	return &Factory{registry: NewRegistry(cfg, host, opts...)}
}

// Registry returns the registry backing f.
func (f *Factory) Registry() *Registry { return f.registry }

// GetLogger returns the logger for identity. An empty identity becomes the
// executable name.
func (f *Factory) GetLogger(identity string) (*Handle, error) {
	const op errors.Op = "logging.Factory.GetLogger"
	if f == nil || f.registry == nil {
		return nil, errors.New(op).Msg(errMsgNilRegistry)
	}
	return f.registry.GetLogger(resolveIdentity(identity))
}

// MustGetLogger is GetLogger for package initialisers. It panics on error.
func (f *Factory) MustGetLogger(identity string) *Handle {
	h, err := f.GetLogger(identity)
	if err != nil {
		panic(err)
	}
	return h
}

// ForType returns the logger named after v's type, "pkg/path.Type".
func (f *Factory) ForType(v any) (*Handle, error) {
	return f.GetLogger(typeIdentity(v))
}

func typeIdentity(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch {
	case t == nil:
		return emptyString
	case t.PkgPath() == emptyString:
		return t.String()
	default:
		return t.PkgPath() + "." + t.Name()
	}
}

func resolveIdentity(identity string) string {
	if identity != emptyString {
		return identity
	}
	name, err := utils.ExecName(true)
	if err != nil || name == emptyString {
		return fallbackIdentity
	}
	return name
}

var (
	process   atomic.Pointer[Factory]
	installMu sync.Mutex
)

// Install makes a factory for cfg the process factory. It fails with
// ErrAlreadyInstalled once one exists, including the lazily created default.
func Install(cfg SinkConfiguration, host Host, opts ...RegistryOption) (*Factory, error) {
	installMu.Lock()
	defer installMu.Unlock()

	if process.Load() != nil {
		return nil, ErrAlreadyInstalled
	}
	f := NewFactory(cfg, host, opts...)
	process.Store(f)
	return f, nil
}

// Default returns the process factory, installing one with DefaultConfig on
// DefaultEngine if none exists yet.
func Default() *Factory {
	if f := process.Load(); f != nil {
		return f
	}

	installMu.Lock()
	defer installMu.Unlock()

	if f := process.Load(); f != nil {
		return f
	}
	f := NewFactory(DefaultConfig(), DefaultEngine())
	process.Store(f)
	return f
}

// GetLogger returns a logger from the process factory.
func GetLogger(identity string) (*Handle, error) {
	return Default().GetLogger(identity)
}
