package logging

import (
	"errors"
	"fmt"
)

var (
	// ErrRegistryNotReady means a logger was bound before the sink was
	// published. It indicates a bug in this package and is raised as a panic.
	ErrRegistryNotReady = errors.New("logging: registry not ready")

	// ErrIncompatibleDestination is returned under ReuseCompatible when the
	// host already holds a destination of the sink's name that is not a
	// rotating file.
	ErrIncompatibleDestination = errors.New("logging: incompatible destination")

	// ErrDuplicateDestination indicates a second registration under one name.
	ErrDuplicateDestination = errors.New("logging: duplicate destination")

	// ErrUnknownDestination indicates a bind against a name that was never registered.
	ErrUnknownDestination = errors.New("logging: unknown destination")

	// ErrDestinationClosed is returned by writes after Close.
	ErrDestinationClosed = errors.New("logging: destination closed")

	// ErrNotRotatable is returned by Rotate on destinations that cannot rotate.
	ErrNotRotatable = errors.New("logging: destination cannot rotate")

	// ErrSinkDisabled is returned by Registry.Sink when the configuration
	// disables the custom sink.
	ErrSinkDisabled = errors.New("logging: custom sink disabled")

	// ErrAlreadyInstalled is returned by Install once a process factory exists.
	ErrAlreadyInstalled = errors.New("logging: process factory already installed")
)

// ConfigurationError reports a SinkConfiguration that cannot produce a
// destination. It is returned to the caller that triggered construction.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Field == emptyString {
		return fmt.Sprintf("logging: invalid sink configuration: %v", e.Err)
	}
	return fmt.Sprintf("logging: invalid sink configuration (%s): %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// RotationIOError reports a filesystem failure during rotation or retention.
// It never reaches the code issuing log calls; it is handed to the host's
// error channel instead.
type RotationIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *RotationIOError) Error() string {
	return fmt.Sprintf("logging: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *RotationIOError) Unwrap() error { return e.Err }

func configError(field string, err error) error {
	return &ConfigurationError{Field: field, Err: err}
}
