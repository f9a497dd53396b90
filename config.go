package logging

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Backend selects the rotating file implementation built for a new sink.
type Backend string

const (
	// BackendRolling honours every rollover field, including the rotated
	// path pattern and conjunctive age/count retention.
	BackendRolling Backend = "rolling"
	// BackendLumberjack delegates rotation to lumberjack, with its naming
	// scheme. Retention is not conjunctive: MaxFiles caps the backups, and
	// RetentionAge applies only when MinFiles is 0, since lumberjack would
	// otherwise delete old files below the floor.
	BackendLumberjack Backend = "lumberjack"
)

// ReusePolicy decides what to do with a pre-existing destination that
// carries the sink's name.
type ReusePolicy string

const (
	// ReuseAny adopts whatever destination is registered under the name.
	ReuseAny ReusePolicy = "any"
	// ReuseCompatible adopts only rotating file destinations and fails otherwise.
	ReuseCompatible ReusePolicy = "compatible"
)

// SinkConfiguration describes where the sink writes and how it rotates. It is
// a plain value: the registry keeps its own copy.
type SinkConfiguration struct {
	Enabled               bool
	MinLevel              zerolog.Level
	LinePattern           string        `validate:"required"`
	RetentionAge          time.Duration `validate:"gte=0"`
	DeletionNamePattern   string        `validate:"required"`
	MinFiles              int           `validate:"gte=0"`
	MaxFiles              int           `validate:"gt=0,gtefield=MinFiles"`
	RotationSizeThreshold ByteSize      `validate:"gt=0"`
	SinkName              string        `validate:"required"`
	PrimaryPath           string        `validate:"required"`
	RotatedPathPattern    string        `validate:"required"`
	Backend               Backend       `validate:"oneof=rolling lumberjack"`
	ReusePolicy           ReusePolicy   `validate:"oneof=any compatible"`
}

// Option adjusts a SinkConfiguration under construction.
type Option func(*SinkConfiguration)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() SinkConfiguration {
	return NewConfig()
}

// NewConfig returns the defaults with opts applied in order.
func NewConfig(opts ...Option) SinkConfiguration {
	cfg := SinkConfiguration{
		Enabled:               true,
		MinLevel:              zerolog.TraceLevel,
		LinePattern:           DefaultLinePattern,
		RetentionAge:          DefaultRetentionAge,
		DeletionNamePattern:   DefaultDeletionNamePattern,
		MinFiles:              DefaultMinFiles,
		MaxFiles:              DefaultMaxFiles,
		RotationSizeThreshold: DefaultRotationSize,
		SinkName:              DefaultSinkName,
		PrimaryPath:           DefaultPrimaryPath,
		RotatedPathPattern:    DefaultRotatedPathPattern,
		Backend:               BackendRolling,
		ReusePolicy:           ReuseAny,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEnabled toggles the custom sink. When disabled every logger comes from
// the host's default configuration.
func WithEnabled(enabled bool) Option {
	return func(c *SinkConfiguration) { c.Enabled = enabled }
}

// WithPath moves the active file and re-derives the rotated path pattern and
// the deletion name pattern from it.
func WithPath(path string) Option {
	return func(c *SinkConfiguration) {
		if path == emptyString {
			return
		}
		c.PrimaryPath = path
		c.RotatedPathPattern = path + "." + defaultRotatedSuffix
		c.DeletionNamePattern = filepath.Base(path) + "*"
	}
}

func WithLevel(level zerolog.Level) Option {
	return func(c *SinkConfiguration) { c.MinLevel = level }
}

func WithLinePattern(pattern string) Option {
	return func(c *SinkConfiguration) { c.LinePattern = pattern }
}

// WithRetention sets the retention age and the retained file count bounds.
func WithRetention(age time.Duration, minFiles, maxFiles int) Option {
	return func(c *SinkConfiguration) {
		c.RetentionAge = age
		c.MinFiles = minFiles
		c.MaxFiles = maxFiles
	}
}

func WithRotationSize(size ByteSize) Option {
	return func(c *SinkConfiguration) { c.RotationSizeThreshold = size }
}

func WithSinkName(name string) Option {
	return func(c *SinkConfiguration) { c.SinkName = name }
}

func WithRotatedPathPattern(pattern string) Option {
	return func(c *SinkConfiguration) { c.RotatedPathPattern = pattern }
}

func WithDeletionNamePattern(pattern string) Option {
	return func(c *SinkConfiguration) { c.DeletionNamePattern = pattern }
}

func WithBackend(b Backend) Option {
	return func(c *SinkConfiguration) { c.Backend = b }
}

func WithReusePolicy(p ReusePolicy) Option {
	return func(c *SinkConfiguration) { c.ReusePolicy = p }
}

// Validate reports whether the configuration can build a destination.
func (c SinkConfiguration) Validate() error {
	return validateConfig(&c)
}
