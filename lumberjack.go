package logging

import (
	"time"

	"go.uber.org/atomic"
	"gopkg.in/natefinch/lumberjack.v2"
)

type lumberjackDestination struct {
	name   string
	logger *lumberjack.Logger
	closed atomic.Bool
}

// NewLumberjackDestination exposes a lumberjack logger as a rotating file
// destination, for applications that register their own sink up front.
func NewLumberjackDestination(name string, l *lumberjack.Logger) Rotator {
	return &lumberjackDestination{name: name, logger: l}
}

// newLumberjackFromPolicy maps the rollover policy onto lumberjack. Rotated
// file names follow lumberjack's own scheme, sizes round up to whole
// megabytes and retention age rounds up to whole days. Lumberjack ages files
// out regardless of count, so the age limit is dropped when MinFiles > 0.
func newLumberjackFromPolicy(name string, p *RolloverPolicy) Rotator {
	maxSize := int((p.Threshold + int64(MiB) - 1) / int64(MiB))
	if maxSize < 1 {
		maxSize = 1
	}
	day := 24 * time.Hour
	maxAge := 0
	if p.MinFiles == 0 {
		maxAge = int((p.RetentionAge + day - 1) / day)
	}

	return NewLumberjackDestination(name, &lumberjack.Logger{
		Filename:   p.PrimaryPath,
		MaxSize:    maxSize,
		MaxBackups: p.MaxFiles,
		MaxAge:     maxAge,
		LocalTime:  true,
	})
}

func (l *lumberjackDestination) Name() string          { return l.name }
func (l *lumberjackDestination) Kind() DestinationKind { return KindLumberjack }

func (l *lumberjackDestination) Write(p []byte) (int, error) {
	if l.closed.Load() {
		return 0, ErrDestinationClosed
	}
	return l.logger.Write(p)
}

func (l *lumberjackDestination) Rotate() error {
	if l.closed.Load() {
		return ErrDestinationClosed
	}
	return l.logger.Rotate()
}

func (l *lumberjackDestination) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	return l.logger.Close()
}
