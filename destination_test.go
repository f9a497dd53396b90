package logging

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeRecorder struct {
	bytes.Buffer
	closed int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

func TestStreamDestination(t *testing.T) {
	var w closeRecorder
	d := NewStreamDestination("stderr", &w)

	assert.Equal(t, "stderr", d.Name())
	assert.Equal(t, KindStream, d.Kind())
	assert.False(t, d.Kind().FileBased())

	n, err := d.Write([]byte("line\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.Equal(t, 1, w.closed)

	_, err = d.Write([]byte("late\n"))
	assert.ErrorIs(t, err, ErrDestinationClosed)
	assert.Equal(t, "line\n", w.String())
}

func TestLayoutDestination(t *testing.T) {
	l, err := CompileLayout("%p %m%n")
	require.NoError(t, err)

	var buf bytes.Buffer
	inner := NewStreamDestination("s", &buf)
	d := withLayout(inner, l)

	assert.Equal(t, "s", d.Name())
	assert.Equal(t, KindStream, d.Kind())
	assert.Same(t, inner, d.Unwrap())
	assert.ErrorIs(t, d.Rotate(), ErrNotRotatable)

	_, err = d.Write([]byte(`{"level":"warn","message":"slow"}` + "\n"))
	require.NoError(t, err)
	assert.Equal(t, "WARN slow\n", buf.String())
}

func TestNewLumberjackFromPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pegasus.client.log")
	policy, err := NewRolloverPolicy(NewConfig(
		WithPath(path),
		WithRotationSize(1536*KiB),
		WithRetention(36*time.Hour, 1, 4),
	))
	require.NoError(t, err)

	d := newLumberjackFromPolicy("sink", policy)
	t.Cleanup(func() { _ = d.Close() })

	assert.Equal(t, "sink", d.Name())
	assert.Equal(t, KindLumberjack, d.Kind())
	assert.True(t, Compatible(d))

	lj := d.(*lumberjackDestination).logger
	assert.Equal(t, path, lj.Filename)
	assert.Equal(t, 2, lj.MaxSize)
	assert.Equal(t, 4, lj.MaxBackups)
	assert.Zero(t, lj.MaxAge, "age limit would delete below MinFiles")
	assert.True(t, lj.LocalTime)

	t.Run("age limit applies without a file floor", func(t *testing.T) {
		p, err := NewRolloverPolicy(NewConfig(WithPath(path), WithRetention(36*time.Hour, 0, 4)))
		require.NoError(t, err)
		noFloor := newLumberjackFromPolicy("nofloor", p)
		assert.Equal(t, 2, noFloor.(*lumberjackDestination).logger.MaxAge)
		assert.Equal(t, 4, noFloor.(*lumberjackDestination).logger.MaxBackups)
	})

	t.Run("small threshold rounds up to one megabyte", func(t *testing.T) {
		p, err := NewRolloverPolicy(NewConfig(WithPath(path), WithRotationSize(10)))
		require.NoError(t, err)
		small := newLumberjackFromPolicy("small", p)
		assert.Equal(t, 1, small.(*lumberjackDestination).logger.MaxSize)
	})

	t.Run("closed", func(t *testing.T) {
		require.NoError(t, d.Close())
		_, err := d.Write([]byte("x"))
		assert.ErrorIs(t, err, ErrDestinationClosed)
		assert.ErrorIs(t, d.Rotate(), ErrDestinationClosed)
	})
}
