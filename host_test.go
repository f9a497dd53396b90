package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_RegisterDestination(t *testing.T) {
	e := NewEngine()
	d := NewStreamDestination("out", &bytes.Buffer{})

	require.NoError(t, e.RegisterDestination("out", d))
	err := e.RegisterDestination("out", NewStreamDestination("out", &bytes.Buffer{}))
	assert.ErrorIs(t, err, ErrDuplicateDestination)

	got, ok := e.FindDestination("out")
	require.True(t, ok)
	assert.Same(t, d, got)

	_, ok = e.FindDestination("missing")
	assert.False(t, ok)

	assert.Error(t, e.RegisterDestination("", d))
	assert.Error(t, e.RegisterDestination("nil", nil))
}

func TestEngine_BindLogger(t *testing.T) {
	e := NewEngine()
	var a, b bytes.Buffer
	require.NoError(t, e.RegisterDestination("a", NewStreamDestination("a", &a)))
	require.NoError(t, e.RegisterDestination("b", NewStreamDestination("b", &b)))

	t.Run("unknown destination", func(t *testing.T) {
		_, err := e.BindLogger("client", "missing", zerolog.InfoLevel)
		assert.ErrorIs(t, err, ErrUnknownDestination)
	})

	t.Run("rebinding is idempotent", func(t *testing.T) {
		h1, err := e.BindLogger("client", "a", zerolog.InfoLevel)
		require.NoError(t, err)
		h2, err := e.BindLogger("client", "a", zerolog.DebugLevel)
		require.NoError(t, err)
		assert.Same(t, h1, h2)
		assert.Equal(t, zerolog.InfoLevel, h2.Level())
	})

	t.Run("binding elsewhere replaces", func(t *testing.T) {
		h, err := e.BindLogger("client", "b", zerolog.InfoLevel)
		require.NoError(t, err)
		assert.Equal(t, "b", h.Destination())

		h.InfoWith().Msg("to b")
		assert.Contains(t, b.String(), `"message":"to b"`)
		assert.NotContains(t, a.String(), "to b")
	})
}

func TestEngine_DefaultLogger(t *testing.T) {
	var out bytes.Buffer
	e := NewEngine(WithDefaultWriter(&out), WithDefaultLevel(zerolog.WarnLevel))

	h := e.DefaultLogger("client")
	assert.Same(t, h, e.DefaultLogger("client"))
	assert.Empty(t, h.Destination())

	h.InfoWith().Msg("dropped")
	h.WarnWith().Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "kept", entry[zerolog.MessageFieldName])
	assert.Equal(t, "client", entry[loggerFieldName])
}

func TestEngine_ReportError(t *testing.T) {
	var status bytes.Buffer
	e := NewEngine(WithStatusWriter(&status))

	e.ReportError(nil)
	assert.Zero(t, status.Len())

	e.ReportError(&RotationIOError{Op: "rename", Path: "/x", Err: errors.New("denied")})
	assert.Contains(t, status.String(), "rename /x: denied")
	assert.Contains(t, status.String(), `"level":"error"`)
}

func TestEngine_DestinationsAndClose(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.RegisterDestination("z", NewStreamDestination("z", &bytes.Buffer{})))
	require.NoError(t, e.RegisterDestination("a", NewStreamDestination("a", &bytes.Buffer{})))
	assert.Equal(t, []string{"a", "z"}, e.Destinations())

	h, err := e.BindLogger("client", "a", zerolog.InfoLevel)
	require.NoError(t, err)
	require.NoError(t, e.Close())

	d, _ := e.FindDestination("a")
	_, err = d.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrDestinationClosed)
	assert.NotPanics(t, func() { h.Info("after close") })
}

func TestDefaultEngine_IsShared(t *testing.T) {
	assert.Same(t, DefaultEngine(), DefaultEngine())
}
