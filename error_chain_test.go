package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	smerrors "github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestBuildErrorChain_WithDetailedAndStd(t *testing.T) {
	inner := smerrors.New("meta.Query").Msg("dial tcp 127.0.0.1:34601: connect: connection refused")
	middle := smerrors.New("table.Open").Err(inner).Msg("failed to query table config")
	outer := smerrors.New("client.Open").Err(middle).Msg("open table failed")

	chain, ops, root, rootOp := buildErrorChain(outer)
	assert.Equal(t, []string{
		"open table failed",
		"failed to query table config",
		"dial tcp 127.0.0.1:34601: connect: connection refused",
	}, chain)
	assert.Equal(t, []string{"client.Open", "table.Open", "meta.Query"}, ops)
	assert.Equal(t, "dial tcp 127.0.0.1:34601: connect: connection refused", root)
	assert.Equal(t, "meta.Query", rootOp)

	wrapped := smerrors.New("client.Get").Errorf("wrap: %w", outer)
	chain2, _, root2, _ := buildErrorChain(wrapped)
	assert.True(t, strings.HasPrefix(chain2[0], "wrap:"))
	assert.Equal(t, root, root2)
}

func TestBuildErrorChain_Std(t *testing.T) {
	base := fmt.Errorf("disk full")
	err := fmt.Errorf("rename: %w", base)

	chain, ops, root, rootOp := buildErrorChain(err)
	assert.Equal(t, []string{"rename: disk full", "disk full"}, chain)
	assert.Equal(t, []string{"", ""}, ops)
	assert.Equal(t, "disk full", root)
	assert.Empty(t, rootOp)
	assert.Equal(t, "rename: disk full -> disk full", joinChain(chain))

	chain, _, _, _ = buildErrorChain(nil)
	assert.Empty(t, chain)
}

func TestEventErr_EmitsChainFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	inner := smerrors.New("meta.Query").Msg("connection refused")
	outer := smerrors.New("client.Open").Err(inner).Msg("open table failed")
	newLogEvent(logger.Error()).Err(outer).Msg("boom")

	var entry logEntry
	require.NoError(t, json.NewDecoder(&buf).Decode(&entry))

	assert.NotEmpty(t, entry[zerolog.ErrorFieldName])
	assert.Equal(t, []any{"open table failed", "connection refused"}, entry["error_chain"])
	assert.Equal(t, "connection refused", entry["error_root"])
	assert.Contains(t, entry, "error_history")
	assert.Equal(t, []any{"client.Open", "meta.Query"}, entry["error_ops"])
	assert.Equal(t, "meta.Query", entry["error_root_op"])
}
