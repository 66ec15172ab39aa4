package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", zap.String("file", "a.txt"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "a.txt")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}

func TestFromContextDefaultsToNop(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	logger.Info("goes nowhere")
}

func TestFromContextAddsRunID(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core))
	ctx = StartRun(ctx)

	FromContext(ctx).Info("extracted")

	entries := observed.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, RunID(ctx), fields["run.id"])
	_, err := uuid.Parse(RunID(ctx))
	assert.NoError(t, err)
}

func TestStartRunIsUnique(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RunID(ctx))
	assert.NotEqual(t, RunID(StartRun(ctx)), RunID(StartRun(ctx)))
}
