package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopLogger(t *testing.T) {
	t.Parallel()

	logger := NewNopLogger()
	ctx := context.Background()

	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	assert.Same(t, logger, logger.With(ports.F("k", "v")))
	assert.Equal(t, ports.LevelInfo, logger.Level())

	logger.SetLevel(ports.LevelDebug)
	assert.Equal(t, ports.LevelDebug, logger.Level())
}

func newTestLogger(buf *bytes.Buffer, opts ...ConsoleLoggerOption) *ConsoleLogger {
	base := []ConsoleLoggerOption{
		WithOutput(buf),
		WithLevel(ports.LevelDebug),
		WithTimestamp(false),
	}
	return NewConsoleLogger(append(base, opts...)...)
}

func TestConsoleLogger_TextOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	logger.Info(context.Background(), "step started", ports.F("step", "apt:update"), ports.F("attempt", 1))

	out := buf.String()
	assert.Contains(t, out, "[INFO] step started")
	assert.Contains(t, out, "step=apt:update")
	assert.Contains(t, out, "attempt=1")
}

func TestConsoleLogger_WithoutLevelLabel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithLevelLabel(false))

	logger.Warn(context.Background(), "fell back")

	assert.Equal(t, "fell back\n", buf.String())
}

func TestConsoleLogger_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithJSONFormat(true))

	logger.Error(context.Background(), "step failed", ports.F("step", "asdf:install"), ports.F("error", errors.New("exit status 128")))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "step failed", entry["msg"])
	assert.Equal(t, "asdf:install", entry["step"])
	assert.Equal(t, "exit status 128", entry["error"])
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithLevel(ports.LevelWarn))
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	assert.Empty(t, buf.String())

	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")
	assert.Contains(t, buf.String(), "warn message")
	assert.Contains(t, buf.String(), "error message")
}

func TestConsoleLogger_SetLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithLevel(ports.LevelError))
	ctx := context.Background()

	logger.Info(ctx, "hidden")
	assert.Empty(t, buf.String())

	logger.SetLevel(ports.LevelDebug)
	logger.Info(ctx, "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestConsoleLogger_With(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	derived := logger.With(ports.F("run_id", "abc"))
	derived.Info(context.Background(), "derived")
	logger.Info(context.Background(), "original")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "run_id=abc")
	assert.NotContains(t, lines[1], "run_id=abc")
}

func TestConsoleLogger_StylesKeepMessage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithStyles(ui.NewStyles(true)))

	logger.Error(context.Background(), "asdf install failed")

	assert.Contains(t, buf.String(), "asdf install failed")
}
