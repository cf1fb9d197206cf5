package ctxlog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skyroute/ctxlog"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ctxlog.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ctxlog.ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ctxlog.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ctxlog.ParseLevel("verbose"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := ctxlog.New("warn", "json", &buf)
	log.Info("dropped")
	log.Warn("kept", "city", "Paris")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "Paris", rec["city"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	ctxlog.New("info", "text", &buf).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestContextCarrier(t *testing.T) {
	assert.Same(t, slog.Default(), ctxlog.FromContext(context.Background()))

	l := ctxlog.Discard()
	ctx := ctxlog.WithLogger(context.Background(), l)
	assert.Same(t, l, ctxlog.FromContext(ctx))
}
