package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogger swaps the default logger for one writing into a buffer.
func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	original := GetLogger()
	t.Cleanup(func() { SetLogger(original) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	return &buf
}

func TestInfoWritesJSON(t *testing.T) {
	buf := captureLogger(t)

	Info("hello", slog.String("key", "value"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestWithChatID(t *testing.T) {
	buf := captureLogger(t)

	WithChatID(42).Info("chat event")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(42), entry["chat_id"])
}

func TestWithNewsID(t *testing.T) {
	buf := captureLogger(t)

	WithNewsID("abc123").Warn("news event")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc123", entry["news_id"])
	assert.Equal(t, "WARN", entry["level"])
}
