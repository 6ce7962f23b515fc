package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestLoggerWritesServiceAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	traceID := func(ctx context.Context) string {
		id, _ := ctx.Value(ctxKey{}).(string)
		return id
	}
	log := New(&buf, LevelInfo, "mealorders", traceID)

	ctx := context.WithValue(context.Background(), ctxKey{}, "abc123")
	log.Info(ctx, "order created", "id", 7)
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "order created", entry["msg"])
	assert.Equal(t, "mealorders", entry["service"])
	assert.Equal(t, "abc123", entry["trace_id"])
	assert.EqualValues(t, 7, entry["id"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, "mealorders", nil)
	log.Info(context.Background(), "dropped")
	log.Debug(context.Background(), "dropped")
	assert.Zero(t, buf.Len())

	log.Error(context.Background(), "kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
}
