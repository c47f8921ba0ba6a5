package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogrusLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogrusJSON(&buf, "debug")
	require.NoError(t, err)

	log.With("component", "client").Info(context.Background(), "request done", "status", 200, "err", errors.New("boom"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "request done", lines[0]["msg"])
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "client", lines[0]["component"])
	assert.Equal(t, float64(200), lines[0]["status"])
	assert.Equal(t, "boom", lines[0]["err"])
}

func TestLogrusLogger_DanglingKey(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogrusJSON(&buf, "info")
	require.NoError(t, err)

	log.Warn(context.Background(), "odd", "lonely")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "lonely", lines[0]["!BADKEY"])
}

func TestLogrusLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogrusJSON(&buf, "error")
	require.NoError(t, err)

	log.Debug(context.Background(), "d")
	log.Info(context.Background(), "i")
	log.Error(context.Background(), "e")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "e", lines[0]["msg"])
}

func TestNew_SelectsBackend(t *testing.T) {
	l, err := New("json", "info", &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &LogrusLogger{}, l)

	l, err = New("text", "info", &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &SlogLogger{}, l)

	_, err = New("xml", "info", &bytes.Buffer{})
	require.Error(t, err)

	_, err = New("json", "shouting", &bytes.Buffer{})
	require.Error(t, err)
}

func TestDiscard_DoesNotPanic(t *testing.T) {
	l := Discard()
	l.Error(context.TODO(), "nothing")
	l.With("a", 1).Info(context.TODO(), "nothing")
}
