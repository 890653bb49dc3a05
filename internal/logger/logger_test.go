package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON("info", &buf)

	log.Debug("hidden %d", 1)
	assert.Zero(t, buf.Len())

	log.Info("created product %s", "Widget")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "created product Widget", entry["message"])
}

func TestNewJSON_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON("loud", &buf)
	assert.Equal(t, "info", log.Level())
}

func TestWith_AddsField(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON("debug", &buf).With("request_id", "abc")

	log.Error("boom")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "error", entry["level"])
}
