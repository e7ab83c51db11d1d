package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codecrew/config"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LogConfig{Level: "debug", Format: "json"})

	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	logger.Info("team created", "team_id", 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "team created", entry["msg"])
	assert.EqualValues(t, 7, entry["team_id"])
}

func TestNewWithWriter_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LogConfig{Level: "loud", Format: "text"})

	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "unknown log level")
}
