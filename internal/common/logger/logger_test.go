package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionLoggerEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "slotbot-backend", false)

	l.Info().Str("alert_id", "a1").Msg("alert created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "slotbot-backend", entry["service"])
	assert.Equal(t, "alert created", entry["message"])
	assert.Equal(t, "a1", entry["alert_id"])
}

func TestProductionLoggerDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "slotbot-backend", false)

	l.Debug().Msg("noise")
	assert.Zero(t, buf.Len())
}

func TestDebugLoggerKeepsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "slotbot-backend", true)

	l.Debug().Msg("recipient materialized")
	assert.Contains(t, buf.String(), "recipient materialized")
}
