package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	Setup("warn", true, &buf)
	defer Setup("info", false, nil)

	log.Info("hidden")
	log.WithField("dir", "/tmp").Warn("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "/tmp", entry["dir"])
	assert.Equal(t, "warning", entry["level"])
}

func TestSetup_UnknownLevelFallsBackToInfo(t *testing.T) {
	Setup("loud", false, &bytes.Buffer{})
	defer Setup("info", false, nil)
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}
