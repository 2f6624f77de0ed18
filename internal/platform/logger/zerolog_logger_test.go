package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerWritesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "reconciler")

	l.Infow("reconciled", map[string]any{"vehicle": "B 135 XOX"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "reconciler", line["component"])
	assert.Equal(t, "B 135 XOX", line["vehicle"])
	assert.Equal(t, "reconciled", line["message"])
}

func TestConfigureRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Configure("prod", "loud"))
	assert.NoError(t, Configure("dev", "debug"))
	assert.NoError(t, Configure("", ""))
}

func TestZerologLoggerMethods(t *testing.T) {
	l := New("test")
	l.Debugf("debug %d", 1)
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
	NopLogger{}.Infow("nop", nil)
}
