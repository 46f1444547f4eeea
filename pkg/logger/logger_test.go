package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestNew_LevelAndTee(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	log, err := New("warn", core)
	require.NoError(t, err)

	log.Info("teed entry")
	log.Warn("another entry")

	assert.Equal(t, 2, logs.Len())
}

func TestNew_SkipsNilCore(t *testing.T) {
	log, err := New("info", nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() { log.Info("console only") })
}
