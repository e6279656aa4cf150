package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelFiltering(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLevel(LevelWarn)

	SetLevel(LevelWarn)
	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "shown 3", entries[0].Message)
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)

	SetLevel(LevelDebug)
	Debug("now visible")
	assert.Equal(t, 3, logs.Len())
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]LogLevel{
		"debug": LevelDebug,
		"INFO":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
		"fatal": LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("chatty")
	assert.Error(t, err)
	assert.Equal(t, "WARN", LevelWarn.String())
}
