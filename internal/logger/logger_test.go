package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Formats(t *testing.T) {
	// Arrange & Act
	jsonLogger, jsonErr := NewLogger("debug", "json")
	consoleLogger, consoleErr := NewLogger("warn", "console")

	// Assert
	assert.NoError(t, jsonErr)
	assert.NotNil(t, jsonLogger)
	assert.True(t, jsonLogger.Core().Enabled(zapcore.DebugLevel))

	assert.NoError(t, consoleErr)
	assert.NotNil(t, consoleLogger)
	assert.False(t, consoleLogger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, consoleLogger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLogger_EmptyLevelDefaultsToInfo(t *testing.T) {
	// Act
	log, err := NewLogger("", "json")

	// Assert
	assert.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	// Act
	log, err := NewLogger("loud", "json")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, log)
}
