package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_DefaultsToTerminalInfo(t *testing.T) {
	l, err := New(Config{})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_NoopStyleDiscardsEverything(t *testing.T) {
	l, err := New(Config{Style: StyleNoop})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestNew_InvalidStyleErrors(t *testing.T) {
	_, err := New(Config{Style: "bogus"})
	assert.Error(t, err)
}

func TestNew_InvalidLevelErrors(t *testing.T) {
	_, err := New(Config{Level: "bogus"})
	assert.Error(t, err)
}

func TestMust_PanicsOnInvalidConfig(t *testing.T) {
	assert.Panics(t, func() {
		Must(Config{Style: "bogus"})
	})
}
