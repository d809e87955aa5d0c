package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", false)
	require.Error(t, err)
}

func TestNew_BuildsBothEncoders(t *testing.T) {
	for _, dev := range []bool{true, false} {
		l, err := New("debug", dev)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zap.DebugLevel))
	}
}

func TestSetAndNamed(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	core, logs := observer.New(zap.InfoLevel)
	Set(zap.New(core))
	Named("registrations").Info("stored", zap.String("id", "abc"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "registrations", entries[0].LoggerName)
	assert.Equal(t, "abc", entries[0].ContextMap()["id"])

	Set(nil)
	assert.NotNil(t, L())
}
