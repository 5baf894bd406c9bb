package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthString(t *testing.T) {
	assert.Equal(t, "stopped", HealthStopped.String())
	assert.Equal(t, "ok", HealthOK.String())
	assert.Equal(t, "warning", HealthWarning.String())
	assert.Equal(t, "error", HealthError.String())
	assert.Equal(t, "unknown", Health(99).String())
}

func TestStoppedStatus(t *testing.T) {
	s := StoppedStatus()
	assert.Equal(t, HealthStopped, s.Health)
	assert.True(t, s.Quiescent)
	assert.Empty(t, s.Message)
}
