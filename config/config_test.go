package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigReadsSweepInterval(t *testing.T) {
	t.Setenv("PAYMENT_SECRET", "secret")
	t.Setenv("SETTLEMENT_SWEEP_MINUTES", "2")

	LoadConfig()

	assert.Equal(t, 2, AppConfig.ReconcileMinutes)
}

func TestLoadConfigRejectsBadSweepInterval(t *testing.T) {
	t.Setenv("PAYMENT_SECRET", "secret")
	t.Setenv("SETTLEMENT_SWEEP_MINUTES", "0")

	LoadConfig()

	assert.Equal(t, 5, AppConfig.ReconcileMinutes)
}

func TestLoadConfigSweepIntervalDefault(t *testing.T) {
	t.Setenv("PAYMENT_SECRET", "secret")
	t.Setenv("SETTLEMENT_SWEEP_MINUTES", "")

	LoadConfig()

	assert.Equal(t, 5, AppConfig.ReconcileMinutes)
}
