package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "nats://localhost:4222", cfg.App.NatsURL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "http://localhost:11434", cfg.Ai.OllamaBaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", "supersecret")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("ONCALL_EMAIL", "oncall@example.org")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "supersecret", cfg.App.JWTSecret)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, "oncall@example.org", cfg.SMTP.OnCallEmail)
}
