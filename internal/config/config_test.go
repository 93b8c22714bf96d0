package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/airhockey/internal/loop"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "::", s.SSH.Host)
	assert.Equal(t, "2222", s.SSH.Port)
	assert.Equal(t, "/app/keys/host_key", s.SSH.HostKeyPath)
	assert.Equal(t, 10*time.Minute, s.SSH.IdleTimeout)
	assert.Equal(t, "0.0.0.0", s.Web.Host)
	assert.Equal(t, "8080", s.Web.Port)
	assert.Equal(t, "your-server.com", s.Web.DisplayHost)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "", s.Log.File)
	assert.Equal(t, 120, s.Match.Duration)
	assert.Equal(t, 60, s.Match.FPS)
	assert.Equal(t, 120*time.Millisecond, s.Match.KeyHold)
	assert.Equal(t, 600*time.Millisecond, s.Match.KeyRepeatDelay)

	assert.Equal(t, loop.DefaultRules(), s.Rules())
}

func TestLoad_WithConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := `
ssh:
  port: "2323"
  idleTimeout: 30s
log:
  level: debug
match:
  duration: 60
  keyHold: 200ms
  keyRepeatDelay: 400ms
physics:
  playerSpeed: 8
  ballFriction: 0.99
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(cfg), 0o644))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "2323", s.SSH.Port)
	assert.Equal(t, 30*time.Second, s.SSH.IdleTimeout)
	assert.Equal(t, "::", s.SSH.Host, "unset keys keep their defaults")
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, 60, s.Match.Duration)
	assert.Equal(t, 200*time.Millisecond, s.Match.KeyHold)
	assert.Equal(t, 400*time.Millisecond, s.Match.KeyRepeatDelay)

	rules := s.Rules()
	assert.Equal(t, 8.0, rules.PlayerSpeed)
	assert.Equal(t, 0.99, rules.BallFriction)
	assert.Equal(t, 15.0, rules.BallMaxSpeed)
	assert.Equal(t, 60, rules.MatchDuration)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("match:\n  duration: 60\n"), 0o644))

	t.Setenv("AIRHOCKEY_MATCH_DURATION", "90")
	t.Setenv("AIRHOCKEY_PHYSICS_RESTITUTION", "2.5")
	t.Setenv("AIRHOCKEY_SSH_PORT", "2424")
	t.Setenv("SSH_DISPLAY_HOST", "play.example.com")

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 90, s.Match.Duration)
	assert.Equal(t, 2.5, s.Physics.Restitution)
	assert.Equal(t, "2424", s.SSH.Port)
	assert.Equal(t, "play.example.com", s.Web.DisplayHost)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AIRHOCKEY_WEB_PORT=9191\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("AIRHOCKEY_WEB_PORT") })

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9191", s.Web.Port)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("ssh: [unclosed"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("physics:\n  ballFriction: 1.5\n"), 0o644))

	_, err := Load(dir)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "ballFriction")
}

func validSettings(t *testing.T) Settings {
	t.Helper()
	s, err := Load(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"empty ssh port", func(s *Settings) { s.SSH.Port = "" }},
		{"negative idle timeout", func(s *Settings) { s.SSH.IdleTimeout = -time.Second }},
		{"zero duration", func(s *Settings) { s.Match.Duration = 0 }},
		{"zero fps", func(s *Settings) { s.Match.FPS = 0 }},
		{"zero key hold", func(s *Settings) { s.Match.KeyHold = 0 }},
		{"negative key repeat delay", func(s *Settings) { s.Match.KeyRepeatDelay = -time.Millisecond }},
		{"zero player speed", func(s *Settings) { s.Physics.PlayerSpeed = 0 }},
		{"negative max speed", func(s *Settings) { s.Physics.BallMaxSpeed = -1 }},
		{"zero friction", func(s *Settings) { s.Physics.BallFriction = 0 }},
		{"friction above one", func(s *Settings) { s.Physics.BallFriction = 1.01 }},
		{"restitution of one", func(s *Settings) { s.Physics.Restitution = 1 }},
		{"unknown log level", func(s *Settings) { s.Log.Level = "loud" }},
	}

	require.NoError(t, validSettings(t).Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings(t)
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalid)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, closeLog, err := Log{Level: "warn"}.NewLogger(&buf, "test")
	require.NoError(t, err)
	defer closeLog()

	assert.Equal(t, log.WarnLevel, logger.GetLevel())
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	var buf bytes.Buffer
	logger, closeLog, err := Log{Level: "info", File: path}.NewLogger(&buf, "")
	require.NoError(t, err)

	logger.Info("to file")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Empty(t, buf.String())
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, _, err := Log{Level: "loud"}.NewLogger(&bytes.Buffer{}, "")
	assert.ErrorIs(t, err, ErrInvalid)
}
