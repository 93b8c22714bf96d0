// Package config loads settings from defaults, an optional airhockey.yaml,
// a .env file and AIRHOCKEY_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tomz197/airhockey/internal/loop"
	gameconfig "github.com/tomz197/airhockey/internal/loop/config"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// FileName is the config file looked up in the config directory.
const FileName = "airhockey.yaml"

// EnvPrefix prefixes every environment override: ssh.port is read from
// AIRHOCKEY_SSH_PORT.
const EnvPrefix = "AIRHOCKEY"

// SSH holds SSH server settings.
type SSH struct {
	Host        string        `mapstructure:"host"`
	Port        string        `mapstructure:"port"`
	HostKeyPath string        `mapstructure:"hostKeyPath"`
	IdleTimeout time.Duration `mapstructure:"idleTimeout"` // 0 disables
}

// Web holds landing page settings.
type Web struct {
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	DisplayHost string `mapstructure:"displayHost"` // Host shown in the ssh command
}

// Log holds logger settings.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // Empty logs to the fallback writer
}

// Match holds match timing settings.
type Match struct {
	Duration       int           `mapstructure:"duration"` // Seconds
	FPS            int           `mapstructure:"fps"`
	KeyHold        time.Duration `mapstructure:"keyHold"`
	KeyRepeatDelay time.Duration `mapstructure:"keyRepeatDelay"`
}

// Physics holds the per-frame tuning.
type Physics struct {
	PlayerSpeed  float64 `mapstructure:"playerSpeed"`
	BallMaxSpeed float64 `mapstructure:"ballMaxSpeed"`
	BallFriction float64 `mapstructure:"ballFriction"`
	Restitution  float64 `mapstructure:"restitution"`
}

// Settings is the whole configuration.
type Settings struct {
	SSH     SSH     `mapstructure:"ssh"`
	Web     Web     `mapstructure:"web"`
	Log     Log     `mapstructure:"log"`
	Match   Match   `mapstructure:"match"`
	Physics Physics `mapstructure:"physics"`
}

// Names used before the AIRHOCKEY_ prefix existed. Still honoured.
var legacyEnv = map[string]string{
	"ssh.host":        "SSH_HOST",
	"ssh.port":        "SSH_PORT",
	"ssh.hostKeyPath": "SSH_HOST_KEY",
	"web.host":        "WEB_HOST",
	"web.port":        "WEB_PORT",
	"web.displayHost": "SSH_DISPLAY_HOST",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ssh.host", "::")
	v.SetDefault("ssh.port", "2222")
	v.SetDefault("ssh.hostKeyPath", "/app/keys/host_key")
	v.SetDefault("ssh.idleTimeout", 10*time.Minute)

	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", "8080")
	v.SetDefault("web.displayHost", "your-server.com")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("match.duration", gameconfig.MatchDurationSeconds)
	v.SetDefault("match.fps", gameconfig.ClientTargetFPS)
	v.SetDefault("match.keyHold", gameconfig.KeyHoldDuration)
	v.SetDefault("match.keyRepeatDelay", gameconfig.KeyRepeatDelay)

	v.SetDefault("physics.playerSpeed", gameconfig.PlayerSpeed)
	v.SetDefault("physics.ballMaxSpeed", gameconfig.BallMaxSpeed)
	v.SetDefault("physics.ballFriction", gameconfig.BallFriction)
	v.SetDefault("physics.restitution", gameconfig.Restitution)
}

// Load reads the configuration from dir and the environment, then validates
// it. Neither the config file nor the .env file has to exist.
func Load(dir string) (Settings, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return Settings{}, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks ranges the game cannot run without.
func (s Settings) Validate() error {
	switch {
	case s.SSH.Port == "":
		return fmt.Errorf("%w: ssh.port is empty", ErrInvalid)
	case s.SSH.IdleTimeout < 0:
		return fmt.Errorf("%w: ssh.idleTimeout must not be negative", ErrInvalid)
	case s.Match.Duration <= 0:
		return fmt.Errorf("%w: match.duration must be positive, got %d", ErrInvalid, s.Match.Duration)
	case s.Match.FPS <= 0:
		return fmt.Errorf("%w: match.fps must be positive, got %d", ErrInvalid, s.Match.FPS)
	case s.Match.KeyHold <= 0:
		return fmt.Errorf("%w: match.keyHold must be positive, got %s", ErrInvalid, s.Match.KeyHold)
	case s.Match.KeyRepeatDelay <= 0:
		return fmt.Errorf("%w: match.keyRepeatDelay must be positive, got %s", ErrInvalid, s.Match.KeyRepeatDelay)
	case s.Physics.PlayerSpeed <= 0:
		return fmt.Errorf("%w: physics.playerSpeed must be positive", ErrInvalid)
	case s.Physics.BallMaxSpeed <= 0:
		return fmt.Errorf("%w: physics.ballMaxSpeed must be positive", ErrInvalid)
	case s.Physics.BallFriction <= 0 || s.Physics.BallFriction > 1:
		return fmt.Errorf("%w: physics.ballFriction must be in (0, 1], got %g", ErrInvalid, s.Physics.BallFriction)
	case s.Physics.Restitution <= 1:
		return fmt.Errorf("%w: physics.restitution must be greater than 1, got %g", ErrInvalid, s.Physics.Restitution)
	}
	if _, err := log.ParseLevel(s.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// Rules converts the match and physics sections into simulation rules.
func (s Settings) Rules() loop.Rules {
	return loop.Rules{
		PlayerSpeed:   s.Physics.PlayerSpeed,
		BallMaxSpeed:  s.Physics.BallMaxSpeed,
		BallFriction:  s.Physics.BallFriction,
		Restitution:   s.Physics.Restitution,
		MatchDuration: s.Match.Duration,
	}
}

// NewLogger builds the logger described by l. Output goes to l.File when set,
// otherwise to fallback. The returned close function is never nil.
func (l Log) NewLogger(fallback io.Writer, prefix string) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(l.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}

	w := fallback
	closer := func() error { return nil }
	if l.File != "" {
		f, err := os.OpenFile(l.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	})
	return logger, closer, nil
}
