package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"

	"forgeauth/internal/domain"
	"forgeauth/internal/store"
	"forgeauth/internal/wallet/phantom"
)

// Store and provider kinds accepted by Config.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"

	ProviderPhantom = "phantom"
	ProviderNone    = "none"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Network  string         `yaml:"network"`
	Wallet   string         `yaml:"wallet"`   // raw key material; never logged
	Keystore string         `yaml:"keystore"` // path to an encrypted seed
	Session  SessionConfig  `yaml:"session"`
	Redis    RedisConfig    `yaml:"redis"`
	Provider ProviderConfig `yaml:"provider"`
	Log      LogConfig      `yaml:"log"`

	Home string       `yaml:"-"` // config directory, e.g. $HOME/.forgeauth
	HTTP *http.Client `yaml:"-"` // optional; defaults to http.DefaultClient
}

type SessionConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	Timeout       time.Duration `yaml:"timeout"`
	Store         string        `yaml:"store"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	KeyPrefix string `yaml:"key_prefix"`
}

type ProviderConfig struct {
	Kind string `yaml:"kind"`
	URL  string `yaml:"url"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// envOverlay lists the variables that override the file. Unset variables
// leave the file value alone.
type envOverlay struct {
	Network       string        `env:"FORGE_NETWORK"`
	Wallet        string        `env:"FORGE_WALLET"`
	Keystore      string        `env:"FORGE_KEYSTORE"`
	TTL           time.Duration `env:"FORGE_SESSION_TTL"`
	Timeout       time.Duration `env:"FORGE_SESSION_TIMEOUT"`
	Store         string        `env:"FORGE_SESSION_STORE"`
	SweepInterval time.Duration `env:"FORGE_SESSION_SWEEP"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPrefix   string        `env:"FORGE_REDIS_PREFIX"`
	Provider      string        `env:"FORGE_PROVIDER"`
	ProviderURL   string        `env:"FORGE_PROVIDER_URL"`
	LogLevel      string        `env:"FORGE_LOG_LEVEL"`
	LogFormat     string        `env:"FORGE_LOG_FORMAT"`
}

// DefaultConfig returns the built-in settings rooted at home.
func DefaultConfig(home string) Config {
	return Config{
		Network: "testnet",
		Session: SessionConfig{
			TTL:     domain.DefaultSessionTTL,
			Timeout: 2 * time.Minute,
			Store:   StoreMemory,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: store.DefaultRedisPrefix,
		},
		Provider: ProviderConfig{
			Kind: ProviderPhantom,
			URL:  phantom.DefaultURL,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Home: home,
	}
}

// DefaultHome returns $HOME/.forgeauth.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".forgeauth"
	}
	return filepath.Join(home, ".forgeauth")
}

// LoadConfig reads path over the defaults, then applies the environment.
// A missing file is not an error.
func LoadConfig(home, path string) (Config, error) {
	cfg := DefaultConfig(home)

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var ov envOverlay
	if err := envdecode.Decode(&ov); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("read environment: %w", err)
	}
	setString(&c.Network, ov.Network)
	setString(&c.Wallet, ov.Wallet)
	setString(&c.Keystore, ov.Keystore)
	setDuration(&c.Session.TTL, ov.TTL)
	setDuration(&c.Session.Timeout, ov.Timeout)
	setString(&c.Session.Store, ov.Store)
	setDuration(&c.Session.SweepInterval, ov.SweepInterval)
	setString(&c.Redis.Addr, ov.RedisAddr)
	setString(&c.Redis.KeyPrefix, ov.RedisPrefix)
	setString(&c.Provider.Kind, ov.Provider)
	setString(&c.Provider.URL, ov.ProviderURL)
	setString(&c.Log.Level, ov.LogLevel)
	setString(&c.Log.Format, ov.LogFormat)
	return nil
}

// Validate rejects unknown store and provider kinds, negative durations and
// an unbounded wallet timeout.
func (c Config) Validate() error {
	switch c.Session.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("session.store: unknown store %q (want memory or redis)", c.Session.Store)
	}
	switch c.Provider.Kind {
	case ProviderPhantom, ProviderNone:
	default:
		return fmt.Errorf("provider.kind: unknown provider %q (want phantom or none)", c.Provider.Kind)
	}
	if c.Session.TTL < 0 || c.Session.Timeout < 0 || c.Session.SweepInterval < 0 {
		return errors.New("session: durations must not be negative")
	}
	if c.Session.Timeout == 0 {
		return errors.New("session.timeout: must be positive")
	}
	if strings.TrimSpace(c.Network) == "" {
		return errors.New("network: must be set")
	}
	return nil
}

// KeystorePath returns the configured keystore or the default under Home.
func (c Config) KeystorePath() string {
	if c.Keystore != "" {
		return c.Keystore
	}
	return filepath.Join(c.Home, "wallet.json.enc")
}

// NegotiationConfig is the input the session negotiator sees.
func (c Config) NegotiationConfig() domain.NegotiationConfig {
	return domain.NegotiationConfig{Wallet: c.Wallet, Network: c.Network}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}
