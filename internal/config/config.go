// Package config loads the server configuration from a YAML file, an optional
// .env file and DEPO_* environment variables (highest priority).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvPrefix is the prefix of environment overrides, e.g. DEPO_POSTGRES_DSN.
const EnvPrefix = "DEPO"

type Config struct {
	App struct {
		Env      string
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"app"`

	HTTP struct {
		Addr            string
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"http"`

	Postgres struct {
		DSN      string
		MaxConns int32 `mapstructure:"max_conns"`
		MinConns int32 `mapstructure:"min_conns"`
		Migrate  bool
	} `mapstructure:"postgres"`

	JWT struct {
		Secret string
		TTL    time.Duration
	} `mapstructure:"jwt"`

	Forms struct {
		IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
		SweepInterval time.Duration `mapstructure:"sweep_interval"`
	} `mapstructure:"forms"`

	Units struct {
		PieceSentinel string `mapstructure:"piece_sentinel"`
		// PieceRule is an optional CEL expression over `code`; overrides PieceSentinel
		PieceRule string `mapstructure:"piece_rule"`
	} `mapstructure:"units"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

// IsDevelopment reports whether the app runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.App.Env == "" || c.App.Env == "development"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.migrate", true)
	v.SetDefault("jwt.ttl", 8*time.Hour)
	v.SetDefault("forms.idle_timeout", 30*time.Minute)
	v.SetDefault("forms.sweep_interval", time.Minute)
	v.SetDefault("units.piece_sentinel", "PIECE")
	v.SetDefault("metrics.enabled", true)
}

// Load reads the config file at path (optional when empty) and applies
// environment overrides. Values from envFile are exported first if it exists.
func Load(path, envFile string) (Config, error) {
	var c Config

	if envFile != "" {
		if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return c, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper knows about.
	for _, key := range []string{"postgres.dsn", "jwt.secret", "units.piece_rule"} {
		if err := v.BindEnv(key); err != nil {
			return c, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks required settings.
func (c Config) Validate() error {
	if c.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	if c.Forms.IdleTimeout <= 0 || c.Forms.SweepInterval <= 0 {
		return errors.New("forms.idle_timeout and forms.sweep_interval must be positive")
	}
	return nil
}
