// Package config loads the immutable process configuration from configs/config.yml
// and BOOKFANS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const envPrefix = "BOOKFANS"

type Config struct {
	Server     Server
	DB         DB
	Auth       Auth
	Log        Log
	CORS       CORS
	Pagination Pagination
	WS         WS
}

type Server struct {
	Port              string
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

type DB struct {
	Path string
}

// Auth holds token signing and password hashing settings. Read-only after startup.
type Auth struct {
	Secret     string
	Algorithm  string
	TokenTTL   time.Duration
	BcryptCost int
}

type Log struct {
	Level  string
	Format string
}

type CORS struct {
	AllowedOrigins []string
}

type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

type WS struct {
	DefaultInterval time.Duration
	MaxInterval     time.Duration
}

var supportedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("db.path", "book_fans.db")

	v.SetDefault("auth.algorithm", "HS256")
	v.SetDefault("auth.token_ttl", 30*time.Minute)
	v.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("pagination.default_limit", 100)
	v.SetDefault("pagination.max_limit", 1000)

	v.SetDefault("ws.default_interval", time.Second)
	v.SetDefault("ws.max_interval", 10*time.Second)
}

// Load reads config.yml from the given directories (first match wins) and applies
// environment overrides. A missing file is not an error; defaults and env still apply.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) Config {
	return Config{
		Server: Server{
			Port:              v.GetString("server.port"),
			ReadHeaderTimeout: v.GetDuration("server.read_header_timeout"),
			WriteTimeout:      v.GetDuration("server.write_timeout"),
			IdleTimeout:       v.GetDuration("server.idle_timeout"),
			ShutdownTimeout:   v.GetDuration("server.shutdown_timeout"),
		},
		DB: DB{Path: v.GetString("db.path")},
		Auth: Auth{
			Secret:     v.GetString("auth.secret"),
			Algorithm:  strings.ToUpper(strings.TrimSpace(v.GetString("auth.algorithm"))),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
			BcryptCost: v.GetInt("auth.bcrypt_cost"),
		},
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		CORS: CORS{AllowedOrigins: v.GetStringSlice("cors.allowed_origins")},
		Pagination: Pagination{
			DefaultLimit: v.GetInt("pagination.default_limit"),
			MaxLimit:     v.GetInt("pagination.max_limit"),
		},
		WS: WS{
			DefaultInterval: v.GetDuration("ws.default_interval"),
			MaxInterval:     v.GetDuration("ws.max_interval"),
		},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret must be set")
	}
	if _, ok := supportedAlgorithms[c.Auth.Algorithm]; !ok {
		return fmt.Errorf("auth.algorithm %q is not supported", c.Auth.Algorithm)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be in [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.DB.Path == "" {
		return errors.New("db.path must be set")
	}
	if c.Pagination.DefaultLimit <= 0 || c.Pagination.MaxLimit < c.Pagination.DefaultLimit {
		return errors.New("pagination limits must satisfy 0 < default_limit <= max_limit")
	}
	if c.WS.DefaultInterval <= 0 || c.WS.MaxInterval < c.WS.DefaultInterval {
		return errors.New("ws intervals must satisfy 0 < default_interval <= max_interval")
	}
	return nil
}
