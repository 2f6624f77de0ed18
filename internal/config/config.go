package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "FIELDOPS_"

type Config struct {
	App  AppConfig  `json:"app"`
	HTTP HTTPConfig `json:"http"`
	DB   DBConfig   `json:"db"`
	Log  LogConfig  `json:"log"`
	Seed SeedConfig `json:"seed"`
}

type AppConfig struct {
	Env string `json:"env"`
}

type HTTPConfig struct {
	Port              string        `json:"port"`
	ReadHeaderTimeout time.Duration `json:"read_header_timeout"`
	ReadTimeout       time.Duration `json:"read_timeout"`
	WriteTimeout      time.Duration `json:"write_timeout"`
	IdleTimeout       time.Duration `json:"idle_timeout"`
	ShutdownTimeout   time.Duration `json:"shutdown_timeout"`
}

type DBConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver       string `json:"driver"`
	URL          string `json:"url"`
	MaxOpenConns int    `json:"max_open_conns"`
}

type LogConfig struct {
	Level string `json:"level"`
}

type SeedConfig struct {
	Path string `json:"path"`
}

// Load reads configuration from, in increasing precedence: built-in
// defaults, the optional file at path (.yaml, .yml or .json), a .env file in
// the working directory, and FIELDOPS_ prefixed environment variables
// (FIELDOPS_DB__URL -> db.url).
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load config: read .env: %w", err)
	}

	k := koanf.New(".")
	if strings.TrimSpace(path) != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("load config: unsupported config format: %s", filepath.Ext(path))
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load config: read %q: %w", path, err)
		}
	}

	// The callback already maps "__" to ".", so keys are split on ".".
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load config: env: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// SetDefaults fills unset fields. The conventional DATABASE_URL, PORT and
// APP_ENV variables are honoured when the prefixed keys are absent.
func (c *Config) SetDefaults() {
	if c.App.Env == "" {
		c.App.Env = Get("APP_ENV", "prod")
	}
	if c.HTTP.Port == "" {
		c.HTTP.Port = Get("PORT", "8080")
	}
	if c.HTTP.ReadHeaderTimeout == 0 {
		c.HTTP.ReadHeaderTimeout = 5 * time.Second
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 30 * time.Second
	}
	if c.HTTP.IdleTimeout == 0 {
		c.HTTP.IdleTimeout = 60 * time.Second
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.DB.URL == "" {
		c.DB.URL = os.Getenv("DATABASE_URL")
	}
	if c.DB.Driver == "" {
		if c.DB.URL == "" || strings.HasPrefix(c.DB.URL, "file:") {
			c.DB.Driver = "sqlite"
		} else {
			c.DB.Driver = "postgres"
		}
	}
	if c.DB.URL == "" && c.DB.Driver == "sqlite" {
		c.DB.URL = "file:data/fieldops.db?_pragma=foreign_keys(1)"
	}
	if c.DB.MaxOpenConns == 0 {
		if c.DB.Driver == "sqlite" {
			c.DB.MaxOpenConns = 1
		} else {
			c.DB.MaxOpenConns = 10
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Seed.Path == "" {
		c.Seed.Path = "data/seeds/fieldops.json"
	}
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("db.driver must be postgres or sqlite, got %q", c.DB.Driver)
	}
	if strings.TrimSpace(c.DB.URL) == "" {
		return errors.New("db.url is required")
	}
	if c.DB.MaxOpenConns < 1 {
		return fmt.Errorf("db.max_open_conns must be positive, got %d", c.DB.MaxOpenConns)
	}
	return nil
}

// Get returns the environment variable key, or fallback when it is unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
