package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr string
	Backend  BackendConfig
	Lock     LockConfig
	Log      LogConfig

	MetricsEnabled bool
}

type BackendConfig struct {
	// Type selects the reservation store: "postgres", "sqlite" or
	// "memory".
	Type        string
	DatabaseURL string
	SQLiteFile  string
}

type LockConfig struct {
	CreateWait time.Duration
	ModifyWait time.Duration
}

type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

func Default() *Config {
	return &Config{
		HTTPAddr: ":8080",
		Backend: BackendConfig{
			Type:       "sqlite",
			SQLiteFile: "data/campsited.db",
		},
		Lock: LockConfig{
			CreateWait: 20 * time.Second,
			ModifyWait: 3 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		MetricsEnabled: true,
	}
}

// Load reads an optional YAML file and CAMPSITED_* environment
// overrides (e.g. CAMPSITED_BACKEND_TYPE=postgres) on top of defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("CAMPSITED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if addr := v.GetString("http_addr"); addr != "" {
		cfg.HTTPAddr = addr
	}
	if t := v.GetString("backend_type"); t != "" {
		cfg.Backend.Type = t
	}
	if url := v.GetString("database_url"); url != "" {
		cfg.Backend.DatabaseURL = url
	}
	if f := v.GetString("sqlite_file"); f != "" {
		cfg.Backend.SQLiteFile = f
	}
	if lvl := v.GetString("log_level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if fm := v.GetString("log_format"); fm != "" {
		cfg.Log.Format = fm
	}

	switch cfg.Backend.Type {
	case "postgres":
		if cfg.Backend.DatabaseURL == "" {
			return nil, fmt.Errorf("backend %q requires CAMPSITED_DATABASE_URL", cfg.Backend.Type)
		}
	case "sqlite", "memory":
	default:
		return nil, fmt.Errorf("unknown backend type %q", cfg.Backend.Type)
	}
	return cfg, nil
}
