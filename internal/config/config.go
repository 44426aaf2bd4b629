package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends accepted by store.backend.
const (
	BackendFile = "file"
	BackendSQL  = "sql"
)

type Config struct {
	HTTP struct {
		Addr           string
		ReadTimeout    time.Duration
		WriteTimeout   time.Duration
		RequestTimeout time.Duration
	}
	Store struct {
		Backend string
		File    string
	}
	DB struct {
		Driver         string
		DSN            string
		ConnectTimeout time.Duration
	}
	Log struct {
		Level  string
		Format string
	}
	CORSOrigins []string
	StaticDir   string
}

// Load reads config from the environment (LINKBOARD_ prefix, optionally
// populated from a .env file) and an optional linkboard.yaml.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional .env; real environment wins

	v := viper.New()
	v.SetEnvPrefix("LINKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("linkboard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":3000")
	v.SetDefault("http.read_timeout", "5s")
	v.SetDefault("http.write_timeout", "10s")
	v.SetDefault("http.request_timeout", "5s")
	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.file", "links.json")
	v.SetDefault("db.connect_timeout", "5s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("cors.origins", "*")

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.Store.Backend = strings.ToLower(v.GetString("store.backend"))
	cfg.Store.File = v.GetString("store.file")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.StaticDir = v.GetString("static.dir")
	cfg.CORSOrigins = splitList(v.GetString("cors.origins"))

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"http.read_timeout", &cfg.HTTP.ReadTimeout},
		{"http.write_timeout", &cfg.HTTP.WriteTimeout},
		{"http.request_timeout", &cfg.HTTP.RequestTimeout},
		{"db.connect_timeout", &cfg.DB.ConnectTimeout},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(v.GetString(d.key))
		if err != nil {
			return nil, fmt.Errorf("invalid LINKBOARD_%s: %w", envName(d.key), err)
		}
		*d.dst = parsed
	}

	switch cfg.Store.Backend {
	case BackendFile:
		if cfg.Store.File == "" {
			return nil, fmt.Errorf("LINKBOARD_STORE_FILE is required for the file backend")
		}
	case BackendSQL:
		if cfg.DB.Driver == "" {
			return nil, fmt.Errorf("LINKBOARD_DB_DRIVER is required (sqlite3, mysql, postgres)")
		}
		if cfg.DB.DSN == "" {
			return nil, fmt.Errorf("LINKBOARD_DB_DSN is required")
		}
	default:
		return nil, fmt.Errorf("invalid LINKBOARD_STORE_BACKEND %q: must be %s or %s", cfg.Store.Backend, BackendFile, BackendSQL)
	}

	return cfg, nil
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// splitList parses a comma separated setting, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
