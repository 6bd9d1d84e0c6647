package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config = Default()

// DefaultPaths are searched in order by LoadAppConfig
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// Default returns the configuration used when no config.yml is present
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Port:              3000,
			ReadTimeoutMS:     10000,
			WriteTimeoutMS:    30000,
			ShutdownTimeoutMS: 10000,
		},
		Data: DataConfig{
			BasicUsers:    "data/basicUsers.json",
			DetailedUsers: "data/detailedUsers.json",
			TimeoutMS:     5000,
			S3:            S3Config{Region: "us-east-1"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}

// LoadAppConfig loads and validates the application configuration from the first
// existing file in DefaultPaths. If none exists the returned error wraps fs.ErrNotExist.
func LoadAppConfig() error {
	for _, p := range DefaultPaths {
		err := LoadAppConfigFrom(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return err
	}
	return fmt.Errorf("no config file in %s: %w", strings.Join(DefaultPaths, ", "), fs.ErrNotExist)
}

// LoadAppConfigFrom loads, defaults and validates the configuration at path and
// stores it in Config.
func LoadAppConfigFrom(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	Config = cfg
	return nil
}

// Parse decodes YAML, applies defaults and environment overrides, then validates.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	ApplyDefaults(&cfg)
	applyEnv(&cfg)
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// ApplyDefaults fills zero-valued fields from Default
func ApplyDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.ReadTimeoutMS == 0 {
		cfg.Server.ReadTimeoutMS = def.Server.ReadTimeoutMS
	}
	if cfg.Server.WriteTimeoutMS == 0 {
		cfg.Server.WriteTimeoutMS = def.Server.WriteTimeoutMS
	}
	if cfg.Server.ShutdownTimeoutMS == 0 {
		cfg.Server.ShutdownTimeoutMS = def.Server.ShutdownTimeoutMS
	}
	if cfg.Data.BasicUsers == "" {
		cfg.Data.BasicUsers = def.Data.BasicUsers
	}
	if cfg.Data.DetailedUsers == "" {
		cfg.Data.DetailedUsers = def.Data.DetailedUsers
	}
	if cfg.Data.TimeoutMS == 0 {
		cfg.Data.TimeoutMS = def.Data.TimeoutMS
	}
	if cfg.Data.S3.Region == "" {
		cfg.Data.S3.Region = def.Data.S3.Region
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = def.CORS.AllowedOrigins
	}
}

// UseDefaults stores Default, with environment overrides, in Config
func UseDefaults() {
	cfg := Default()
	applyEnv(&cfg)
	Config = cfg
}

// Validate checks struct tags on the whole configuration
func Validate(cfg AppConfig) error {
	v := validator.New()
	return v.Struct(cfg)
}

// applyEnv lets a numeric PORT override server.port
func applyEnv(cfg *AppConfig) {
	if p, ok := os.LookupEnv("PORT"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			cfg.Server.Port = n
		}
	}
}
