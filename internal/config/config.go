// Package config loads service configuration with koanf.
//
// Sources are layered, later ones winning:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file (CONFIG_PATH, then config.yaml)
//  3. Environment variables
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Firestore FirestoreConfig `koanf:"firestore"`
	List      ListConfig      `koanf:"list"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
	// LocalOnly binds the local server to 127.0.0.1.
	LocalOnly   bool   `koanf:"local_only"`
	Environment string `koanf:"environment"`
}

type DatabaseConfig struct {
	Path     string `koanf:"path"`
	PoolSize int    `koanf:"pool_size"`
	// SeedCatalog imports the demo catalog on startup.
	SeedCatalog bool `koanf:"seed_catalog"`
}

type FirestoreConfig struct {
	ProjectID  string `koanf:"project_id"`
	DatabaseID string `koanf:"database_id"`
	// AdminUID is created in the Auth emulator when running locally.
	AdminUID string `koanf:"admin_uid"`
}

type ListConfig struct {
	// PageSize is the page size of mounted list views.
	PageSize        int           `koanf:"page_size"`
	DefaultPageSize int           `koanf:"default_page_size"`
	MaxPageSize     int           `koanf:"max_page_size"`
	ViewTTL         time.Duration `koanf:"view_ttl"`
	SweepInterval   time.Duration `koanf:"sweep_interval"`
	// MaxViews caps mounted list views; the least recently seen is evicted.
	MaxViews int `koanf:"max_views"`
}

type SecurityConfig struct {
	CORSOrigin string `koanf:"cors_origin"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "5000",
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:     "eventfinder.db",
			PoolSize: 4,
		},
		Firestore: FirestoreConfig{
			ProjectID: "local-project-id",
		},
		List: ListConfig{
			PageSize:        50,
			DefaultPageSize: 20,
			MaxPageSize:     100,
			ViewTTL:         30 * time.Minute,
			MaxViews:        1000,
			SweepInterval:   time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigin: "*",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// envMappings maps the environment variables we honor to koanf paths.
var envMappings = map[string]string{
	"port":                  "server.port",
	"local_only":            "server.local_only",
	"app_env":               "server.environment",
	"sqlite_path":           "database.path",
	"sqlite_pool_size":      "database.pool_size",
	"seed_catalog":          "database.seed_catalog",
	"google_cloud_project":  "firestore.project_id",
	"firestore_database_id": "firestore.database_id",
	"firestore_admin_uid":   "firestore.admin_uid",
	"list_page_size":        "list.page_size",
	"api_default_page_size": "list.default_page_size",
	"api_max_page_size":     "list.max_page_size",
	"view_ttl":              "list.view_ttl",
	"view_sweep_interval":   "list.sweep_interval",
	"list_max_views":        "list.max_views",
	"cors_allowed_origin":   "security.cors_origin",
	"log_level":             "logging.level",
	"log_format":            "logging.format",
}

// envTransformFunc returns "" for variables we do not map, which koanf skips.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Load builds the configuration from defaults, file and environment.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.List.PageSize <= 0 {
		return fmt.Errorf("list.page_size must be positive, got %d", c.List.PageSize)
	}
	if c.List.MaxPageSize <= 0 || c.List.DefaultPageSize <= 0 {
		return fmt.Errorf("list page sizes must be positive")
	}
	if c.List.DefaultPageSize > c.List.MaxPageSize {
		return fmt.Errorf("list.default_page_size (%d) exceeds list.max_page_size (%d)",
			c.List.DefaultPageSize, c.List.MaxPageSize)
	}
	if c.List.ViewTTL <= 0 {
		return fmt.Errorf("list.view_ttl must be positive")
	}
	if c.List.MaxViews <= 0 {
		return fmt.Errorf("list.max_views must be positive, got %d", c.List.MaxViews)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
