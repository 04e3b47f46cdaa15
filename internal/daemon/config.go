// Package daemon manages the Kopalnia daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Catalog   CatalogConfig   `toml:"catalog"`
	Engine    EngineConfig    `toml:"engine"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// CatalogConfig controls where content files are read from.
type CatalogConfig struct {
	Dir string `toml:"dir"`
}

// EngineConfig tunes the progression engine.
type EngineConfig struct {
	// DailyXPCap limits XP gained per learner per day. 0 disables the cap.
	DailyXPCap int `toml:"daily_xp_cap"`
	// GlobalDaily serves one shared challenge to everyone instead of a
	// per-learner pick.
	GlobalDaily bool `toml:"global_daily"`
}

// TelemetryConfig controls metrics exposure.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := kopalniaHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        8437,
			CORSOrigins: []string{"*"},
		},
		Catalog: CatalogConfig{
			Dir: filepath.Join(homeDir, "catalog"),
		},
		Engine: EngineConfig{
			DailyXPCap: 120,
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
	}
}

// LoadConfig reads config from ~/.kopalnia/config.toml, falling back to
// defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(kopalniaHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.kopalnia/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(kopalniaHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// kopalniaHome returns the Kopalnia data directory.
func kopalniaHome() string {
	if env := os.Getenv("KOPALNIA_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".kopalnia")
}

// KopalniaHome is exported for use by other packages.
func KopalniaHome() string {
	return kopalniaHome()
}
