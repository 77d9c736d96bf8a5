package config

import (
	"fmt"
	"log"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	defaultDBPath = "./dev.db"
	defaultPort   = "8080"
	defaultEnv    = "dev"
)

// FormDefaults are the values the calculator form starts with.
type FormDefaults struct {
	PricePerUnitArea float64 `toml:"price_per_unit_area"`
	TotalArea        float64 `toml:"total_area"`
	NumPeople        int64   `toml:"num_people"`
	AdvancePercent   float64 `toml:"advance_percent"`
}

// DefaultFormDefaults returns the starting values of the original form.
func DefaultFormDefaults() FormDefaults {
	return FormDefaults{
		PricePerUnitArea: 4900,
		TotalArea:        1200,
		NumPeople:        2,
		AdvancePercent:   20,
	}
}

// Config holds application configuration sourced from environment variables.
type Config struct {
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	DBPath        string
	Port          string
	Env           string
	Defaults      FormDefaults
}

// IsDev reports whether the server runs in the development environment.
func (c Config) IsDev() bool {
	return c.Env == defaultEnv
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBPath:        os.Getenv("DB_PATH"),
		Port:          os.Getenv("PORT"),
		Env:           os.Getenv("APP_ENV"),
		Defaults:      DefaultFormDefaults(),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}

	if path := os.Getenv("FORM_DEFAULTS_FILE"); path != "" {
		defaults, err := LoadFormDefaults(path, cfg.Defaults)
		if err != nil {
			log.Printf("warning: ignoring form defaults: %v", err)
		} else {
			cfg.Defaults = defaults
		}
	}

	if cfg.AdminEmail == "" {
		log.Print("warning: ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		log.Print("warning: ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		log.Print("warning: SESSION_SECRET is not set")
	}

	return cfg
}

// LoadFormDefaults decodes a TOML file on top of base. Keys missing from the
// file keep their base value.
func LoadFormDefaults(path string, base FormDefaults) (FormDefaults, error) {
	defaults := base
	if _, err := toml.DecodeFile(path, &defaults); err != nil {
		return base, fmt.Errorf("decode form defaults %s: %w", path, err)
	}
	return defaults, nil
}
