package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// SettingsFile is the file name looked up in the config directories.
const SettingsFile = "settings.yaml"

// Load reads session settings.
// Search order: customPath -> ~/.mindgym/settings.yaml -> ./configs/settings.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names. The result is normalized.
func Load(customPath string) (Settings, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultSettings(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultSettings(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(SettingsFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", SettingsFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultSettingsYAML)
	if err != nil {
		return DefaultSettings(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (Settings, error) {
	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, err
	}
	return cfg.Normalize(), nil
}

// Save writes settings as YAML, creating parent directories.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// UserSettingsPath returns ~/.mindgym/settings.yaml, or empty if home is
// unavailable.
func UserSettingsPath() string {
	return userConfigPath(SettingsFile)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mindgym", filename)
}

// Env holds overrides read from the environment. Flags set on the command
// line take precedence over these.
type Env struct {
	DB       string `env:"MINDGYM_DB"`
	Seed     int64  `env:"MINDGYM_SEED"`
	Settings string `env:"MINDGYM_SETTINGS"`
	LogLevel string `env:"MINDGYM_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads the MINDGYM_* variables.
func LoadEnv() (Env, error) {
	var e Env
	err := ParseEnv(&e)
	return e, err
}
