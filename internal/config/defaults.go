package config

import (
	_ "embed"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the hardcoded fallback settings. They match the
// embedded defaults/settings.yaml.
func DefaultSettings() Settings {
	return Settings{
		Tetris: TetrisSettings{
			Enabled: true,
			Timer:   1000,
		},
		Snake: SnakeSettings{
			Enabled: false,
			Timer:   100,
		},
		NBack: NBackSettings{
			Enabled:   true,
			Timer:     3000,
			N:         2,
			Positions: true,
			Colors:    true,
		},
		Counting: CountingSettings{
			Enabled: false,
			Timer:   3000,
			Min:     3,
			Max:     10,
		},
		Pasat: PasatSettings{
			Enabled: false,
			Timer:   3000,
			N:       2,
		},
	}
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultSettingsYAML
}
