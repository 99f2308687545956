package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file looked up in the user and local config directories.
const ConfigFileName = "echorift.yaml"

// LoadRift loads the EchoRift configuration.
// Search order: customPath -> ~/.echorift/configs/echorift.yaml -> ./configs/echorift.yaml -> embedded default.
// Files are overlaid on the embedded default, so they only need the keys they change.
func LoadRift(customPath string) (RiftConfig, error) {
	base := embeddedDefault()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return base, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(customPath, data, base)
		if err != nil {
			return base, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return base, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Broken files in the search path are skipped, like a missing file
	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := decode(path, data, base)
		if err != nil || cfg.Validate() != nil {
			continue
		}
		return cfg, nil
	}

	return base, nil
}

// ParseRift decodes configuration bytes in the given format ("yaml" or "toml")
// on top of the embedded default and validates the result.
func ParseRift(format string, data []byte) (RiftConfig, error) {
	cfg, err := decode("config."+format, data, embeddedDefault())
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// decode picks the decoder from the file extension.
func decode(path string, data []byte, base RiftConfig) (RiftConfig, error) {
	cfg := base.Clone()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return base, err
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return base, err
		}
	default:
		return base, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return cfg, nil
}

// embeddedDefault parses the embedded YAML, falling back to the hardcoded default.
func embeddedDefault() RiftConfig {
	var cfg RiftConfig
	if err := yaml.Unmarshal(defaultRiftYAML, &cfg); err != nil {
		return DefaultRiftConfig()
	}
	return cfg
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(ConfigFileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", ConfigFileName))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".echorift", "configs", filename)
}

// ApplyRiftPreset adjusts scroll speed and spawn cadence for a difficulty preset.
// Normal leaves the config untouched.
func ApplyRiftPreset(cfg *RiftConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.BaseSpeed *= 0.8
		cfg.Physics.MaxSpeed *= 0.8
		cfg.Obstacles.Interval = cfg.Obstacles.Interval * 5 / 4
		cfg.Dash.Cooldown = cfg.Dash.Cooldown * 2 / 3
	case DifficultyHard:
		cfg.Physics.BaseSpeed *= 1.2
		cfg.Physics.MaxSpeed *= 1.2
		cfg.Obstacles.Interval = cfg.Obstacles.Interval * 4 / 5
		cfg.Crystals.Interval = cfg.Crystals.Interval * 5 / 4
	}
}
