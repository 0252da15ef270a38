package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads rules configuration. Search order: customPath ->
// ~/.hexic/configs/rules.yaml -> ./configs/rules.yaml -> embedded default,
// mirroring the teacher's per-game config search order.
func Load(customPath string) (RulesConfig, error) {
	var cfg RulesConfig

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userPath := userConfigPath("rules.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/rules.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	return parseEmbeddedRules(), nil
}

// userConfigPath returns the path to the user config file, or empty if
// the home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hexic", "configs", filename)
}

// WithTeal returns a copy of cfg with the teal palette toggled on,
// bumping palette size to 6 if it is currently lower.
func WithTeal(cfg RulesConfig) RulesConfig {
	cfg.Palette.TealEnabled = true
	if cfg.Palette.Size < 6 {
		cfg.Palette.Size = 6
	}
	return cfg
}
