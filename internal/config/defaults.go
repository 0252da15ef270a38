package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

// DefaultRulesConfig returns the hardcoded fallback used if the embedded
// YAML ever fails to parse.
func DefaultRulesConfig() RulesConfig {
	return RulesConfig{
		Board:   BoardConfig{Cols: 9, Rows: 9},
		Palette: PaletteConfig{Size: 5, TealEnabled: false},
		Bombs: BombsConfig{
			InitialTimer:         15,
			MinSpawnInterval:     4,
			BaseSpawnInterval:    15,
			ScorePerIntervalStep: 5000,
		},
	}
}

// parseEmbeddedRules unmarshals the embedded default YAML, falling back
// to the hardcoded default if the embed is ever malformed.
func parseEmbeddedRules() RulesConfig {
	var cfg RulesConfig
	if err := yaml.Unmarshal(defaultRulesYAML, &cfg); err != nil {
		return DefaultRulesConfig()
	}
	return cfg
}
