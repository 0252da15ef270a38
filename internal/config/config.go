// Package config provides YAML-based rules configuration loading for the
// engine, following the teacher's per-game config struct + embedded
// default pattern.
package config

// RulesConfig holds the host-tunable constants: board size, palette, and
// bomb timing. Multiplier spawn probability, the score-by-size table, and
// the chain multiplier base have no per-mode variance called for, so they
// stay as package-level constants in board, special, and score rather
// than config fields — see DESIGN.md.
//
// A GameSession is built from one RulesConfig; hosts may load one from
// YAML or fall back to DefaultRulesConfig.
type RulesConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Palette PaletteConfig `yaml:"palette"`
	Bombs   BombsConfig   `yaml:"bombs"`
}

// BoardConfig sizes the grid (default 9x9).
type BoardConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// PaletteConfig controls how many regular colors are in play. Teal is an
// optional 6th color: enabling it raises Size from 5 to 6.
type PaletteConfig struct {
	Size       int  `yaml:"size"`
	TealEnabled bool `yaml:"teal_enabled"`
}

// EffectiveSize returns Size, bumped to 6 when teal is enabled and the
// configured size would otherwise leave it out.
func (p PaletteConfig) EffectiveSize() int {
	if p.TealEnabled && p.Size < 6 {
		return 6
	}
	return p.Size
}

// BombsConfig holds the arcade-mode bomb timing constants and the dynamic
// spawn-interval formula.
type BombsConfig struct {
	InitialTimer     int `yaml:"initial_timer"`
	MinSpawnInterval int `yaml:"min_spawn_interval"`
	BaseSpawnInterval int `yaml:"base_spawn_interval"`
	ScorePerIntervalStep int `yaml:"score_per_interval_step"`
}

// SpawnInterval computes max(MinSpawnInterval, BaseSpawnInterval -
// score/ScorePerIntervalStep): the move gap between bomb spawns shrinks
// as the score climbs, floored so the game never spawns impossibly fast.
func (bc BombsConfig) SpawnInterval(score int) int {
	step := bc.ScorePerIntervalStep
	if step <= 0 {
		step = 1
	}
	interval := bc.BaseSpawnInterval - score/step
	if interval < bc.MinSpawnInterval {
		return bc.MinSpawnInterval
	}
	return interval
}

