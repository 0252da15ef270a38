package config

import "testing"

func TestLoadFallsBackToEmbeddedDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if cfg.Board.Cols != 9 || cfg.Board.Rows != 9 {
		t.Errorf("expected default 9x9 board, got %dx%d", cfg.Board.Cols, cfg.Board.Rows)
	}
	if cfg.Palette.Size != 5 {
		t.Errorf("expected default palette size 5, got %d", cfg.Palette.Size)
	}
	if cfg.Bombs.InitialTimer != 15 {
		t.Errorf("expected default bomb timer 15, got %d", cfg.Bombs.InitialTimer)
	}
}

func TestLoadCustomPathMissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/rules.yaml"); err == nil {
		t.Errorf("expected an error for a missing custom config path")
	}
}

func TestWithTealBumpsPaletteSize(t *testing.T) {
	cfg := DefaultRulesConfig()
	cfg = WithTeal(cfg)
	if !cfg.Palette.TealEnabled {
		t.Errorf("expected teal enabled")
	}
	if cfg.Palette.EffectiveSize() != 6 {
		t.Errorf("expected effective palette size 6, got %d", cfg.Palette.EffectiveSize())
	}
}

func TestPaletteEffectiveSizeWithoutTeal(t *testing.T) {
	cfg := DefaultRulesConfig()
	if cfg.Palette.EffectiveSize() != 5 {
		t.Errorf("expected effective palette size 5 without teal, got %d", cfg.Palette.EffectiveSize())
	}
}

func TestBombsSpawnIntervalFormula(t *testing.T) {
	bc := DefaultRulesConfig().Bombs
	tests := []struct {
		score int
		want  int
	}{
		{0, 15},
		{5000, 14},
		{50000, 5},
		{1000000, 4}, // clamped at the minimum
	}
	for _, tc := range tests {
		got := bc.SpawnInterval(tc.score)
		if got != tc.want {
			t.Errorf("SpawnInterval(%d) = %d, want %d", tc.score, got, tc.want)
		}
	}
}
