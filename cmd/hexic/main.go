// hexic is a terminal front end for the hexagonal tile-matching rules
// engine in internal/session.
//
// Usage:
//
//	hexic play             - Play interactively (resumes a saved slot if present)
//	hexic scores           - Show high scores for a mode
//	hexic replay <path>    - Re-run a recorded action transcript and diff events
//
// Global flags:
//
//	--mode <arcade|chill>    - Game mode (default: arcade)
//	--match <line|triangle>  - Match mode (default: line)
//	--seed <value>           - RNG seed for a fresh game (0 = time-based)
//	--db <path>              - Scores/session database path
//	--config <path>          - Custom rules config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagMode   string
	flagMatch  string
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexic",
	Short: "Hexic - a hexagonal tile-matching puzzle engine",
	Long: `hexic runs the hex tile-matching rules engine behind a terminal
front end.

Available commands:
  play     - Play interactively
  scores   - View high scores for a mode
  replay   - Re-run a recorded action transcript

Examples:
  hexic play --mode arcade --match line
  hexic play --mode chill --match triangle
  hexic scores --mode arcade
  hexic replay mygame.yaml`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "arcade", "Game mode: arcade, chill")
	rootCmd.PersistentFlags().StringVar(&flagMatch, "match", "line", "Match mode: line, triangle")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = time-based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hexic/hexic.db", "Path to scores/session database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules config YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
}
