package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mjrix/hexic-engine/internal/config"
	"github.com/mjrix/hexic-engine/internal/event"
	"github.com/mjrix/hexic-engine/internal/host/tui"
	"github.com/mjrix/hexic-engine/internal/match"
	"github.com/mjrix/hexic-engine/internal/session"
	"github.com/mjrix/hexic-engine/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively",
	Long: `Start an interactive session in the terminal.

If a saved game exists for --mode/--match, it resumes from there;
otherwise a fresh board is dealt using --seed.

Controls:
  Arrows/WASD  - Move cursor
  Enter/Space  - Select a hex for rotation
  R            - Rotate clockwise
  Shift+R      - Rotate counter-clockwise
  E            - End session (chill mode only)
  N            - Start a new game
  Q/Ctrl+C     - Quit (saves before exiting)`,
	Run: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	mode, matchMode, err := parseModes(flagMode, flagMatch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		store = nil
	}

	logger := newLogger()
	sess := loadOrCreateSession(store, cfg, mode, matchMode, logger)

	runErr := tui.Run(sess, store, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// loadOrCreateSession resumes the per-mode save slot if one exists and
// restores cleanly, otherwise deals a fresh board. The slot id is
// deterministic (see slotID) so this CLI always has exactly one
// in-progress game per mode.
func loadOrCreateSession(store *storage.Store, cfg config.RulesConfig, mode session.GameMode, matchMode match.Mode, logger *log.Logger) *session.GameSession {
	modeID := fmt.Sprintf("%s_%s", mode, matchMode)

	if store != nil {
		if rec, err := store.LoadSession(slotID(modeID), modeID); err == nil && rec != nil {
			sess, events := session.Restore(*rec, cfg, mode, matchMode, logger)
			if restoreOK(events) {
				return sess
			}
			fmt.Fprintln(os.Stderr, "Warning: saved game was corrupt, starting fresh")
		}
	}

	seed := uint64(flagSeed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	sess := session.New(cfg, mode, matchMode, seed, logger)
	sess.ID = slotID(modeID)
	return sess
}

// restoreOK reports whether Restore's event transcript contains no
// RestoreFailed event.
func restoreOK(events []event.Event) bool {
	for _, e := range events {
		if _, failed := e.(event.RestoreFailed); failed {
			return false
		}
	}
	return true
}
