package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/mjrix/hexic-engine/internal/match"
	"github.com/mjrix/hexic-engine/internal/session"
)

// parseModes validates the --mode/--match flags shared by play, scores,
// and replay.
func parseModes(modeStr, matchStr string) (session.GameMode, match.Mode, error) {
	mode, err := session.ParseGameMode(modeStr)
	if err != nil {
		return 0, 0, err
	}
	matchMode, err := match.ParseMode(matchStr)
	if err != nil {
		return 0, 0, err
	}
	return mode, matchMode, nil
}

// slotID is the deterministic save-slot identifier for one combined
// mode, so "hexic play" always resumes the same in-progress game for
// that mode rather than starting a new uuid-keyed session every run.
func slotID(modeID string) string {
	return fmt.Sprintf("slot_%s", modeID)
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
}
