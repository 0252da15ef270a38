package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mjrix/hexic-engine/internal/config"
	"github.com/mjrix/hexic-engine/internal/event"
	"github.com/mjrix/hexic-engine/internal/hexcore"
	"github.com/mjrix/hexic-engine/internal/session"
)

// replayOrigin/replayCellSize mirror internal/host/tui's fixed pixel
// grid, so a recorded select action's (col,row) round-trips through the
// same HexToPixel/PixelToHex transform a live player used.
var (
	replayOrigin   = hexcore.Point{X: 0, Y: 0}
	replayCellSize = 1.0
)

// RecordedAction is one step of a recorded transcript.
type RecordedAction struct {
	Type string `yaml:"type"` // select, rotate_cw, rotate_ccw, end_session, new_game
	Col  int    `yaml:"col,omitempty"`
	Row  int    `yaml:"row,omitempty"`
	Seed uint64 `yaml:"seed,omitempty"` // only used by new_game
}

// Transcript is a recorded seed, mode, and action sequence, optionally
// paired with the event summary lines it originally produced so replay
// can verify the engine still reproduces them byte-for-byte.
type Transcript struct {
	Seed    uint64           `yaml:"seed"`
	Mode    string           `yaml:"mode"`
	Match   string           `yaml:"match"`
	Actions []RecordedAction `yaml:"actions"`
	Events  []string         `yaml:"events,omitempty"`
}

var replayCmd = &cobra.Command{
	Use:   "replay <path>",
	Short: "Re-run a recorded action transcript",
	Long: `Loads a recorded seed and action sequence from path and re-runs it
through a fresh session. If the transcript carries a recorded event log,
the replayed transcript is diffed against it line by line; any mismatch
means the engine is no longer deterministic for that input and is
reported as an error.`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transcript: %v\n", err)
		os.Exit(1)
	}

	var t Transcript
	if err := yaml.Unmarshal(data, &t); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing transcript: %v\n", err)
		os.Exit(1)
	}

	mode, matchMode, err := parseModes(t.Mode, t.Match)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	sess := session.New(cfg, mode, matchMode, t.Seed, nil)

	var got []string
	for i, a := range t.Actions {
		events := applyRecordedAction(sess, a)
		for _, e := range events {
			got = append(got, eventSummary(e))
		}
		if sess.Phase == session.PhaseGameOver {
			fmt.Printf("game over after action %d of %d\n", i+1, len(t.Actions))
			break
		}
	}

	fmt.Printf("replayed %d actions, %d events\n", len(t.Actions), len(got))

	if len(t.Events) == 0 {
		for _, line := range got {
			fmt.Println(line)
		}
		return
	}

	if mismatch, idx := diffEvents(t.Events, got); mismatch {
		fmt.Fprintf(os.Stderr, "event transcript diverged at index %d:\n  recorded: %s\n  replayed: %s\n",
			idx, safeIndex(t.Events, idx), safeIndex(got, idx))
		os.Exit(1)
	}

	fmt.Println("event transcript matches recording: deterministic replay confirmed")
}

func applyRecordedAction(sess *session.GameSession, a RecordedAction) []event.Event {
	switch a.Type {
	case "select":
		p := hexcore.HexToPixel(hexcore.Coord{Col: a.Col, Row: a.Row}, replayOrigin, replayCellSize)
		return sess.Select(p, replayOrigin, replayCellSize)
	case "rotate_cw":
		return sess.Rotate(true)
	case "rotate_ccw":
		return sess.Rotate(false)
	case "end_session":
		return sess.EndSession()
	case "new_game":
		return sess.NewGame(a.Seed)
	default:
		return nil
	}
}

// eventSummary renders an event as a stable, comparable line. Only the
// fields that determine observable outcome are included - a centroid's
// float math or a board snapshot pointer would make the line unstable
// without changing what actually happened.
func eventSummary(e event.Event) string {
	switch e := e.(type) {
	case event.Matched:
		return fmt.Sprintf("Matched cells=%d points=%d chain=%d", len(e.Set), e.Points, e.ChainLevel)
	case event.Cleared:
		return fmt.Sprintf("Cleared cells=%d", len(e.Set))
	case event.StarflowerBorn:
		return fmt.Sprintf("StarflowerBorn center=%v", e.Center)
	case event.BlackPearlBorn:
		return fmt.Sprintf("BlackPearlBorn center=%v", e.Center)
	case event.Gravity:
		return fmt.Sprintf("Gravity falls=%d", len(e.FallMap))
	case event.Refilled:
		return fmt.Sprintf("Refilled cells=%d", len(e.Positions))
	case event.BombSpawned:
		return fmt.Sprintf("BombSpawned pos=%v", e.Pos)
	case event.BombTicked:
		return fmt.Sprintf("BombTicked pos=%v remaining=%d", e.Pos, e.Remaining)
	case event.ScoreChanged:
		return fmt.Sprintf("ScoreChanged new=%d", e.New)
	case event.ChainAdvanced:
		return fmt.Sprintf("ChainAdvanced level=%d", e.Level)
	case event.PhaseChanged:
		return fmt.Sprintf("PhaseChanged new=%d", e.New)
	case event.GameOver:
		return fmt.Sprintf("GameOver reason=%d", e.Reason)
	case event.InvariantViolated:
		return fmt.Sprintf("InvariantViolated reason=%s pos=%v", e.Reason, e.Pos)
	case event.RestoreFailed:
		return fmt.Sprintf("RestoreFailed reason=%s", e.Reason)
	default:
		return fmt.Sprintf("%T", e)
	}
}

func diffEvents(recorded, replayed []string) (mismatch bool, idx int) {
	n := len(recorded)
	if len(replayed) > n {
		n = len(replayed)
	}
	for i := 0; i < n; i++ {
		if safeIndex(recorded, i) != safeIndex(replayed, i) {
			return true, i
		}
	}
	return false, -1
}

func safeIndex(s []string, i int) string {
	if i < 0 || i >= len(s) {
		return "<missing>"
	}
	return s[i]
}
