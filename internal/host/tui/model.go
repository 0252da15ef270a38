package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mjrix/hexic-engine/internal/event"
	"github.com/mjrix/hexic-engine/internal/hexcore"
	"github.com/mjrix/hexic-engine/internal/session"
	"github.com/mjrix/hexic-engine/internal/storage"
)

// hexOrigin and hexCellSize define the pixel-space unit grid the host
// hit-tests the cursor against; the session's Select takes these as call
// parameters rather than session state (see DESIGN.md), so any consistent
// pair works as long as the host uses the same one every call.
var (
	hexOrigin   = hexcore.Point{X: 0, Y: 0}
	hexCellSize = 1.0
)

// Model is the Bubble Tea model driving one GameSession: a keyboard
// cursor over the hex grid plus the four session actions, rendered to a
// core.Screen.
type Model struct {
	sess     *session.GameSession
	store    *storage.Store
	logger   *log.Logger
	cursor   hexcore.Coord
	status   string
	quitting bool

	keys keyMap
	help help.Model
}

// NewModel creates a model for the given session. store may be nil, in
// which case scores and saved state are never persisted.
func NewModel(sess *session.GameSession, store *storage.Store, logger *log.Logger) Model {
	return Model{
		sess:   sess,
		store:  store,
		logger: logger,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

// Init starts the Bubble Tea program; the engine is synchronous and
// turn-based, so there is no tick loop to start.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles one input message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := mapKey(m.keys, msg)

	switch action {
	case ActionQuit:
		m.quitting = true
		m.persist()
		return m, tea.Quit
	case ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case ActionCursorUp:
		m.moveCursor(0, -1)
	case ActionCursorDown:
		m.moveCursor(0, 1)
	case ActionCursorLeft:
		m.moveCursor(-1, 0)
	case ActionCursorRight:
		m.moveCursor(1, 0)
	case ActionSelect:
		m.dispatch(m.sess.Select(hexcore.HexToPixel(m.cursor, hexOrigin, hexCellSize), hexOrigin, hexCellSize))
	case ActionRotateCW:
		m.dispatch(m.sess.Rotate(true))
	case ActionRotateCCW:
		m.dispatch(m.sess.Rotate(false))
	case ActionEndSession:
		m.dispatch(m.sess.EndSession())
	case ActionNewGame:
		m.dispatch(m.sess.NewGame(uint64(len(m.status)) + 1))
	}

	if m.sess.Phase == session.PhaseGameOver {
		m.persist()
	}

	return m, nil
}

func (m *Model) moveCursor(dCol, dRow int) {
	next := hexcore.Coord{Col: m.cursor.Col + dCol, Row: m.cursor.Row + dRow}
	if m.sess.Board.InBounds(next) {
		m.cursor = next
	}
}

// dispatch folds an action's event transcript into the status line and
// logs notable transitions, the same role the teacher's Model plays by
// saving scores on game over.
func (m *Model) dispatch(events []event.Event) {
	for _, e := range events {
		switch e := e.(type) {
		case event.Matched:
			m.status = fmt.Sprintf("matched %d cells, +%d", len(e.Set), e.Points)
		case event.GameOver:
			m.status = fmt.Sprintf("game over: %s", gameOverReasonString(e.Reason))
			if m.logger != nil {
				m.logger.Info("game over", "reason", gameOverReasonString(e.Reason), "score", m.sess.Score.Score)
			}
		case event.RestoreFailed:
			m.status = "restore failed: " + e.Reason
		}
	}
}

func gameOverReasonString(r event.GameOverReason) string {
	if r == event.GameOverBombExpired {
		return "bomb expired"
	}
	return "session ended"
}

// persist saves the current high score and session state, best-effort,
// mirroring the teacher's "best-effort save, game continues regardless"
// comment in its own Model.
func (m *Model) persist() {
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveScore(m.sess.ModeID(), m.sess.Score.Score); err != nil && m.logger != nil {
		m.logger.Warn("save score failed", "err", err)
	}
	if err := m.store.SaveSession(m.sess.Snapshot()); err != nil && m.logger != nil {
		m.logger.Warn("save session failed", "err", err)
	}
}

// View renders the board, a one-line status bar, and a key help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderBoard(m.sess, m.cursor) + "\n" + m.statusLine() + "\n" + m.help.View(m.keys)
}

func (m Model) statusLine() string {
	line := fmt.Sprintf("score %d  move %d  phase %s", m.sess.Score.Score, m.sess.MoveCount, phaseString(m.sess.Phase))
	if m.status != "" {
		line += "  |  " + m.status
	}
	return line
}

func phaseString(p session.Phase) string {
	switch p {
	case session.PhaseIdle:
		return "idle"
	case session.PhaseSelected:
		return "selected"
	case session.PhaseRotating:
		return "rotating"
	case session.PhaseCascading:
		return "cascading"
	case session.PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Run starts the Bubble Tea program for sess.
func Run(sess *session.GameSession, store *storage.Store, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(sess, store, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
