package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tilemerge/engine"
	"tilemerge/gamemaster"
	"tilemerge/searcher/agent"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// TickMsg asks the model to play one automatic move. Ticks from an earlier
// autoplay run carry an old generation and are dropped.
type TickMsg struct {
	generation int
}

// moveMsg carries a finished search back to the update loop.
type moveMsg struct {
	generation int
	decision   engine.Decision
	err        error
}

func tickCmd(interval time.Duration, generation int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{generation: generation}
	})
}

// Model renders a session and lets the agent play it on a timer. Arrow keys
// move by hand, p pauses or resumes autoplay, r restarts and q quits.
type Model struct {
	ctx        context.Context
	session    *gamemaster.Session
	agent      agent.Agent
	player     *engine.AutoPlayer
	interval   time.Duration
	auto       bool
	generation int
	searching  bool // A search command is in flight
	status     string
}

func New(ctx context.Context, session *gamemaster.Session, a agent.Agent, interval time.Duration) Model {
	return Model{
		ctx:      ctx,
		session:  session,
		agent:    a,
		player:   engine.NewAutoPlayer(session, a),
		interval: interval,
		auto:     true,
	}
}

func (m Model) Init() tea.Cmd {
	if !m.auto {
		return nil
	}
	return tickCmd(m.interval, m.generation)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if !m.auto || msg.generation != m.generation || m.searching {
			return m, nil
		}
		m.searching = true
		return m, m.searchCmd()
	case moveMsg:
		m.searching = false
		if !m.auto {
			return m, nil
		}
		if msg.generation != m.generation {
			return m, tickCmd(m.interval, m.generation)
		}
		return m.apply(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		m.player.Stop()
		return m, tea.Quit
	case "up", "down", "left", "right":
		result, err := m.session.RequestMove(key)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
		if result.Terminal {
			m.status = "game over"
		}
		return m, nil
	case "p":
		if m.auto {
			m.auto = false
			m.status = "paused"
			return m, nil
		}
		return m.resume()
	case "r":
		if err := m.session.Reset(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.player.Stop()
		m.status = ""
		return m.resume()
	}
	return m, nil
}

// resume restarts autoplay with a fresh player if the previous one stopped.
func (m Model) resume() (tea.Model, tea.Cmd) {
	if !m.player.Running() {
		m.player = engine.NewAutoPlayer(m.session, m.agent)
	}
	m.auto = true
	m.generation++
	if m.status == "paused" {
		m.status = ""
	}
	if m.searching {
		// The pending search result schedules the next tick.
		return m, nil
	}
	return m, tickCmd(m.interval, m.generation)
}

// searchCmd runs the agent outside the update loop so keys stay responsive.
func (m Model) searchCmd() tea.Cmd {
	player, generation, ctx := m.player, m.generation, m.ctx
	return func() tea.Msg {
		decision, err := player.Decide(ctx)
		return moveMsg{generation: generation, decision: decision, err: err}
	}
}

func (m Model) apply(msg moveMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil && msg.decision.Grid != nil && !msg.decision.Grid.Equal(m.session.Grid()) {
		// The grid moved by hand during the search.
		return m, tickCmd(m.interval, m.generation)
	}
	err := msg.err
	played := false
	if err == nil {
		_, played, err = m.player.Apply(msg.decision)
	}
	if err != nil {
		log.Error().Err(err).Msg("autoplay failed")
		m.auto = false
		m.status = err.Error()
		return m, nil
	}
	if !played {
		m.auto = false
		if m.player.GameOver() {
			m.status = "game over"
		}
		return m, nil
	}
	return m, tickCmd(m.interval, m.generation)
}

func (m Model) View() string {
	snapshot := m.session.Snapshot()

	width := 1
	for _, row := range snapshot.Grid {
		for _, v := range row {
			width = max(width, len(strconv.Itoa(v)))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d   Moves: %d\n\n", snapshot.Score, snapshot.Moves)
	for _, row := range snapshot.Grid {
		for j, v := range row {
			if j > 0 {
				b.WriteString(" ")
			}
			cell := "."
			if v != 0 {
				cell = strconv.Itoa(v)
			}
			fmt.Fprintf(&b, "%*s", width, cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.auto {
		b.WriteString("autoplay on")
	} else {
		b.WriteString("autoplay off")
	}
	if m.status != "" {
		b.WriteString(" | " + m.status)
	}
	b.WriteString("\narrows move, p pause, r restart, q quit\n")
	return b.String()
}
