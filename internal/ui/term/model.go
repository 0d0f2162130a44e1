// Package term runs the guided sessions and the stability test in a terminal.
package term

import (
	"errors"
	"fmt"
	"strings"

	"blinkrest/internal/core/model"
	"blinkrest/internal/core/session"
	"blinkrest/internal/core/stability"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	eventBuffer = 64
	barWidth    = 40
)

// Mode selects which engine the model drives.
type Mode int

const (
	ModeSession Mode = iota
	ModeStability
)

// Model is the root bubbletea model for the terminal front end.
type Model struct {
	mode Mode

	engine        *session.Engine
	sessionEvents <-chan session.Event
	snapshot      session.Snapshot
	generation    uint64
	lastAnnounce  string

	watch       *stability.Stopwatch
	watchEvents <-chan stability.Event
	watchState  stability.Snapshot
	result      *stability.Result

	width    int
	err      error
	quitting bool
}

// NewSession creates a model driving a guided session. It subscribes before
// the engine starts so no event is missed.
func NewSession(engine *session.Engine) Model {
	return Model{
		mode:          ModeSession,
		engine:        engine,
		sessionEvents: engine.Subscribe(eventBuffer),
		snapshot:      engine.Snapshot(),
	}
}

// NewStabilityTest creates a model driving the stability stopwatch.
func NewStabilityTest(watch *stability.Stopwatch) Model {
	return Model{
		mode:        ModeStability,
		watch:       watch,
		watchEvents: watch.Subscribe(eventBuffer),
		watchState:  watch.Snapshot(),
	}
}

// Init starts the engine and begins reading its events.
func (m Model) Init() tea.Cmd {
	if m.mode == ModeStability {
		return tea.Batch(beginTestCmd(m.watch), readStopwatchEventCmd(m.watchEvents))
	}
	return tea.Batch(startSessionCmd(m.engine), readSessionEventCmd(m.sessionEvents))
}

// startSessionCmd arms the session engine.
func startSessionCmd(engine *session.Engine) tea.Cmd {
	return func() tea.Msg {
		if err := engine.Start(); err != nil {
			return ErrorMsg{Err: err}
		}
		return nil
	}
}

// beginTestCmd enters the stability test preparation.
func beginTestCmd(watch *stability.Stopwatch) tea.Cmd {
	return func() tea.Msg {
		if err := watch.Begin(); err != nil {
			return ErrorMsg{Err: err}
		}
		return nil
	}
}

// readSessionEventCmd reads the next session event.
func readSessionEventCmd(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return EventsClosedMsg{}
		}
		return SessionEventMsg{Event: event}
	}
}

// readStopwatchEventCmd reads the next stopwatch event.
func readStopwatchEventCmd(events <-chan stability.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return EventsClosedMsg{}
		}
		return StopwatchEventMsg{Event: event}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SessionEventMsg:
		m.applySessionEvent(msg.Event)
		return m, readSessionEventCmd(m.sessionEvents)

	case StopwatchEventMsg:
		m.watchState = msg.Event.Snapshot
		if msg.Event.Snapshot.Result != nil {
			result := *msg.Event.Snapshot.Result
			m.result = &result
		}
		return m, readStopwatchEventCmd(m.watchEvents)

	case EventsClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m *Model) applySessionEvent(event session.Event) {
	if event.Generation < m.generation {
		return
	}
	switch event.Type {
	case session.EventStarted:
		m.generation = event.Generation
		m.lastAnnounce = ""
	case session.EventAnnounce:
		m.lastAnnounce = event.Text
	}
	m.snapshot = event.Snapshot
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.shutdown()
		m.quitting = true
		return m, tea.Quit
	}

	if m.mode == ModeSession {
		if msg.String() == "r" {
			if err := m.engine.Restart(); err != nil {
				m.err = err
			}
		}
		return m, nil
	}

	switch msg.String() {
	case " ", "enter":
		result, err := m.watch.Stop()
		if err != nil {
			if !errors.Is(err, stability.ErrNotRunning) {
				m.err = err
			}
			return m, nil
		}
		m.result = &result
		m.watchState = m.watch.Snapshot()
	case "r":
		if m.watchState.Phase == stability.PhaseDone {
			m.result = nil
			return m, beginTestCmd(m.watch)
		}
	case "c":
		m.watch.Cancel()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// shutdown tears down the running engine.
func (m Model) shutdown() {
	if m.engine != nil {
		m.engine.Exit()
	}
	if m.watch != nil {
		m.watch.Cancel()
	}
}

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var body string
	if m.mode == ModeStability {
		body = m.stabilityView()
	} else {
		body = m.sessionView()
	}
	if m.err != nil {
		body += "\n" + ErrorStyle.Render(m.err.Error())
	}
	return FrameStyle.Render(body)
}

func (m Model) sessionView() string {
	snapshot := m.snapshot
	lines := []string{
		TitleStyle.Render(strings.ToUpper(snapshot.Routine)),
		LabelStyle.Render("TOTAL TIME") + "  " + ClockStyle.Render(session.FormatClock(snapshot.TotalSecondsRemaining)),
		"",
	}
	if snapshot.Finished {
		lines = append(lines, InstructionStyle.Render("Session complete."))
	} else {
		instruction := snapshot.Instruction
		if snapshot.Kind == model.KindCycle {
			instruction = fmt.Sprintf("%s  %s", instruction, phaseDots(snapshot))
		}
		lines = append(lines, InstructionStyle.Render(instruction))
	}
	if m.lastAnnounce != "" {
		lines = append(lines, AnnounceStyle.Render("♪ "+m.lastAnnounce))
	}
	lines = append(lines,
		"",
		progressBar(snapshot.Progress(), barWidth),
		"",
		footer([][2]string{{"r", "restart"}, {"q", "quit"}}),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) stabilityView() string {
	lines := []string{TitleStyle.Render("STABILITY TIMER")}
	switch m.watchState.Phase {
	case stability.PhaseIdle, stability.PhasePrep:
		lines = append(lines,
			ClockStyle.Render(formatSeconds(0)),
			"",
			InstructionStyle.Render("Listening..."),
			LabelStyle.Render(model.StabilityInstruction),
			"",
			footer([][2]string{{"c", "cancel test"}}),
		)
	case stability.PhaseRunning:
		lines = append(lines,
			ClockStyle.Render(formatSeconds(m.watchState.ElapsedSeconds)),
			"",
			InstructionStyle.Render("Maintain focus. Press space the instant you feel any eye discomfort."),
			"",
			footer([][2]string{{"space", "I feel discomfort"}, {"c", "cancel test"}}),
		)
	default:
		if m.result != nil {
			style := CategoryStyle(m.result.Category)
			lines = append(lines,
				style.Render(formatSeconds(m.result.Seconds)),
				style.Render(strings.ToUpper(string(m.result.Category))),
				"",
				LabelStyle.Render(m.result.Description),
			)
		}
		lines = append(lines, "", footer([][2]string{{"r", "retry test"}, {"q", "exit"}}))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func phaseDots(snapshot session.Snapshot) string {
	filled := snapshot.PhaseElapsed()
	var dots strings.Builder
	for i := 0; i < snapshot.Phase.Duration; i++ {
		if i < filled {
			dots.WriteString(BarFullStyle.Render("●"))
		} else {
			dots.WriteString(BarEmptyStyle.Render("○"))
		}
	}
	return dots.String()
}

func progressBar(progress float64, width int) string {
	full := int(progress * float64(width))
	if full > width {
		full = width
	}
	if full < 0 {
		full = 0
	}
	return BarFullStyle.Render(strings.Repeat("━", full)) + BarEmptyStyle.Render(strings.Repeat("━", width-full))
}

func footer(keys [][2]string) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, FooterKeyStyle.Render(key[0])+" "+FooterDescStyle.Render(key[1]))
	}
	return strings.Join(parts, "  ")
}

func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%.1fs", seconds)
}
