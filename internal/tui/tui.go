// Package tui is the terminal front end for the Pomodoro timer.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marwan404/StudyHub/internal/model"
	"github.com/marwan404/StudyHub/internal/timer"
)

const historyRows = 8

// Timer is the part of the controller the terminal UI drives.
type Timer interface {
	Start()
	Pause()
	Reset()
	ChangeDuration(kind, minutes string) error
	Snapshot() timer.Display
}

type HistorySource interface {
	ListPhases(ctx context.Context, limit int) ([]model.PhaseRecord, error)
}

type eventMsg timer.Event

type eventsClosedMsg struct{}

type historyMsg struct {
	records []model.PhaseRecord
	err     error
}

type statusMsg struct {
	message string
	color   string
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(1, 4)

	pausedClockStyle = clockStyle.
				Background(lipgloss.Color("236"))

	workStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	breakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)

	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	actionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	bulletStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var editLabels = map[string]string{
	timer.KindWork:       "Work minutes:",
	timer.KindShortBreak: "Short break minutes:",
	timer.KindLongBreak:  "Long break minutes:",
}

type Model struct {
	timer   Timer
	history HistorySource
	events  <-chan timer.Event

	display timer.Display
	streak  model.StreakRecord
	phases  table.Model

	editing  bool
	editKind string
	input    textinput.Model

	statusMsg    string
	statusColor  string
	statusExpiry time.Time
	width        int
	height       int
}

func New(t Timer, events <-chan timer.Event, history HistorySource, streak model.StreakRecord) Model {
	phases := table.New(
		table.WithColumns([]table.Column{
			{Title: "Phase", Width: 14},
			{Title: "Minutes", Width: 8},
			{Title: "Session", Width: 8},
			{Title: "Completed", Width: 18},
		}),
		table.WithHeight(historyRows),
	)

	return Model{
		timer:       t,
		history:     history,
		events:      events,
		display:     t.Snapshot(),
		streak:      streak,
		phases:      phases,
		statusColor: "86",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), loadHistory(m.history))
}

func waitForEvent(events <-chan timer.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

func loadHistory(history HistorySource) tea.Cmd {
	if history == nil {
		return nil
	}
	return func() tea.Msg {
		records, err := history.ListPhases(context.Background(), historyRows)
		return historyMsg{records: records, err: err}
	}
}

func showStatus(msg string, color string) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{message: msg, color: color}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.display = msg.Display
		cmds := []tea.Cmd{waitForEvent(m.events)}
		if msg.Type == timer.EventPhaseComplete {
			cmds = append(cmds, loadHistory(m.history), showStatus(timer.PhaseLabel(msg.Phase)+" finished", "226"))
		}
		return m, tea.Batch(cmds...)

	case eventsClosedMsg:
		return m, nil

	case historyMsg:
		if msg.err != nil {
			return m, showStatus("could not load history: "+msg.err.Error(), "196")
		}
		m.phases.SetRows(historyTableRows(msg.records))
		return m, nil

	case statusMsg:
		m.statusMsg = msg.message
		m.statusColor = msg.color
		m.statusExpiry = time.Now().Add(3 * time.Second)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditingKeys(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "s":
			m.timer.Start()
			m.display = m.timer.Snapshot()
		case "p":
			m.timer.Pause()
			m.display = m.timer.Snapshot()
		case "r":
			m.timer.Reset()
			m.display = m.timer.Snapshot()
			return m, showStatus("Timer reset", "86")
		case "w":
			return m, m.startEditing(timer.KindWork)
		case "b":
			return m, m.startEditing(timer.KindShortBreak)
		case "l":
			return m, m.startEditing(timer.KindLongBreak)
		}
	}

	return m, nil
}

func (m *Model) startEditing(kind string) tea.Cmd {
	m.editing = true
	m.editKind = kind
	m.input = textinput.New()
	m.input.Placeholder = "minutes"
	m.input.CharLimit = 4
	m.input.Width = 10
	return m.input.Focus()
}

func (m Model) handleEditingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, showStatus("Edit cancelled", "196")
	case "enter":
		m.editing = false
		if err := m.timer.ChangeDuration(m.editKind, m.input.Value()); err != nil {
			return m, showStatus(err.Error(), "196")
		}
		m.display = m.timer.Snapshot()
		return m, showStatus("Durations saved, timer reset", "82")
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) View() string {
	header := headerStyle.Render("Study Hub Pomodoro")

	label := breakStyle.Render(m.display.Label)
	if m.display.Phase == model.PhaseWork {
		label = workStyle.Render(m.display.Label)
	}

	clock := pausedClockStyle.Render(m.display.Remaining)
	if m.display.IsRunning {
		clock = clockStyle.Render(m.display.Remaining)
	}

	summary := fmt.Sprintf(
		"Sessions: %d  Study today: %d min  Streak: %d day(s) (best %d)",
		m.display.SessionsCompleted,
		m.display.StudyMinutesToday,
		m.streak.Current,
		m.streak.Longest,
	)

	var body string
	if m.editing {
		body = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Render(editLabels[m.editKind]) + "\n" + m.input.View()
	} else {
		body = m.phases.View()
	}

	var commands []string
	if m.editing {
		commands = append(commands, keyStyle.Render("enter")+": "+actionStyle.Render("save"))
		commands = append(commands, keyStyle.Render("esc")+": "+actionStyle.Render("cancel"))
	} else {
		commands = append(commands, keyStyle.Render("s")+": "+actionStyle.Render("start"))
		commands = append(commands, keyStyle.Render("p")+": "+actionStyle.Render("pause"))
		commands = append(commands, keyStyle.Render("r")+": "+actionStyle.Render("reset"))
		commands = append(commands, keyStyle.Render("w/b/l")+": "+actionStyle.Render("set minutes"))
		commands = append(commands, keyStyle.Render("q")+": "+actionStyle.Render("quit"))
	}
	commandRow := strings.Join(commands, bulletStyle.Render(" • "))

	if m.statusMsg != "" && time.Now().Before(m.statusExpiry) {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.statusColor))
		commandRow += "\n> " + statusStyle.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		label,
		clock,
		summary,
		"",
		body,
		"",
		commandRow,
	)
}

func historyTableRows(records []model.PhaseRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, table.Row{
			timer.PhaseLabel(record.Phase),
			fmt.Sprintf("%d", record.DurationSeconds/60),
			fmt.Sprintf("%d", record.SessionNumber),
			record.CompletedAt.Local().Format("Jan 02 15:04"),
		})
	}
	return rows
}
