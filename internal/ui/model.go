package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/pinpoint/internal/executor"
	"github.com/gubarz/pinpoint/internal/logger"
	"github.com/gubarz/pinpoint/internal/parser"
)

// ============================================================================
// Messages
// ============================================================================

// reloadMsg carries freshly read presentation text from the watcher
type reloadMsg struct {
	text string
	err  error
}

// commandDoneMsg reports the end of a slide command
type commandDoneMsg struct {
	command string
	err     error
}

// ============================================================================
// Viewer Model
// ============================================================================

// viewerModel is the Bubble Tea model presenting a deck one slide at a time.
// All parse passes run inside Update, so at most one is ever in flight.
type viewerModel struct {
	width      int
	height     int
	showChrome bool
	quitting   bool
	status     string
	statusErr  bool

	deck     *parser.Deck
	parser   *parser.Parser
	renderer *Renderer
	runner   executor.ShellRunner
	log      *logger.Logger

	keys keyMap
	help help.Model
}

// newViewerModel creates a viewer over an already parsed deck
func newViewerModel(deck *parser.Deck, p *parser.Parser, r *Renderer, runner executor.ShellRunner, log *logger.Logger) viewerModel {
	if log == nil {
		log = logger.Nop()
	}
	return viewerModel{
		width:      80,
		height:     24,
		showChrome: true,
		deck:       deck,
		parser:     p,
		renderer:   r,
		runner:     runner,
		log:        log,
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
}

// Init implements tea.Model
func (m viewerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeStage()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case reloadMsg:
		m.reload(msg)
		return m, nil

	case commandDoneMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("%s: %v", msg.command, msg.err))
			m.log.Warn("slide command failed", "command", msg.command, "error", msg.err)
		} else {
			m.setStatus("")
		}
		return m, nil
	}
	return m, nil
}

// handleKey processes keyboard input
func (m *viewerModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.deck.Move(1)
	case key.Matches(msg, m.keys.Prev):
		m.deck.Move(-1)
	case key.Matches(msg, m.keys.First):
		m.deck.Seek(0)
	case key.Matches(msg, m.keys.Last):
		m.deck.Seek(m.deck.Len() - 1)
	case key.Matches(msg, m.keys.Chrome):
		m.showChrome = !m.showChrome
		m.resizeStage()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeStage()
	case key.Matches(msg, m.keys.Run):
		return m.runCommand()
	}
	return nil
}

// runCommand launches the current slide's [command=...]
func (m *viewerModel) runCommand() tea.Cmd {
	point := m.deck.CurrentPoint()
	if point == nil || point.Command == "" || m.runner == nil {
		return nil
	}
	command := point.Command
	m.log.Info("running slide command", "command", command, "slide", m.deck.Current+1)

	if executor.IsBackground(command) {
		if err := m.runner.Spawn(command); err != nil {
			m.setError(fmt.Sprintf("%s: %v", command, err))
		} else {
			m.setStatus("started: " + command)
		}
		return nil
	}

	return tea.ExecProcess(m.runner.Command(command), func(err error) tea.Msg {
		return commandDoneMsg{command: command, err: err}
	})
}

// reload re-runs the full parse pass over new text
func (m *viewerModel) reload(msg reloadMsg) {
	if msg.err != nil {
		m.setError("reload failed: " + msg.err.Error())
		m.log.Warn("reload failed, keeping current deck", "error", msg.err)
		return
	}
	m.parser.Parse(m.deck, msg.text)
	m.setStatus(fmt.Sprintf("reloaded %d slides", m.deck.Len()))
	m.log.Debug("deck reloaded", "slides", m.deck.Len(), "current", m.deck.Current)
}

func (m *viewerModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *viewerModel) setError(s string) {
	m.status = s
	m.statusErr = true
}

// chromeHeight is the number of rows taken by the status and help lines
func (m viewerModel) chromeHeight() int {
	if !m.showChrome {
		return 0
	}
	return 1 + countLines(m.help.View(m.keys))
}

// resizeStage hands the remaining area to the slide renderer
func (m *viewerModel) resizeStage() {
	m.renderer.SetSize(m.width, maxInt(m.height-m.chromeHeight(), 1))
}

// View implements tea.Model
func (m viewerModel) View() string {
	if m.quitting {
		return ""
	}

	point := m.deck.CurrentPoint()
	if point == nil {
		return styles.Dim.Render("empty presentation")
	}

	var b strings.Builder
	b.WriteString(m.renderer.View(point))
	if m.showChrome {
		b.WriteString("\n")
		b.WriteString(m.renderStatus(point))
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// renderStatus builds the one-line status bar
func (m viewerModel) renderStatus(point *parser.Point) string {
	parts := []string{styles.Counter.Render(fmt.Sprintf(" %d/%d ", m.deck.Current+1, m.deck.Len()))}

	if point.Transition != "" {
		parts = append(parts, styles.Status.Render(" transition: "+point.Transition))
	}
	if point.Command != "" {
		parts = append(parts, styles.Status.Render(" ⏎ "+point.Command))
	}
	if caption := backgroundCaption(point); caption != "" {
		parts = append(parts, styles.Caption.Render(" "+caption))
	}
	if m.status != "" {
		style := styles.Status
		if m.statusErr {
			style = styles.Error
		}
		parts = append(parts, style.Render(" "+m.status))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if pad := m.width - lipgloss.Width(line); pad > 0 {
		line += styles.Status.Render(strings.Repeat(" ", pad))
	}
	return line
}
