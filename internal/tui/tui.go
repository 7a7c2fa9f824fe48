// Package tui is the interactive terminal front end for a game.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/stonefight/internal/combat"
	"github.com/lox/stonefight/internal/game"
	"github.com/lox/stonefight/internal/stone"
)

const (
	paneLog = iota
	paneInput
)

// Option configures a Model
type Option func(*Model)

// WithSavePath saves the game to path after every settled fight and on quit.
func WithSavePath(path string) Option {
	return func(m *Model) { m.savePath = path }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// Model is the Bubble Tea model for playing a game interactively.
type Model struct {
	ctx      context.Context
	game     *game.Game
	logger   *log.Logger
	savePath string

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	fightLog    []string
	quitting    bool
	focusedPane int

	// Dimensions
	width       int
	height      int
	initialized bool
}

// NewModel creates a TUI model for g.
func NewModel(ctx context.Context, g *game.Game, opts ...Option) *Model {
	// Sized properly once a WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "fight, round, pick N, play N [self|foe], resolve, end, help"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = promptStyle
	ti.TextStyle = FightLogStyle
	ti.Prompt = "> "

	m := &Model{
		ctx:         ctx,
		game:        g,
		logger:      log.New(io.Discard),
		logViewport: vp,
		actionInput: ti,
		focusedPane: paneInput,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithPrefix("tui")
	m.addLog(HeaderStyle.Render(" Stonefight ") + InfoStyle.Render("  type help for commands"))
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, m.quit()
		case "tab":
			if m.focusedPane == paneLog {
				m.focusedPane = paneInput
				m.actionInput.Focus()
			} else {
				m.focusedPane = paneLog
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == paneInput {
				line := strings.TrimSpace(m.actionInput.Value())
				m.actionInput.SetValue("")
				if m.Execute(line) {
					return m, m.quit()
				}
				m.logViewport.SetContent(m.renderLogPane())
				m.logViewport.GotoBottom()
			}
		case "up", "k":
			if m.focusedPane == paneLog {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == paneLog {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == paneLog {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == paneLog {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == paneLog {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == paneLog {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == paneInput {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.save()
	return tea.Sequence(tea.ClearScreen, tea.Quit)
}

// Quitting reports whether the user asked to leave.
func (m *Model) Quitting() bool { return m.quitting }

// LogLines returns the fight log as rendered.
func (m *Model) LogLines() []string {
	return append([]string(nil), m.fightLog...)
}

func (m *Model) addLog(line string) {
	m.fightLog = append(m.fightLog, strings.Split(line, "\n")...)
}

func (m *Model) save() {
	if m.savePath == "" {
		return
	}
	if err := m.game.Save(m.savePath); err != nil {
		m.logger.Error("Failed to save game", "path", m.savePath, "error", err)
		m.addLog(ErrorStyle.Render("Save failed: " + err.Error()))
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionPane := paneBorder(m.focusedPane == paneInput).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 30)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := paneBorder(false).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(m.renderLogPane())
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := paneBorder(m.focusedPane == paneLog).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) renderLogPane() string {
	return strings.Join(m.fightLog, "\n")
}

// renderSidebarPane shows the inventory, the opponent and the fight state.
func (m *Model) renderSidebarPane() string {
	var b strings.Builder

	b.WriteString(WarningStyle.Render(fmt.Sprintf("Currency: %d", m.game.Currency())))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Stones: %d", len(m.game.Stones()))))
	b.WriteString("\n\n")

	if q, ok := m.game.EquippedStone(); ok {
		b.WriteString(StoneStyle.Render(q.DisplayName()))
		b.WriteString(fmt.Sprintf("\n  power %.1f %s\n", stone.Power(q), tierStyle(q.Tier()).Render(q.Tier().String())))
	} else {
		b.WriteString(ErrorStyle.Render("No stone equipped"))
		b.WriteString("\n")
	}
	if q, err := m.game.CurrentOpponent(); err == nil {
		b.WriteString(InfoStyle.Render("vs "))
		b.WriteString(OpponentStyle.Render(q.DisplayName()))
		b.WriteString(fmt.Sprintf("\n  power %.1f\n", stone.Power(q)))
	}

	if s, err := m.game.Fight(); err == nil {
		b.WriteString("\n")
		b.WriteString(renderHealth("You", s.Player()))
		b.WriteString(renderHealth("Foe", s.Opponent()))
		b.WriteString(InfoStyle.Render(fmt.Sprintf("Round %d, %s", s.Round(), s.Phase())))
		b.WriteString("\n")
	}

	if hand := m.game.Hand(); len(hand) > 0 {
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Hand:"))
		b.WriteString("\n")
		for i, c := range hand {
			b.WriteString(fmt.Sprintf("  %d) %s\n", i+1, CardStyle.Render(c.Name)))
		}
	}
	return b.String()
}

func renderHealth(label string, p combat.Participant) string {
	hp := healthStyle(p.CurrentHealth, p.MaxHealth).Render(fmt.Sprintf("%.0f/%.0f hp", p.CurrentHealth, p.MaxHealth))
	return fmt.Sprintf("%s %s  atk %.1f def %.1f\n", label, hp, p.CurrentPower, p.CurrentDefense)
}

// renderActionPane renders the input and its help line
func (m *Model) renderActionPane() string {
	var b strings.Builder
	b.WriteString(m.actionInput.View())
	b.WriteString("\n")
	if m.focusedPane == paneLog {
		b.WriteString(helpStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		b.WriteString(helpStyle.Render("Enter to run • Tab to scroll log • Ctrl+C to quit"))
	}
	return b.String()
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, g *game.Game, opts ...Option) error {
	m := NewModel(ctx, g, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
