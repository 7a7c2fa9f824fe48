package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/stonefight/internal/stone"
)

var (
	colorText   = lipgloss.Color("#FAFAFA")
	colorMuted  = lipgloss.Color("#626262")
	colorFocus  = lipgloss.Color("#04B575")
	colorGood   = lipgloss.Color("#96CEB4")
	colorBad    = lipgloss.Color("#FF6B6B")
	colorGold   = lipgloss.Color("#FFD700")
	colorAmber  = lipgloss.Color("#FFEAA7")
	colorHeader = lipgloss.Color("#7D56F4")
)

// Styles for fight log and sidebar content
var (
	HeaderStyle   = lipgloss.NewStyle().Foreground(colorText).Background(colorHeader).Bold(true)
	FightLogStyle = lipgloss.NewStyle().Foreground(colorText)
	StoneStyle    = lipgloss.NewStyle().Foreground(colorGood).Bold(true)
	OpponentStyle = lipgloss.NewStyle().Foreground(colorBad).Bold(true)
	CardStyle     = lipgloss.NewStyle().Foreground(colorGold).Bold(true)
	SuccessStyle  = lipgloss.NewStyle().Foreground(colorGood).Bold(true)
	ErrorStyle    = lipgloss.NewStyle().Foreground(colorBad).Bold(true)
	WarningStyle  = lipgloss.NewStyle().Foreground(colorAmber).Bold(true)
	InfoStyle     = lipgloss.NewStyle().Foreground(colorMuted)

	promptStyle = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

var tierColors = map[stone.Tier]lipgloss.Color{
	stone.Common:    colorMuted,
	stone.Uncommon:  colorGood,
	stone.Rare:      lipgloss.Color("#4ECDC4"),
	stone.Epic:      colorHeader,
	stone.Legendary: colorGold,
}

// tierStyle colours a stone's tier label.
func tierStyle(t stone.Tier) lipgloss.Style {
	c, ok := tierColors[t]
	if !ok {
		c = colorMuted
	}
	return lipgloss.NewStyle().Foreground(c)
}

// healthStyle shades a health readout from green to red as it drops.
func healthStyle(current, maxHealth float64) lipgloss.Style {
	if maxHealth <= 0 {
		return InfoStyle
	}
	switch f := current / maxHealth; {
	case f > 0.6:
		return lipgloss.NewStyle().Foreground(colorGood)
	case f > 0.3:
		return lipgloss.NewStyle().Foreground(colorAmber)
	default:
		return lipgloss.NewStyle().Foreground(colorBad).Bold(true)
	}
}

// paneBorder is the border style for a pane, highlighted when focused.
func paneBorder(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted)
	if focused {
		s = s.BorderForeground(colorFocus)
	}
	return s
}
