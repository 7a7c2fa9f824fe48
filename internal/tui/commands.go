package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/stonefight/internal/bot"
	"github.com/lox/stonefight/internal/card"
	"github.com/lox/stonefight/internal/combat"
	"github.com/lox/stonefight/internal/randutil"
	"github.com/lox/stonefight/internal/stone"
)

const helpText = `Commands:
  fight              start a fight against the current opponent
  round              start the next round (Enter on an empty line does the same)
  pick N             keep offered card N
  play N [self|foe]  play card N from your hand
  resolve            trade blows and end the round
  auto [strategy]    let a bot finish the fight (random, aggressive, defensive)
  concede            give up the fight
  end                settle a finished fight
  stones             list your stones
  equip N            equip stone N
  opponents          show the next opponents
  help               show this help
  quit               save and exit`

// Execute runs one command line. It reports whether the TUI should exit.
func (m *Model) Execute(line string) (quit bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		fields = []string{m.defaultCommand()}
	}
	cmd, args := fields[0], fields[1:]

	var err error
	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		m.addLog(InfoStyle.Render(helpText))
	case "fight", "start":
		err = m.startFight()
	case "round", "r":
		err = m.startRound()
	case "pick", "select":
		err = m.pick(args)
	case "play", "p":
		err = m.play(args)
	case "resolve", "x":
		err = m.resolve()
	case "auto":
		err = m.auto(args)
	case "concede":
		err = m.concede()
	case "end", "settle":
		err = m.endFight()
	case "stones":
		m.listStones()
	case "equip":
		err = m.equip(args)
	case "opponents":
		m.listOpponents()
	default:
		err = fmt.Errorf("unknown command %q, try help", cmd)
	}
	if err != nil {
		m.addLog(ErrorStyle.Render("Error: " + err.Error()))
	}
	return false
}

// defaultCommand is what an empty line does in the current state.
func (m *Model) defaultCommand() string {
	s, err := m.game.Fight()
	if err != nil {
		return "fight"
	}
	switch s.Phase() {
	case combat.PhaseBetweenRounds:
		return "round"
	case combat.PhaseAwaitingChoice:
		return "help"
	case combat.PhaseAwaitingPlay, combat.PhaseAwaitingResolve:
		return "resolve"
	default:
		return "end"
	}
}

func (m *Model) startFight() error {
	s, err := m.game.StartFight()
	if err != nil {
		return err
	}
	p, o := s.Player(), s.Opponent()
	m.addLog(HeaderStyle.Render(fmt.Sprintf(" Fight %s ", s.ID())))
	m.addLog(fmt.Sprintf("%s (power %.1f) vs %s (power %.1f)",
		StoneStyle.Render(p.Stone.DisplayName()), p.BasePower,
		OpponentStyle.Render(o.Stone.DisplayName()), o.BasePower))
	return nil
}

func (m *Model) startRound() error {
	s, err := m.game.Fight()
	if err != nil {
		return err
	}
	rs, err := s.StartNewRound()
	if err != nil {
		return err
	}
	m.addLog(WarningStyle.Render(fmt.Sprintf("Round %d", rs.Round)) +
		fmt.Sprintf("  you %.0f hp, opponent %.0f hp", rs.PlayerHealth, rs.OpponentHealth))
	if len(rs.Choices) == 0 {
		m.addLog(InfoStyle.Render("No cards left to offer"))
		return nil
	}
	for i, c := range rs.Choices {
		m.addLog(fmt.Sprintf("  %d) %s  %s", i+1, CardStyle.Render(c.Name), InfoStyle.Render(c.Description)))
	}
	return nil
}

func (m *Model) pick(args []string) error {
	s, err := m.game.Fight()
	if err != nil {
		return err
	}
	c, err := nth(s.Choices(), args)
	if err != nil {
		return err
	}
	if _, err := s.SelectCard(c.ID); err != nil {
		return err
	}
	m.addLog(fmt.Sprintf("Kept %s", CardStyle.Render(c.Name)))
	return nil
}

func (m *Model) play(args []string) error {
	s, err := m.game.Fight()
	if err != nil {
		return err
	}
	c, err := nth(m.game.Hand(), args)
	if err != nil {
		return err
	}
	target := c.DefaultTarget
	if len(args) > 1 {
		if target, err = card.ParseTarget(args[1]); err != nil {
			return err
		}
	}
	res, err := s.PlayCard(c.ID, target)
	if err != nil {
		return err
	}
	m.addLog(fmt.Sprintf("Played %s on %s", CardStyle.Render(c.Name), res.Target))
	return nil
}

func (m *Model) resolve() error {
	s, err := m.game.Fight()
	if err != nil {
		return err
	}
	res, err := s.ResolveRound()
	if err != nil {
		return err
	}
	m.logResolution(res)
	return nil
}

func (m *Model) logResolution(res combat.Resolution) {
	m.addLog(FightLogStyle.Render(res.LogEntry))
	if res.FightOver {
		m.addLog(SuccessStyle.Render("The fight is over, type end to settle"))
	}
}

func (m *Model) auto(args []string) error {
	s, err := m.game.Fight()
	if err != nil {
		return err
	}
	name := bot.Aggressive
	if len(args) > 0 {
		name = args[0]
	}
	strategy, err := bot.New(name, randutil.New(int64(randutil.Mix(int64(m.game.Config().Seed), int64(s.Round())))), m.logger)
	if err != nil {
		return err
	}
	if !s.IsOver() && s.Phase() != combat.PhaseBetweenRounds {
		res, err := s.ResolveRound()
		if err != nil {
			return err
		}
		m.logResolution(res)
	}
	for !s.IsOver() {
		if s.Round() >= bot.DefaultMaxRounds {
			return s.Concede()
		}
		res, err := bot.PlayRound(s, strategy, m.game)
		if err != nil {
			return err
		}
		m.logResolution(res)
	}
	return nil
}

func (m *Model) concede() error {
	s, err := m.game.Fight()
	if err != nil {
		return err
	}
	if err := s.Concede(); err != nil {
		return err
	}
	m.addLog(WarningStyle.Render("You conceded"))
	return nil
}

func (m *Model) endFight() error {
	st, err := m.game.EndFight(m.ctx)
	if err != nil {
		return err
	}
	style := WarningStyle
	switch st.Winner {
	case combat.WinnerPlayer:
		style = SuccessStyle
	case combat.WinnerOpponent:
		style = ErrorStyle
	}
	m.addLog(style.Render(st.Summary()))
	m.save()
	return nil
}

func (m *Model) listStones() {
	equipped, _ := m.game.EquippedStone()
	for i, q := range m.game.Stones() {
		marker := " "
		if q.Seed == equipped.Seed {
			marker = "*"
		}
		m.addLog(fmt.Sprintf("%s %d) %s  power %.1f  %s", marker, i+1,
			StoneStyle.Render(q.DisplayName()), stone.Power(q), tierStyle(q.Tier()).Render(q.Tier().String())))
	}
}

func (m *Model) equip(args []string) error {
	q, err := nth(m.game.Stones(), args)
	if err != nil {
		return err
	}
	if err := m.game.Equip(q.Seed); err != nil {
		return err
	}
	m.addLog(fmt.Sprintf("Equipped %s", StoneStyle.Render(q.DisplayName())))
	return nil
}

func (m *Model) listOpponents() {
	for i, q := range m.game.UpcomingOpponents(5) {
		m.addLog(fmt.Sprintf("  %d) %s  power %.1f", i+1, OpponentStyle.Render(q.DisplayName()), stone.Power(q)))
	}
}

// nth returns the item at the 1-based index in args[0].
func nth[T any](items []T, args []string) (T, error) {
	var zero T
	if len(args) == 0 {
		return zero, fmt.Errorf("which one? give a number from 1 to %d", len(items))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(items) {
		return zero, fmt.Errorf("%q is not a number from 1 to %d", args[0], len(items))
	}
	return items[n-1], nil
}
