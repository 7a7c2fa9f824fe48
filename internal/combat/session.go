package combat

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/stonefight/internal/card"
	"github.com/lox/stonefight/internal/effect"
	"github.com/lox/stonefight/internal/sessionid"
	"github.com/lox/stonefight/internal/stone"
)

// Winner names the side that won a fight or round.
type Winner string

const (
	WinnerNone     Winner = ""
	WinnerPlayer   Winner = "player"
	WinnerOpponent Winner = "opponent"
	WinnerTie      Winner = "tie"
)

// Phase is where a session sits in its round lifecycle.
type Phase int

const (
	// PhaseBetweenRounds: waiting for StartNewRound.
	PhaseBetweenRounds Phase = iota
	// PhaseAwaitingChoice: cards are on offer.
	PhaseAwaitingChoice
	// PhaseAwaitingPlay: the player may play one card from hand.
	PhaseAwaitingPlay
	// PhaseAwaitingResolve: a card has been played; only resolution remains.
	PhaseAwaitingResolve
	// PhaseOver: the fight has a winner and awaits EndFight.
	PhaseOver
	// PhaseSettled: EndFight or Abandon has run; the session is spent.
	PhaseSettled
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseBetweenRounds:
		return "between rounds"
	case PhaseAwaitingChoice:
		return "awaiting choice"
	case PhaseAwaitingPlay:
		return "awaiting play"
	case PhaseAwaitingResolve:
		return "awaiting resolve"
	case PhaseOver:
		return "over"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Rules are the tunable numbers of a fight.
type Rules struct {
	MaxHealth     float64
	CardsPerRound int
	WinReward     int
	LootChance    float64
	DestroyChance float64

	// TimeSaltedRewards mixes the wall clock into reward rolls so a reloaded
	// save cannot replay the same loot. Off by default: rewards are then a
	// pure function of game seed, round and stones.
	TimeSaltedRewards bool
}

// DefaultRules returns the standard fight rules.
func DefaultRules() Rules {
	return Rules{
		MaxHealth:     DefaultMaxHealth,
		CardsPerRound: 3,
		WinReward:     10,
		LootChance:    0.1,
		DestroyChance: 0.25,
	}
}

// Deps are the collaborators a session calls into.
type Deps struct {
	Cards         CardPiles
	PlayerEffects EffectStore
	Inventory     Inventory
}

// Option configures a Session
type Option func(*Session)

// WithRules overrides the default rules.
func WithRules(r Rules) Option {
	return func(s *Session) { s.rules = r }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithEventBus publishes session events on bus.
func WithEventBus(bus EventBus) Option {
	return func(s *Session) { s.events = bus }
}

// WithClock sets the clock used for timestamps and salted rewards.
func WithClock(c quartz.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithGameSeed sets the game seed that reward rolls are derived from.
func WithGameSeed(seed int32) Option {
	return func(s *Session) { s.gameSeed = seed }
}

// WithSessionID fixes the session id instead of generating one.
func WithSessionID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithOpponentEffects replaces the session-local opponent effect store.
func WithOpponentEffects(store EffectStore) Option {
	return func(s *Session) { s.opponent.store = store }
}

// side couples a participant with the store that owns its effects.
type side struct {
	state Participant
	store EffectStore
}

func (sd *side) reapply() {
	sd.state = ApplyEffects(sd.state, sd.store.ActiveEffects())
}

func (sd *side) decay() {
	sd.store.SetActiveEffects(effect.Decay(sd.store.ActiveEffects()))
	sd.reapply()
}

// Session runs one fight between the player's stone and an opponent. It is
// not safe for concurrent use; callers serialise access.
type Session struct {
	id       string
	rules    Rules
	deps     Deps
	logger   *log.Logger
	events   EventBus
	clock    quartz.Clock
	gameSeed int32

	player   side
	opponent side

	round     int
	phase     Phase
	winner    Winner
	choices   []card.Card
	effectSeq int
	log       []string
}

// RoundStart describes a freshly started round.
type RoundStart struct {
	Round          int         `json:"roundNumber"`
	Choices        []card.Card `json:"cardsForChoice"`
	PlayerHealth   float64     `json:"playerHealth"`
	OpponentHealth float64     `json:"opponentHealth"`
}

// PlayResult is returned after a card has been played.
type PlayResult struct {
	Card     card.Card   `json:"card"`
	Target   card.Target `json:"target"`
	Player   Participant `json:"player"`
	Opponent Participant `json:"opponent"`
}

// Resolution is the outcome of one round.
type Resolution struct {
	Round          int     `json:"round"`
	PlayerDamage   float64 `json:"playerDamage"`
	OpponentDamage float64 `json:"opponentDamage"`
	PlayerHealth   float64 `json:"playerHealth"`
	OpponentHealth float64 `json:"opponentHealth"`
	RoundWinner    Winner  `json:"roundWinner,omitempty"`
	FightOver      bool    `json:"fightOver"`
	LogEntry       string  `json:"logEntry"`
}

// StartFight creates a session for playerStone against opponentStone. The
// player's persistent effects are cleared so every fight starts clean.
func StartFight(playerStone, opponentStone *stone.Qualities, deps Deps, opts ...Option) (*Session, error) {
	if playerStone == nil || opponentStone == nil {
		return nil, ErrMissingStone
	}
	if deps.Cards == nil || deps.PlayerEffects == nil {
		return nil, fmt.Errorf("start fight: card piles and player effect store are required")
	}

	s := &Session{
		rules:    DefaultRules(),
		deps:     deps,
		logger:   log.New(io.Discard),
		events:   NewEventBus(),
		clock:    quartz.NewReal(),
		opponent: side{store: &LocalEffects{}},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = sessionid.Generate()
	}
	if s.rules.CardsPerRound < 0 {
		s.rules.CardsPerRound = 0
	}
	s.logger = s.logger.WithPrefix("combat").With("session", s.id)

	s.player = side{
		state: NewParticipant(*playerStone, s.rules.MaxHealth),
		store: deps.PlayerEffects,
	}
	s.opponent.state = NewParticipant(*opponentStone, s.rules.MaxHealth)

	s.player.store.SetActiveEffects(nil)
	s.opponent.store.SetActiveEffects(nil)
	s.player.reapply()
	s.opponent.reapply()

	s.appendLog(fmt.Sprintf("Fight started: %s (power %.1f) vs %s (power %.1f)",
		playerStone.DisplayName(), s.player.state.BasePower,
		opponentStone.DisplayName(), s.opponent.state.BasePower))
	s.logger.Info("Fight started",
		"player", playerStone.Seed,
		"opponent", opponentStone.Seed,
		"playerPower", s.player.state.BasePower,
		"opponentPower", s.opponent.state.BasePower)

	s.events.Publish(FightStartedEvent{
		SessionID: s.id,
		Player:    s.player.state,
		Opponent:  s.opponent.state,
		timestamp: s.clock.Now(),
	})
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Round returns the current round number; zero before the first round.
func (s *Session) Round() int { return s.round }

// Phase returns the session's current phase.
func (s *Session) Phase() Phase { return s.phase }

// IsOver reports whether the fight has finished.
func (s *Session) IsOver() bool { return s.phase >= PhaseOver }

// Winner returns the fight winner, or WinnerNone while it continues.
func (s *Session) Winner() Winner { return s.winner }

// Player returns a copy of the player's state.
func (s *Session) Player() Participant { return copyParticipant(s.player.state) }

// Opponent returns a copy of the opponent's state.
func (s *Session) Opponent() Participant { return copyParticipant(s.opponent.state) }

// Choices returns the cards currently on offer.
func (s *Session) Choices() []card.Card {
	out := make([]card.Card, len(s.choices))
	copy(out, s.choices)
	return out
}

// Log returns the fight log.
func (s *Session) Log() []string {
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

// Rules returns the rules this session runs under.
func (s *Session) Rules() Rules { return s.rules }

func (s *Session) checkActive() error {
	switch s.phase {
	case PhaseSettled:
		return ErrSessionEnded
	case PhaseOver:
		return ErrFightOver
	}
	return nil
}

// StartNewRound begins the next round: effects from the previous round's
// play take hold and new cards are drawn for the player to choose from.
func (s *Session) StartNewRound() (RoundStart, error) {
	if err := s.checkActive(); err != nil {
		return RoundStart{}, err
	}
	if s.phase != PhaseBetweenRounds {
		return RoundStart{}, ErrRoundInProgress
	}

	s.round++
	s.player.reapply()
	s.opponent.reapply()

	s.choices = s.deps.Cards.DrawCards(s.rules.CardsPerRound)
	if len(s.choices) > 0 {
		s.phase = PhaseAwaitingChoice
	} else {
		s.phase = PhaseAwaitingPlay
	}

	rs := RoundStart{
		Round:          s.round,
		Choices:        s.Choices(),
		PlayerHealth:   s.player.state.CurrentHealth,
		OpponentHealth: s.opponent.state.CurrentHealth,
	}
	s.appendLog(fmt.Sprintf("Round %d begins (you %.0f hp, opponent %.0f hp)",
		s.round, rs.PlayerHealth, rs.OpponentHealth))
	s.logger.Debug("Round started", "round", s.round, "choices", card.IDs(s.choices))
	s.events.Publish(RoundStartedEvent{SessionID: s.id, Round: rs, timestamp: s.clock.Now()})
	return rs, nil
}

// SelectCard keeps one of the offered cards in hand and discards the rest.
// The choice cannot be undone.
func (s *Session) SelectCard(cardID string) (card.Card, error) {
	if err := s.checkActive(); err != nil {
		return card.Card{}, err
	}
	if s.phase != PhaseAwaitingChoice || len(s.choices) == 0 {
		return card.Card{}, ErrNoChoices
	}
	i := card.IndexOf(s.choices, cardID)
	if i < 0 {
		return card.Card{}, fmt.Errorf("%w: %q", ErrCardNotOffered, cardID)
	}

	chosen := s.choices[i]
	rest := make([]card.Card, 0, len(s.choices)-1)
	rest = append(rest, s.choices[:i]...)
	rest = append(rest, s.choices[i+1:]...)

	s.deps.Cards.AddToHand(chosen)
	if len(rest) > 0 {
		s.deps.Cards.AddToDiscard(rest...)
	}
	s.choices = nil
	s.phase = PhaseAwaitingPlay

	s.appendLog(fmt.Sprintf("You took %s", chosen.Name))
	s.logger.Debug("Card selected", "card", chosen.ID, "discarded", card.IDs(rest))
	s.events.Publish(CardSelectedEvent{
		SessionID: s.id,
		Round:     s.round,
		Card:      chosen,
		Discarded: rest,
		timestamp: s.clock.Now(),
	})
	return chosen, nil
}

// PlayCard plays a card from the player's hand on target. One card may be
// played per round.
func (s *Session) PlayCard(cardID string, target card.Target) (PlayResult, error) {
	if err := s.checkActive(); err != nil {
		return PlayResult{}, err
	}
	switch s.phase {
	case PhaseBetweenRounds:
		return PlayResult{}, ErrRoundNotStarted
	case PhaseAwaitingChoice:
		return PlayResult{}, ErrChoicePending
	case PhaseAwaitingResolve:
		return PlayResult{}, ErrCardAlreadyPlayed
	}

	var tgt *side
	switch target {
	case card.TargetPlayer:
		tgt = &s.player
	case card.TargetOpponent:
		tgt = &s.opponent
	default:
		return PlayResult{}, fmt.Errorf("%w: %d", ErrInvalidTarget, target)
	}

	played, ok := s.deps.Cards.RemoveFromHand(cardID)
	if !ok {
		return PlayResult{}, fmt.Errorf("%w: %q", ErrCardNotInHand, cardID)
	}
	s.deps.Cards.AddToDiscard(played)

	s.effectSeq++
	ctx := effect.Context{Round: s.round, Sequence: s.effectSeq}
	tgt.store.SetActiveEffects(played.Apply(ctx, tgt.state.Stats(), tgt.store.ActiveEffects()))

	s.player.reapply()
	s.opponent.reapply()
	s.phase = PhaseAwaitingResolve

	res := PlayResult{
		Card:     played,
		Target:   target,
		Player:   s.Player(),
		Opponent: s.Opponent(),
	}
	s.appendLog(fmt.Sprintf("You played %s on the %s", played.Name, target))
	s.logger.Info("Card played", "round", s.round, "card", played.ID, "target", target.String())
	s.events.Publish(CardPlayedEvent{SessionID: s.id, Round: s.round, Play: res, timestamp: s.clock.Now()})
	return res, nil
}

// ResolveRound trades blows, decays effects and checks for a winner.
func (s *Session) ResolveRound() (Resolution, error) {
	if err := s.checkActive(); err != nil {
		return Resolution{}, err
	}
	if s.phase == PhaseBetweenRounds {
		return Resolution{}, ErrRoundNotStarted
	}

	s.discardChoices()

	s.player.reapply()
	s.opponent.reapply()

	playerDamage := Damage(s.player.state.CurrentPower, s.opponent.state.CurrentDefense)
	opponentDamage := Damage(s.opponent.state.CurrentPower, s.player.state.CurrentDefense)
	s.opponent.state = s.opponent.state.TakeDamage(playerDamage)
	s.player.state = s.player.state.TakeDamage(opponentDamage)

	s.player.decay()
	s.opponent.decay()

	res := Resolution{
		Round:          s.round,
		PlayerDamage:   playerDamage,
		OpponentDamage: opponentDamage,
		PlayerHealth:   s.player.state.CurrentHealth,
		OpponentHealth: s.opponent.state.CurrentHealth,
	}

	s.winner = decideWinner(s.player.state, s.opponent.state)
	if s.winner != WinnerNone {
		s.phase = PhaseOver
		res.FightOver = true
		res.RoundWinner = s.winner
	} else {
		s.phase = PhaseBetweenRounds
	}

	res.LogEntry = fmt.Sprintf("Round %d: you dealt %.1f, took %.1f (you %.0f hp, opponent %.0f hp)",
		s.round, playerDamage, opponentDamage, res.PlayerHealth, res.OpponentHealth)
	switch s.winner {
	case WinnerPlayer:
		res.LogEntry += " - victory!"
	case WinnerOpponent:
		res.LogEntry += " - defeat."
	case WinnerTie:
		res.LogEntry += " - both stones fall, a tie."
	}
	s.appendLog(res.LogEntry)

	s.logger.Info("Round resolved",
		"round", s.round,
		"playerDamage", playerDamage,
		"opponentDamage", opponentDamage,
		"playerHealth", res.PlayerHealth,
		"opponentHealth", res.OpponentHealth,
		"winner", string(s.winner))
	s.events.Publish(RoundResolvedEvent{SessionID: s.id, Resolution: res, timestamp: s.clock.Now()})
	return res, nil
}

// Concede forfeits the fight to the opponent.
func (s *Session) Concede() error {
	if err := s.checkActive(); err != nil {
		return err
	}
	s.discardChoices()
	s.winner = WinnerOpponent
	s.phase = PhaseOver
	s.appendLog("You conceded the fight")
	s.logger.Info("Fight conceded", "round", s.round)
	return nil
}

// Abandon retires an unsettled session without settling it. Cards still on
// offer go to the discard pile. Abandoning a settled session does nothing.
func (s *Session) Abandon() {
	if s.phase == PhaseSettled {
		return
	}
	s.discardChoices()
	s.phase = PhaseSettled
	s.appendLog("Fight abandoned")
	s.logger.Info("Fight abandoned", "session", s.id, "round", s.round)
}

func (s *Session) discardChoices() {
	if len(s.choices) > 0 {
		s.deps.Cards.AddToDiscard(s.choices...)
		s.choices = nil
	}
}

func decideWinner(player, opponent Participant) Winner {
	switch {
	case player.Defeated() && opponent.Defeated():
		return WinnerTie
	case opponent.Defeated():
		return WinnerPlayer
	case player.Defeated():
		return WinnerOpponent
	default:
		return WinnerNone
	}
}

func (s *Session) appendLog(entry string) {
	s.log = append(s.log, entry)
}

func copyParticipant(p Participant) Participant {
	p.ActiveEffects = effect.Clone(p.ActiveEffects)
	p.HealedEffects = append([]string(nil), p.HealedEffects...)
	return p
}
