package game

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/stonefight/internal/card"
	"github.com/lox/stonefight/internal/combat"
	"github.com/lox/stonefight/internal/effect"
	"github.com/lox/stonefight/internal/history"
	"github.com/lox/stonefight/internal/randutil"
	"github.com/lox/stonefight/internal/stone"
)

// Config holds the parameters a new game is created with.
type Config struct {
	Seed             int32
	OpponentsSeed    int32
	StartingCurrency int
	QueueSize        int
	DeckCopies       int
	Rules            combat.Rules
}

// DefaultConfig returns the standard starting configuration.
func DefaultConfig() Config {
	return Config{
		Seed:          12345,
		OpponentsSeed: 67890,
		QueueSize:     stone.DefaultQueueSize,
		DeckCopies:    2,
		Rules:         combat.DefaultRules(),
	}
}

// Recorder stores settled fights.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) error
}

// Option configures a Game
type Option func(*Game)

// WithLogger sets the logger for the game and the fights it starts.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithClock sets the clock used for stone timestamps and history.
func WithClock(c quartz.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithRecorder records every settled fight.
func WithRecorder(r Recorder) Option {
	return func(g *Game) { g.recorder = r }
}

// WithEventBus publishes fight events on bus.
func WithEventBus(bus combat.EventBus) Option {
	return func(g *Game) { g.events = bus }
}

// WithCatalog replaces the standard card catalog.
func WithCatalog(c *card.Catalog) Option {
	return func(g *Game) { g.catalog = c }
}

var (
	_ combat.Inventory   = (*Game)(nil)
	_ combat.EffectStore = (*Game)(nil)
)

// Game is one player's save: seeds, stones, currency, deck and the fight slot.
type Game struct {
	cfg Config

	rng         *randutil.Mulberry32
	ladder      *stone.Ladder
	stones      []stone.Qualities
	equipped    stone.Seed
	hasEquipped bool
	currency    int
	catalog     *card.Catalog
	deck        *card.Deck
	effects     []effect.Active
	fight       *combat.Session

	logger   *log.Logger
	clock    quartz.Clock
	recorder Recorder
	events   combat.EventBus
}

func newGame(cfg Config, opts []Option) *Game {
	g := &Game{
		cfg:     cfg,
		logger:  log.New(io.Discard),
		clock:   quartz.NewReal(),
		catalog: card.Standard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.WithPrefix("game")
	if g.cfg.QueueSize <= 0 {
		g.cfg.QueueSize = stone.DefaultQueueSize
	}
	if g.cfg.DeckCopies <= 0 {
		g.cfg.DeckCopies = 1
	}
	g.rng = randutil.NewMulberry32(cfg.Seed)
	g.ladder = stone.NewLadder(stone.Seed(cfg.OpponentsSeed), g.cfg.QueueSize)
	return g
}

// New starts a fresh game with one minted stone equipped.
func New(cfg Config, opts ...Option) (*Game, error) {
	g := newGame(cfg, opts)
	g.currency = cfg.StartingCurrency
	g.deck = card.NewDeck(randutil.New(int64(cfg.Seed)), g.catalog.StartingDeck(g.cfg.DeckCopies))

	first := g.MintStone()
	if err := g.Equip(first.Seed); err != nil {
		return nil, fmt.Errorf("equip starting stone: %w", err)
	}
	g.logger.Info("New game", "seed", cfg.Seed, "opponentsSeed", cfg.OpponentsSeed, "stone", first.DisplayName())
	return g, nil
}

// Config returns the configuration the game runs with.
func (g *Game) Config() Config { return g.cfg }

// Catalog returns the card catalog.
func (g *Game) Catalog() *card.Catalog { return g.catalog }

// Hand returns the cards in the player's hand.
func (g *Game) Hand() []card.Card { return g.deck.Hand() }

// Deck returns the player's card piles.
func (g *Game) Deck() *card.Deck { return g.deck }

// MintStone draws a new seed from the game PRNG and adds the stone it derives
// to the inventory.
func (g *Game) MintStone() stone.Qualities {
	q := stone.Mint(g.rng, g.clock)
	g.AddStone(q)
	g.logger.Debug("Stone minted", "seed", q.Seed, "name", q.DisplayName(), "tier", q.Tier().String())
	return q
}

// AddStone puts q in the inventory. If nothing is equipped, q is equipped.
func (g *Game) AddStone(q stone.Qualities) {
	g.stones = append(g.stones, q)
	if !g.hasEquipped {
		g.equipped, g.hasEquipped = q.Seed, true
	}
}

// RemoveStone takes the stone with seed out of the inventory, unequipping it
// if needed.
func (g *Game) RemoveStone(seed stone.Seed) error {
	i := slices.IndexFunc(g.stones, func(q stone.Qualities) bool { return q.Seed == seed })
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrStoneNotFound, seed)
	}
	g.stones = slices.Delete(g.stones, i, i+1)
	if g.hasEquipped && g.equipped == seed {
		g.hasEquipped = false
		g.equipped = 0
	}
	g.logger.Info("Stone removed", "seed", seed)
	return nil
}

// Equip makes the stone with seed the fighting stone.
func (g *Game) Equip(seed stone.Seed) error {
	if g.fight != nil && !g.fight.IsOver() {
		return ErrFightInProgress
	}
	if !slices.ContainsFunc(g.stones, func(q stone.Qualities) bool { return q.Seed == seed }) {
		return fmt.Errorf("%w: %d", ErrStoneNotFound, seed)
	}
	g.equipped, g.hasEquipped = seed, true
	return nil
}

// EquipStrongest equips the stone with the highest power. It returns false
// when the inventory is empty.
func (g *Game) EquipStrongest() (stone.Qualities, bool) {
	if len(g.stones) == 0 {
		return stone.Qualities{}, false
	}
	best := g.stones[0]
	for _, q := range g.stones[1:] {
		if stone.Power(q) > stone.Power(best) {
			best = q
		}
	}
	if err := g.Equip(best.Seed); err != nil {
		return stone.Qualities{}, false
	}
	return best, true
}

// EquippedStone returns the equipped stone, if any.
func (g *Game) EquippedStone() (stone.Qualities, bool) {
	if !g.hasEquipped {
		return stone.Qualities{}, false
	}
	for _, q := range g.stones {
		if q.Seed == g.equipped {
			return q, true
		}
	}
	return stone.Qualities{}, false
}

// Stones returns a copy of the inventory.
func (g *Game) Stones() []stone.Qualities {
	return slices.Clone(g.stones)
}

// Currency returns the player's currency.
func (g *Game) Currency() int { return g.currency }

// AddCurrency adjusts the player's currency.
func (g *Game) AddCurrency(amount int) {
	g.currency += amount
}

// ActiveEffects returns the player's persistent effects.
func (g *Game) ActiveEffects() []effect.Active {
	return effect.Clone(g.effects)
}

// SetActiveEffects replaces the player's persistent effects.
func (g *Game) SetActiveEffects(effects []effect.Active) {
	g.effects = effect.Clone(effects)
}

// CurrentOpponent returns the next opponent on the ladder.
func (g *Game) CurrentOpponent() (stone.Qualities, error) {
	if g.ladder.Size() == 0 {
		return stone.Qualities{}, ErrNoOpponent
	}
	return g.ladder.Current(), nil
}

// UpcomingOpponents returns up to n opponents from the current one on.
func (g *Game) UpcomingOpponents(n int) []stone.Qualities {
	return g.ladder.Upcoming(n)
}

// Ladder returns the opponent ladder.
func (g *Game) Ladder() *stone.Ladder { return g.ladder }

// StartFight pits the equipped stone against the current opponent. Any
// previous fight is abandoned unsettled and its offered cards discarded.
func (g *Game) StartFight(opts ...combat.Option) (*combat.Session, error) {
	player, ok := g.EquippedStone()
	if !ok {
		return nil, ErrNoEquippedStone
	}
	opponent, err := g.CurrentOpponent()
	if err != nil {
		return nil, err
	}
	sessionOpts := []combat.Option{
		combat.WithRules(g.cfg.Rules),
		combat.WithLogger(g.logger),
		combat.WithClock(g.clock),
		combat.WithGameSeed(g.cfg.Seed),
	}
	if g.events != nil {
		sessionOpts = append(sessionOpts, combat.WithEventBus(g.events))
	}
	sessionOpts = append(sessionOpts, opts...)

	s, err := combat.StartFight(&player, &opponent, combat.Deps{
		Cards:         g.deck,
		PlayerEffects: g,
		Inventory:     g,
	}, sessionOpts...)
	if err != nil {
		return nil, err
	}
	if g.fight != nil && g.fight.Phase() != combat.PhaseSettled {
		g.logger.Warn("Discarding unsettled fight", "session", g.fight.ID())
		g.fight.Abandon()
	}
	g.fight = s
	return s, nil
}

// Fight returns the session in the fight slot.
func (g *Game) Fight() (*combat.Session, error) {
	if g.fight == nil {
		return nil, ErrNoFight
	}
	return g.fight, nil
}

// EndFight settles the current fight and empties the slot. A player win moves
// the ladder on to the next opponent.
func (g *Game) EndFight(ctx context.Context) (combat.Settlement, error) {
	if g.fight == nil {
		return combat.Settlement{}, ErrNoFight
	}
	st, err := g.fight.EndFight()
	if err != nil {
		return combat.Settlement{}, err
	}
	g.fight = nil
	g.effects = nil

	if st.Winner == combat.WinnerPlayer {
		next := g.ladder.Advance()
		g.logger.Debug("Ladder advanced", "cursor", g.ladder.Cursor(), "next", next.DisplayName())
	}

	if g.recorder != nil {
		if err := g.recorder.Record(ctx, history.FromSettlement(st, g.clock.Now())); err != nil {
			g.logger.Warn("Failed to record fight", "session", st.SessionID, "error", err)
		}
	}
	return st, nil
}
