package game

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lox/stonefight/internal/card"
	"github.com/lox/stonefight/internal/effect"
	"github.com/lox/stonefight/internal/fileutil"
	"github.com/lox/stonefight/internal/randutil"
	"github.com/lox/stonefight/internal/stone"
)

// SaveVersion is the current save file format.
const SaveVersion = 1

// SaveState is the serialisable state of a game between fights.
type SaveState struct {
	Version        int               `json:"version"`
	Seed           int32             `json:"seed"`
	OpponentsSeed  int32             `json:"opponentsSeed"`
	SeedDraws      int               `json:"seedDraws"`
	OpponentCursor int               `json:"opponentCursor"`
	QueueSize      int               `json:"queueSize"`
	Stones         []stone.Qualities `json:"stones"`
	Equipped       *stone.Seed       `json:"equipped,omitempty"`
	Currency       int               `json:"currency"`
	Deck           card.Piles        `json:"deck"`
	PlayerEffects  []effect.Active   `json:"playerEffects,omitempty"`
	SavedAt        time.Time         `json:"savedAt"`
}

// Snapshot captures the game. An active fight is not included; cards it has
// on offer are saved in the discard pile.
func (g *Game) Snapshot() SaveState {
	st := SaveState{
		Version:        SaveVersion,
		Seed:           g.cfg.Seed,
		OpponentsSeed:  g.cfg.OpponentsSeed,
		SeedDraws:      g.rng.Draws(),
		OpponentCursor: g.ladder.Cursor(),
		QueueSize:      g.ladder.Size(),
		Stones:         g.Stones(),
		Currency:       g.currency,
		Deck:           g.deck.Piles(),
		SavedAt:        g.clock.Now(),
	}
	if g.fight == nil {
		st.PlayerEffects = effect.Clone(g.effects)
	} else if offered := g.fight.Choices(); len(offered) > 0 {
		st.Deck.Discard = append(st.Deck.Discard, card.IDs(offered)...)
	}
	if g.hasEquipped {
		seed := g.equipped
		st.Equipped = &seed
	}
	return st
}

// Restore rebuilds a game from a snapshot. Seeds and queue size come from the
// snapshot; the rest of cfg (rules, deck copies) applies as given.
func Restore(st SaveState, cfg Config, opts ...Option) (*Game, error) {
	if st.Version != SaveVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSave, st.Version)
	}
	cfg.Seed = st.Seed
	cfg.OpponentsSeed = st.OpponentsSeed
	if st.QueueSize > 0 {
		cfg.QueueSize = st.QueueSize
	}

	g := newGame(cfg, opts)
	g.rng.Skip(st.SeedDraws)
	g.ladder.SetCursor(st.OpponentCursor)
	g.stones = append([]stone.Qualities(nil), st.Stones...)
	g.currency = st.Currency
	g.effects = effect.Clone(st.PlayerEffects)

	// The shuffle PRNG position is not saved; a restored deck continues from
	// a seed mixed with the game PRNG position instead.
	rng := randutil.New(int64(randutil.Mix(int64(st.Seed), int64(st.SeedDraws))))
	deck, err := card.RestoreDeck(rng, g.catalog, st.Deck)
	if err != nil {
		return nil, fmt.Errorf("restore deck: %w", err)
	}
	g.deck = deck

	if st.Equipped != nil {
		if err := g.Equip(*st.Equipped); err != nil {
			return nil, fmt.Errorf("restore equipped stone: %w", err)
		}
	}
	g.logger.Info("Game restored", "stones", len(g.stones), "currency", g.currency, "opponent", g.ladder.Cursor())
	return g, nil
}

// Save writes the game to path atomically.
func (g *Game) Save(path string) error {
	if err := fileutil.WriteJSON(path, g.Snapshot(), 0o644); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	g.logger.Debug("Game saved", "path", path)
	return nil
}

// Load restores a game from the save file at path. A missing file returns an
// error matching os.ErrNotExist.
func Load(path string, cfg Config, opts ...Option) (*Game, error) {
	var st SaveState
	if err := fileutil.ReadJSON(path, &st); err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	return Restore(st, cfg, opts...)
}

// LoadOrNew loads path if it exists and starts a new game otherwise.
func LoadOrNew(path string, cfg Config, opts ...Option) (*Game, error) {
	g, err := Load(path, cfg, opts...)
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return New(cfg, opts...)
}
