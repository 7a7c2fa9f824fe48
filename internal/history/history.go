// Package history keeps a SQLite ledger of finished fights.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lox/stonefight/internal/combat"
	_ "modernc.org/sqlite"
)

// Entry is one settled fight.
type Entry struct {
	SessionID    string    `json:"sessionId"`
	PlayedAt     time.Time `json:"playedAt"`
	Winner       string    `json:"winner"`
	Rounds       int       `json:"rounds"`
	PlayerSeed   int32     `json:"playerSeed"`
	PlayerName   string    `json:"playerName"`
	OpponentSeed int32     `json:"opponentSeed"`
	OpponentName string    `json:"opponentName"`
	Currency     int       `json:"currency"`
	StoneGained  bool      `json:"stoneGained"`
	StoneLost    bool      `json:"stoneLost"`
}

// FromSettlement builds the ledger entry for a settlement.
func FromSettlement(st combat.Settlement, at time.Time) Entry {
	return Entry{
		SessionID:    st.SessionID,
		PlayedAt:     at,
		Winner:       string(st.Winner),
		Rounds:       st.Rounds,
		PlayerSeed:   int32(st.PlayerStone.Seed),
		PlayerName:   st.PlayerStone.DisplayName(),
		OpponentSeed: int32(st.OpponentStone.Seed),
		OpponentName: st.OpponentStone.DisplayName(),
		Currency:     st.Currency,
		StoneGained:  st.StoneGained != nil,
		StoneLost:    st.StoneLost != nil,
	}
}

// Summary aggregates the whole ledger.
type Summary struct {
	Fights       int `json:"fights"`
	Wins         int `json:"wins"`
	Losses       int `json:"losses"`
	Ties         int `json:"ties"`
	Currency     int `json:"currency"`
	StonesGained int `json:"stonesGained"`
	StonesLost   int `json:"stonesLost"`
}

// WinRate is wins over fights, or zero with no fights.
func (s Summary) WinRate() float64 {
	if s.Fights == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Fights)
}

// Store is a SQLite backed fight ledger.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path. Use ":memory:" for a
// throwaway ledger.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises
	// writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the ledger schema.
func (s *Store) Migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS fights (
			session_id TEXT PRIMARY KEY,
			played_at INTEGER NOT NULL,
			winner TEXT NOT NULL,
			rounds INTEGER NOT NULL,
			player_seed INTEGER NOT NULL,
			player_name TEXT NOT NULL,
			opponent_seed INTEGER NOT NULL,
			opponent_name TEXT NOT NULL,
			currency INTEGER NOT NULL DEFAULT 0,
			stone_gained INTEGER NOT NULL DEFAULT 0,
			stone_lost INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fights_played_at ON fights(played_at)`,
	}
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Record stores one entry. Recording the same session twice is an error.
func (s *Store) Record(ctx context.Context, e Entry) error {
	const query = `INSERT INTO fights (
		session_id, played_at, winner, rounds, player_seed, player_name,
		opponent_seed, opponent_name, currency, stone_gained, stone_lost
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		e.SessionID, e.PlayedAt.UnixMilli(), e.Winner, e.Rounds,
		e.PlayerSeed, e.PlayerName, e.OpponentSeed, e.OpponentName,
		e.Currency, e.StoneGained, e.StoneLost,
	)
	if err != nil {
		return fmt.Errorf("record fight %s: %w", e.SessionID, err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	const query = `SELECT session_id, played_at, winner, rounds, player_seed,
		player_name, opponent_seed, opponent_name, currency, stone_gained, stone_lost
		FROM fights ORDER BY played_at DESC, session_id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("query recent fights: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var playedAt int64
		if err := rows.Scan(&e.SessionID, &playedAt, &e.Winner, &e.Rounds,
			&e.PlayerSeed, &e.PlayerName, &e.OpponentSeed, &e.OpponentName,
			&e.Currency, &e.StoneGained, &e.StoneLost); err != nil {
			return nil, fmt.Errorf("scan fight: %w", err)
		}
		e.PlayedAt = time.UnixMilli(playedAt).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Summary totals every recorded fight.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	const query = `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(currency), 0),
		COALESCE(SUM(stone_gained), 0),
		COALESCE(SUM(stone_lost), 0)
		FROM fights`

	var sum Summary
	err := s.db.QueryRowContext(ctx, query,
		string(combat.WinnerPlayer), string(combat.WinnerOpponent), string(combat.WinnerTie),
	).Scan(&sum.Fights, &sum.Wins, &sum.Losses, &sum.Ties, &sum.Currency, &sum.StonesGained, &sum.StonesLost)
	if err != nil {
		return Summary{}, fmt.Errorf("summarise fights: %w", err)
	}
	return sum, nil
}
