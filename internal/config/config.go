// Package config loads the stonefight HCL configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/stonefight/internal/combat"
	"github.com/lox/stonefight/internal/game"
	"github.com/lox/stonefight/internal/randutil"
)

// Config represents the complete configuration
type Config struct {
	Game      GameSettings
	Combat    CombatSettings
	Opponents OpponentSettings
	Log       LogSettings
	Server    ServerSettings
}

// GameSettings holds seeds and file locations. Seeds are kept as text so
// that both numbers and words are accepted.
type GameSettings struct {
	Seed             string
	OpponentsSeed    string
	StartingCurrency int
	SaveFile         string
	HistoryDB        string
}

// CombatSettings are the fight rules.
type CombatSettings struct {
	MaxHealth         float64
	CardsPerRound     int
	WinReward         int
	LootChance        float64
	DestroyChance     float64
	TimeSaltedRewards bool
	DeckCopies        int
}

// OpponentSettings configures the opponent ladder.
type OpponentSettings struct {
	QueueSize int
}

// LogSettings configures logging.
type LogSettings struct {
	Level string
	File  string
}

// ServerSettings configures the websocket server.
type ServerSettings struct {
	Address string
	Port    int
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	rules := combat.DefaultRules()
	return &Config{
		Game: GameSettings{
			Seed:          "12345",
			OpponentsSeed: "67890",
			SaveFile:      "stonefight.json",
			HistoryDB:     "stonefight.db",
		},
		Combat: CombatSettings{
			MaxHealth:         rules.MaxHealth,
			CardsPerRound:     rules.CardsPerRound,
			WinReward:         rules.WinReward,
			LootChance:        rules.LootChance,
			DestroyChance:     rules.DestroyChance,
			TimeSaltedRewards: rules.TimeSaltedRewards,
			DeckCopies:        2,
		},
		Opponents: OpponentSettings{QueueSize: 10},
		Log:       LogSettings{Level: "info"},
		Server:    ServerSettings{Address: "localhost", Port: 8080},
	}
}

// fileConfig mirrors Config with every block and attribute optional, so a
// file only overrides what it sets.
type fileConfig struct {
	Game      *gameBlock      `hcl:"game,block"`
	Combat    *combatBlock    `hcl:"combat,block"`
	Opponents *opponentsBlock `hcl:"opponents,block"`
	Log       *logBlock       `hcl:"log,block"`
	Server    *serverBlock    `hcl:"server,block"`
}

type gameBlock struct {
	Seed             *string `hcl:"seed,optional"`
	OpponentsSeed    *string `hcl:"opponents_seed,optional"`
	StartingCurrency *int    `hcl:"starting_currency,optional"`
	SaveFile         *string `hcl:"save_file,optional"`
	HistoryDB        *string `hcl:"history_db,optional"`
}

type combatBlock struct {
	MaxHealth         *float64 `hcl:"max_health,optional"`
	CardsPerRound     *int     `hcl:"cards_per_round,optional"`
	WinReward         *int     `hcl:"win_reward,optional"`
	LootChance        *float64 `hcl:"loot_chance,optional"`
	DestroyChance     *float64 `hcl:"destroy_chance,optional"`
	TimeSaltedRewards *bool    `hcl:"time_salted_rewards,optional"`
	DeckCopies        *int     `hcl:"deck_copies,optional"`
}

type opponentsBlock struct {
	QueueSize *int `hcl:"queue_size,optional"`
}

type logBlock struct {
	Level *string `hcl:"level,optional"`
	File  *string `hcl:"file,optional"`
}

type serverBlock struct {
	Address *string `hcl:"address,optional"`
	Port    *int    `hcl:"port,optional"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse decodes configuration from HCL source; filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var fc fileConfig
	if diags := gohcl.DecodeBody(body, nil, &fc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	c := DefaultConfig()
	if b := fc.Game; b != nil {
		set(&c.Game.Seed, b.Seed)
		set(&c.Game.OpponentsSeed, b.OpponentsSeed)
		set(&c.Game.StartingCurrency, b.StartingCurrency)
		set(&c.Game.SaveFile, b.SaveFile)
		set(&c.Game.HistoryDB, b.HistoryDB)
	}
	if b := fc.Combat; b != nil {
		set(&c.Combat.MaxHealth, b.MaxHealth)
		set(&c.Combat.CardsPerRound, b.CardsPerRound)
		set(&c.Combat.WinReward, b.WinReward)
		set(&c.Combat.LootChance, b.LootChance)
		set(&c.Combat.DestroyChance, b.DestroyChance)
		set(&c.Combat.TimeSaltedRewards, b.TimeSaltedRewards)
		set(&c.Combat.DeckCopies, b.DeckCopies)
	}
	if b := fc.Opponents; b != nil {
		set(&c.Opponents.QueueSize, b.QueueSize)
	}
	if b := fc.Log; b != nil {
		set(&c.Log.Level, b.Level)
		set(&c.Log.File, b.File)
	}
	if b := fc.Server; b != nil {
		set(&c.Server.Address, b.Address)
		set(&c.Server.Port, b.Port)
	}
	return c, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Combat.MaxHealth <= 0 {
		return fmt.Errorf("combat: max_health must be positive, got %v", c.Combat.MaxHealth)
	}
	if c.Combat.CardsPerRound < 1 {
		return fmt.Errorf("combat: cards_per_round must be at least 1, got %d", c.Combat.CardsPerRound)
	}
	if c.Combat.LootChance < 0 || c.Combat.LootChance > 1 {
		return fmt.Errorf("combat: loot_chance must be between 0 and 1, got %v", c.Combat.LootChance)
	}
	if c.Combat.DestroyChance < 0 || c.Combat.DestroyChance > 1 {
		return fmt.Errorf("combat: destroy_chance must be between 0 and 1, got %v", c.Combat.DestroyChance)
	}
	if c.Combat.DeckCopies < 1 {
		return fmt.Errorf("combat: deck_copies must be at least 1, got %d", c.Combat.DeckCopies)
	}
	if c.Opponents.QueueSize < 1 {
		return fmt.Errorf("opponents: queue_size must be at least 1, got %d", c.Opponents.QueueSize)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: invalid level %q", c.Log.Level)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	return nil
}

// Rules returns the combat rules.
func (c *Config) Rules() combat.Rules {
	return combat.Rules{
		MaxHealth:         c.Combat.MaxHealth,
		CardsPerRound:     c.Combat.CardsPerRound,
		WinReward:         c.Combat.WinReward,
		LootChance:        c.Combat.LootChance,
		DestroyChance:     c.Combat.DestroyChance,
		TimeSaltedRewards: c.Combat.TimeSaltedRewards,
	}
}

// GameConfig returns the parameters for a new game.
func (c *Config) GameConfig() game.Config {
	return game.Config{
		Seed:             randutil.ParseSeed(c.Game.Seed),
		OpponentsSeed:    randutil.ParseSeed(c.Game.OpponentsSeed),
		StartingCurrency: c.Game.StartingCurrency,
		QueueSize:        c.Opponents.QueueSize,
		DeckCopies:       c.Combat.DeckCopies,
		Rules:            c.Rules(),
	}
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
