package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/stonefight/internal/randutil"
	"github.com/lox/stonefight/internal/stone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func testGlobals(t *testing.T) (*Globals, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	var buf bytes.Buffer
	return &Globals{
		Config:    filepath.Join(dir, "stonefight.hcl"),
		SaveFile:  filepath.Join(dir, "save.json"),
		HistoryDB: filepath.Join(dir, "history.db"),
		LogFile:   filepath.Join(dir, "stonefight.log"),
		NoColor:   true,
		Stdout:    &buf,
	}, &buf
}

func TestStoneCmd(t *testing.T) {
	g, out := testGlobals(t)

	require.NoError(t, (&StoneCmd{Seed: "42"}).Run(g))
	q := stone.Derive(42)
	assert.Contains(t, out.String(), q.DisplayName())
	assert.Contains(t, out.String(), "Seed:     42")
	assert.Contains(t, out.String(), "Tier:     "+q.Tier().String())
}

func TestStoneCmdWordSeed(t *testing.T) {
	g, out := testGlobals(t)

	require.NoError(t, (&StoneCmd{Seed: "granite"}).Run(g))
	q := stone.Derive(stone.Seed(randutil.ParseSeed("granite")))
	assert.Contains(t, out.String(), q.DisplayName())
}

func TestOpponentsCmd(t *testing.T) {
	g, out := testGlobals(t)

	require.NoError(t, (&OpponentsCmd{Count: 3}).Run(g))
	text := out.String()
	assert.Contains(t, text, "Ladder position 1 of 10 (cycle 1)")
	assert.Contains(t, text, "  1. ")
	assert.Contains(t, text, "  3. ")
	assert.NotContains(t, text, "  4. ")
}

func TestOpponentsCmdRejectsNegativeCount(t *testing.T) {
	assert.Error(t, (&OpponentsCmd{Count: -1}).Validate())
	assert.NoError(t, (&OpponentsCmd{Count: 0}).Validate())
}

func TestFightThenHistory(t *testing.T) {
	g, out := testGlobals(t)

	require.NoError(t, (&FightCmd{Strategy: "aggressive", Count: 2, MaxRounds: 500}).Run(g))
	text := out.String()
	fights := strings.Count(text, " vs ")
	if !strings.Contains(text, "No stones left") {
		assert.Equal(t, 2, fights)
	}
	assert.Contains(t, text, "Currency: ")
	assert.FileExists(t, g.SaveFile)

	out.Reset()
	require.NoError(t, (&HistoryCmd{Limit: 10}).Run(g))
	assert.Contains(t, out.String(), fmt.Sprintf("%d fights: ", fights))
	assert.Contains(t, out.String(), "OPPONENT")
}

func TestSimulateCmd(t *testing.T) {
	g, out := testGlobals(t)
	seed := int64(7)

	cmd := &SimulateCmd{Games: 4, FightsPerGame: 2, Strategy: "defensive", Workers: 2, SimSeed: &seed}
	require.NoError(t, cmd.Run(g))
	assert.Contains(t, out.String(), "RESULTS for defensive strategy")
	assert.Contains(t, out.String(), "Games played: 4")
}

func TestConfigOverrides(t *testing.T) {
	g, _ := testGlobals(t)
	g.Seed = "99"
	g.OpponentsSeed = "pebble"

	cfg, err := g.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "99", cfg.Game.Seed)
	assert.Equal(t, "pebble", cfg.Game.OpponentsSeed)
	assert.Equal(t, g.SaveFile, cfg.Game.SaveFile)
	assert.Equal(t, int32(99), cfg.GameConfig().Seed)
}
