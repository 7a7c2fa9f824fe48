// Package game owns a player's long-lived state and the single fight slot.
//
// A Game holds the game seed PRNG, the opponent ladder, the stone inventory,
// currency, the card deck and the player's persistent effects. It is the
// inventory and effect store a combat.Session settles into:
//
//	g, _ := game.New(game.DefaultConfig())
//	s, _ := g.StartFight()
//	s.StartNewRound()
//	// select, play, resolve...
//	settlement, _ := g.EndFight(ctx)
//
// # Persistence
//
// Snapshot returns a plain SaveState and Restore rebuilds a Game from one.
// Fights are not saved; a game is only resumable between fights. The PRNG
// position is stored as a draw count, so a restored game mints the same
// stones the original would have.
//
// A Game is not safe for concurrent use.
package game
