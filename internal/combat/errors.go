package combat

import "errors"

// Invalid state errors. A call that returns one of these has not changed
// the session.
var (
	ErrFightOver         = errors.New("fight is over")
	ErrSessionEnded      = errors.New("fight session has ended")
	ErrRoundNotStarted   = errors.New("no round in progress")
	ErrRoundInProgress   = errors.New("round already in progress")
	ErrNoChoices         = errors.New("no cards on offer")
	ErrCardNotOffered    = errors.New("card is not among the current choices")
	ErrChoicePending     = errors.New("pick a card from the current choices first")
	ErrCardNotInHand     = errors.New("card is not in hand")
	ErrCardAlreadyPlayed = errors.New("a card has already been played this round")
	ErrInvalidTarget     = errors.New("invalid card target")
	ErrFightNotOver      = errors.New("fight has not finished")
)

// ErrMissingStone is returned when a fight is started without both stones.
var ErrMissingStone = errors.New("both combatants need a stone")
