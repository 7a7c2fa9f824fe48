package server

import (
	"errors"

	"github.com/lox/stonefight/internal/combat"
	"github.com/lox/stonefight/internal/game"
)

var (
	ErrInvalidMessage = errors.New("invalid message")
	ErrUnknownType    = errors.New("unknown message type")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidMessage, "invalid_message"},
	{ErrUnknownType, "unknown_message_type"},
	{game.ErrNoFight, "no_fight"},
	{game.ErrNoEquippedStone, "no_equipped_stone"},
	{game.ErrNoOpponent, "no_opponent"},
	{combat.ErrMissingStone, "missing_stone"},
	{combat.ErrSessionEnded, "session_ended"},
	{combat.ErrFightOver, "fight_over"},
	{combat.ErrFightNotOver, "fight_not_over"},
	{combat.ErrRoundNotStarted, "round_not_started"},
	{combat.ErrRoundInProgress, "round_in_progress"},
	{combat.ErrNoChoices, "no_choices"},
	{combat.ErrCardNotOffered, "card_not_offered"},
	{combat.ErrChoicePending, "choice_pending"},
	{combat.ErrCardNotInHand, "card_not_in_hand"},
	{combat.ErrCardAlreadyPlayed, "card_already_played"},
	{combat.ErrInvalidTarget, "invalid_target"},
}

// errorCode maps an engine error to the code sent to clients.
func errorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "internal_error"
}
