package game

import "errors"

var (
	ErrNoFight         = errors.New("no fight in progress")
	ErrFightInProgress = errors.New("a fight is in progress")
	ErrNoEquippedStone = errors.New("no stone equipped")
	ErrNoOpponent      = errors.New("no opponent available")
	ErrStoneNotFound   = errors.New("stone not in inventory")
	ErrUnsupportedSave = errors.New("unsupported save version")
)
