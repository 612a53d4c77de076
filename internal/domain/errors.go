package domain

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is the class of every rejected move.
var ErrIllegalMove = errors.New("illegal move")

// Errors returned by domain operations.
var (
	ErrOutOfBounds   = fmt.Errorf("%w: out of bounds", ErrIllegalMove)
	ErrOccupied      = fmt.Errorf("%w: cell occupied", ErrIllegalMove)
	ErrGameOver      = fmt.Errorf("%w: game over", ErrIllegalMove)
	ErrNotYourTurn   = fmt.Errorf("%w: not your turn", ErrIllegalMove)
	ErrInvalidPlayer = fmt.Errorf("%w: not a player", ErrIllegalMove)
)

// ErrExhaustedBoard reports a move generator invoked on a full board.
var ErrExhaustedBoard = errors.New("no empty cell left")
