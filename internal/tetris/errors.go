package tetris

import "errors"

var (
	// ErrOutOfBounds rejects a move or rotation that would leave the field.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrCollision rejects a move or rotation that would overlap a locked block.
	ErrCollision = errors.New("collision")
	// ErrGameOver is returned once a piece cannot lock below the spawn row.
	// The game accepts no further commands afterwards.
	ErrGameOver = errors.New("game over")
	// ErrPaused rejects movement commands while the game is paused.
	ErrPaused = errors.New("paused")
)
