package game

import (
	"errors"

	"tetris-ssh/internal/tetris"
)

// Action represents a player input action.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionSoftDrop
	ActionHardDrop
	ActionRotateLeft
	ActionRotateRight
	ActionPause
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionSoftDrop:
		return "soft-drop"
	case ActionHardDrop:
		return "hard-drop"
	case ActionRotateLeft:
		return "rotate-left"
	case ActionRotateRight:
		return "rotate-right"
	case ActionPause:
		return "pause"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// ErrUnknownAction is returned by Apply for actions the game does not handle.
var ErrUnknownAction = errors.New("unknown action")

// Apply issues the command bound to a on g. Rejected moves come back as the
// game's own errors (tetris.ErrCollision, tetris.ErrPaused, ...).
func Apply(g *tetris.Game, a Action) error {
	switch a {
	case ActionLeft:
		return g.MoveLeft()
	case ActionRight:
		return g.MoveRight()
	case ActionSoftDrop:
		return g.SoftDrop()
	case ActionHardDrop:
		return g.HardDrop()
	case ActionRotateLeft:
		return g.RotateLeft()
	case ActionRotateRight:
		return g.RotateRight()
	case ActionPause:
		g.TogglePause()
		return nil
	default:
		return ErrUnknownAction
	}
}

// InputEvent carries a player action into the game loop.
type InputEvent struct {
	PlayerID uint32
	Action   Action
}

// Player holds one connected player and their game.
type Player struct {
	ID   uint32
	Name string
	Game *tetris.Game
	Best uint64 // best score of earlier games under this name
}

// PlayerSnapshot is a read-only copy of player state for rendering.
type PlayerSnapshot struct {
	ID    uint32
	Name  string
	Best  uint64
	State tetris.Snapshot
}

// Snapshot returns a read-only copy of the player.
func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ID:    p.ID,
		Name:  p.Name,
		Best:  max(p.Best, p.Game.Score()),
		State: p.Game.Snapshot(),
	}
}
