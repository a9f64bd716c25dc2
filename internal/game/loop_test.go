package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tetris-ssh/internal/tetris"
)

// onlyO always picks index 0: shape O with its single rotation.
type onlyO struct{}

func (onlyO) IntN(int) int { return 0 }

func newTestLoop(maxPlayers int) *GameLoop {
	return NewGameLoop(100*time.Millisecond, maxPlayers, tetris.WithRand(onlyO{}))
}

func recv(t *testing.T, ch RenderChan) State {
	t.Helper()
	select {
	case s, ok := <-ch:
		require.True(t, ok, "render channel closed")
		return s
	default:
		t.Fatal("no state on render channel")
		return State{}
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		action Action
		want   tetris.Coord
	}{
		{ActionLeft, tetris.Coord{Y: 0, X: 3}},
		{ActionRight, tetris.Coord{Y: 0, X: 5}},
		{ActionSoftDrop, tetris.Coord{Y: 1, X: 4}},
		{ActionHardDrop, tetris.Coord{Y: tetris.Height - 4, X: 4}},
		{ActionRotateLeft, tetris.Coord{Y: 0, X: 4}},
		{ActionRotateRight, tetris.Coord{Y: 0, X: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			g := tetris.New(tetris.WithRand(onlyO{}))
			require.NoError(t, Apply(g, tt.action))
			assert.Equal(t, tt.want, g.Current().TopLeft)
		})
	}
}

func TestApplyPauseAndUnknown(t *testing.T) {
	g := tetris.New(tetris.WithRand(onlyO{}))

	require.NoError(t, Apply(g, ActionPause))
	assert.True(t, g.Paused())
	assert.ErrorIs(t, Apply(g, ActionLeft), tetris.ErrPaused)

	require.NoError(t, Apply(g, ActionPause))
	assert.False(t, g.Paused())

	assert.ErrorIs(t, Apply(g, ActionNone), ErrUnknownAction)
	assert.ErrorIs(t, Apply(g, ActionQuit), ErrUnknownAction)
}

func TestAddRemovePlayer(t *testing.T) {
	gl := newTestLoop(2)

	id1, ch1, err := gl.AddPlayer("alice")
	require.NoError(t, err)
	id2, _, err := gl.AddPlayer("alice")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, gl.Players())

	_, _, err = gl.AddPlayer("bob")
	assert.ErrorIs(t, err, ErrServerFull)

	gl.RemovePlayer(id1)
	assert.Equal(t, 1, gl.Players())
	_, ok := <-ch1
	assert.False(t, ok, "render channel should be closed")

	// removing twice is harmless
	gl.RemovePlayer(id1)
	assert.Equal(t, 1, gl.Players())
}

func TestTickBroadcastsAndAppliesInput(t *testing.T) {
	gl := newTestLoop(4)
	id, ch, err := gl.AddPlayer("carol")
	require.NoError(t, err)

	gl.InputChan() <- InputEvent{PlayerID: id, Action: ActionLeft}
	gl.InputChan() <- InputEvent{PlayerID: 999, Action: ActionLeft}
	gl.tick()

	s := recv(t, ch)
	assert.Equal(t, uint64(1), s.Tick)
	assert.Equal(t, 1, s.Players)
	assert.Equal(t, id, s.Player.ID)
	assert.Equal(t, "carol", s.Player.Name)
	assert.Equal(t, tetris.Coord{Y: 0, X: 3}, s.Player.State.Current.TopLeft)
}

func TestTickDropsFramesForSlowClients(t *testing.T) {
	gl := newTestLoop(4)
	_, ch, err := gl.AddPlayer("dave")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		gl.tick()
	}
	assert.Equal(t, cap(ch), len(ch))
}

func TestGameOverLingersThenCloses(t *testing.T) {
	gl := newTestLoop(4)
	id, ch, err := gl.AddPlayer("erin")
	require.NoError(t, err)

	// stack O pieces in columns 6-7 until one cannot leave the spawn row
	var last State
	closed := false
	for i := 0; i < 2000 && !closed; i++ {
		gl.InputChan() <- InputEvent{PlayerID: id, Action: ActionHardDrop}
		gl.tick()
		select {
		case s, ok := <-ch:
			if !ok {
				closed = true
				break
			}
			last = s
		default:
		}
	}

	require.True(t, closed, "game never ended")
	assert.True(t, last.Player.State.Over)
	assert.Equal(t, 0, gl.Players())
	assert.Equal(t, uint64(0), gl.Best("erin"))
}

func TestBestScoreCarriedOver(t *testing.T) {
	gl := newTestLoop(4)
	id, _, err := gl.AddPlayer("frank")
	require.NoError(t, err)

	// five O pieces side by side fill the two bottom rows
	for _, shift := range []int{-6, -4, -2, 0, 2} {
		action, steps := ActionLeft, -shift
		if shift > 0 {
			action, steps = ActionRight, shift
		}
		for i := 0; i < steps; i++ {
			gl.InputChan() <- InputEvent{PlayerID: id, Action: action}
		}
		gl.InputChan() <- InputEvent{PlayerID: id, Action: ActionHardDrop}
		for i := 0; i < tetris.GravityPeriod; i++ {
			gl.tick()
		}
	}

	gl.RemovePlayer(id)
	assert.Equal(t, uint64(2*tetris.Width), gl.Best("frank"))

	_, ch, err := gl.AddPlayer("frank")
	require.NoError(t, err)
	gl.tick()
	assert.Equal(t, uint64(2*tetris.Width), recv(t, ch).Player.Best)
}

func TestSecsToTicks(t *testing.T) {
	assert.Equal(t, 30, SecsToTicks(3, 100*time.Millisecond))
	assert.Equal(t, 1, SecsToTicks(0.01, 100*time.Millisecond))
	assert.Equal(t, 500*time.Millisecond, FallInterval(100*time.Millisecond))
}
