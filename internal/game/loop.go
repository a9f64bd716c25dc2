package game

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/kamstrup/intmap"

	"tetris-ssh/internal/tetris"
)

const (
	InputChanSize = 256

	// GameOverLinger is how long a finished game stays on screen before the
	// player's render channel is closed.
	GameOverLinger = 3.0 // seconds
)

// ErrServerFull is returned by AddPlayer when MaxPlayers games are running.
var ErrServerFull = errors.New("server full")

// State is a snapshot sent to each session for rendering.
type State struct {
	Player  PlayerSnapshot
	Players int
	Tick    uint64
}

// RenderChan is the per-session channel that receives game state snapshots.
// It is closed when the player is removed.
type RenderChan chan State

type seat struct {
	player *Player
	ch     RenderChan
	linger int // ticks left on the game over screen, 0 while playing
}

// GameLoop drives every connected player's game from a single goroutine.
type GameLoop struct {
	interval   time.Duration
	maxPlayers int
	gameOpts   []tetris.Option
	inputCh    chan InputEvent
	tickCount  uint64

	mu     sync.Mutex
	seats  *intmap.Map[uint32, *seat]
	nextID uint32
	saved  map[string]uint64 // best score keyed by username

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewGameLoop creates a game loop ticking every interval. opts are passed to
// every game it starts.
func NewGameLoop(interval time.Duration, maxPlayers int, opts ...tetris.Option) *GameLoop {
	return &GameLoop{
		interval:   interval,
		maxPlayers: maxPlayers,
		gameOpts:   opts,
		inputCh:    make(chan InputEvent, InputChanSize),
		seats:      intmap.New[uint32, *seat](maxPlayers),
		saved:      make(map[string]uint64),
		stopCh:     make(chan struct{}),
	}
}

// InputChan returns the shared input channel for sessions to send events.
func (gl *GameLoop) InputChan() chan<- InputEvent {
	return gl.inputCh
}

// AddPlayer starts a new game for name. A best score from an earlier game
// under the same name is carried over.
func (gl *GameLoop) AddPlayer(name string) (uint32, RenderChan, error) {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	if gl.seats.Len() >= gl.maxPlayers {
		return 0, nil, ErrServerFull
	}

	gl.nextID++
	id := gl.nextID
	player := &Player{
		ID:   id,
		Name: name,
		Game: tetris.New(gl.gameOpts...),
		Best: gl.saved[name],
	}
	ch := make(RenderChan, 2)
	gl.seats.Put(id, &seat{player: player, ch: ch})
	return id, ch, nil
}

// RemovePlayer saves the player's best score and unregisters them.
func (gl *GameLoop) RemovePlayer(id uint32) {
	gl.mu.Lock()
	defer gl.mu.Unlock()
	gl.removeLocked(id)
}

func (gl *GameLoop) removeLocked(id uint32) {
	s, ok := gl.seats.Get(id)
	if !ok {
		return
	}
	p := s.player
	if score := p.Game.Score(); score > gl.saved[p.Name] {
		gl.saved[p.Name] = score
	}
	gl.seats.Del(id)
	close(s.ch)
}

// Best returns the best recorded score for name.
func (gl *GameLoop) Best(name string) uint64 {
	gl.mu.Lock()
	defer gl.mu.Unlock()
	return gl.saved[name]
}

// Players returns the number of connected players.
func (gl *GameLoop) Players() int {
	gl.mu.Lock()
	defer gl.mu.Unlock()
	return gl.seats.Len()
}

// Run starts the game loop. Blocks until Stop is called.
func (gl *GameLoop) Run() {
	ticker := time.NewTicker(gl.interval)
	defer ticker.Stop()

	for {
		select {
		case <-gl.stopCh:
			return
		case <-ticker.C:
			gl.tick()
		}
	}
}

// Stop shuts down the game loop.
func (gl *GameLoop) Stop() {
	gl.stopOnce.Do(func() { close(gl.stopCh) })
}

func (gl *GameLoop) tick() {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	// Drain all pending input events
	for {
		select {
		case ev := <-gl.inputCh:
			gl.processInput(ev)
		default:
			goto drained
		}
	}
drained:

	gl.tickCount++

	var expired []uint32
	gl.seats.ForEach(func(id uint32, s *seat) bool {
		if s.linger > 0 {
			s.linger--
			if s.linger == 0 {
				expired = append(expired, id)
			}
			return true
		}
		if err := s.player.Game.Tick(); errors.Is(err, tetris.ErrGameOver) {
			log.Printf("Game over: %s (%d) score %d, %d lines",
				s.player.Name, id, s.player.Game.Score(), s.player.Game.Lines())
			s.linger = SecsToTicks(GameOverLinger, gl.interval)
		}
		return true
	})

	// Non-blocking send to each render channel
	players := gl.seats.Len()
	gl.seats.ForEach(func(_ uint32, s *seat) bool {
		state := State{
			Player:  s.player.Snapshot(),
			Players: players,
			Tick:    gl.tickCount,
		}
		select {
		case s.ch <- state:
		default:
			// Drop frame for slow client
		}
		return true
	})

	for _, id := range expired {
		gl.removeLocked(id)
	}
}

func (gl *GameLoop) processInput(ev InputEvent) {
	s, ok := gl.seats.Get(ev.PlayerID)
	if !ok || s.linger > 0 {
		return
	}
	// rejected moves are the normal outcome of blocked input
	_ = Apply(s.player.Game, ev.Action)
}
