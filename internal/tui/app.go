package tui

import (
	"errors"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"tetris-ssh/internal/game"
	"tetris-ssh/internal/render"
	"tetris-ssh/internal/sound"
	"tetris-ssh/internal/tetris"
)

// KeyAction maps a key press to a game action. Unmapped keys return ActionNone.
func KeyAction(key tcell.Key, r rune) game.Action {
	switch key {
	case tcell.KeyLeft:
		return game.ActionLeft
	case tcell.KeyRight:
		return game.ActionRight
	case tcell.KeyDown:
		return game.ActionSoftDrop
	case tcell.KeyUp:
		return game.ActionRotateRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.ActionQuit
	case tcell.KeyRune:
		switch r {
		case 'a', 'A':
			return game.ActionRotateLeft
		case 'd', 'D':
			return game.ActionRotateRight
		case 's', 'S', ' ':
			return game.ActionHardDrop
		case 'p', 'P':
			return game.ActionPause
		case 'q', 'Q':
			return game.ActionQuit
		}
	}
	return game.ActionNone
}

// App runs a single local game on a tcell screen.
type App struct {
	screen   tcell.Screen
	view     *View
	game     *tetris.Game
	sound    *sound.SoundManager
	interval time.Duration
	name     string

	linger int // ticks left on the game over screen
}

// NewApp creates a local game. sm may be nil to play without sound.
func NewApp(screen tcell.Screen, g *tetris.Game, sm *sound.SoundManager, interval time.Duration, name string) *App {
	if sm == nil {
		sm = sound.NewSoundManager()
	}
	return &App{
		screen:   screen,
		view:     NewView(screen),
		game:     g,
		sound:    sm,
		interval: interval,
		name:     name,
	}
}

// Run plays until the player quits or the game over screen has been shown
// for game.GameOverLinger seconds. Returns the final state.
func (a *App) Run() tetris.Snapshot {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go a.pollEvents(eventChan, done)

	a.draw()
	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return a.game.Snapshot()
			}
			a.draw()

		case <-ticker.C:
			if !a.step() {
				return a.game.Snapshot()
			}
			a.draw()
		}
	}
}

// pollEvents pumps screen events into events until the screen is finalized
// or done is closed.
func (a *App) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return // screen finalized
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent applies one terminal event. Returns false to stop.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(KeyAction(ev.Key(), ev.Rune()))
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(action game.Action) bool {
	if action == game.ActionQuit {
		return false
	}
	if a.game.Over() {
		// any key leaves the game over screen
		return false
	}
	if action == game.ActionNone {
		return true
	}
	_ = game.Apply(a.game, action)
	return true
}

// step advances the game one tick. Returns false once the game over screen
// has expired.
func (a *App) step() bool {
	if a.linger > 0 {
		a.linger--
		return a.linger > 0
	}

	lines := a.game.Lines()
	err := a.game.Tick()
	if cleared := a.game.Lines() - lines; cleared > 0 {
		a.sound.PlayLineClear(cleared)
	}
	if errors.Is(err, tetris.ErrGameOver) {
		log.Printf("Game over: score %d, %d lines", a.game.Score(), a.game.Lines())
		a.sound.PlayGameOver()
		a.linger = game.SecsToTicks(game.GameOverLinger, a.interval)
	}
	return true
}

func (a *App) draw() {
	a.view.Draw(render.Frame{Name: a.name, State: a.game.Snapshot()})
}
