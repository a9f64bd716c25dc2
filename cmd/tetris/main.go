package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"tetris-ssh/internal/config"
	"tetris-ssh/internal/sound"
	"tetris-ssh/internal/tetris"
	"tetris-ssh/internal/tui"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	cfg, err := config.Load(os.Getenv(config.PathEnv))
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Non-fatal, game can run without sound
	sm := sound.NewSoundManager()
	if err := sm.Initialize(); err != nil {
		log.Printf("Audio initialization failed: %v", err)
	}
	defer sm.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Screen error: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Screen init error: %v", err)
	}

	// keep log lines off the game screen
	log.SetOutput(io.Discard)
	app := tui.NewApp(screen, tetris.New(), sm, cfg.TickInterval, os.Getenv("USER"))
	final := app.Run()
	screen.Fini()
	log.SetOutput(os.Stderr)

	fmt.Printf("Score: %d  Lines: %d\n", final.Score, final.Lines)
}
