package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"

	"tetris-ssh/internal/game"
	"tetris-ssh/internal/render"
)

// SSHServer wraps the SSH listener and game loop integration.
type SSHServer struct {
	gameLoop *game.GameLoop
	addr     string
	hostKey  string
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr string, hostKey string, gl *game.GameLoop) *SSHServer {
	return &SSHServer{
		gameLoop: gl,
		addr:     addr,
		hostKey:  hostKey,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	// Set host key
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	playerID, renderCh, err := s.gameLoop.AddPlayer(username)
	if errors.Is(err, game.ErrServerFull) {
		fmt.Fprintln(sess, "Server full, try again later.")
		log.Printf("Rejected %s: %v", username, err)
		return
	}
	if err != nil {
		log.Printf("Add player %s: %v", username, err)
		return
	}

	log.Printf("Player connected: %s (%d)", username, playerID)
	defer func() {
		s.gameLoop.RemovePlayer(playerID)
		log.Printf("Player disconnected: %s (%d)", username, playerID)
	}()

	// Terminal dimensions
	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	// Create renderer
	engine := render.NewEngine(termW, termH)

	// Setup terminal
	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())

	var last game.State
	seen := false
	defer func() {
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
		if seen {
			fmt.Fprint(sess, summary(last.Player))
		}
	}()

	inputCh := s.gameLoop.InputChan()
	quitCh := make(chan struct{})

	// Goroutine: read input
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				close(quitCh)
				return
			}
			actions := parseInput(buf[:n])
			for _, action := range actions {
				if action == game.ActionQuit {
					close(quitCh)
					return
				}
				select {
				case inputCh <- game.InputEvent{PlayerID: playerID, Action: action}:
				default:
				}
			}
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()
		}
	}()

	// Main render loop: read from render channel until the game loop
	// closes it after game over
	for {
		select {
		case <-quitCh:
			return
		case state, ok := <-renderCh:
			if !ok {
				return
			}
			last, seen = state, true

			termMu.Lock()
			w, h := termW, termH
			termMu.Unlock()

			frame := render.Frame{
				Name:    state.Player.Name,
				Players: state.Players,
				Best:    state.Player.Best,
				State:   state.Player.State,
			}
			output := engine.Render(frame, w, h)
			if len(output) > 0 {
				io.WriteString(sess, output)
			}
		}
	}
}

// summary is printed to the normal screen when a session ends.
func summary(p game.PlayerSnapshot) string {
	status := "Bye"
	if p.State.Over {
		status = "Game over"
	}
	return fmt.Sprintf("%s, %s! Score: %d  Lines: %d  Best: %d\r\n",
		status, p.Name, p.State.Score, p.State.Lines, p.Best)
}

// parseInput converts raw bytes into player actions.
// Handles arrow key escape sequences, a/d rotation, s or space hard drop,
// p pause, and Q, Ctrl-C or a lone ESC to quit.
func parseInput(data []byte) []game.Action {
	var actions []game.Action
	i := 0
	for i < len(data) {
		if data[i] == 0x1b {
			// Arrow keys
			if i+2 < len(data) && data[i+1] == '[' {
				switch data[i+2] {
				case 'A':
					actions = append(actions, game.ActionRotateRight)
				case 'B':
					actions = append(actions, game.ActionSoftDrop)
				case 'C':
					actions = append(actions, game.ActionRight)
				case 'D':
					actions = append(actions, game.ActionLeft)
				}
				i += 3
				continue
			}
			if i == len(data)-1 {
				actions = append(actions, game.ActionQuit)
			}
			i++
			continue
		}

		// Single byte inputs
		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'a', 'A':
			actions = append(actions, game.ActionRotateLeft)
		case 'd', 'D':
			actions = append(actions, game.ActionRotateRight)
		case 's', 'S', ' ':
			actions = append(actions, game.ActionHardDrop)
		case 'p', 'P':
			actions = append(actions, game.ActionPause)
		case 'q', 'Q':
			actions = append(actions, game.ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, game.ActionQuit)
		}
		i += size
	}
	return actions
}
