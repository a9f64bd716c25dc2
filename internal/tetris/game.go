package tetris

// GravityPeriod is the number of ticks between two gravity steps.
const GravityPeriod = 5

// Piece is a read-only view of a tetromino.
type Piece struct {
	Shape    Shape
	Color    Color
	Rotation Rotation
	TopLeft  Coord
}

// Cells returns the field coordinates of the piece's occupied cells.
func (p Piece) Cells() []Coord {
	cells := Decode(p.Rotation).Cells()
	for i := range cells {
		cells[i].Y += p.TopLeft.Y
		cells[i].X += p.TopLeft.X
	}
	return cells
}

func (t *Tetromino) view() Piece {
	return Piece{Shape: t.shape, Color: t.color, Rotation: t.rotation, TopLeft: t.topLeft}
}

// Snapshot is a copy of the game state for rendering.
type Snapshot struct {
	Field   Field
	Current Piece
	Next    Piece
	Score   uint64
	Lines   int
	Paused  bool
	Over    bool
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source used to spawn pieces.
func WithRand(rng Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

// Game is one play session. It is not safe for concurrent use; callers
// serialize Tick and the commands.
type Game struct {
	rng     Rand
	field   Field
	current *Tetromino
	next    *Tetromino
	counter uint8
	paused  bool
	over    bool
	score   uint64
	lines   int
}

// New starts a game on an empty field.
func New(opts ...Option) *Game {
	g := &Game{rng: globalRand{}}
	for _, opt := range opts {
		opt(g)
	}
	g.current = NewTetromino(&g.field, g.rng)
	g.next = NewTetromino(&g.field, g.rng)
	return g
}

// Tick advances the game by one frame. Every GravityPeriod ticks the piece
// falls one row or, if blocked, locks and the next piece spawns. Full rows are
// cleared after gravity on every tick. Tick returns ErrGameOver when a piece
// is blocked at the spawn row, and on every call after that.
func (g *Game) Tick() error {
	if g.over {
		return ErrGameOver
	}
	if g.paused {
		return nil
	}

	g.counter++
	if g.counter == GravityPeriod {
		g.counter = 0
		if g.current.MoveDown() != nil {
			if err := g.lock(); err != nil {
				g.over = true
				return err
			}
			g.spawn()
		}
	}

	g.clearRows()
	return nil
}

func (g *Game) lock() error {
	if g.current.topLeft.Y <= 0 {
		return ErrGameOver
	}
	for _, c := range g.current.Cells() {
		g.field.Set(c, NewBlock(1, g.current.color))
	}
	return nil
}

func (g *Game) spawn() {
	g.current = g.next
	g.next = NewTetromino(&g.field, g.rng)
}

func (g *Game) clearRows() {
	n := g.field.ClearRows()
	g.score += uint64(n * Width)
	g.lines += n
}

func (g *Game) command() error {
	if g.over {
		return ErrGameOver
	}
	if g.paused {
		return ErrPaused
	}
	return nil
}

// MoveLeft shifts the active piece one column left.
func (g *Game) MoveLeft() error {
	if err := g.command(); err != nil {
		return err
	}
	return g.current.MoveSideways(Left)
}

// MoveRight shifts the active piece one column right.
func (g *Game) MoveRight() error {
	if err := g.command(); err != nil {
		return err
	}
	return g.current.MoveSideways(Right)
}

// SoftDrop moves the active piece down one row.
func (g *Game) SoftDrop() error {
	if err := g.command(); err != nil {
		return err
	}
	return g.current.MoveDown()
}

// HardDrop drops the active piece until it is blocked. The piece locks on the
// next gravity step.
func (g *Game) HardDrop() error {
	if err := g.command(); err != nil {
		return err
	}
	g.current.MoveAllTheWayDown()
	return nil
}

// RotateLeft rotates the active piece counter-clockwise through its rotation list.
func (g *Game) RotateLeft() error {
	if err := g.command(); err != nil {
		return err
	}
	return g.current.Rotate(Left)
}

// RotateRight rotates the active piece clockwise through its rotation list.
func (g *Game) RotateRight() error {
	if err := g.command(); err != nil {
		return err
	}
	return g.current.Rotate(Right)
}

// TogglePause flips the pause flag. It has no effect once the game is over.
func (g *Game) TogglePause() {
	if g.over {
		return
	}
	g.paused = !g.paused
}

// Field returns a copy of the locked blocks.
func (g *Game) Field() Field { return g.field }

// Current returns the active piece.
func (g *Game) Current() Piece { return g.current.view() }

// Next returns the preview piece.
func (g *Game) Next() Piece { return g.next.view() }

// Score returns the accumulated score.
func (g *Game) Score() uint64 { return g.score }

// Lines returns the number of cleared rows.
func (g *Game) Lines() int { return g.lines }

// Paused reports whether the game is paused.
func (g *Game) Paused() bool { return g.paused }

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.over }

// Snapshot copies the full game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Field:   g.field,
		Current: g.current.view(),
		Next:    g.next.view(),
		Score:   g.score,
		Lines:   g.lines,
		Paused:  g.paused,
		Over:    g.over,
	}
}
