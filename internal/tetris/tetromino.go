package tetris

// Tetromino is the active piece. It reads the field it is bound to for
// collision tests and never writes to it.
type Tetromino struct {
	field    *Field
	shape    Shape
	color    Color
	rotation Rotation
	topLeft  Coord
}

// NewTetromino spawns a random piece at the top center of field.
func NewTetromino(field *Field, rng Rand) *Tetromino {
	shape := Shapes[rng.IntN(NumShapes)]
	rotations := shapeRotations[shape]
	return &Tetromino{
		field:    field,
		shape:    shape,
		color:    shape.Color(),
		rotation: rotations[rng.IntN(len(rotations))],
		topLeft:  Coord{Y: 0, X: Width/2 - 1},
	}
}

// Shape returns the piece's kind.
func (t *Tetromino) Shape() Shape { return t.shape }

// Color returns the piece's color tag.
func (t *Tetromino) Color() Color { return t.color }

// Rotation returns the current rotation encoding.
func (t *Tetromino) Rotation() Rotation { return t.rotation }

// TopLeft returns the field position of the piece's 4x4 box.
func (t *Tetromino) TopLeft() Coord { return t.topLeft }

// Cells returns the field coordinates of the piece's occupied cells.
func (t *Tetromino) Cells() []Coord {
	return t.view().Cells()
}

// MoveSideways shifts the piece one column in dir.
func (t *Tetromino) MoveSideways(dir Direction) error {
	next := Coord{Y: t.topLeft.Y, X: t.topLeft.X + int(dir)}
	if err := t.fits(t.rotation, next); err != nil {
		return err
	}
	t.topLeft = next
	return nil
}

// MoveDown drops the piece by one row.
func (t *Tetromino) MoveDown() error {
	next := Coord{Y: t.topLeft.Y + 1, X: t.topLeft.X}
	if err := t.fits(t.rotation, next); err != nil {
		return err
	}
	t.topLeft = next
	return nil
}

// MoveAllTheWayDown drops the piece until it is blocked and returns the
// number of rows travelled.
func (t *Tetromino) MoveAllTheWayDown() int {
	rows := 0
	for t.MoveDown() == nil {
		rows++
	}
	return rows
}

// Rotate steps to the neighbouring rotation in dir. Obstructed rotations are
// rejected as a whole; there is no kick search.
func (t *Tetromino) Rotate(dir Direction) error {
	rotations := shapeRotations[t.shape]
	idx := t.shape.rotationIndex(t.rotation)
	n := len(rotations)
	next := rotations[((idx+int(dir))%n+n)%n]
	if err := t.fits(next, t.topLeft); err != nil {
		return err
	}
	t.rotation = next
	return nil
}

// fits validates every occupied cell of rotation r placed at origin.
// Bounds are checked for all cells before any collision.
func (t *Tetromino) fits(r Rotation, origin Coord) error {
	cells := Decode(r).Cells()
	for _, c := range cells {
		if !InBounds(Coord{Y: origin.Y + c.Y, X: origin.X + c.X}) {
			return ErrOutOfBounds
		}
	}
	for _, c := range cells {
		if t.field.Occupied(Coord{Y: origin.Y + c.Y, X: origin.X + c.X}) {
			return ErrCollision
		}
	}
	return nil
}
