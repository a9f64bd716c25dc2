package tetris

const (
	// Width is the number of columns of the playing field.
	Width = 10
	// Height is the number of rows of the playing field.
	Height = 16
)

// Block is one field cell. Color is ColorNone exactly when Value is 0.
type Block struct {
	Value uint8
	Color Color
}

// NewBlock returns a block, dropping the color of an empty value.
func NewBlock(value uint8, color Color) Block {
	if value == 0 {
		return Block{}
	}
	return Block{Value: value, Color: color}
}

// Empty reports whether the cell holds no locked block.
func (b Block) Empty() bool {
	return b.Value == 0
}

// Row is one field row, left to right.
type Row [Width]Block

// Full reports whether every cell of the row is occupied.
func (r *Row) Full() bool {
	for _, b := range r {
		if b.Empty() {
			return false
		}
	}
	return true
}

// Coord is a grid position: Y is the row, X the column.
type Coord struct {
	Y, X int
}

// Direction steps sideways movement and rotation.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// Field is the fixed Height x Width grid of locked blocks, row 0 at the top.
type Field [Height]Row

// InBounds reports whether c lies inside the field.
func InBounds(c Coord) bool {
	return c.X >= 0 && c.X < Width && c.Y >= 0 && c.Y < Height
}

// At returns the block at c. c must be in bounds.
func (f Field) At(c Coord) Block {
	return f[c.Y][c.X]
}

// Occupied reports whether the in-bounds cell c holds a locked block.
func (f Field) Occupied(c Coord) bool {
	return !f[c.Y][c.X].Empty()
}

// Set stores b at c. c must be in bounds.
func (f *Field) Set(c Coord, b Block) {
	f[c.Y][c.X] = b
}

// count returns the number of occupied cells.
func (f Field) count() int {
	n := 0
	for y := range f {
		for _, b := range f[y] {
			if !b.Empty() {
				n++
			}
		}
	}
	return n
}

// ClearRows removes full rows and returns how many were cleared.
// Rows are scanned top to bottom; each full row is emptied and then rotated to
// the top of the window [0, i], shifting only the rows above it down by one.
func (f *Field) ClearRows() int {
	cleared := 0
	for i := range f {
		if !f[i].Full() {
			continue
		}
		f[i] = Row{}
		emptied := f[i]
		copy(f[1:i+1], f[0:i])
		f[0] = emptied
		cleared++
	}
	return cleared
}
