package render

import "tetris-ssh/internal/tetris"

const (
	// BoardW and BoardH are the bordered board's size in screen cells.
	BoardW = tetris.Width*TileWidth + 2
	BoardH = tetris.Height + 2

	// PanelW is the width of the side panel (next piece, score, controls).
	PanelW   = 24
	panelGap = 2

	// MinTermW and MinTermH are the smallest terminal that fits the layout.
	MinTermW = BoardW + panelGap + PanelW
	MinTermH = BoardH
)

// Viewport places the board and side panel in the terminal.
type Viewport struct {
	BoardX, BoardY int // top-left of the board border (0-based)
	PanelX         int
	Fits           bool
}

// NewViewport centers the board and side panel in a termW x termH terminal.
func NewViewport(termW, termH int) Viewport {
	if termW < MinTermW || termH < MinTermH {
		return Viewport{}
	}
	x := (termW - MinTermW) / 2
	y := (termH - MinTermH) / 2
	return Viewport{
		BoardX: x,
		BoardY: y,
		PanelX: x + BoardW + panelGap,
		Fits:   true,
	}
}

// FieldToScreen converts a field coordinate to the screen position of its
// left column (0-based). The cell spans TileWidth columns.
func (v Viewport) FieldToScreen(c tetris.Coord) (int, int) {
	return v.BoardX + 1 + c.X*TileWidth, v.BoardY + 1 + c.Y
}
