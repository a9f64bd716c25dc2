package render

import (
	"fmt"
	"strings"

	"tetris-ssh/internal/tetris"
)

const (
	boardBgR, boardBgG, boardBgB    = 10, 10, 15
	screenBgR, screenBgG, screenBgB = 18, 18, 24
)

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch            rune
	FgR, FgG, FgB uint8
	BgR, BgG, BgB uint8
	Bold          bool
}

var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255, Bold: true}

// Frame is the data needed to draw one player's screen.
type Frame struct {
	Name    string
	Players int // connected players, 0 hides the counter
	Best    uint64
	State   tetris.Snapshot
}

// Engine is a per-session double-buffer diff renderer.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	e := &Engine{
		width:      width,
		height:     height,
		firstFrame: true,
	}
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// Render produces the ANSI byte output for the current frame.
func (e *Engine) Render(f Frame, termW, termH int) string {
	if termW != e.width || termH != e.height {
		e.Resize(termW, termH)
	}

	bgCell := Cell{Ch: ' ', BgR: screenBgR, BgG: screenBgG, BgB: screenBgB}
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			e.next[y][x] = bgCell
		}
	}

	vp := NewViewport(termW, termH)
	if !vp.Fits {
		msg := fmt.Sprintf("Terminal too small: need %dx%d", MinTermW, MinTermH)
		e.writeText(0, 0, e.width, msg, 255, 120, 120, screenBgR, screenBgG, screenBgB, true)
	} else {
		e.drawBoard(vp, &f.State)
		e.drawPanel(vp, f)
	}

	// Diff current vs next, emit only changed cells
	var sb strings.Builder
	sb.Grow(4096)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	// Swap buffers
	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}

// --- Board ---

func (e *Engine) drawBoard(vp Viewport, s *tetris.Snapshot) {
	e.drawBox(vp.BoardX, vp.BoardY, BoardW, BoardH, "")

	for y := 0; y < tetris.Height; y++ {
		for x := 0; x < tetris.Width; x++ {
			c := tetris.Coord{Y: y, X: x}
			block := s.Field.At(c)
			if block.Empty() {
				e.stampBlock(vp.FieldToScreen(c))
				continue
			}
			sx, sy := vp.FieldToScreen(c)
			e.stampColor(block.Color, sx, sy)
		}
	}

	if !s.Over {
		for _, c := range s.Current.Cells() {
			if tetris.InBounds(c) {
				sx, sy := vp.FieldToScreen(c)
				e.stampColor(s.Current.Color, sx, sy)
			}
		}
	}

	switch {
	case s.Over:
		e.drawBanner(vp, "GAME OVER", 255, 90, 90)
	case s.Paused:
		e.drawBanner(vp, "PAUSED", 240, 200, 60)
	}
}

func (e *Engine) stampBlock(sx, sy int) {
	for i := 0; i < TileWidth; i++ {
		e.set(sx+i, sy, Cell{Ch: ' ', BgR: boardBgR, BgG: boardBgG, BgB: boardBgB})
	}
}

func (e *Engine) stampColor(c tetris.Color, sx, sy int) {
	cell := BlockCell(c)
	for i := 0; i < TileWidth; i++ {
		e.set(sx+i, sy, cell)
	}
}

func (e *Engine) drawBanner(vp Viewport, text string, fgR, fgG, fgB uint8) {
	row := vp.BoardY + 1 + tetris.Height/2 - 1
	inner := BoardW - 2
	label := " " + text + " "
	col := vp.BoardX + 1 + (inner-len(label))/2
	e.writeText(row, col, vp.BoardX+BoardW-1, label, fgR, fgG, fgB, 30, 25, 45, true)
}

// drawBox draws a single-line border with an optional title on the top edge.
func (e *Engine) drawBox(x, y, w, h int, title string) {
	const fgR, fgG, fgB = 90, 100, 130
	border := func(ch rune) Cell {
		return Cell{Ch: ch, FgR: fgR, FgG: fgG, FgB: fgB, BgR: screenBgR, BgG: screenBgG, BgB: screenBgB}
	}

	e.set(x, y, border('┌'))
	e.set(x+w-1, y, border('┐'))
	e.set(x, y+h-1, border('└'))
	e.set(x+w-1, y+h-1, border('┘'))
	for i := 1; i < w-1; i++ {
		e.set(x+i, y, border('─'))
		e.set(x+i, y+h-1, border('─'))
	}
	for j := 1; j < h-1; j++ {
		e.set(x, y+j, border('│'))
		e.set(x+w-1, y+j, border('│'))
	}
	if title != "" {
		e.writeText(y, x+2, x+w-1, " "+title+" ", 200, 200, 215, screenBgR, screenBgG, screenBgB, true)
	}
}

// --- Side panel ---

const previewW = tetris.MatrixSize*TileWidth + 2

func (e *Engine) drawPanel(vp Viewport, f Frame) {
	s := &f.State
	x := vp.PanelX
	y := vp.BoardY
	maxCol := x + PanelW

	// Next piece preview
	e.drawBox(x, y, previewW, tetris.MatrixSize+2, "NEXT")
	for row := 0; row < tetris.MatrixSize; row++ {
		for col := 0; col < tetris.MatrixSize; col++ {
			sx, sy := x+1+col*TileWidth, y+1+row
			e.stampBlock(sx, sy)
		}
	}
	for _, c := range tetris.Decode(s.Next.Rotation).Cells() {
		e.stampColor(s.Next.Color, x+1+c.X*TileWidth, y+1+c.Y)
	}

	label := func(row int, name, value string) {
		col := e.writeText(row, x, maxCol, name, 130, 130, 145, screenBgR, screenBgG, screenBgB, false)
		e.writeText(row, col, maxCol, value, 235, 235, 245, screenBgR, screenBgG, screenBgB, true)
	}
	label(y+7, "SCORE  ", fmt.Sprintf("%d", s.Score))
	label(y+8, "LINES  ", fmt.Sprintf("%d", s.Lines))
	label(y+9, "BEST   ", fmt.Sprintf("%d", max(f.Best, s.Score)))

	if f.Name != "" {
		e.writeText(y+11, x, maxCol, f.Name, 100, 220, 220, screenBgR, screenBgG, screenBgB, true)
	}
	if f.Players > 0 {
		e.writeText(y+12, x, maxCol, fmt.Sprintf("%d online", f.Players), 180, 180, 195, screenBgR, screenBgG, screenBgB, false)
	}

	help := []string{
		"←→ move    ↓ soft drop",
		"↑/d rotate  a back",
		"s/space  hard drop",
		"p pause    q quit",
	}
	for i, line := range help {
		e.writeText(y+14+i, x, maxCol, line, 110, 110, 125, screenBgR, screenBgG, screenBgB, false)
	}
}

func (e *Engine) set(x, y int, c Cell) {
	if x >= 0 && x < e.width && y >= 0 && y < e.height {
		e.next[y][x] = c
	}
}

// writeText writes colored text into a bounded region [col, maxCol). Returns the next column position.
func (e *Engine) writeText(row, col, maxCol int, text string, fgR, fgG, fgB, bgR, bgG, bgB uint8, bold bool) int {
	for _, r := range text {
		if col >= maxCol || col >= e.width {
			break
		}
		if row >= 0 && row < e.height && col >= 0 {
			e.next[row][col] = Cell{Ch: r, FgR: fgR, FgG: fgG, FgB: fgB, BgR: bgR, BgG: bgG, BgB: bgB, Bold: bold}
		}
		col++
	}
	return col
}
