package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"tetris-ssh/internal/render"
	"tetris-ssh/internal/tetris"
)

var (
	styleScreen = tcell.StyleDefault.Background(rgb(18, 18, 24))
	styleBorder = styleScreen.Foreground(rgb(90, 100, 130))
	styleTitle  = styleScreen.Foreground(rgb(200, 200, 215)).Bold(true)
	styleLabel  = styleScreen.Foreground(rgb(130, 130, 145))
	styleValue  = styleScreen.Foreground(rgb(235, 235, 245)).Bold(true)
	styleName   = styleScreen.Foreground(rgb(100, 220, 220)).Bold(true)
	styleHelp   = styleScreen.Foreground(rgb(110, 110, 125))
	styleError  = styleScreen.Foreground(rgb(255, 120, 120)).Bold(true)
	styleBanner = tcell.StyleDefault.Background(rgb(30, 25, 45)).Bold(true)
)

func rgb(r, g, b uint8) tcell.Color {
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// blockStyle is the style of one half of a block of color c.
func blockStyle(c tetris.Color) tcell.Style {
	col := rgb(render.ColorRGB(c))
	return tcell.StyleDefault.Foreground(col).Background(col)
}

// View draws frames on a tcell screen using the same layout as the SSH renderer.
type View struct {
	screen tcell.Screen
}

// NewView creates a view drawing on screen.
func NewView(screen tcell.Screen) *View {
	return &View{screen: screen}
}

// Draw renders f and shows it.
func (v *View) Draw(f render.Frame) {
	s := v.screen
	s.SetStyle(styleScreen)
	s.Clear()

	w, h := s.Size()
	vp := render.NewViewport(w, h)
	if !vp.Fits {
		v.text(0, 0, w, fmt.Sprintf("Terminal too small: need %dx%d", render.MinTermW, render.MinTermH), styleError)
		s.Show()
		return
	}

	v.drawBoard(vp, &f.State)
	v.drawPanel(vp, f)
	s.Show()
}

func (v *View) drawBoard(vp render.Viewport, st *tetris.Snapshot) {
	v.box(vp.BoardX, vp.BoardY, render.BoardW, render.BoardH, "")

	for y := 0; y < tetris.Height; y++ {
		for x := 0; x < tetris.Width; x++ {
			c := tetris.Coord{Y: y, X: x}
			sx, sy := vp.FieldToScreen(c)
			v.block(st.Field.At(c).Color, sx, sy)
		}
	}
	if !st.Over {
		for _, c := range st.Current.Cells() {
			if tetris.InBounds(c) {
				sx, sy := vp.FieldToScreen(c)
				v.block(st.Current.Color, sx, sy)
			}
		}
	}

	var banner string
	var fg tcell.Color
	switch {
	case st.Over:
		banner, fg = "GAME OVER", rgb(255, 90, 90)
	case st.Paused:
		banner, fg = "PAUSED", rgb(240, 200, 60)
	default:
		return
	}
	label := " " + banner + " "
	row := vp.BoardY + tetris.Height/2
	col := vp.BoardX + 1 + (render.BoardW-2-len(label))/2
	v.text(row, col, vp.BoardX+render.BoardW-1, label, styleBanner.Foreground(fg))
}

func (v *View) drawPanel(vp render.Viewport, f render.Frame) {
	st := &f.State
	x, y := vp.PanelX, vp.BoardY
	maxCol := x + render.PanelW

	v.box(x, y, tetris.MatrixSize*render.TileWidth+2, tetris.MatrixSize+2, "NEXT")
	for row := 0; row < tetris.MatrixSize; row++ {
		for col := 0; col < tetris.MatrixSize; col++ {
			v.block(tetris.ColorNone, x+1+col*render.TileWidth, y+1+row)
		}
	}
	for _, c := range tetris.Decode(st.Next.Rotation).Cells() {
		v.block(st.Next.Color, x+1+c.X*render.TileWidth, y+1+c.Y)
	}

	label := func(row int, name, value string) {
		col := v.text(row, x, maxCol, name, styleLabel)
		v.text(row, col, maxCol, value, styleValue)
	}
	label(y+7, "SCORE  ", fmt.Sprintf("%d", st.Score))
	label(y+8, "LINES  ", fmt.Sprintf("%d", st.Lines))
	label(y+9, "BEST   ", fmt.Sprintf("%d", max(f.Best, st.Score)))

	if f.Name != "" {
		v.text(y+11, x, maxCol, f.Name, styleName)
	}

	help := []string{
		"←→ move    ↓ soft drop",
		"↑/d rotate  a back",
		"s/space  hard drop",
		"p pause    q quit",
	}
	for i, line := range help {
		v.text(y+14+i, x, maxCol, line, styleHelp)
	}
}

func (v *View) block(c tetris.Color, sx, sy int) {
	st := blockStyle(c)
	for i := 0; i < render.TileWidth; i++ {
		v.screen.SetContent(sx+i, sy, '█', nil, st)
	}
}

func (v *View) box(x, y, w, h int, title string) {
	s := v.screen
	s.SetContent(x, y, '┌', nil, styleBorder)
	s.SetContent(x+w-1, y, '┐', nil, styleBorder)
	s.SetContent(x, y+h-1, '└', nil, styleBorder)
	s.SetContent(x+w-1, y+h-1, '┘', nil, styleBorder)
	for i := 1; i < w-1; i++ {
		s.SetContent(x+i, y, '─', nil, styleBorder)
		s.SetContent(x+i, y+h-1, '─', nil, styleBorder)
	}
	for j := 1; j < h-1; j++ {
		s.SetContent(x, y+j, '│', nil, styleBorder)
		s.SetContent(x+w-1, y+j, '│', nil, styleBorder)
	}
	if title != "" {
		v.text(y, x+2, x+w-1, " "+title+" ", styleTitle)
	}
}

// text draws s in [col, maxCol) and returns the next column.
func (v *View) text(row, col, maxCol int, s string, style tcell.Style) int {
	for _, r := range s {
		if col >= maxCol {
			break
		}
		v.screen.SetContent(col, row, r, nil, style)
		col++
	}
	return col
}
