package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tetris-ssh/internal/tetris"
)

func testFrame() Frame {
	o := tetris.Piece{
		Shape:    tetris.ShapeO,
		Color:    tetris.ShapeO.Color(),
		Rotation: tetris.ShapeO.Rotations()[0],
		TopLeft:  tetris.Coord{Y: 0, X: 4},
	}
	i := tetris.Piece{
		Shape:    tetris.ShapeI,
		Color:    tetris.ShapeI.Color(),
		Rotation: tetris.ShapeI.Rotations()[1],
	}
	return Frame{
		Name:    "alice",
		Players: 3,
		Best:    40,
		State:   tetris.Snapshot{Current: o, Next: i, Score: 10, Lines: 1},
	}
}

// screenRow returns the characters of the last rendered frame at row y.
func screenRow(e *Engine, y int) string {
	var sb strings.Builder
	for _, c := range e.current[y] {
		sb.WriteRune(c.Ch)
	}
	return sb.String()
}

func screenText(e *Engine) string {
	rows := make([]string, e.height)
	for y := range rows {
		rows[y] = screenRow(e, y)
	}
	return strings.Join(rows, "\n")
}

func TestRenderTooSmall(t *testing.T) {
	e := NewEngine(20, 5)
	out := e.Render(testFrame(), 20, 5)

	require.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(screenRow(e, 0), "Terminal too small"))
	assert.NotContains(t, screenText(e), "SCORE")
}

func TestRenderDiffsFrames(t *testing.T) {
	e := NewEngine(MinTermW, MinTermH)
	f := testFrame()

	first := e.Render(f, MinTermW, MinTermH)
	require.NotEmpty(t, first)
	assert.True(t, strings.HasSuffix(first, Reset))

	assert.Empty(t, e.Render(f, MinTermW, MinTermH), "unchanged frame emits nothing")

	f.State.Current.TopLeft.X--
	changed := e.Render(f, MinTermW, MinTermH)
	assert.NotEmpty(t, changed)
	assert.Less(t, len(changed), len(first))
}

func TestRenderResizeRedraws(t *testing.T) {
	e := NewEngine(MinTermW, MinTermH)
	f := testFrame()
	e.Render(f, MinTermW, MinTermH)

	out := e.Render(f, MinTermW+10, MinTermH+4)
	assert.NotEmpty(t, out)
	assert.Equal(t, MinTermW+10, e.width)
	assert.Equal(t, MinTermH+4, e.height)
}

func TestRenderBoard(t *testing.T) {
	e := NewEngine(MinTermW, MinTermH)
	f := testFrame()
	f.State.Field.Set(tetris.Coord{Y: tetris.Height - 1, X: 0}, tetris.NewBlock(1, tetris.ColorRed))
	e.Render(f, MinTermW, MinTermH)

	vp := NewViewport(MinTermW, MinTermH)
	require.True(t, vp.Fits)

	assert.Equal(t, '┌', e.current[vp.BoardY][vp.BoardX].Ch)
	assert.Equal(t, '┘', e.current[vp.BoardY+BoardH-1][vp.BoardX+BoardW-1].Ch)

	x, y := vp.FieldToScreen(tetris.Coord{Y: tetris.Height - 1, X: 0})
	assert.Equal(t, BlockCell(tetris.ColorRed), e.current[y][x])
	assert.Equal(t, BlockCell(tetris.ColorRed), e.current[y][x+1])

	for _, c := range f.State.Current.Cells() {
		x, y := vp.FieldToScreen(c)
		assert.Equal(t, BlockCell(tetris.ColorBlue), e.current[y][x], "piece cell %v", c)
	}

	x, y = vp.FieldToScreen(tetris.Coord{Y: 5, X: 5})
	empty := e.current[y][x]
	assert.Equal(t, ' ', empty.Ch)
	assert.Equal(t, [3]uint8{boardBgR, boardBgG, boardBgB}, [3]uint8{empty.BgR, empty.BgG, empty.BgB})
}

func TestRenderPanel(t *testing.T) {
	e := NewEngine(MinTermW, MinTermH)
	e.Render(testFrame(), MinTermW, MinTermH)

	text := screenText(e)
	assert.Contains(t, text, "NEXT")
	assert.Contains(t, text, "SCORE  10")
	assert.Contains(t, text, "LINES  1")
	assert.Contains(t, text, "BEST   40")
	assert.Contains(t, text, "alice")
	assert.Contains(t, text, "3 online")
	assert.Contains(t, text, "↑/d rotate  a back")

	// horizontal I (240) fills row 2 of the preview box
	vp := NewViewport(MinTermW, MinTermH)
	for col := 0; col < tetris.MatrixSize; col++ {
		x := vp.PanelX + 1 + col*TileWidth
		assert.Equal(t, BlockCell(tetris.ColorYellow), e.current[vp.BoardY+3][x])
	}
}

func TestRenderBestTracksScore(t *testing.T) {
	e := NewEngine(MinTermW, MinTermH)
	f := testFrame()
	f.State.Score = 90
	e.Render(f, MinTermW, MinTermH)

	assert.Contains(t, screenText(e), "BEST   90")
}

func TestRenderBanners(t *testing.T) {
	tests := []struct {
		name   string
		paused bool
		over   bool
		want   string
	}{
		{"playing", false, false, ""},
		{"paused", true, false, "PAUSED"},
		{"over", false, true, "GAME OVER"},
		{"over wins", true, true, "GAME OVER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(MinTermW, MinTermH)
			f := testFrame()
			f.State.Paused = tt.paused
			f.State.Over = tt.over
			e.Render(f, MinTermW, MinTermH)

			text := screenText(e)
			if tt.want == "" {
				assert.NotContains(t, text, "PAUSED")
				assert.NotContains(t, text, "GAME OVER")
				return
			}
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestRenderHidesPieceAfterGameOver(t *testing.T) {
	e := NewEngine(MinTermW, MinTermH)
	f := testFrame()
	f.State.Over = true
	e.Render(f, MinTermW, MinTermH)

	vp := NewViewport(MinTermW, MinTermH)
	x, y := vp.FieldToScreen(f.State.Current.Cells()[0])
	assert.NotEqual(t, BlockCell(tetris.ColorBlue), e.current[y][x])
}
