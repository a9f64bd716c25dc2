package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeColors(t *testing.T) {
	tests := []struct {
		shape Shape
		color Color
	}{
		{ShapeO, ColorBlue},
		{ShapeI, ColorYellow},
		{ShapeS, ColorCyan},
		{ShapeZ, ColorWhite},
		{ShapeJ, ColorMagenta},
		{ShapeL, ColorRed},
		{ShapeT, ColorGreen},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			assert.Equal(t, tt.color, tt.shape.Color())
		})
	}
}

func TestShapeColorsAreUnique(t *testing.T) {
	seen := make(map[Color]Shape)
	for _, s := range Shapes {
		c := s.Color()
		assert.NotEqual(t, ColorNone, c, "shape %s", s)
		if prev, ok := seen[c]; ok {
			t.Errorf("shapes %s and %s share color %s", prev, s, c)
		}
		seen[c] = s
	}
}

func TestShapeRotations(t *testing.T) {
	tests := []struct {
		shape     Shape
		rotations []Rotation
	}{
		{ShapeO, []Rotation{51}},
		{ShapeI, []Rotation{8738, 240}},
		{ShapeS, []Rotation{54, 561}},
		{ShapeZ, []Rotation{99, 306}},
		{ShapeJ, []Rotation{275, 71, 802, 113}},
		{ShapeL, []Rotation{547, 116, 785, 23}},
		{ShapeT, []Rotation{114, 305, 39, 562}},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			assert.Equal(t, tt.rotations, tt.shape.Rotations())
			for _, r := range tt.shape.Rotations() {
				assert.Equal(t, 4, r.count(), "rotation %d", r)
			}
		})
	}
}

func TestRotationsReturnsCopy(t *testing.T) {
	r := ShapeT.Rotations()
	r[0] = 0
	assert.Equal(t, Rotation(114), ShapeT.Rotations()[0])
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		rotation Rotation
		expected Matrix
	}{
		{"O", 51, Matrix{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 1, 1},
			{0, 0, 1, 1},
		}},
		{"I vertical", 8738, Matrix{
			{0, 0, 1, 0},
			{0, 0, 1, 0},
			{0, 0, 1, 0},
			{0, 0, 1, 0},
		}},
		{"I horizontal", 240, Matrix{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{1, 1, 1, 1},
			{0, 0, 0, 0},
		}},
		{"S", 561, Matrix{
			{0, 0, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 1, 1},
			{0, 0, 0, 1},
		}},
		{"Z", 99, Matrix{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 1, 1, 0},
			{0, 0, 1, 1},
		}},
		{"J", 802, Matrix{
			{0, 0, 0, 0},
			{0, 0, 1, 1},
			{0, 0, 1, 0},
			{0, 0, 1, 0},
		}},
		{"L", 23, Matrix{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 1},
			{0, 1, 1, 1},
		}},
		{"T", 305, Matrix{
			{0, 0, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 1},
			{0, 0, 0, 1},
		}},
		{"all bits", 0xFFFF, Matrix{
			{1, 1, 1, 1},
			{1, 1, 1, 1},
			{1, 1, 1, 1},
			{1, 1, 1, 1},
		}},
		{"top left bit", 1 << 15, Matrix{
			{1, 0, 0, 0},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.rotation))
		})
	}
}

func TestDecodeIsPure(t *testing.T) {
	for _, s := range Shapes {
		for _, r := range s.Rotations() {
			require.Equal(t, Decode(r), Decode(r))
		}
	}
}

func TestMatrixCellsAndBottom(t *testing.T) {
	m := Decode(51)
	assert.Equal(t, []Coord{{2, 2}, {2, 3}, {3, 2}, {3, 3}}, m.Cells())
	assert.Equal(t, 4, m.bottom())

	assert.Equal(t, 3, Decode(240).bottom())
	assert.Equal(t, 0, Decode(0).bottom())
	assert.Empty(t, Decode(0).Cells())
}
