package tetris

// Shape is one of the seven tetromino kinds.
type Shape uint8

const (
	ShapeO Shape = iota
	ShapeI
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
	ShapeT
)

// NumShapes is the number of distinct shapes.
const NumShapes = 7

// Shapes lists every shape in table order.
var Shapes = [NumShapes]Shape{ShapeO, ShapeI, ShapeS, ShapeZ, ShapeJ, ShapeL, ShapeT}

// Color is the display tag of a locked block or piece.
// ColorNone marks an empty cell.
type Color uint8

const (
	ColorNone Color = iota
	ColorYellow
	ColorBlue
	ColorGreen
	ColorRed
	ColorMagenta
	ColorCyan
	ColorWhite
)

var shapeNames = [NumShapes]string{"O", "I", "S", "Z", "J", "L", "T"}

var shapeColors = [NumShapes]Color{
	ShapeO: ColorBlue,
	ShapeI: ColorYellow,
	ShapeS: ColorCyan,
	ShapeZ: ColorWhite,
	ShapeJ: ColorMagenta,
	ShapeL: ColorRed,
	ShapeT: ColorGreen,
}

// shapeRotations holds the legal rotation encodings of each shape, in cycle order.
var shapeRotations = [NumShapes][]Rotation{
	ShapeO: {51},
	ShapeI: {8738, 240},
	ShapeS: {54, 561},
	ShapeZ: {99, 306},
	ShapeJ: {275, 71, 802, 113},
	ShapeL: {547, 116, 785, 23},
	ShapeT: {114, 305, 39, 562},
}

func (s Shape) String() string {
	if int(s) >= NumShapes {
		return "?"
	}
	return shapeNames[s]
}

// Color returns the fixed color tag of the shape.
func (s Shape) Color() Color {
	return shapeColors[s]
}

// Rotations returns the shape's legal rotation encodings.
// The returned slice is a copy.
func (s Shape) Rotations() []Rotation {
	src := shapeRotations[s]
	out := make([]Rotation, len(src))
	copy(out, src)
	return out
}

// rotationIndex returns the position of r in the shape's rotation list, or -1.
func (s Shape) rotationIndex(r Rotation) int {
	for i, candidate := range shapeRotations[s] {
		if candidate == r {
			return i
		}
	}
	return -1
}

func (c Color) String() string {
	switch c {
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	default:
		return "none"
	}
}
