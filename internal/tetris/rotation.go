package tetris

import "math/bits"

// Rotation is a 16-bit occupancy mask of one orientation of a shape.
// Bit 15 is row 0 column 0; bits run row-major down to bit 0 at row 3 column 3.
type Rotation uint16

// MatrixSize is the side of the bounding box every rotation is decoded into.
const MatrixSize = 4

// Matrix is a decoded rotation: 1 marks an occupied cell, 0 an empty one.
type Matrix [MatrixSize][MatrixSize]uint8

// Decode expands a rotation encoding into its 4x4 occupancy matrix.
func Decode(r Rotation) Matrix {
	var m Matrix
	for i := 0; i < MatrixSize*MatrixSize; i++ {
		m[i/MatrixSize][i%MatrixSize] = uint8(r>>(15-i)) & 1
	}
	return m
}

// Cells returns the (row, column) offsets of the occupied cells, row-major.
func (m Matrix) Cells() []Coord {
	cells := make([]Coord, 0, MatrixSize)
	for row := range m {
		for col, v := range m[row] {
			if v != 0 {
				cells = append(cells, Coord{Y: row, X: col})
			}
		}
	}
	return cells
}

// bottom returns one past the lowest occupied row, or 0 for an empty matrix.
func (m Matrix) bottom() int {
	for row := MatrixSize - 1; row >= 0; row-- {
		for _, v := range m[row] {
			if v != 0 {
				return row + 1
			}
		}
	}
	return 0
}

// count returns the number of occupied cells of the encoding.
func (r Rotation) count() int {
	return bits.OnesCount16(uint16(r))
}
