package model

import "fmt"

// BoardSize is the number of cells on the board
const BoardSize = 9

// Cells is a row-major snapshot of the board:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// It is an array, so assigning or passing it copies every cell.
type Cells [BoardSize]Mark

// IsValidIndex returns true if index addresses a cell
func IsValidIndex(index int) bool {
	return index >= 0 && index < BoardSize
}

// Corners are the corner indices in ascending order
var Corners = [4]int{0, 2, 6, 8}

// Center is the index of the middle cell
const Center = 4

// EmptyIndices returns the indices of all empty cells in ascending order
func (c Cells) EmptyIndices() []int {
	empty := make([]int, 0, BoardSize)
	for i, m := range c {
		if m == Empty {
			empty = append(empty, i)
		}
	}
	return empty
}

// IsFull returns true if no cell is empty
func (c Cells) IsFull() bool {
	for _, m := range c {
		if m == Empty {
			return false
		}
	}
	return true
}

// Count returns how many cells hold the given mark
func (c Cells) Count(mark Mark) int {
	n := 0
	for _, m := range c {
		if m == mark {
			n++
		}
	}
	return n
}

// Board is the mutable game board. A cell moves from Empty to a mark at
// most once between resets.
type Board struct {
	cells Cells
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{}
}

// Reset clears every cell
func (b *Board) Reset() {
	b.cells = Cells{}
}

// Get returns a copy of the cells; mutating it does not affect the board
func (b *Board) Get() Cells {
	return b.cells
}

// Set writes mark into an empty cell and reports whether it did.
// An out-of-range index or an Empty mark is a programming error and panics.
func (b *Board) Set(index int, mark Mark) bool {
	if !IsValidIndex(index) {
		panic(fmt.Sprintf("board: index %d out of range", index))
	}
	if mark == Empty {
		panic("board: cannot set a cell to empty, use Reset")
	}
	if b.cells[index] != Empty {
		return false
	}
	b.cells[index] = mark
	return true
}
