package model

// Line is three cell indices that win when they share a mark
type Line [3]int

// Lines lists every winning line: rows top to bottom, columns left to
// right, then the two diagonals. Winner detection scans in this order.
var Lines = [8]Line{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}
