// Package board implements the chess rules core: bitboards, magic attack tables,
// Zobrist hashing, positions with make/unmake and legal move generation.
package board

import "fmt"

// Square is a board square, rank*8 + file: A1 = 0, H1 = 7, A8 = 56, H8 = 63.
// NoSquare marks an absent square such as a missing en passant target.
type Square uint8

const (
	A1, B1, C1, D1, E1, F1, G1, H1 Square = 8*iota + 0, 8*iota + 1, 8*iota + 2, 8*iota + 3, 8*iota + 4, 8*iota + 5, 8*iota + 6, 8*iota + 7
	A2, B2, C2, D2, E2, F2, G2, H2
	A3, B3, C3, D3, E3, F3, G3, H3
	A4, B4, C4, D4, E4, F4, G4, H4
	A5, B5, C5, D5, E5, F5, G5, H5
	A6, B6, C6, D6, E6, F6, G6, H6
	A7, B7, C7, D7, E7, F7, G7, H7
	A8, B8, C8, D8, E8, F8, G8, H8
)

// NoSquare is the absent square.
const NoSquare Square = 64

// File is a board column, 0 = a through 7 = h.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// Rank is a board row, 0 = first rank through 7 = eighth rank.
type Rank uint8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

// SquareOf converts an integer to a Square. The caller guarantees 0 <= i < 64.
func SquareOf(i int) Square {
	if i < 0 || i >= 64 {
		panic(fmt.Sprintf("board: square index %d out of range", i))
	}
	return Square(i)
}

// FileOf converts an integer to a File. The caller guarantees 0 <= i < 8.
func FileOf(i int) File {
	if i < 0 || i >= 8 {
		panic(fmt.Sprintf("board: file index %d out of range", i))
	}
	return File(i)
}

// RankOf converts an integer to a Rank. The caller guarantees 0 <= i < 8.
func RankOf(i int) Rank {
	if i < 0 || i >= 8 {
		panic(fmt.Sprintf("board: rank index %d out of range", i))
	}
	return Rank(i)
}

// NewSquare creates a square from file and rank.
func NewSquare(file File, rank Rank) Square {
	return Square(rank)*8 + Square(file)
}

// File returns the file (column) of the square.
func (sq Square) File() File {
	return File(sq & 7)
}

// Rank returns the rank (row) of the square.
func (sq Square) Rank() Rank {
	return Rank(sq >> 3)
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror returns the square mirrored vertically.
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// Relative returns the square as seen from c's side of the board.
func (sq Square) Relative(c Color) Square {
	if c == White {
		return sq
	}
	return sq.Mirror()
}

// RelativeRank returns the rank from a given color's perspective.
func (sq Square) RelativeRank(c Color) Rank {
	return sq.Relative(c).Rank()
}

// Distance returns the Chebyshev (king step) distance between two squares.
func (sq Square) Distance(other Square) int {
	return max(sq.File().Distance(other.File()), sq.Rank().Distance(other.Rank()))
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return sq.File().String() + sq.Rank().String()
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}

	return NewSquare(File(file), Rank(rank)), nil
}

// Distance returns the absolute file difference.
func (f File) Distance(other File) int {
	return absDiff(int(f), int(other))
}

// String returns the file letter, a through h.
func (f File) String() string {
	return string(rune('a' + f))
}

// Distance returns the absolute rank difference.
func (r Rank) Distance(other Rank) int {
	return absDiff(int(r), int(other))
}

// String returns the rank digit, 1 through 8.
func (r Rank) String() string {
	return string(rune('1' + r))
}

// Direction is one of the eight compass directions on the board.
// North points towards rank 8, East towards file h.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case NorthEast:
		return SouthWest
	case NorthWest:
		return SouthEast
	case SouthEast:
		return NorthWest
	default:
		return NorthEast
	}
}

// Offset returns the square index delta of a single step in the direction.
func (d Direction) Offset() int {
	return [...]int{8, -8, 1, -1, 9, 7, -7, -9}[d]
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
