package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit board where each bit corresponds to a square.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8 (Little-Endian Rank-File Mapping).
type Bitboard uint64

const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	fileABB Bitboard = 0x0101010101010101
	fileHBB Bitboard = 0x8080808080808080
	rank1BB Bitboard = 0x00000000000000FF
)

// FileMask holds the bitboard of every file, indexed by File.
var FileMask = [8]Bitboard{
	fileABB, fileABB << 1, fileABB << 2, fileABB << 3,
	fileABB << 4, fileABB << 5, fileABB << 6, fileABB << 7,
}

// RankMask holds the bitboard of every rank, indexed by Rank.
var RankMask = [8]Bitboard{
	rank1BB, rank1BB << 8, rank1BB << 16, rank1BB << 24,
	rank1BB << 32, rank1BB << 40, rank1BB << 48, rank1BB << 56,
}

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// FileBB returns the bitboard of a whole file.
func FileBB(f File) Bitboard {
	return FileMask[f]
}

// RankBB returns the bitboard of a whole rank.
func RankBB(r Rank) Bitboard {
	return RankMask[r]
}

// Set returns b with the square added.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// Clear returns b with the square removed.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the least significant bit (lowest square index).
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the least significant bit.
// Calling it until the board is empty visits the squares from lowest to highest.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Any returns true if there are any bits set.
func (b Bitboard) Any() bool {
	return b != 0
}

// IsEmpty returns true if no bits are set.
func (b Bitboard) IsEmpty() bool {
	return b == 0
}

// IsOnly returns true if exactly one bit is set.
func (b Bitboard) IsOnly() bool {
	return b != 0 && b&(b-1) == 0
}

// IsMany returns true if more than one bit is set.
func (b Bitboard) IsMany() bool {
	return b&(b-1) != 0
}

// Shift moves every square one step in the direction. Squares that would wrap
// around the a/h files are dropped before shifting; those leaving rank 1/8 fall off.
func (b Bitboard) Shift(d Direction) Bitboard {
	switch d {
	case North:
		return b << 8
	case South:
		return b >> 8
	case East:
		return (b &^ fileHBB) << 1
	case West:
		return (b &^ fileABB) >> 1
	case NorthEast:
		return (b &^ fileHBB) << 9
	case NorthWest:
		return (b &^ fileABB) << 7
	case SouthEast:
		return (b &^ fileHBB) >> 7
	case SouthWest:
		return (b &^ fileABB) >> 9
	}
	return b
}

// Squares returns a slice of all squares that are set.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// String renders the bitboard as an 8x8 grid, rank 8 first, X for set squares.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(File(file), Rank(rank))) {
				sb.WriteString("X ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
