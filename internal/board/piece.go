package board

import (
	"fmt"
	"strings"
)

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

var colorNames = [3]string{"White", "Black", "NoColor"}

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// Char returns the FEN side-to-move letter.
func (c Color) Char() byte {
	return "wb"[c&1]
}

// String returns the color name.
func (c Color) String() string {
	if c > NoColor {
		c = NoColor
	}
	return colorNames[c]
}

// PieceKind is the type of a piece regardless of color.
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceKind
)

var kindNames = [7]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

// PieceKindOf converts an integer to a PieceKind. The caller guarantees 0 <= i < 6.
func PieceKindOf(i int) PieceKind {
	if i < 0 || i > int(King) {
		panic(fmt.Sprintf("board: piece kind %d out of range", i))
	}
	return PieceKind(i)
}

// String returns the kind name, or "None".
func (pk PieceKind) String() string {
	if pk > NoPieceKind {
		pk = NoPieceKind
	}
	return kindNames[pk]
}

// Char returns the lowercase FEN letter, or a space for NoPieceKind.
func (pk PieceKind) Char() byte {
	if pk >= NoPieceKind {
		return ' '
	}
	return "pnbrqk"[pk]
}

// Piece is a colored piece, encoded as kind + 6*color so that it can index
// per-piece tables directly.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// pieceChars holds the FEN letter of every piece, in Piece order.
const pieceChars = "PNBRQKpnbrqk"

// NewPiece combines a kind and a color. Out of range input yields NoPiece.
func NewPiece(pk PieceKind, c Color) Piece {
	if pk >= NoPieceKind || c >= NoColor {
		return NoPiece
	}
	return Piece(pk) + Piece(c)*6
}

// Kind returns the piece kind, NoPieceKind for NoPiece.
func (p Piece) Kind() PieceKind {
	if p >= NoPiece {
		return NoPieceKind
	}
	return PieceKind(p % 6)
}

// Color returns the piece color, NoColor for NoPiece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String returns the FEN letter, uppercase for White, or "." for NoPiece.
func (p Piece) String() string {
	if p >= NoPiece {
		return "."
	}
	return pieceChars[p : p+1]
}

// PieceFromChar converts a FEN letter to a Piece, NoPiece if it is not one.
func PieceFromChar(c byte) Piece {
	i := strings.IndexByte(pieceChars, c)
	if i < 0 {
		return NoPiece
	}
	return Piece(i)
}
