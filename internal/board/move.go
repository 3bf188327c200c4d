package board

import "fmt"

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-14: move kind
type Move uint16

// MoveKind distinguishes the special moves from a plain piece move.
type MoveKind uint8

const (
	Normal MoveKind = iota
	Castling
	EnPassant
	PromotionKnight
	PromotionBishop
	PromotionRook
	PromotionQueen
)

// NoMove is the null move. It is never pseudo-legal.
const NoMove Move = 0

// NewMove creates a move of the given kind.
func NewMove(from, to Square, kind MoveKind) Move {
	return Move(from) | Move(to)<<6 | Move(kind)<<12
}

// NewPromotion creates a promotion move to the given piece kind.
func NewPromotion(from, to Square, promo PieceKind) Move {
	if promo < Knight || promo > Queen {
		panic(fmt.Sprintf("board: cannot promote to %v", promo))
	}
	return NewMove(from, to, PromotionKnight+MoveKind(promo-Knight))
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Kind returns the move kind.
func (m Move) Kind() MoveKind {
	return MoveKind(m >> 12)
}

// IsNull returns true for the null move.
func (m Move) IsNull() bool {
	return m == NoMove
}

// IsNormal returns true for plain piece moves (captures included).
func (m Move) IsNormal() bool {
	return m.Kind() == Normal
}

// IsCastling returns true if this is a castling move (king's movement).
func (m Move) IsCastling() bool {
	return m.Kind() == Castling
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Kind() == EnPassant
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Kind() >= PromotionKnight
}

// Promotion returns the promotion piece kind, or NoPieceKind.
func (m Move) Promotion() PieceKind {
	if !m.IsPromotion() {
		return NoPieceKind
	}
	return Knight + PieceKind(m.Kind()-PromotionKnight)
}

// String returns the coordinate notation of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseMove resolves coordinate notation against a position. The move must be
// pseudo-legal in pos; its kind (castling, en passant) is taken from the position.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	var promo PieceKind = NoPieceKind
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}

	var ml MoveList
	pos.Generate(GenAll, &ml)
	for _, m := range ml.Slice() {
		if m.From() == from && m.To() == to && m.Promotion() == promo {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("move %s is not playable in %s", s, pos.FEN())
}

// MaxMoves bounds the number of moves any reachable position can have.
const MaxMoves = 256

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list, keeping its storage.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
