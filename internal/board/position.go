package board

import (
	"fmt"
	"strings"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// historyCapacity is preallocated so that make/unmake does not allocate in
// ordinary search depths.
const historyCapacity = 256

// State is one snapshot of the board. Make pushes a copy of it before mutating
// and Unmake restores it, so everything that is not cheap to undo lives here.
type State struct {
	pieces  [6]Bitboard // Indexed by PieceKind
	colors  [2]Bitboard // Indexed by Color
	mailbox [64]Piece

	castles   CastleRights
	enPassant Square // Target square for en passant, NoSquare if none
	halfMove  int    // Plies since last pawn move or capture (for 50-move rule)

	checkers Bitboard    // Enemy pieces giving check to the side to move
	blockers [2]Bitboard // Pieces of each color pinned to their own king

	key uint64 // Zobrist hash
}

// Position represents a complete chess position plus the snapshots needed to
// take moves back.
type Position struct {
	state   State
	color   Color
	history []State
}

func newState() State {
	s := State{
		enPassant: NoSquare,
		key:       zobristCastling[NoCastling],
	}
	for sq := range s.mailbox {
		s.mailbox[sq] = NoPiece
	}
	return s
}

// NewEmptyPosition creates an empty board with White to move and no rights.
func NewEmptyPosition() *Position {
	return &Position{
		state:   newState(),
		color:   White,
		history: make([]State, 0, historyCapacity),
	}
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// Clone creates a deep copy of the position with its own history stack.
func (p *Position) Clone() *Position {
	history := make([]State, len(p.history), max(cap(p.history), historyCapacity))
	copy(history, p.history)
	return &Position{
		state:   p.state,
		color:   p.color,
		history: history,
	}
}

// place puts a piece on an empty square and updates the hash.
func (s *State) place(sq Square, piece Piece) {
	s.pieces[piece.Kind()] |= SquareBB(sq)
	s.colors[piece.Color()] |= SquareBB(sq)
	s.mailbox[sq] = piece
	s.key ^= zobristPiece[piece][sq]
}

// remove takes whatever stands on sq off the board and updates the hash.
func (s *State) remove(sq Square) {
	piece := s.mailbox[sq]
	if piece == NoPiece {
		return
	}
	s.pieces[piece.Kind()] &^= SquareBB(sq)
	s.colors[piece.Color()] &^= SquareBB(sq)
	s.mailbox[sq] = NoPiece
	s.key ^= zobristPiece[piece][sq]
}

// setCastles replaces the rights and swaps their hash key.
func (s *State) setCastles(cr CastleRights) {
	s.key ^= zobristCastling[s.castles]
	s.castles = cr
	s.key ^= zobristCastling[s.castles]
}

// setEnPassant sets or clears (NoSquare) the en passant target and its hash key.
func (s *State) setEnPassant(sq Square) {
	if s.enPassant != NoSquare {
		s.key ^= zobristEnPassant[s.enPassant.File()]
	}
	s.enPassant = sq
	if sq != NoSquare {
		s.key ^= zobristEnPassant[sq.File()]
	}
}

func (s *State) occupied() Bitboard {
	return s.colors[White] | s.colors[Black]
}

func (s *State) kingSquare(c Color) Square {
	return (s.pieces[King] & s.colors[c]).LSB()
}

// attackers returns the pieces of both colors attacking sq, with sliders
// seeing through the given occupancy.
func (s *State) attackers(sq Square, occupied Bitboard) Bitboard {
	bishops := s.pieces[Bishop] | s.pieces[Queen]
	rooks := s.pieces[Rook] | s.pieces[Queen]

	return pawnAttacks[White][sq]&s.colors[Black]&s.pieces[Pawn] |
		pawnAttacks[Black][sq]&s.colors[White]&s.pieces[Pawn] |
		knightAttacks[sq]&s.pieces[Knight] |
		kingAttacks[sq]&s.pieces[King] |
		BishopAttacks(sq, occupied)&bishops |
		RookAttacks(sq, occupied)&rooks
}

// isAttacked reports whether sq is attacked by the opponent of c.
func (s *State) isAttacked(sq Square, c Color, occupied Bitboard) bool {
	them := s.colors[c.Other()]

	if pawnAttacks[c][sq]&s.pieces[Pawn]&them != 0 {
		return true
	}
	if knightAttacks[sq]&s.pieces[Knight]&them != 0 {
		return true
	}
	if kingAttacks[sq]&s.pieces[King]&them != 0 {
		return true
	}
	if BishopAttacks(sq, occupied)&(s.pieces[Bishop]|s.pieces[Queen])&them != 0 {
		return true
	}
	return RookAttacks(sq, occupied)&(s.pieces[Rook]|s.pieces[Queen])&them != 0
}

// updateThreats recomputes checkers and both colors' pinned pieces.
func (p *Position) updateThreats() {
	s := &p.state

	s.checkers = Empty
	if ksq := s.kingSquare(p.color); ksq != NoSquare {
		s.checkers = s.attackers(ksq, s.occupied()) & s.colors[p.color.Other()]
	}

	bishops := s.pieces[Bishop] | s.pieces[Queen]
	rooks := s.pieces[Rook] | s.pieces[Queen]

	for c := White; c <= Black; c++ {
		s.blockers[c] = Empty

		ksq := s.kingSquare(c)
		if ksq == NoSquare {
			continue
		}

		snipers := (BishopAttacks(ksq, Empty)&bishops | RookAttacks(ksq, Empty)&rooks) & s.colors[c.Other()]
		occupied := s.occupied()

		// A piece is pinned when it is the only piece, of either color,
		// between the king and a sniper.
		for snipers != 0 {
			sniper := snipers.PopLSB()
			ray := betweenBB[ksq][sniper] & occupied
			if ray.IsOnly() && ray&s.colors[c] != 0 {
				s.blockers[c] |= ray
			}
		}
	}
}

// Make plays a move. The move must be pseudo-legal and legal; only the absence
// of a piece on the origin square is detected, and it panics.
func (p *Position) Make(m Move) {
	s := &p.state
	from, to := m.From(), m.To()
	moving := s.mailbox[from]
	if moving == NoPiece {
		panic(fmt.Sprintf("board: make %v with no piece on %v", m, from))
	}

	p.history = append(p.history, *s)

	s.setEnPassant(NoSquare)
	s.halfMove++

	if s.mailbox[to] != NoPiece {
		s.halfMove = 0
		s.remove(to)
	}

	if moving.Kind() == Pawn {
		s.halfMove = 0
		if from.Rank().Distance(to.Rank()) == 2 {
			s.setEnPassant((from + to) / 2)
		}
	}

	rights := s.castles &^ castleRevoke[from] &^ castleRevoke[to]
	if moving.Kind() == King {
		rights &^= colorCastles(p.color)
	}
	s.setCastles(rights)

	s.remove(from)
	if promo := m.Promotion(); promo != NoPieceKind {
		s.place(to, NewPiece(promo, p.color))
	} else {
		s.place(to, moving)
	}

	switch m.Kind() {
	case Castling:
		ck := NewCastleKind(p.color, to > from)
		s.remove(ck.RookFrom())
		s.place(ck.RookTo(), NewPiece(Rook, p.color))
	case EnPassant:
		s.remove(NewSquare(to.File(), from.Rank()))
	}

	p.color = p.color.Other()
	s.key ^= zobristSideToMove

	p.updateThreats()
}

// Unmake takes back the last move. It panics if there is nothing to undo.
func (p *Position) Unmake() {
	n := len(p.history)
	if n == 0 {
		panic("board: unmake with empty history")
	}
	p.state = p.history[n-1]
	p.history = p.history[:n-1]
	p.color = p.color.Other()
}

// SetPiece places a piece on an empty square of a position being set up and
// refreshes check and pin information.
func (p *Position) SetPiece(sq Square, piece Piece) {
	p.state.remove(sq)
	p.state.place(sq, piece)
	p.updateThreats()
}

// Pieces returns all pieces of a kind, both colors.
func (p *Position) Pieces(pk PieceKind) Bitboard {
	return p.state.pieces[pk]
}

// Colors returns all pieces of a color.
func (p *Position) Colors(c Color) Bitboard {
	return p.state.colors[c]
}

// PiecesOf returns the pieces of the given color and kind.
func (p *Position) PiecesOf(c Color, pk PieceKind) Bitboard {
	return p.state.pieces[pk] & p.state.colors[c]
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.state.mailbox[sq]
}

// Occupied returns every occupied square.
func (p *Position) Occupied() Bitboard {
	return p.state.occupied()
}

// Castles returns the castling rights still available.
func (p *Position) Castles() CastleRights {
	return p.state.castles
}

// EnPassant returns the en passant target, or NoSquare.
func (p *Position) EnPassant() Square {
	return p.state.enPassant
}

// HalfMoveClock returns the plies since the last capture or pawn move.
func (p *Position) HalfMoveClock() int {
	return p.state.halfMove
}

// Checkers returns the enemy pieces giving check.
func (p *Position) Checkers() Bitboard {
	return p.state.checkers
}

// Blockers returns the pieces of c pinned against their own king.
func (p *Position) Blockers(c Color) Bitboard {
	return p.state.blockers[c]
}

// Key returns the Zobrist hash of the position.
func (p *Position) Key() uint64 {
	return p.state.key
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color {
	return p.color
}

// KingSquare returns the king square of c, or NoSquare on a board without that king.
func (p *Position) KingSquare(c Color) Square {
	return p.state.kingSquare(c)
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.state.checkers != 0
}

// Ply returns the number of moves that can be taken back.
func (p *Position) Ply() int {
	return len(p.history)
}

// Attackers returns the pieces of both colors attacking sq given an occupancy.
func (p *Position) Attackers(sq Square, occupied Bitboard) Bitboard {
	return p.state.attackers(sq, occupied)
}

// IsAttacked returns true if sq is attacked by the opponent of c.
func (p *Position) IsAttacked(sq Square, c Color, occupied Bitboard) bool {
	return p.state.isAttacked(sq, c, occupied)
}

// String returns an ASCII representation of the board.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := Rank8; ; rank-- {
		for file := FileA; file <= FileH; file++ {
			sb.WriteString(p.state.mailbox[NewSquare(file, rank)].String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
		if rank == Rank1 {
			break
		}
	}
	sb.WriteString("side: ")
	sb.WriteByte(p.color.Char())
	sb.WriteByte('\n')
	return sb.String()
}
