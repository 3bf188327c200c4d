package board

import (
	"fmt"
	"strings"
)

// SAN returns the move in Standard Algebraic Notation. The move must be legal in pos.
func (m Move) SAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	from, to := m.From(), m.To()
	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder

	switch {
	case m.IsCastling():
		if to > from {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}

	default:
		pk := piece.Kind()
		if pk != Pawn {
			sb.WriteByte("PNBRQK"[pk])
			sb.WriteString(disambiguation(pos, m, pk))
		}

		if pos.IsNoisy(m) && !(m.IsPromotion() && pos.PieceAt(to) == NoPiece) {
			if pk == Pawn {
				sb.WriteString(from.File().String())
			}
			sb.WriteByte('x')
		}

		sb.WriteString(to.String())

		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion()])
		}
	}

	// Check/checkmate marker
	pos.Make(m)
	if pos.InCheck() {
		if pos.HasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	pos.Unmake()

	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m apart
// from another legal move of the same piece kind to the same square.
func disambiguation(pos *Position, m Move, pk PieceKind) string {
	from, to := m.From(), m.To()
	sameFile, sameRank, ambiguous := false, false, false

	for _, other := range pos.GenerateLegalMoves().Slice() {
		if other.To() != to || other.From() == from || pos.PieceAt(other.From()).Kind() != pk {
			continue
		}
		ambiguous = true
		sameFile = sameFile || other.From().File() == from.File()
		sameRank = sameRank || other.From().Rank() == from.Rank()
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return from.File().String()
	case !sameRank:
		return from.Rank().String()
	default:
		return from.String()
	}
}

// ParseSAN resolves a SAN string against the legal moves of pos.
func ParseSAN(s string, pos *Position) (Move, error) {
	orig := s
	s = strings.TrimRight(strings.TrimSpace(s), "+#!?")

	legal := pos.GenerateLegalMoves()

	// Handle castling
	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		short := len(s) == 3
		ck := NewCastleKind(pos.SideToMove(), short)
		m := NewMove(ck.KingFrom(), ck.KingTo(), Castling)
		if !legal.Contains(m) {
			return NoMove, fmt.Errorf("illegal castling %q in %s", orig, pos.FEN())
		}
		return m, nil
	}

	// Parse promotion
	promo := NoPieceKind
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		if idx+1 >= len(s) {
			return NoMove, fmt.Errorf("invalid SAN: %q", orig)
		}
		switch s[idx+1] {
		case 'N':
			promo = Knight
		case 'B':
			promo = Bishop
		case 'R':
			promo = Rook
		case 'Q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion in SAN: %q", orig)
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	// Determine piece kind
	pk := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		switch s[0] {
		case 'N':
			pk = Knight
		case 'B':
			pk = Bishop
		case 'R':
			pk = Rook
		case 'Q':
			pk = Queen
		case 'K':
			pk = King
		default:
			return NoMove, fmt.Errorf("invalid piece in SAN: %q", orig)
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("invalid SAN: %q", orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("invalid SAN %q: %w", orig, err)
	}

	// Parse disambiguation (file, rank, or both)
	file, rank := -1, -1
	for _, c := range s[:len(s)-2] {
		switch {
		case c >= 'a' && c <= 'h':
			file = int(c - 'a')
		case c >= '1' && c <= '8':
			rank = int(c - '1')
		}
	}

	for _, m := range legal.Slice() {
		from := m.From()
		switch {
		case m.To() != dest, m.IsCastling():
			continue
		case pos.PieceAt(from).Kind() != pk:
			continue
		case file >= 0 && int(from.File()) != file:
			continue
		case rank >= 0 && int(from.Rank()) != rank:
			continue
		case isCapture && !pos.IsNoisy(m):
			continue
		case m.Promotion() != promo:
			continue
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("no legal move matches %q in %s", orig, pos.FEN())
}

// MovesToSAN converts a line of legal moves starting at pos to SAN.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Clone()

	for i, m := range moves {
		result[i] = m.SAN(p)
		p.Make(m)
	}

	return result
}
