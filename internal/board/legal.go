package board

// pawnPush returns the forward direction of c's pawns.
func pawnPush(c Color) Direction {
	if c == White {
		return North
	}
	return South
}

// relativeRankBB returns rank r as seen from c's side of the board.
func relativeRankBB(c Color, r Rank) Bitboard {
	if c == White {
		return RankMask[r]
	}
	return RankMask[Rank8-r]
}

// IsPseudoLegal reports whether m fits the piece's movement and the position's
// state (rights, en passant target, check evasion). The king's own safety is left
// to IsLegal.
func (p *Position) IsPseudoLegal(m Move) bool {
	if m == NoMove {
		return false
	}

	s := &p.state
	us, them := p.color, p.color.Other()
	from, to := m.From(), m.To()
	occupied := s.occupied()

	moving := s.mailbox[from]
	if moving == NoPiece || moving.Color() != us {
		return false
	}
	if s.colors[us].IsSet(to) {
		return false
	}

	// Only the king can answer a double check
	if s.checkers.IsMany() {
		return m.IsNormal() && moving.Kind() == King && kingAttacks[from].IsSet(to)
	}

	ksq := s.kingSquare(us)

	switch m.Kind() {
	case Castling:
		if moving.Kind() != King || s.checkers != 0 {
			return false
		}
		ck, ok := castleFromKingTarget(to)
		if !ok || ck.Color() != us || from != ck.KingFrom() || !s.castles.Has(ck) {
			return false
		}
		if s.mailbox[ck.RookFrom()] != NewPiece(Rook, us) {
			return false
		}
		return betweenBB[from][ck.RookFrom()]&occupied == 0

	case EnPassant:
		if moving.Kind() != Pawn || s.enPassant == NoSquare || to != s.enPassant {
			return false
		}
		if !pawnAttacks[us][from].IsSet(to) {
			return false
		}
		if s.checkers != 0 {
			captured := NewSquare(to.File(), from.Rank())
			return s.checkers.IsSet(captured) || betweenBB[ksq][s.checkers.LSB()].IsSet(to)
		}
		return true
	}

	if m.IsPromotion() && moving.Kind() != Pawn {
		return false
	}

	if moving.Kind() == King {
		return kingAttacks[from].IsSet(to)
	}

	// Single check: block the ray or capture the checker
	if s.checkers != 0 && !(s.checkers | betweenBB[ksq][s.checkers.LSB()]).IsSet(to) {
		return false
	}

	if moving.Kind() == Pawn {
		if m.IsPromotion() != (to.RelativeRank(us) == Rank8) {
			return false
		}

		up := pawnPush(us)
		push := SquareBB(from).Shift(up) &^ occupied
		double := (push & relativeRankBB(us, Rank3)).Shift(up) &^ occupied
		capture := pawnAttacks[us][from] & s.colors[them]

		return (push | double | capture).IsSet(to)
	}

	if s.blockers[us].IsSet(from) && !lineBB[from][to].IsSet(ksq) {
		return false
	}

	return Attacks(moving.Kind(), from, occupied).IsSet(to)
}

// IsLegal reports whether a pseudo-legal move leaves the mover's king safe.
// Unpinned pieces other than king and pawn are always legal here; pinned ones
// were already confined to the pin line by IsPseudoLegal and the generator.
func (p *Position) IsLegal(m Move) bool {
	s := &p.state
	us := p.color
	from, to := m.From(), m.To()
	occupied := s.occupied()

	pk := s.mailbox[from].Kind()
	if pk != King && pk != Pawn {
		return true
	}

	if m.IsCastling() {
		ck := NewCastleKind(us, to > from)
		return !s.isAttacked(ck.KingTo(), us, occupied) &&
			!s.isAttacked(ck.RookTo(), us, occupied)
	}

	if pk == King {
		return !s.isAttacked(to, us, occupied^SquareBB(from))
	}

	ksq := s.kingSquare(us)

	// Removing two pawns from one rank can uncover a slider the pins don't see
	if m.IsEnPassant() {
		captured := NewSquare(to.File(), from.Rank())
		after := (occupied &^ SquareBB(from) &^ SquareBB(captured)) | SquareBB(to)
		them := s.colors[us.Other()]

		return BishopAttacks(ksq, after)&(s.pieces[Bishop]|s.pieces[Queen])&them == 0 &&
			RookAttacks(ksq, after)&(s.pieces[Rook]|s.pieces[Queen])&them == 0
	}

	if !s.blockers[us].IsSet(from) {
		return true
	}
	return lineBB[from][to].IsSet(ksq)
}

// IsNoisy returns true for captures, en passant and promotions.
func (p *Position) IsNoisy(m Move) bool {
	return p.state.mailbox[m.To()] != NoPiece || m.IsPromotion() || m.IsEnPassant()
}

// IsQuiet returns true for moves that are not noisy.
func (p *Position) IsQuiet(m Move) bool {
	return !p.IsNoisy(m)
}
