package board

// GenKind selects which moves Generate produces.
type GenKind uint8

const (
	GenQuiet GenKind = iota // Non-captures without promotion, castling included
	GenNoisy                // Captures, en passant and all promotions
	GenAll
)

// String returns the kind name used in logs.
func (k GenKind) String() string {
	switch k {
	case GenQuiet:
		return "quiet"
	case GenNoisy:
		return "noisy"
	default:
		return "all"
	}
}

// Generate appends the pseudo-legal moves of the given kind for the side to
// move to ml. Moves must still pass IsLegal before Make. The side to move must
// have a king on the board.
func (p *Position) Generate(kind GenKind, ml *MoveList) {
	s := &p.state
	us := p.color
	ours := s.colors[us]
	theirs := s.colors[us.Other()]
	occupied := ours | theirs
	checkers := s.checkers
	pinned := s.blockers[us]

	var movable Bitboard
	switch kind {
	case GenQuiet:
		movable = ^occupied
	case GenNoisy:
		movable = theirs
	default:
		movable = ^ours
	}

	ksq := s.kingSquare(us)
	addMoves(ml, ksq, kingAttacks[ksq]&movable)

	if checkers.IsMany() {
		return
	}

	checkMask := Universe
	if checkers != 0 {
		checkMask = checkers | betweenBB[ksq][checkers.LSB()]
	}
	movable &= checkMask

	if kind != GenNoisy && checkers == 0 {
		p.genCastling(ml, ksq, occupied)
	}

	p.genPawnMoves(kind, ml, checkMask)

	knights := s.pieces[Knight] & ours &^ pinned
	for knights != 0 {
		from := knights.PopLSB()
		addMoves(ml, from, knightAttacks[from]&movable)
	}

	bishops := (s.pieces[Bishop] | s.pieces[Queen]) & ours
	for bishops != 0 {
		from := bishops.PopLSB()
		targets := BishopAttacks(from, occupied) & movable
		if pinned.IsSet(from) {
			targets &= lineBB[from][ksq]
		}
		addMoves(ml, from, targets)
	}

	rooks := (s.pieces[Rook] | s.pieces[Queen]) & ours
	for rooks != 0 {
		from := rooks.PopLSB()
		targets := RookAttacks(from, occupied) & movable
		if pinned.IsSet(from) {
			targets &= lineBB[from][ksq]
		}
		addMoves(ml, from, targets)
	}
}

func addMoves(ml *MoveList, from Square, targets Bitboard) {
	for targets != 0 {
		ml.Add(NewMove(from, targets.PopLSB(), Normal))
	}
}

// addPromotions adds the four promotions, strongest first.
func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewMove(from, to, PromotionQueen))
	ml.Add(NewMove(from, to, PromotionRook))
	ml.Add(NewMove(from, to, PromotionBishop))
	ml.Add(NewMove(from, to, PromotionKnight))
}

func (p *Position) genCastling(ml *MoveList, ksq Square, occupied Bitboard) {
	s := &p.state
	us := p.color

	for _, short := range [2]bool{true, false} {
		ck := NewCastleKind(us, short)
		if !s.castles.Has(ck) || ksq != ck.KingFrom() {
			continue
		}
		if s.mailbox[ck.RookFrom()] != NewPiece(Rook, us) {
			continue
		}
		if betweenBB[ksq][ck.RookFrom()]&occupied != 0 {
			continue
		}
		if s.isAttacked(ck.RookTo(), us, occupied) || s.isAttacked(ck.KingTo(), us, occupied) {
			continue
		}
		ml.Add(NewMove(ksq, ck.KingTo(), Castling))
	}
}

func (p *Position) genPawnMoves(kind GenKind, ml *MoveList, checkMask Bitboard) {
	s := &p.state
	us := p.color
	up := pawnPush(us)

	upEast, upWest := NorthEast, NorthWest
	if us == Black {
		upEast, upWest = SouthEast, SouthWest
	}

	pawns := s.pieces[Pawn] & s.colors[us]
	enemies := s.colors[us.Other()]
	empty := ^s.occupied()
	promoRank := relativeRankBB(us, Rank8)

	push := pawns.Shift(up) & empty
	double := (push & relativeRankBB(us, Rank3)).Shift(up) & empty & checkMask
	push &= checkMask
	east := pawns.Shift(upEast) & enemies & checkMask
	west := pawns.Shift(upWest) & enemies & checkMask

	back := func(to Square, d Direction) Square {
		return Square(int(to) - d.Offset())
	}

	if kind != GenQuiet {
		for bb := push & promoRank; bb != 0; {
			to := bb.PopLSB()
			addPromotions(ml, back(to, up), to)
		}
		for bb := east & promoRank; bb != 0; {
			to := bb.PopLSB()
			addPromotions(ml, back(to, upEast), to)
		}
		for bb := west & promoRank; bb != 0; {
			to := bb.PopLSB()
			addPromotions(ml, back(to, upWest), to)
		}
	}

	push &^= promoRank
	east &^= promoRank
	west &^= promoRank

	if kind != GenNoisy {
		for push != 0 {
			to := push.PopLSB()
			ml.Add(NewMove(back(to, up), to, Normal))
		}
		for double != 0 {
			to := double.PopLSB()
			ml.Add(NewMove(back(back(to, up), up), to, Normal))
		}
	}

	if kind != GenQuiet {
		for east != 0 {
			to := east.PopLSB()
			ml.Add(NewMove(back(to, upEast), to, Normal))
		}
		for west != 0 {
			to := west.PopLSB()
			ml.Add(NewMove(back(to, upWest), to, Normal))
		}

		if ep := s.enPassant; ep != NoSquare {
			captured := back(ep, up)
			if checkMask.IsSet(ep) || s.checkers.IsSet(captured) {
				for bb := pawnAttacks[us.Other()][ep] & pawns; bb != 0; {
					ml.Add(NewMove(bb.PopLSB(), ep, EnPassant))
				}
			}
		}
	}
}

// GenerateMoves returns all pseudo-legal moves in a new list.
func (p *Position) GenerateMoves() *MoveList {
	ml := NewMoveList()
	p.Generate(GenAll, ml)
	return ml
}

// GenerateLegalMoves returns all legal moves in a new list.
func (p *Position) GenerateLegalMoves() *MoveList {
	var pseudo MoveList
	p.Generate(GenAll, &pseudo)

	ml := NewMoveList()
	for _, m := range pseudo.Slice() {
		if p.IsLegal(m) {
			ml.Add(m)
		}
	}
	return ml
}
