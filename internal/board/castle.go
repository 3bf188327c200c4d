package board

// CastleKind identifies one of the four castling moves.
type CastleKind uint8

const (
	WhiteShort CastleKind = 1 << iota // K
	WhiteLong                         // Q
	BlackShort                        // k
	BlackLong                         // q
)

// NewCastleKind returns the castle of color c on the king side (short) or queen side.
func NewCastleKind(c Color, short bool) CastleKind {
	if c == White {
		if short {
			return WhiteShort
		}
		return WhiteLong
	}
	if short {
		return BlackShort
	}
	return BlackLong
}

// castleFromKingTarget maps a castling king destination to its castle.
func castleFromKingTarget(sq Square) (CastleKind, bool) {
	switch sq {
	case G1:
		return WhiteShort, true
	case C1:
		return WhiteLong, true
	case G8:
		return BlackShort, true
	case C8:
		return BlackLong, true
	}
	return 0, false
}

// Color returns the side that owns the castle.
func (ck CastleKind) Color() Color {
	if ck&(WhiteShort|WhiteLong) != 0 {
		return White
	}
	return Black
}

// KingFrom returns the king's home square.
func (ck CastleKind) KingFrom() Square {
	return E1.Relative(ck.Color())
}

// KingTo returns the king's destination.
func (ck CastleKind) KingTo() Square {
	switch ck {
	case WhiteShort:
		return G1
	case WhiteLong:
		return C1
	case BlackShort:
		return G8
	default:
		return C8
	}
}

// RookFrom returns the rook's corner square.
func (ck CastleKind) RookFrom() Square {
	switch ck {
	case WhiteShort:
		return H1
	case WhiteLong:
		return A1
	case BlackShort:
		return H8
	default:
		return A8
	}
}

// RookTo returns the rook's destination.
func (ck CastleKind) RookTo() Square {
	switch ck {
	case WhiteShort:
		return F1
	case WhiteLong:
		return D1
	case BlackShort:
		return F8
	default:
		return D8
	}
}

// CastleRights is the 4-bit mask of castles still available.
type CastleRights uint8

const (
	NoCastling  CastleRights = 0
	AllCastling CastleRights = CastleRights(WhiteShort | WhiteLong | BlackShort | BlackLong)
)

// Has reports whether the castle is still available.
func (cr CastleRights) Has(ck CastleKind) bool {
	return cr&CastleRights(ck) != 0
}

// Revoke returns the rights without the given castle.
func (cr CastleRights) Revoke(ck CastleKind) CastleRights {
	return cr &^ CastleRights(ck)
}

// String returns the FEN castling rights string.
func (cr CastleRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr.Has(WhiteShort) {
		s += "K"
	}
	if cr.Has(WhiteLong) {
		s += "Q"
	}
	if cr.Has(BlackShort) {
		s += "k"
	}
	if cr.Has(BlackLong) {
		s += "q"
	}
	return s
}

// colorCastles returns both castles of color c.
func colorCastles(c Color) CastleRights {
	if c == White {
		return CastleRights(WhiteShort | WhiteLong)
	}
	return CastleRights(BlackShort | BlackLong)
}

// castleRevoke[sq] holds the rights lost when a move starts or ends on a rook corner.
var castleRevoke = func() (t [64]CastleRights) {
	t[H1] = CastleRights(WhiteShort)
	t[A1] = CastleRights(WhiteLong)
	t[H8] = CastleRights(BlackShort)
	t[A8] = CastleRights(BlackLong)
	return t
}()
