package board

import "testing"

func TestBitboardPopLSB(t *testing.T) {
	bb := SquareBB(A1) | SquareBB(E4) | SquareBB(H8)

	want := []Square{A1, E4, H8}
	for i, sq := range want {
		if got := bb.PopLSB(); got != sq {
			t.Errorf("pop %d = %v, want %v", i, got, sq)
		}
	}
	if bb != Empty {
		t.Errorf("board not empty after popping: %x", uint64(bb))
	}
	if got := bb.LSB(); got != NoSquare {
		t.Errorf("LSB of empty = %v, want NoSquare", got)
	}
}

func TestBitboardPredicates(t *testing.T) {
	tests := []struct {
		bb     Bitboard
		only   bool
		many   bool
		popcnt int
	}{
		{Empty, false, false, 0},
		{SquareBB(D5), true, false, 1},
		{SquareBB(D5) | SquareBB(A2), false, true, 2},
		{Universe, false, true, 64},
	}
	for _, tc := range tests {
		if got := tc.bb.IsOnly(); got != tc.only {
			t.Errorf("%x.IsOnly() = %v, want %v", uint64(tc.bb), got, tc.only)
		}
		if got := tc.bb.IsMany(); got != tc.many {
			t.Errorf("%x.IsMany() = %v, want %v", uint64(tc.bb), got, tc.many)
		}
		if got := tc.bb.PopCount(); got != tc.popcnt {
			t.Errorf("%x.PopCount() = %d, want %d", uint64(tc.bb), got, tc.popcnt)
		}
	}
}

func TestBitboardShiftDoesNotWrap(t *testing.T) {
	tests := []struct {
		from Square
		d    Direction
		want Bitboard
	}{
		{H4, East, Empty},
		{A4, West, Empty},
		{H4, NorthEast, Empty},
		{A4, NorthWest, Empty},
		{H4, SouthEast, Empty},
		{A4, SouthWest, Empty},
		{E8, North, Empty},
		{E1, South, Empty},
		{E4, East, SquareBB(F4)},
		{E4, NorthWest, SquareBB(D5)},
		{E4, SouthEast, SquareBB(F3)},
	}
	for _, tc := range tests {
		if got := SquareBB(tc.from).Shift(tc.d); got != tc.want {
			t.Errorf("%v shifted %d = %v, want %v", tc.from, tc.d, got.Squares(), tc.want.Squares())
		}
	}
}

func TestBetweenAndLine(t *testing.T) {
	if got, want := Between(A1, D4), SquareBB(B2)|SquareBB(C3); got != want {
		t.Errorf("Between(a1, d4) = %v, want %v", got.Squares(), want.Squares())
	}
	if got := Between(A1, B3); got != Empty {
		t.Errorf("Between(a1, b3) = %v, want empty", got.Squares())
	}
	if got := Between(E4, E5); got != Empty {
		t.Errorf("Between of adjacent squares = %v, want empty", got.Squares())
	}
	if got := Line(C3, E5); got != (SquareBB(A1) | SquareBB(B2) | SquareBB(C3) | SquareBB(D4) |
		SquareBB(E5) | SquareBB(F6) | SquareBB(G7) | SquareBB(H8)) {
		t.Errorf("Line(c3, e5) = %v", got.Squares())
	}
	if got := Line(A1, B3); got != Empty {
		t.Errorf("Line(a1, b3) = %v, want empty", got.Squares())
	}
	if !Aligned(A8, D5, H1) || Aligned(A8, D5, H2) {
		t.Error("Aligned disagrees with the a8-h1 diagonal")
	}

	// Symmetry holds for every pair
	for a := A1; a <= H8; a++ {
		for b := A1; b <= H8; b++ {
			if Between(a, b) != Between(b, a) || Line(a, b) != Line(b, a) {
				t.Fatalf("geometry not symmetric for %v %v", a, b)
			}
		}
	}
}

func TestLeaperAttacks(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want int
	}{
		{"knight a1", KnightAttacks(A1), 2},
		{"knight h8", KnightAttacks(H8), 2},
		{"knight e4", KnightAttacks(E4), 8},
		{"knight b1", KnightAttacks(B1), 3},
		{"king a1", KingAttacks(A1), 3},
		{"king e4", KingAttacks(E4), 8},
		{"white pawn a2", PawnAttacks(A2, White), 1},
		{"black pawn e7", PawnAttacks(E7, Black), 2},
		{"white pawn h8", PawnAttacks(H8, White), 0},
	}
	for _, tc := range tests {
		if n := tc.got.PopCount(); n != tc.want {
			t.Errorf("%s: %d targets, want %d", tc.name, n, tc.want)
		}
	}

	if PawnAttacks(E4, White) != SquareBB(D5)|SquareBB(F5) {
		t.Error("white pawn on e4 should attack d5 and f5")
	}
	if PawnAttacks(E4, Black) != SquareBB(D3)|SquareBB(F3) {
		t.Error("black pawn on e4 should attack d3 and f3")
	}
}

func TestSquareConversions(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		parsed, err := ParseSquare(sq.String())
		if err != nil || parsed != sq {
			t.Fatalf("ParseSquare(%q) = %v, %v", sq.String(), parsed, err)
		}
		if NewSquare(sq.File(), sq.Rank()) != sq {
			t.Fatalf("NewSquare round trip failed for %v", sq)
		}
	}
	for _, s := range []string{"", "e", "i1", "a9", "e44"} {
		if _, err := ParseSquare(s); err == nil {
			t.Errorf("ParseSquare(%q) succeeded", s)
		}
	}
	if E2.Relative(Black) != E7 || E2.RelativeRank(Black) != Rank7 {
		t.Error("relative square for black is wrong")
	}
	if A1.Distance(H8) != 7 || E4.Distance(F6) != 2 {
		t.Error("distance is not the king step distance")
	}
}

func TestConversionsPanicOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"square", func() { SquareOf(64) }},
		{"file", func() { FileOf(-1) }},
		{"rank", func() { RankOf(8) }},
		{"piece kind", func() { PieceKindOf(6) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tc.fn()
		})
	}
}
