package board

import "testing"

func TestCuckooPopulation(t *testing.T) {
	n := 0
	for i := range cuckooMoves {
		if cuckooMoves[i] != NoMove {
			n++
		}
	}
	if n != 3668 {
		t.Errorf("cuckoo table holds %d moves, want 3668", n)
	}
}

func TestCuckooRetrievesEveryReversibleMove(t *testing.T) {
	for p := WhitePawn; p < NoPiece; p++ {
		if p.Kind() == Pawn {
			continue
		}
		for a := A1; a <= H8; a++ {
			for b := a + 1; b <= H8; b++ {
				if !isReversible(p.Kind(), a, b) {
					continue
				}
				key := zobristPiece[p][a] ^ zobristPiece[p][b] ^ zobristSideToMove
				m, ok := CuckooLookup(key)
				if !ok || m != NewMove(a, b, Normal) {
					t.Fatalf("%v %v%v: lookup = %v, %v", p, a, b, m, ok)
				}
			}
		}
	}
}

func TestCuckooMatchesPlayedMoves(t *testing.T) {
	pos := NewPosition()
	before := pos.Key()
	pos.Make(NewMove(G1, F3, Normal))

	m, ok := CuckooLookup(before ^ pos.Key())
	if !ok || m != NewMove(G1, F3, Normal) {
		t.Errorf("Ng1-f3 delta: lookup = %v, %v", m, ok)
	}

	// Pawn moves are not reversible
	before = pos.Key()
	pos.Make(NewMove(E7, E6, Normal))
	if _, ok := CuckooLookup(before ^ pos.Key()); ok {
		t.Error("pawn move found in the cuckoo table")
	}

	if _, ok := CuckooLookup(zobristSideToMove); ok {
		t.Error("bare side key found in the cuckoo table")
	}
}

func TestReversibility(t *testing.T) {
	tests := []struct {
		pk   PieceKind
		a, b Square
		want bool
	}{
		{Knight, B1, C3, true},
		{Knight, B1, B3, false},
		{Bishop, C1, H6, true},
		{Bishop, C1, C2, false},
		{Rook, A1, A8, true},
		{Queen, D1, H5, true},
		{Queen, D1, E3, false},
		{King, E1, F2, true},
		{King, E1, G1, false},
	}
	for _, tc := range tests {
		if got := isReversible(tc.pk, tc.a, tc.b); got != tc.want {
			t.Errorf("isReversible(%v, %v, %v) = %v", tc.pk, tc.a, tc.b, got)
		}
		if isReversible(tc.pk, tc.a, tc.b) != isReversible(tc.pk, tc.b, tc.a) {
			t.Errorf("%v %v-%v is not symmetric", tc.pk, tc.a, tc.b)
		}
	}
}
