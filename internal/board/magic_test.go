package board

import "testing"

// TestMagicMatchesRayTracing checks every occupancy subset of every mask
// against the ray-traced attack set.
func TestMagicMatchesRayTracing(t *testing.T) {
	tests := []struct {
		name   string
		dirs   [4]Direction
		lookup func(Square, Bitboard) Bitboard
		magic  func(Square) Magic
		size   int
	}{
		{"bishop", bishopDirections, BishopAttacks, BishopMagic, BishopTableSize},
		{"rook", rookDirections, RookAttacks, RookMagic, RookTableSize},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			total := 0
			for sq := A1; sq <= H8; sq++ {
				m := tc.magic(sq)
				if int(m.Offset) != total {
					t.Fatalf("%v: offset %d, want %d", sq, m.Offset, total)
				}
				if int(m.Shift) != 64-m.Mask.PopCount() {
					t.Fatalf("%v: shift %d for %d mask bits", sq, m.Shift, m.Mask.PopCount())
				}
				total += 1 << m.Mask.PopCount()

				occ := Empty
				for {
					want := SlidingAttacks(sq, occ, tc.dirs)
					if got := tc.lookup(sq, occ); got != want {
						t.Fatalf("%v occ %x: got %v, want %v", sq, uint64(occ), got.Squares(), want.Squares())
					}
					// Squares outside the mask must not matter
					full := occ | ^m.Mask
					if got := tc.lookup(sq, full); got != SlidingAttacks(sq, full, tc.dirs) {
						t.Fatalf("%v: attacks depend on squares outside the mask", sq)
					}
					occ = (occ - m.Mask) & m.Mask
					if occ == 0 {
						break
					}
				}
			}
			if total != tc.size {
				t.Errorf("table size %d, want %d", total, tc.size)
			}
		})
	}
}

func TestRelevantMaskExcludesEdges(t *testing.T) {
	tests := []struct {
		sq   Square
		dirs [4]Direction
		bits int
	}{
		{A1, rookDirections, 12},
		{E4, rookDirections, 10},
		{A1, bishopDirections, 6},
		{E4, bishopDirections, 9},
		{D1, bishopDirections, 5},
	}
	for _, tc := range tests {
		if n := RelevantMask(tc.sq, tc.dirs).PopCount(); n != tc.bits {
			t.Errorf("mask of %v has %d bits, want %d", tc.sq, n, tc.bits)
		}
	}
}

func TestVerifyMagicShippedMultipliers(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		b := BishopMagic(sq)
		if occ, ok := VerifyMagic(sq, b.Mask, b.Multiplier, b.Shift, bishopDirections); !ok {
			t.Errorf("bishop magic for %v collides at %x", sq, uint64(occ))
		}
		r := RookMagic(sq)
		if occ, ok := VerifyMagic(sq, r.Mask, r.Multiplier, r.Shift, rookDirections); !ok {
			t.Errorf("rook magic for %v collides at %x", sq, uint64(occ))
		}
	}

	// A multiplier of zero maps everything to slot 0
	r := RookMagic(E4)
	if _, ok := VerifyMagic(E4, r.Mask, 0, r.Shift, rookDirections); ok {
		t.Error("zero multiplier should collide")
	}
}
