package board

import "testing"

func TestZobristSequence(t *testing.T) {
	step := func(x uint64) uint64 {
		x ^= x >> 12
		x ^= x << 25
		x ^= x >> 27
		return x * 2685821657736338717
	}

	x := step(zobristSeed)
	if zobristPiece[WhitePawn][A1] != x {
		t.Fatalf("first key = %x, want %x", zobristPiece[WhitePawn][A1], x)
	}
	x = step(x)
	if zobristPiece[WhitePawn][B1] != x {
		t.Fatalf("second key = %x, want %x", zobristPiece[WhitePawn][B1], x)
	}

	// 12*64 piece keys, 8 file keys and 16 castle keys come before the side key
	x = step(zobristSeed)
	for range 12*64 + 8 + 16 {
		x = step(x)
	}
	if zobristSideToMove != x {
		t.Errorf("side key = %x, want %x", zobristSideToMove, x)
	}
}

func TestZobristKeysDistinct(t *testing.T) {
	seen := make(map[uint64]string)
	add := func(k uint64, name string) {
		if k == 0 {
			t.Errorf("%s is zero", name)
		}
		if prev, ok := seen[k]; ok {
			t.Errorf("%s collides with %s", name, prev)
		}
		seen[k] = name
	}

	for p := WhitePawn; p < NoPiece; p++ {
		for sq := A1; sq <= H8; sq++ {
			add(ZobristPiece(p, sq), p.String()+sq.String())
		}
	}
	for f := FileA; f <= FileH; f++ {
		add(ZobristEnPassant(f), "ep "+f.String())
	}
	for cr := range zobristCastling {
		add(ZobristCastling(CastleRights(cr)), "castle "+CastleRights(cr).String())
	}
	add(ZobristSideToMove(), "side")
}
