package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: Ra8 checks, g7/h7 take the escape squares
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Checkmate position:")
	t.Log(pos)

	if !pos.InCheck() {
		t.Fatal("expected black to be in check")
	}
	if n := pos.GenerateLegalMoves().Len(); n != 0 {
		t.Errorf("black has %d legal moves, want 0", n)
	}
	if !pos.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
	if pos.IsStalemate() {
		t.Error("checkmate reported as stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// The king can take the unprotected rook on g8 or step to h7
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !pos.InCheck() {
		t.Fatal("expected black to be in check")
	}
	if pos.IsCheckmate() {
		t.Error("Expected NOT checkmate but got true")
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() != 2 || !moves.Contains(NewMove(H8, G8, Normal)) || !moves.Contains(NewMove(H8, H7, Normal)) {
		t.Errorf("legal moves = %v, want h8g8 and h8h7", moves.Slice())
	}
}

func TestStalemate(t *testing.T) {
	pos, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.IsStalemate() {
		t.Error("expected stalemate")
	}
	if pos.IsCheckmate() {
		t.Error("stalemate reported as checkmate")
	}
}

func TestFiftyMoveDraw(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/8/8/R7/K5k1 w - - 99 80")
	if err != nil {
		t.Fatal(err)
	}
	if pos.IsFiftyMoveDraw() {
		t.Fatal("99 plies is not a draw yet")
	}
	pos.Make(NewMove(A2, A3, Normal))
	if !pos.IsFiftyMoveDraw() {
		t.Error("expected draw after the 100th quiet ply")
	}
}
