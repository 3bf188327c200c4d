package board

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func oracleMoves(b *dragontoothmg.Board) []string {
	moves := b.GenerateLegalMoves()
	out := make([]string, len(moves))
	for i := range moves {
		out[i] = moves[i].String()
	}
	slices.Sort(out)
	return out
}

func ourMoves(p *Position) []string {
	legal := p.GenerateLegalMoves()
	out := make([]string, 0, legal.Len())
	for _, m := range legal.Slice() {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out
}

// TestLegalMovesMatchOracle plays random games side by side with an
// independent move generator and compares the legal move sets at every ply.
func TestLegalMovesMatchOracle(t *testing.T) {
	starts := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	games := 20
	if testing.Short() {
		games = 3
	}

	for i, fen := range starts {
		for g := range games {
			rng := rand.New(rand.NewPCG(uint64(i), uint64(g)))

			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatal(err)
			}
			oracle := dragontoothmg.ParseFen(fen)

			for ply := 0; ply < 200; ply++ {
				ours, theirs := ourMoves(pos), oracleMoves(&oracle)
				if !slices.Equal(ours, theirs) {
					t.Fatalf("%s:\n ours   %v\n oracle %v", pos.FEN(), ours, theirs)
				}
				if len(ours) == 0 || pos.IsFiftyMoveDraw() {
					break
				}

				pick := ours[rng.IntN(len(ours))]
				m, err := ParseMove(pick, pos)
				if err != nil {
					t.Fatal(err)
				}
				pos.Make(m)

				for _, om := range oracle.GenerateLegalMoves() {
					if om.String() == pick {
						oracle.Apply(om)
						break
					}
				}
			}
		}
	}
}
