package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [12][64]uint64 // [Piece][Square]
	zobristEnPassant  [8]uint64      // One per file
	zobristCastling   [16]uint64     // Indexed by the raw CastleRights mask
	zobristSideToMove uint64         // XOR when black to move
)

const zobristSeed = 1070372

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

// newPRNG seeds the generator so that the first output is the seed's own successor.
func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm. Each output is fed back as the next state.
func (p *prng) next() uint64 {
	x := p.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	p.state = x * 0x2545F4914F6CDD1D
	return p.state
}

func initZobrist() {
	rng := newPRNG(zobristSeed)

	// Piece keys
	for p := WhitePawn; p < NoPiece; p++ {
		for sq := A1; sq <= H8; sq++ {
			zobristPiece[p][sq] = rng.next()
		}
	}

	// En passant keys (one per file)
	for file := FileA; file <= FileH; file++ {
		zobristEnPassant[file] = rng.next()
	}

	// Castling keys (all 16 combinations)
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}

	// Side to move key
	zobristSideToMove = rng.next()
}

// ZobristPiece returns the Zobrist key for a piece on a square.
func ZobristPiece(p Piece, sq Square) uint64 {
	return zobristPiece[p][sq]
}

// ZobristEnPassant returns the Zobrist key for an en passant file.
func ZobristEnPassant(file File) uint64 {
	return zobristEnPassant[file]
}

// ZobristCastling returns the Zobrist key for castling rights.
func ZobristCastling(cr CastleRights) uint64 {
	return zobristCastling[cr]
}

// ZobristSideToMove returns the Zobrist key for side to move.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}
