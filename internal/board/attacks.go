package board

// Pre-computed attack tables for non-sliding pieces
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]

	// Between and Line bitboards for pins/checks
	betweenBB [64][64]Bitboard // Squares strictly between two squares
	lineBB    [64][64]Bitboard // Full line through two squares (including endpoints)
)

// All tables are built here, in dependency order: the cuckoo table needs both
// the attack tables and the Zobrist keys.
func init() {
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
	initLines()
	initMagics()
	initZobrist()
	initCuckoo()
}

func initKnightAttacks() {
	notAB := ^(FileMask[FileA] | FileMask[FileB])
	notGH := ^(FileMask[FileG] | FileMask[FileH])
	notA := ^FileMask[FileA]
	notH := ^FileMask[FileH]

	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		knightAttacks[sq] = (bb<<6|bb>>10)&notGH |
			(bb<<10|bb>>6)&notAB |
			(bb<<17|bb>>15)&notA |
			(bb<<15|bb>>17)&notH
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		attacks := bb.Shift(North) | bb.Shift(South)
		attacks |= bb.Shift(East) | bb.Shift(West)
		attacks |= bb.Shift(NorthEast) | bb.Shift(NorthWest)
		attacks |= bb.Shift(SouthEast) | bb.Shift(SouthWest)

		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		pawnAttacks[White][sq] = bb.Shift(NorthEast) | bb.Shift(NorthWest)
		pawnAttacks[Black][sq] = bb.Shift(SouthEast) | bb.Shift(SouthWest)
	}
}

// initLines derives both geometry tables by walking from a towards b.
func initLines() {
	for a := A1; a <= H8; a++ {
		for b := A1; b <= H8; b++ {
			if a == b {
				continue
			}

			f1, r1 := int(a.File()), int(a.Rank())
			f2, r2 := int(b.File()), int(b.Rank())
			df, dr := sign(f2-f1), sign(r2-r1)

			// Only aligned squares share a rank, file or diagonal
			if df != 0 && dr != 0 && absDiff(f1, f2) != absDiff(r1, r2) {
				continue
			}

			var between Bitboard
			for f, r := f1+df, r1+dr; f != f2 || r != r2; f, r = f+df, r+dr {
				between |= SquareBB(NewSquare(File(f), Rank(r)))
			}
			betweenBB[a][b] = between

			var line Bitboard
			for f, r := f1, r1; onBoard(f, r); f, r = f-df, r-dr {
				line |= SquareBB(NewSquare(File(f), Rank(r)))
			}
			for f, r := f1+df, r1+dr; onBoard(f, r); f, r = f+df, r+dr {
				line |= SquareBB(NewSquare(File(f), Rank(r)))
			}
			lineBB[a][b] = line
		}
	}
}

func onBoard(f, r int) bool {
	return f >= 0 && f <= 7 && r >= 0 && r <= 7
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	return bishopTable[m.index(occupied)]
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	return rookTable[m.index(occupied)]
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// Attacks returns the attack set of a non-pawn piece kind.
func Attacks(pk PieceKind, sq Square, occupied Bitboard) Bitboard {
	switch pk {
	case Knight:
		return knightAttacks[sq]
	case Bishop:
		return BishopAttacks(sq, occupied)
	case Rook:
		return RookAttacks(sq, occupied)
	case Queen:
		return QueenAttacks(sq, occupied)
	case King:
		return kingAttacks[sq]
	}
	return Empty
}

// Between returns the bitboard of squares strictly between two squares.
// Returns empty if squares are not aligned (not on same rank, file, or diagonal).
func Between(sq1, sq2 Square) Bitboard {
	return betweenBB[sq1][sq2]
}

// Line returns the bitboard of the full line through two squares.
// Returns empty if squares are not aligned.
func Line(sq1, sq2 Square) Bitboard {
	return lineBB[sq1][sq2]
}

// Aligned returns true if three squares are on the same line.
func Aligned(sq1, sq2, sq3 Square) bool {
	return lineBB[sq1][sq2]&SquareBB(sq3) != 0
}
