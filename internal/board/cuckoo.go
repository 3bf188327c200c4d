package board

import "fmt"

// Cuckoo table of reversible piece moves, keyed by the hash difference the move
// causes (both piece-square keys plus the side key). Used to spot positions that can
// repeat after one quiet move without replaying the history.
const cuckooSize = 8192

var (
	cuckooKeys  [cuckooSize]uint64
	cuckooMoves [cuckooSize]Move
)

// maxCuckooKicks bounds one insertion.
const maxCuckooKicks = cuckooSize

func cuckooH1(key uint64) int { return int(key & 0x1FFF) }
func cuckooH2(key uint64) int { return int((key >> 16) & 0x1FFF) }

// isReversible reports whether a non-pawn piece can step from a to b and back on an
// empty board.
func isReversible(pk PieceKind, a, b Square) bool {
	return Attacks(pk, a, Empty).IsSet(b)
}

func initCuckoo() {
	for p := WhitePawn; p < NoPiece; p++ {
		pk := p.Kind()
		if pk == Pawn {
			continue
		}
		for a := A1; a <= H8; a++ {
			for b := a + 1; b <= H8; b++ {
				if !isReversible(pk, a, b) {
					continue
				}
				insertCuckoo(zobristPiece[p][a]^zobristPiece[p][b]^zobristSideToMove, NewMove(a, b, Normal))
			}
		}
	}
}

// insertCuckoo places the entry, displacing occupants to their alternate slot
// until an empty slot absorbs the last one.
func insertCuckoo(key uint64, m Move) {
	i := cuckooH1(key)
	for kicks := 0; ; kicks++ {
		if kicks > maxCuckooKicks {
			panic(fmt.Sprintf("board: cuckoo insertion of %v did not settle", m))
		}
		cuckooKeys[i], key = key, cuckooKeys[i]
		cuckooMoves[i], m = m, cuckooMoves[i]
		if m == NoMove {
			return
		}
		if i == cuckooH1(key) {
			i = cuckooH2(key)
		} else {
			i = cuckooH1(key)
		}
	}
}

// CuckooLookup returns the reversible move whose hash difference is delta.
// Colour and direction are not recorded: the move is stored with from < to.
func CuckooLookup(delta uint64) (Move, bool) {
	if i := cuckooH1(delta); cuckooKeys[i] == delta && cuckooMoves[i] != NoMove {
		return cuckooMoves[i], true
	}
	if i := cuckooH2(delta); cuckooKeys[i] == delta && cuckooMoves[i] != NoMove {
		return cuckooMoves[i], true
	}
	return NoMove, false
}
