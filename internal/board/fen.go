package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FEN parse errors. Every error returned by ParseFEN wraps exactly one of these.
var (
	ErrMissingBoard  = errors.New("fen: missing piece placement")
	ErrMissingColor  = errors.New("fen: missing side to move")
	ErrMissingCastle = errors.New("fen: missing castling rights")
	ErrInvalidBoard  = errors.New("fen: invalid piece placement")
	ErrInvalidColor  = errors.New("fen: invalid side to move")
	ErrInvalidCastle = errors.New("fen: invalid castling rights")
)

// ParseFEN parses a FEN string and returns a Position.
// The en passant field, halfmove clock and fullmove number are optional. An en
// passant square that is unreadable, not on the capturing side's sixth rank or
// without the pushed pawn in front of it is ignored, as is an unreadable
// halfmove clock.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)

	pos := NewEmptyPosition()

	// Parse piece placement (field 0)
	if len(parts) < 1 {
		return nil, ErrMissingBoard
	}
	if err := parsePiecePlacement(&pos.state, parts[0]); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	if len(parts) < 2 {
		return nil, ErrMissingColor
	}
	switch parts[1] {
	case "w":
		pos.color = White
	case "b":
		pos.color = Black
		pos.state.key ^= zobristSideToMove
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, parts[1])
	}

	// Parse castling rights (field 2)
	if len(parts) < 3 {
		return nil, ErrMissingCastle
	}
	rights, err := parseCastlingRights(parts[2])
	if err != nil {
		return nil, err
	}
	pos.state.setCastles(rights)

	// Parse en passant square (field 3, optional)
	if len(parts) > 3 && parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err == nil && validEnPassant(&pos.state, pos.color, sq) {
			pos.state.setEnPassant(sq)
		}
	}

	// Parse half-move clock (field 4, optional). The full-move number is not kept.
	if len(parts) > 4 {
		if hmc, err := strconv.Atoi(parts[4]); err == nil && hmc >= 0 {
			pos.state.halfMove = hmc
		}
	}

	pos.updateThreats()
	return pos, nil
}

// validEnPassant reports whether sq can be the target of a double push just
// played by the opponent of us: on our sixth rank, empty, with the pushed enemy
// pawn in front of it and its origin square empty.
func validEnPassant(s *State, us Color, sq Square) bool {
	if sq.RelativeRank(us) != Rank6 {
		return false
	}
	up := pawnPush(us).Offset()
	pushed := Square(int(sq) - up)
	origin := Square(int(sq) + up)

	return s.mailbox[sq] == NoPiece &&
		s.mailbox[origin] == NoPiece &&
		s.mailbox[pushed] == NewPiece(Pawn, us.Other())
}

func parsePiecePlacement(s *State, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: %d ranks", ErrInvalidBoard, len(ranks))
	}

	for i, row := range ranks {
		rank := Rank8 - Rank(i)
		file := 0

		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				if file > 8 {
					return fmt.Errorf("%w: rank %v overflows", ErrInvalidBoard, rank)
				}
				continue
			}

			piece := PieceFromChar(ch)
			if piece == NoPiece {
				return fmt.Errorf("%w: unexpected %q", ErrInvalidBoard, ch)
			}
			if file >= 8 {
				return fmt.Errorf("%w: rank %v overflows", ErrInvalidBoard, rank)
			}
			if piece.Kind() == Pawn && (rank == Rank1 || rank == Rank8) {
				return fmt.Errorf("%w: pawn on %v", ErrInvalidBoard, NewSquare(File(file), rank))
			}

			s.place(NewSquare(File(file), rank), piece)
			file++
		}

		if file != 8 {
			return fmt.Errorf("%w: rank %v has %d files", ErrInvalidBoard, rank, file)
		}
	}

	for c := White; c <= Black; c++ {
		if n := (s.pieces[King] & s.colors[c]).PopCount(); n != 1 {
			return fmt.Errorf("%w: %v has %d kings", ErrInvalidBoard, c, n)
		}
	}
	return nil
}

func parseCastlingRights(field string) (CastleRights, error) {
	if field == "-" {
		return NoCastling, nil
	}
	if len(field) > 4 {
		return NoCastling, fmt.Errorf("%w: %q", ErrInvalidCastle, field)
	}

	rights := NoCastling
	for i := 0; i < len(field); i++ {
		var ck CastleKind
		switch field[i] {
		case 'K':
			ck = WhiteShort
		case 'Q':
			ck = WhiteLong
		case 'k':
			ck = BlackShort
		case 'q':
			ck = BlackLong
		default:
			return NoCastling, fmt.Errorf("%w: %q", ErrInvalidCastle, field)
		}
		if rights.Has(ck) {
			return NoCastling, fmt.Errorf("%w: duplicate %q", ErrInvalidCastle, field[i])
		}
		rights |= CastleRights(ck)
	}
	return rights, nil
}

// FEN returns the FEN string of the position. The full-move number is not
// tracked and is always written as 1.
func (p *Position) FEN() string {
	var sb strings.Builder

	for rank := Rank8; ; rank-- {
		empty := 0
		for file := FileA; file <= FileH; file++ {
			piece := p.state.mailbox[NewSquare(file, rank)]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank == Rank1 {
			break
		}
		sb.WriteByte('/')
	}

	sb.WriteByte(' ')
	sb.WriteByte(p.color.Char())
	sb.WriteByte(' ')
	sb.WriteString(p.state.castles.String())
	sb.WriteByte(' ')
	sb.WriteString(p.state.enPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.state.halfMove))
	sb.WriteString(" 1")

	return sb.String()
}
