// Command magicgen searches for magic multipliers for the sliding piece
// attack tables, or verifies the ones compiled into the board package.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/namsral/flag"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/hailam/chesscore/internal/board"
)

var errNotFound = errors.New("no magic found")

type slider struct {
	name        string
	dirs        [4]board.Direction
	multipliers *[64]uint64
	magic       func(board.Square) board.Magic
}

var sliders = map[string]slider{
	"bishop": {"bishop", board.BishopDirections(), &board.BishopMultipliers, board.BishopMagic},
	"rook":   {"rook", board.RookDirections(), &board.RookMultipliers, board.RookMagic},
}

func main() {
	fs := flag.NewFlagSetWithEnvPrefix("magicgen", "MAGICGEN", flag.ContinueOnError)
	piece := fs.String("piece", "bishop,rook", "comma separated sliders: bishop, rook")
	verify := fs.Bool("verify", false, "verify the compiled multipliers instead of searching")
	tries := fs.Int("tries", 100_000_000, "candidates to try per square")
	workers := fs.Int("workers", 8, "squares searched in parallel")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	for _, name := range strings.Split(*piece, ",") {
		s, ok := sliders[strings.TrimSpace(name)]
		if !ok {
			log.Fatal().Str("piece", name).Msg("unknown slider")
		}

		if *verify {
			if err := verifyAll(s); err != nil {
				log.Fatal().Err(err).Str("piece", s.name).Msg("verification failed")
			}
			log.Info().Str("piece", s.name).Msg("all 64 multipliers verified")
			continue
		}

		start := time.Now()
		magics, err := searchAll(context.Background(), s, *tries, *workers)
		if err != nil {
			log.Fatal().Err(err).Str("piece", s.name).Msg("search failed")
		}
		log.Info().Str("piece", s.name).Dur("elapsed", time.Since(start)).Msg("search complete")
		printTable(s.name, magics)
	}
}

// verifyAll checks every compiled multiplier against its square's mask and shift.
func verifyAll(s slider) error {
	for sq := board.Square(0); sq < 64; sq++ {
		m := s.magic(sq)
		if m.Mask != board.RelevantMask(sq, s.dirs) {
			return fmt.Errorf("%v: mask mismatch", sq)
		}
		if m.Multiplier != s.multipliers[sq] {
			return fmt.Errorf("%v: multiplier not installed", sq)
		}
		if occ, ok := board.VerifyMagic(sq, m.Mask, m.Multiplier, m.Shift, s.dirs); !ok {
			return fmt.Errorf("%v: collision at occupancy 0x%016x", sq, uint64(occ))
		}
	}
	return nil
}

// searchAll finds a multiplier for every square, several squares at a time.
func searchAll(ctx context.Context, s slider, tries, workers int) ([64]uint64, error) {
	var magics [64]uint64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for sq := board.Square(0); sq < 64; sq++ {
		g.Go(func() error {
			m, err := findMagic(ctx, sq, s.dirs, tries)
			if err != nil {
				return fmt.Errorf("%v: %w", sq, err)
			}
			log.Debug().Str("square", sq.String()).Msgf("found 0x%016x", m)
			magics[sq] = m
			return nil
		})
	}
	return magics, g.Wait()
}

// findMagic tries sparse random multipliers until one indexes every subset of
// the square's relevant mask without destructive collisions.
func findMagic(ctx context.Context, sq board.Square, dirs [4]board.Direction, tries int) (uint64, error) {
	mask := board.RelevantMask(sq, dirs)
	shift := uint8(64 - mask.PopCount())

	for i := 0; i < tries; i++ {
		if i&0xFFFF == 0 && ctx.Err() != nil {
			return 0, ctx.Err()
		}
		candidate := frand.Uint64n(1<<63) & frand.Uint64n(1<<63) & frand.Uint64n(1<<63)
		candidate |= frand.Uint64n(2) << 63

		// Weak multipliers spread the mask's top bits too thinly
		if board.Bitboard((uint64(mask)*candidate)&0xFF00000000000000).PopCount() < 6 {
			continue
		}
		if _, ok := board.VerifyMagic(sq, mask, candidate, shift, dirs); ok {
			return candidate, nil
		}
	}
	return 0, errNotFound
}

func printTable(name string, magics [64]uint64) {
	fmt.Printf("var %sMultipliers = [64]uint64{\n", strings.ToUpper(name[:1])+name[1:])
	for i := 0; i < 64; i += 4 {
		fmt.Printf("\t0x%016x, 0x%016x, 0x%016x, 0x%016x,\n", magics[i], magics[i+1], magics[i+2], magics[i+3])
	}
	fmt.Println("}")
}
