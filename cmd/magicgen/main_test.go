package main

import (
	"context"
	"testing"

	"github.com/hailam/chesscore/internal/board"
	"github.com/matryer/is"
)

func TestVerifyCompiled(t *testing.T) {
	is := is.New(t)
	for _, s := range sliders {
		is.NoErr(verifyAll(s))
	}
}

func TestFindMagic(t *testing.T) {
	is := is.New(t)
	dirs := board.BishopDirections()
	sq := board.NewSquare(board.FileA, board.Rank1)

	m, err := findMagic(context.Background(), sq, dirs, 10_000_000)
	is.NoErr(err)

	mask := board.RelevantMask(sq, dirs)
	_, ok := board.VerifyMagic(sq, mask, m, uint8(64-mask.PopCount()), dirs)
	is.True(ok)
}

func TestFindMagicCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := findMagic(ctx, board.NewSquare(board.FileE, board.Rank4), board.RookDirections(), 1000)
	is.Equal(err, context.Canceled)
}
