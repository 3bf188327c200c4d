package config

import (
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

const startpos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	var c Config
	is.NoErr(c.Load("perft", nil))

	is.Equal(c.Depth, 5)
	is.Equal(c.Workers, 0)
	is.Equal(c.HashMB, 16)
	is.Equal(c.Divide, false)
	is.Equal(c.NoCache, false)
	is.Equal(c.StartFEN(startpos), startpos)
	is.Equal(len(c.MoveList()), 0)
	is.Equal(c.Level(), zerolog.InfoLevel)
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	var c Config
	err := c.Load("perft", []string{
		"-fen", "4k3/8/8/8/8/8/8/4K3 w - - 0 1",
		"-depth", "3",
		"-divide",
		"-moves", "e2e4  e7e5 Nf3",
		"-log-level", "DEBUG",
		"-no-cache",
		"-hash", "0",
		"-png", "out.png",
	})
	is.NoErr(err)

	is.Equal(c.Depth, 3)
	is.True(c.Divide)
	is.True(c.NoCache)
	is.Equal(c.HashMB, 0)
	is.Equal(c.PNGPath, "out.png")
	is.Equal(c.StartFEN(startpos), "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	is.Equal(c.MoveList(), []string{"e2e4", "e7e5", "Nf3"})
	is.Equal(c.Level(), zerolog.DebugLevel)
}

func TestLoadEnvironment(t *testing.T) {
	is := is.New(t)
	t.Setenv("PERFT_WORKERS", "4")

	var c Config
	is.NoErr(c.Load("perft", nil))
	is.Equal(c.Workers, 4)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	var c Config
	is.True(c.Load("perft", []string{"-depth", "deep"}) != nil)
}

func TestLevelFallback(t *testing.T) {
	is := is.New(t)
	c := Config{LogLevel: "loud"}
	is.Equal(c.Level(), zerolog.InfoLevel)
}
