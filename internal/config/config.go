// Package config holds the settings of the command line tools. Every flag can
// also be set from the environment, e.g. PERFT_DEPTH=5.
package config

import (
	"strings"

	"github.com/namsral/flag"
	"github.com/rs/zerolog"
)

// Config holds every setting of the perft driver.
type Config struct {
	FEN        string
	Depth      int
	Divide     bool
	Workers    int
	HashMB     int
	Moves      string
	CacheDir   string
	NoCache    bool
	PurgeCache bool
	ListCache  bool
	LogLevel   string
	CPUProfile string
	SVGPath    string
	PNGPath    string
}

// Load parses args into c. The prefix names the environment variables that
// back each flag.
func (c *Config) Load(prefix string, args []string) error {
	fs := flag.NewFlagSetWithEnvPrefix(prefix, strings.ToUpper(prefix), flag.ContinueOnError)
	fs.StringVar(&c.FEN, "fen", "startpos", "FEN to start from, or startpos")
	fs.IntVar(&c.Depth, "depth", 5, "perft depth in plies")
	fs.BoolVar(&c.Divide, "divide", false, "print the node count below every root move")
	fs.IntVar(&c.Workers, "workers", 0, "parallel subtrees, 0 for one per CPU")
	fs.IntVar(&c.HashMB, "hash", 16, "subtree hash table size in MB, 0 to disable")
	fs.StringVar(&c.Moves, "moves", "", "space separated SAN or coordinate moves to play before counting")
	fs.StringVar(&c.CacheDir, "cache-dir", "", "perft cache directory, empty for the user cache directory")
	fs.BoolVar(&c.NoCache, "no-cache", false, "do not read or write the perft cache")
	fs.BoolVar(&c.PurgeCache, "purge-cache", false, "drop every cached perft result before running")
	fs.BoolVar(&c.ListCache, "list-cache", false, "print the cached perft results and exit")
	fs.StringVar(&c.LogLevel, "log-level", "info", "debug, info, warn or error")
	fs.StringVar(&c.CPUProfile, "cpuprofile", "", "write a CPU profile to this file")
	fs.StringVar(&c.SVGPath, "svg", "", "write an SVG diagram of the position to this file")
	fs.StringVar(&c.PNGPath, "png", "", "write a PNG diagram of the position to this file")
	return fs.Parse(args)
}

// StartFEN resolves the startpos alias.
func (c *Config) StartFEN(startpos string) string {
	if c.FEN == "" || c.FEN == "startpos" {
		return startpos
	}
	return c.FEN
}

// MoveList splits the moves flag.
func (c *Config) MoveList() []string {
	return strings.Fields(c.Moves)
}

// Level returns the zerolog level named by LogLevel, info when unknown.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
