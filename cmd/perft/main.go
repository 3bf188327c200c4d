// Command perft counts the leaf nodes of the legal move tree of a position.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/config"
	"github.com/hailam/chesscore/internal/diagram"
	"github.com/hailam/chesscore/internal/perft"
	"github.com/hailam/chesscore/internal/storage"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load("perft", os.Args[1:]); err != nil {
		os.Exit(2)
	}
	setupLogging(cfg.Level())

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("perft failed")
		os.Exit(1)
	}
}

func setupLogging(level zerolog.Level) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func run(cfg *config.Config) error {
	if cfg.ListCache {
		return listCache(cfg)
	}
	if cfg.Depth <= 0 {
		return fmt.Errorf("depth must be > 0, got %d", cfg.Depth)
	}

	pos, err := board.ParseFEN(cfg.StartFEN(board.StartFEN))
	if err != nil {
		return err
	}
	last, err := playMoves(pos, cfg.MoveList())
	if err != nil {
		return err
	}
	log.Info().Str("fen", pos.FEN()).Int("depth", cfg.Depth).Msg("position ready")

	if cfg.SVGPath != "" {
		if err := writeDiagram(cfg.SVGPath, pos, last); err != nil {
			return err
		}
	}
	if cfg.PNGPath != "" {
		if err := writePNG(cfg.PNGPath, pos, last); err != nil {
			return err
		}
	}

	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			return fmt.Errorf("creating cpuprofile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	runner := perft.NewRunner(nil, cfg.Workers, log.Logger)
	runner.Hash = perft.NewHashTable(cfg.HashMB)
	if !cfg.NoCache {
		db, err := openCache(cfg)
		if err != nil {
			// The count still runs, just without the cache
			log.Warn().Err(err).Msg("perft cache unavailable")
		} else {
			defer db.Close()
			runner.Store = db
			defer func() {
				if err := db.AddStats(runner.Stats()); err != nil {
					log.Warn().Err(err).Msg("saving cache statistics")
				}
			}()
		}
	}
	return count(cfg, pos, runner)
}

func openCache(cfg *config.Config) (*storage.Storage, error) {
	dir, err := storage.GetCacheDir(cfg.CacheDir)
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(dir)
	if err != nil {
		return nil, err
	}
	if cfg.PurgeCache {
		if err := db.PurgePerft(); err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Str("dir", dir).Msg("perft cache purged")
	}
	return db, nil
}

func listCache(cfg *config.Config) error {
	db, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.Records(func(rec *storage.PerftRecord) error {
		fmt.Printf("%-80s depth %2d  %14d nodes  %s\n", rec.FEN, rec.Depth, rec.Nodes, rec.Elapsed)
		return nil
	})
	if err != nil {
		return err
	}

	n, err := db.CountPerft()
	if err != nil {
		return err
	}
	stats, err := db.LoadStats()
	if err != nil {
		return err
	}
	fmt.Printf("%d records, %d hits, %d misses, %.1f%% hit rate\n", n, stats.Hits, stats.Misses, stats.HitRate())
	return nil
}

func count(cfg *config.Config, pos *board.Position, runner *perft.Runner) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	results, err := runner.Divide(ctx, pos, cfg.Depth)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	nodes := perft.Total(results)

	if cfg.Divide {
		for _, r := range results {
			fmt.Printf("%s (%s): %d\n", r.Move, r.Move.SAN(pos), r.Nodes)
		}
		fmt.Printf("Total: %d\n", nodes)
	}

	nps := float64(nodes) / elapsed.Seconds()
	fmt.Printf("Depth: %d\tNodes: %d\tTime: %s\tNPS: %.0f\n", cfg.Depth, nodes, elapsed, nps)
	return nil
}

// playMoves plays SAN or coordinate moves on pos and returns the last one.
func playMoves(pos *board.Position, moves []string) (board.Move, error) {
	last := board.NoMove
	for _, s := range moves {
		m, err := board.ParseSAN(s, pos)
		if err != nil {
			m, err = board.ParseMove(s, pos)
			if err != nil || !pos.IsLegal(m) {
				return board.NoMove, fmt.Errorf("move %q is not legal in %s", s, pos.FEN())
			}
		}
		log.Debug().Str("move", m.SAN(pos)).Msg("playing")
		pos.Make(m)
		last = m
	}
	return last, nil
}

func writeDiagram(path string, pos *board.Position, last board.Move) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	diagram.Position(f, pos, diagram.Options{LastMove: last, Coords: true})
	log.Info().Str("path", path).Msg("diagram written")
	return nil
}

func writePNG(path string, pos *board.Position, last board.Move) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := diagram.PNG(f, pos, diagram.Options{LastMove: last}); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("png diagram written")
	return nil
}
