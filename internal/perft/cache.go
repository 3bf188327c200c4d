package perft

import (
	"context"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/storage"
	"github.com/rs/zerolog"
)

// Store is the persistence a Runner needs; *storage.Storage satisfies it.
type Store interface {
	LoadPerft(key uint64, depth int, fen string) (*storage.PerftRecord, bool, error)
	SavePerft(key uint64, rec *storage.PerftRecord) error
}

// Runner answers divide requests, from the store when it can.
type Runner struct {
	Store   Store      // nil disables caching
	Hash    *HashTable // nil disables subtree memoization
	Workers int
	Log     zerolog.Logger

	stats storage.CacheStats
}

// NewRunner creates a runner. A nil store disables caching.
func NewRunner(store Store, workers int, log zerolog.Logger) *Runner {
	return &Runner{Store: store, Workers: workers, Log: log}
}

// Divide returns the per-move node counts of pos at depth, computed in
// parallel on a miss and stored for next time.
func (r *Runner) Divide(ctx context.Context, pos *board.Position, depth int) ([]Result, error) {
	fen := pos.FEN()
	logger := r.Log.With().Str("fen", fen).Int("depth", depth).Logger()

	if r.Store != nil {
		rec, ok, err := r.Store.LoadPerft(pos.Key(), depth, fen)
		if err != nil {
			logger.Warn().Err(err).Msg("perft cache lookup failed")
		}
		if ok {
			results, err := fromRecord(pos, rec)
			if err == nil {
				r.stats.Hits++
				logger.Debug().Uint64("nodes", rec.Nodes).Msg("perft cache hit")
				return results, nil
			}
			logger.Warn().Err(err).Msg("stale perft cache record")
		}
		r.stats.Misses++
	}

	start := time.Now()
	results, err := Parallel(ctx, pos, depth, r.Workers, r.Hash)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	total := Total(results)
	event := logger.Info().Uint64("nodes", total).Dur("elapsed", elapsed)
	if r.Hash != nil {
		event = event.Float64("hash_hit_rate", r.Hash.HitRate())
	}
	event.Msg("perft complete")

	if r.Store != nil {
		rec := &storage.PerftRecord{
			FEN:     fen,
			Depth:   depth,
			Nodes:   total,
			Divide:  ToMap(results),
			Elapsed: elapsed,
		}
		if err := r.Store.SavePerft(pos.Key(), rec); err != nil {
			logger.Warn().Err(err).Msg("perft cache store failed")
		} else {
			r.stats.Stores++
		}
	}
	return results, nil
}

// fromRecord rebuilds a divide from a stored record, resolving the move text
// against pos.
func fromRecord(pos *board.Position, rec *storage.PerftRecord) ([]Result, error) {
	results := make([]Result, 0, len(rec.Divide))
	for text, nodes := range rec.Divide {
		m, err := board.ParseMove(text, pos)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{Move: m, Nodes: nodes})
	}
	sortResults(results)
	return results, nil
}

// Stats returns the cache traffic of this runner.
func (r *Runner) Stats() storage.CacheStats {
	return r.stats
}
