package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	perftPrefix = "perft/"
	keyStats    = "stats"
)

// PerftRecord is one stored perft result.
type PerftRecord struct {
	FEN      string            `json:"fen"`
	Depth    int               `json:"depth"`
	Nodes    uint64            `json:"nodes"`
	Divide   map[string]uint64 `json:"divide,omitempty"`
	Elapsed  time.Duration     `json:"elapsed"`
	StoredAt time.Time         `json:"stored_at"`
}

// CacheStats counts cache traffic across runs.
type CacheStats struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
	Stores int `json:"stores"`
}

// HitRate returns the hit rate as a percentage (0-100).
func (s *CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (creating if needed) the cache database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a cache that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open perft cache: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func perftKey(key uint64, depth int) []byte {
	return fmt.Appendf(nil, "%s%016x/%d", perftPrefix, key, depth)
}

// LoadPerft returns the record stored for a position key and depth. A record
// whose placement, side, castling or en passant field differs from fen belongs
// to a colliding position and is reported as missing. The move counters do not
// change the tree and are not compared.
func (s *Storage) LoadPerft(key uint64, depth int, fen string) (*PerftRecord, bool, error) {
	var rec PerftRecord
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(key, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("load perft %x/%d: %w", key, depth, err)
	}
	if !found || !SamePosition(rec.FEN, fen) {
		return nil, false, nil
	}
	return &rec, true, nil
}

// SamePosition reports whether two FENs agree on the fields that shape the
// move tree: placement, side to move, castling and en passant.
func SamePosition(a, b string) bool {
	fa, fb := strings.Fields(a), strings.Fields(b)
	if len(fa) < 4 || len(fb) < 4 {
		return false
	}
	return slices.Equal(fa[:4], fb[:4])
}

// SavePerft stores a record under a position key and the record's depth.
func (s *Storage) SavePerft(key uint64, rec *PerftRecord) error {
	if rec.StoredAt.IsZero() {
		rec.StoredAt = time.Now()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(key, rec.Depth), data)
	})
}

// CountPerft returns the number of stored records.
func (s *Storage) CountPerft() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(perftPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Records calls fn for every stored record in key order.
func (s *Storage) Records(fn func(*PerftRecord) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(perftPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var rec PerftRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			if err := fn(&rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// PurgePerft removes every stored record.
func (s *Storage) PurgePerft() error {
	return s.db.DropPrefix([]byte(perftPrefix))
}

// LoadStats loads the cache statistics, or empty ones on first use.
func (s *Storage) LoadStats() (*CacheStats, error) {
	stats := &CacheStats{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// SaveStats saves the cache statistics.
func (s *Storage) SaveStats(stats *CacheStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// AddStats folds one run's counters into the stored statistics.
func (s *Storage) AddStats(delta CacheStats) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	stats.Hits += delta.Hits
	stats.Misses += delta.Misses
	stats.Stores += delta.Stores
	return s.SaveStats(stats)
}
