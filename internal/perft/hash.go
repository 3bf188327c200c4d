package perft

import (
	"sync"
	"sync/atomic"
)

// Number of shards for table locking (power of 2 for fast modulo)
const hashShardCount = 256
const hashShardMask = hashShardCount - 1

// HashEntry is one memoized subtree count.
type HashEntry struct {
	Key   uint64 // Full 64-bit Zobrist key for verification
	Nodes uint64
	Depth uint8
}

// HashTable memoizes subtree counts by position key and depth. It is safe for
// concurrent use by the workers of Parallel.
type HashTable struct {
	entries []HashEntry
	shards  [hashShardCount]sync.RWMutex
	mask    uint64

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewHashTable creates a table of roughly sizeMB megabytes. It returns nil for
// sizes below one megabyte, and a nil table disables memoization.
func NewHashTable(sizeMB int) *HashTable {
	if sizeMB <= 0 {
		return nil
	}
	entrySize := uint64(24)
	n := roundDownToPowerOf2((uint64(sizeMB) * 1024 * 1024) / entrySize)

	return &HashTable{
		entries: make([]HashEntry, n),
		mask:    n - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe returns the stored count of the subtree depth plies below key.
func (h *HashTable) Probe(key uint64, depth int) (uint64, bool) {
	h.probes.Add(1)

	idx := key & h.mask
	shard := idx & hashShardMask

	h.shards[shard].RLock()
	entry := h.entries[idx]
	h.shards[shard].RUnlock()

	if entry.Key == key && int(entry.Depth) == depth {
		h.hits.Add(1)
		return entry.Nodes, true
	}
	return 0, false
}

// Store saves a subtree count. An entry is only replaced by one at least as deep.
func (h *HashTable) Store(key uint64, depth int, nodes uint64) {
	idx := key & h.mask
	shard := idx & hashShardMask

	h.shards[shard].Lock()
	entry := &h.entries[idx]
	if entry.Depth == 0 || depth >= int(entry.Depth) {
		*entry = HashEntry{Key: key, Nodes: nodes, Depth: uint8(depth)}
	}
	h.shards[shard].Unlock()
}

// Clear empties the table and resets its statistics.
func (h *HashTable) Clear() {
	for i := range h.entries {
		h.entries[i] = HashEntry{}
	}
	h.hits.Store(0)
	h.probes.Store(0)
}

// HitRate returns the probe hit rate as a percentage.
func (h *HashTable) HitRate() float64 {
	probes := h.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(h.hits.Load()) / float64(probes) * 100
}

// Size returns the number of entries in the table.
func (h *HashTable) Size() int {
	return len(h.entries)
}
