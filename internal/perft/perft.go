// Package perft counts the leaf nodes of the legal move tree. It is the
// standard way to validate a move generator against known totals.
package perft

import (
	"cmp"
	"slices"

	"github.com/hailam/chesscore/internal/board"
	"github.com/samber/lo"
)

// Result is the node count below one root move.
type Result struct {
	Move  board.Move
	Nodes uint64
}

// counter owns one move buffer per remaining depth so the walk allocates
// nothing after setup.
type counter struct {
	lists []board.MoveList
	table *HashTable
}

func newCounter(depth int, table *HashTable) *counter {
	return &counter{lists: make([]board.MoveList, depth+1), table: table}
}

func (c *counter) probe(pos *board.Position, depth int) (uint64, bool) {
	if c.table == nil || depth < 2 {
		return 0, false
	}
	return c.table.Probe(pos.Key(), depth)
}

func (c *counter) store(pos *board.Position, depth int, nodes uint64) {
	if c.table != nil && depth >= 2 {
		c.table.Store(pos.Key(), depth, nodes)
	}
}

func (c *counter) count(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	if nodes, ok := c.probe(pos, depth); ok {
		return nodes
	}

	ml := &c.lists[depth]
	ml.Clear()
	pos.Generate(board.GenAll, ml)

	var nodes uint64
	for _, m := range ml.Slice() {
		if !pos.IsLegal(m) {
			continue
		}
		// Bulk count at the frontier
		if depth == 1 {
			nodes++
			continue
		}
		pos.Make(m)
		nodes += c.count(pos, depth-1)
		pos.Unmake()
	}

	c.store(pos, depth, nodes)
	return nodes
}

// Count returns the number of leaf nodes depth plies below pos.
// The position is left as it was found.
func Count(pos *board.Position, depth int) uint64 {
	return CountHashed(pos, depth, nil)
}

// CountHashed is Count with subtree counts memoized in table.
func CountHashed(pos *board.Position, depth int, table *HashTable) uint64 {
	if depth <= 0 {
		return 1
	}
	return newCounter(depth, table).count(pos, depth)
}

// Divide returns the node count below every legal root move, in move text order.
func Divide(pos *board.Position, depth int) []Result {
	if depth <= 0 {
		return nil
	}

	c := newCounter(depth, nil)
	moves := pos.GenerateLegalMoves().Slice()

	results := lo.Map(moves, func(m board.Move, _ int) Result {
		pos.Make(m)
		defer pos.Unmake()
		return Result{Move: m, Nodes: c.count(pos, depth-1)}
	})
	sortResults(results)
	return results
}

// Total sums the node counts of a divide.
func Total(results []Result) uint64 {
	return lo.SumBy(results, func(r Result) uint64 { return r.Nodes })
}

// ToMap keys a divide by move text.
func ToMap(results []Result) map[string]uint64 {
	return lo.SliceToMap(results, func(r Result) (string, uint64) {
		return r.Move.String(), r.Nodes
	})
}

func sortResults(results []Result) {
	slices.SortFunc(results, func(a, b Result) int {
		return cmp.Compare(a.Move.String(), b.Move.String())
	})
}
