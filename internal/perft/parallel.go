package perft

import (
	"context"
	"runtime"

	"github.com/hailam/chesscore/internal/board"
	"golang.org/x/sync/errgroup"
)

// Parallel splits the tree at the root and counts every root move on its own
// clone of pos. At most workers subtrees run at once; zero means one per CPU.
// The workers share table, which may be nil. Cancelling ctx stops the walk
// between subtrees and at interior nodes.
func Parallel(ctx context.Context, pos *board.Position, depth, workers int, table *HashTable) ([]Result, error) {
	if depth <= 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	moves := pos.GenerateLegalMoves().Slice()
	results := make([]Result, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, m := range moves {
		child := pos.Clone()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			child.Make(m)
			c := &cancellableCounter{counter: newCounter(depth, table), ctx: ctx}
			nodes := c.count(child, depth-1)
			if c.err != nil {
				return c.err
			}
			results[i] = Result{Move: m, Nodes: nodes}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sortResults(results)
	return results, nil
}

// cancellableCounter checks ctx at nodes with at least checkDepth plies left,
// which keeps the check off the frontier.
type cancellableCounter struct {
	*counter
	ctx context.Context
	err error
}

const checkDepth = 3

func (c *cancellableCounter) count(pos *board.Position, depth int) uint64 {
	if depth < checkDepth {
		return c.counter.count(pos, depth)
	}
	if c.err != nil {
		return 0
	}
	if err := c.ctx.Err(); err != nil {
		c.err = err
		return 0
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
		pos.Make(m)
		nodes += c.count(pos, depth-1)
		pos.Unmake()
		if c.err != nil {
			return 0
		}
	}

	c.store(pos, depth, nodes)
	return nodes
}
