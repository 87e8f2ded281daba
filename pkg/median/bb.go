package median

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bastiangx/kmedian/pkg/motif"
)

// engine runs one depth-first branch and bound over a subtree.
type engine struct {
	ctx   context.Context
	seqs  []*motif.Sequence
	order Orderer

	// shared is the best score across workers; nil when sequential.
	shared *atomic.Int64

	best  Distance
	stats Stats
	steps int
	err   error
}

func newEngine(ctx context.Context, seqs []*motif.Sequence, order Orderer, shared *atomic.Int64, seed Distance) *engine {
	return &engine{
		ctx:    ctx,
		seqs:   seqs,
		order:  order,
		shared: shared,
		best:   seed,
	}
}

// run searches the subtree rooted at w.
func (e *engine) run(w motif.Word) error {
	if err := e.ctx.Err(); err != nil {
		return err
	}
	e.dfs(w)
	return e.err
}

// cancelled polls the context every 4096 nodes.
func (e *engine) cancelled() bool {
	e.steps++
	if e.steps&4095 != 0 {
		return false
	}
	if err := e.ctx.Err(); err != nil {
		e.err = err
		return true
	}
	return false
}

// limit is the score a word has to stay strictly below to be kept. Workers
// may tie the shared score; ties are settled at merge.
func (e *engine) limit() int {
	l := e.best.Score
	if e.shared != nil {
		if g := int(e.shared.Load()) + 1; g < l {
			l = g
		}
	}
	return l
}

// bound sums the best distances of the set prefix of w. It stops as soon as
// the sum reaches limit and reports whether w survives.
func (e *engine) bound(w motif.Word, limit int) (int, bool, error) {
	total := 0
	for _, s := range e.seqs {
		d, err := motif.BestDistance(s, w)
		if err != nil {
			return 0, false, err
		}
		total += d
		if total >= limit {
			return total, false, nil
		}
	}
	return total, true, nil
}

func (e *engine) dfs(w motif.Word) {
	if e.err != nil || e.cancelled() {
		return
	}
	e.stats.Nodes++

	complete := w.IsComplete()
	if complete {
		e.stats.Leaves++
	}
	score, ok, err := e.bound(w, e.limit())
	if err != nil {
		e.err = err
		return
	}
	if !ok {
		e.stats.Pruned++
		return
	}
	if complete {
		e.improve(Distance{Score: score, Word: w})
		return
	}

	for _, sym := range e.order.Children(w) {
		child, err := w.PushSymbol(sym)
		if err != nil {
			e.err = fmt.Errorf("branch order: %w", err)
			return
		}
		e.dfs(child)
		if e.err != nil {
			return
		}
	}
}

func (e *engine) improve(d Distance) {
	e.best = d
	e.stats.Improvements++
	if e.shared == nil {
		return
	}
	for {
		cur := e.shared.Load()
		if int64(d.Score) >= cur || e.shared.CompareAndSwap(cur, int64(d.Score)) {
			return
		}
	}
}
