package median

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/bastiangx/kmedian/pkg/trie"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// tasksPerWorker is how many subtrees each worker gets on average.
const tasksPerWorker = 4

// Searcher finds median words over a fixed set of sequences.
type Searcher struct {
	alpha *motif.Alphabet
	seqs  []*motif.Sequence
}

// New checks that seqs is non-empty and shares one alphabet.
func New(seqs []*motif.Sequence) (*Searcher, error) {
	if len(seqs) == 0 {
		return nil, fmt.Errorf("%w: no sequences", motif.ErrInvalidInput)
	}
	for i, s := range seqs {
		if s == nil {
			return nil, fmt.Errorf("%w: sequence %d is nil", motif.ErrInvalidInput, i)
		}
		if !s.Alphabet().Equal(seqs[0].Alphabet()) {
			return nil, fmt.Errorf("%w: sequence %q uses %v, expected %v",
				motif.ErrAlphabetMismatch, s.Name(), s.Alphabet(), seqs[0].Alphabet())
		}
	}
	return &Searcher{alpha: seqs[0].Alphabet(), seqs: slices.Clone(seqs)}, nil
}

// Alphabet returns the alphabet shared by the sequences.
func (s *Searcher) Alphabet() *motif.Alphabet {
	return s.alpha
}

// Sequences returns the searched sequences.
func (s *Searcher) Sequences() []*motif.Sequence {
	return slices.Clone(s.seqs)
}

// Search returns a length-k word with the smallest total distance.
// When ctx ends first, the best word found so far is returned with ctx.Err().
func (s *Searcher) Search(ctx context.Context, k int, opts ...Option) (Result, error) {
	if k < 1 {
		return Result{}, fmt.Errorf("%w: k must be positive, got %d", motif.ErrInvalidInput, k)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	order, err := s.orderer(k, o)
	if err != nil {
		return Result{}, err
	}

	root := motif.EmptyWord(s.alpha, k)
	seed := Distance{Score: k*len(s.seqs) + 1, Word: root}
	log.Debugf("search: k=%d sequences=%d order=%v workers=%d", k, len(s.seqs), o.Order, o.Workers)

	var res Result
	if o.Workers < 2 {
		e := newEngine(ctx, s.seqs, order, nil, seed)
		err = e.run(root)
		res = Result{Distance: e.best, Stats: e.stats}
		res.Stats.Tasks = 1
	} else {
		res, err = s.parallel(ctx, root, order, seed, o.Workers)
	}
	res.Stats.Elapsed = time.Since(start)

	log.Debugf("search: %s nodes=%d pruned=%d leaves=%d in %v",
		res.Distance, res.Stats.Nodes, res.Stats.Pruned, res.Stats.Leaves, res.Stats.Elapsed)
	return res, err
}

func (s *Searcher) orderer(k int, o Options) (Orderer, error) {
	if o.Orderer != nil {
		return o.Orderer, nil
	}
	switch o.Order {
	case OrderAlphabet:
		return AlphabetOrder(s.alpha), nil
	case OrderTrie:
		depth := o.TrieDepth
		if depth <= 0 || depth > k {
			depth = k
		}
		t, err := trie.New(s.seqs, depth)
		if err != nil {
			return nil, err
		}
		log.Debugf("search: trie depth=%d nodes=%d", depth, t.Nodes())
		return TrieOrder(t), nil
	}
	return nil, fmt.Errorf("%w: unknown order %v", motif.ErrInvalidInput, o.Order)
}

// parallel searches the subtrees of a shallow frontier on a bounded errgroup.
// Results merge by score, then by frontier rank, which is the order the
// sequential search would visit them in.
func (s *Searcher) parallel(ctx context.Context, root motif.Word, order Orderer, seed Distance, workers int) (Result, error) {
	tasks, expanded, err := frontier(root, order, tasksPerWorker*workers)
	if err != nil {
		return Result{Distance: seed}, err
	}

	shared := new(atomic.Int64)
	shared.Store(int64(seed.Score))
	results := make([]Result, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, w := range tasks {
		results[i].Distance = seed
		g.Go(func() error {
			e := newEngine(gctx, s.seqs, order, shared, seed)
			err := e.run(w)
			results[i] = Result{Distance: e.best, Stats: e.stats}
			return err
		})
	}
	err = g.Wait()

	res := Result{Distance: seed}
	res.Stats.Nodes = expanded
	res.Stats.Tasks = len(tasks)
	for _, r := range results {
		if r.Score < res.Score {
			res.Distance = r.Distance
		}
		res.Stats.add(r.Stats)
	}
	return res, err
}

// frontier expands root level by level until at least want words are open or
// the words are complete. The returned words are in traversal order.
func frontier(root motif.Word, order Orderer, want int) ([]motif.Word, int64, error) {
	level := []motif.Word{root}
	var expanded int64
	for len(level) < want && !level[0].IsComplete() {
		next := make([]motif.Word, 0, len(level)*root.Alphabet().Size())
		for _, w := range level {
			expanded++
			for _, sym := range order.Children(w) {
				child, err := w.PushSymbol(sym)
				if err != nil {
					return nil, expanded, fmt.Errorf("branch order: %w", err)
				}
				next = append(next, child)
			}
		}
		level = next
	}
	return level, expanded, nil
}
