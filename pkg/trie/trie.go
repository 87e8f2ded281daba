// Package trie counts observed substrings of a sequence set in a fixed-depth
// prefix tree and ranks the children of a prefix by how often they were seen.
package trie

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bastiangx/kmedian/pkg/motif"
)

// ErrStop ends a Visit walk early without reporting an error.
var ErrStop = errors.New("trie: stop")

// Trie is an arena of nodes. Node 0 is the root; a child slot holding 0 means
// the child does not exist. Children of node n live at children[n*m : n*m+m].
type Trie struct {
	alpha    *motif.Alphabet
	depth    int
	m        int
	counts   []int
	children []int32
}

// New inserts every length-depth substring of seqs. All sequences must share
// one alphabet.
func New(seqs []*motif.Sequence, depth int) (*Trie, error) {
	if len(seqs) == 0 {
		return nil, fmt.Errorf("%w: no sequences", motif.ErrInvalidInput)
	}
	if depth < 0 {
		return nil, fmt.Errorf("%w: negative depth %d", motif.ErrInvalidInput, depth)
	}
	for i, s := range seqs {
		if s == nil {
			return nil, fmt.Errorf("%w: sequence %d is nil", motif.ErrInvalidInput, i)
		}
		if !s.Alphabet().Equal(seqs[0].Alphabet()) {
			return nil, fmt.Errorf("%w: sequence %q", motif.ErrAlphabetMismatch, s.Name())
		}
	}

	a := seqs[0].Alphabet()
	t := &Trie{alpha: a, depth: depth, m: a.Size()}
	t.grow()
	for _, s := range seqs {
		for w := range s.Substrings(depth) {
			t.insert(w)
		}
	}
	return t, nil
}

func (t *Trie) grow() int {
	t.counts = append(t.counts, 0)
	t.children = append(t.children, make([]int32, t.m)...)
	return len(t.counts) - 1
}

// insert bumps every node on the path of w; the root keeps count 0.
func (t *Trie) insert(w motif.Word) {
	cur := 0
	for i := range w.Level() {
		sym, _ := w.At(i)
		slot := cur*t.m + sym
		next := int(t.children[slot])
		if next == 0 {
			next = t.grow()
			t.children[slot] = int32(next)
		}
		t.counts[next]++
		cur = next
	}
}

// find returns the node reached by the set prefix of w, or -1.
func (t *Trie) find(w motif.Word) int {
	if !t.alpha.Equal(w.Alphabet()) {
		return -1
	}
	cur := 0
	for i := range w.Level() {
		sym, _ := w.At(i)
		cur = int(t.children[cur*t.m+sym])
		if cur == 0 {
			return -1
		}
	}
	return cur
}

// Lookup returns how many inserted substrings start with the set prefix of w.
// A prefix that was never observed counts 0; a word over another alphabet is
// an ErrAlphabetMismatch.
func (t *Trie) Lookup(w motif.Word) (int, error) {
	if !t.alpha.Equal(w.Alphabet()) {
		return 0, fmt.Errorf("%w: trie uses %v, word uses %v", motif.ErrAlphabetMismatch, t.alpha, w.Alphabet())
	}
	return t.Count(w), nil
}

// Count is Lookup for callers that already share the trie's alphabet, such as
// the search ordering. Words over another alphabet count 0.
func (t *Trie) Count(w motif.Word) int {
	n := t.find(w)
	if n < 0 {
		return 0
	}
	return t.counts[n]
}

// OrderedChildSymbols returns the symbols of the existing children of prefix,
// most frequent first. Ties keep alphabet order.
func (t *Trie) OrderedChildSymbols(prefix motif.Word) []int {
	n := t.find(prefix)
	if n < 0 {
		return []int{}
	}
	syms := make([]int, 0, t.m)
	for s, c := range t.children[n*t.m : n*t.m+t.m] {
		if c != 0 {
			syms = append(syms, s)
		}
	}
	base := n * t.m
	slices.SortStableFunc(syms, func(a, b int) int {
		return t.counts[t.children[base+b]] - t.counts[t.children[base+a]]
	})
	return syms
}

// Visit walks every non-root node in pre-order, children in alphabet order.
// The word passed to fn has capacity Depth() and level equal to the node depth.
// Returning ErrStop ends the walk; any other error is returned.
func (t *Trie) Visit(fn func(prefix motif.Word, count int) error) error {
	path := make([]int, 0, t.depth)
	err := t.visit(0, path, fn)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func (t *Trie) visit(n int, path []int, fn func(motif.Word, int) error) error {
	for s := range t.m {
		child := int(t.children[n*t.m+s])
		if child == 0 {
			continue
		}
		next := append(path, s)
		w, err := t.word(next)
		if err != nil {
			return err
		}
		if err := fn(w, t.counts[child]); err != nil {
			return err
		}
		if err := t.visit(child, next, fn); err != nil {
			return err
		}
	}
	return nil
}

func (t *Trie) word(path []int) (motif.Word, error) {
	idx := make([]int, t.depth)
	copy(idx, path)
	for i := len(path); i < t.depth; i++ {
		idx[i] = motif.Unset
	}
	return motif.NewWord(t.alpha, idx)
}

// Depth returns the length of the inserted substrings.
func (t *Trie) Depth() int {
	return t.depth
}

// Nodes returns the number of nodes, root included.
func (t *Trie) Nodes() int {
	return len(t.counts)
}

// Alphabet returns the alphabet shared by the inserted sequences.
func (t *Trie) Alphabet() *motif.Alphabet {
	return t.alpha
}
