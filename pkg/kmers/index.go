package kmers

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/bastiangx/kmedian/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Entry is an observed k-mer with its occurrence count.
type Entry struct {
	Word  string
	Count int
}

// Index maps every observed k-mer to its count in a patricia trie.
type Index struct {
	trie        *patricia.Trie
	k           int
	distinct    int
	occurrences int
	maxCount    int
}

var _ Completer = (*Index)(nil)

// FromSequences counts the k-mers of seqs and indexes them.
func FromSequences(seqs []*motif.Sequence, k int) (*Index, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", motif.ErrInvalidInput, k)
	}
	t, err := trie.New(seqs, k)
	if err != nil {
		return nil, err
	}
	return Build(t)
}

// Build indexes the full-depth paths of t.
func Build(t *trie.Trie) (*Index, error) {
	x := &Index{trie: patricia.NewTrie(), k: t.Depth()}
	err := t.Visit(func(w motif.Word, count int) error {
		if w.IsComplete() {
			x.add(w.String(), count)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("Indexed %d distinct %d-mers (%d occurrences)", x.distinct, x.k, x.occurrences)
	return x, nil
}

func (x *Index) add(word string, count int) {
	x.trie.Insert(patricia.Prefix(word), count)
	x.distinct++
	x.occurrences += count
	if count > x.maxCount {
		x.maxCount = count
	}
}

// Complete returns observed k-mers starting with prefix, by descending count
// and then lexicographically.
func (x *Index) Complete(prefix string, limit int) []Entry {
	var out []Entry
	err := x.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		count, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for k-mer %s", item, p)
			return nil
		}
		out = append(out, Entry{Word: string(p), Count: count})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting k-mer subtree: %v", err)
		return nil
	}

	slices.SortFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Count returns the occurrences of word, 0 when it was never observed.
func (x *Index) Count(word string) int {
	if item := x.trie.Get(patricia.Prefix(word)); item != nil {
		return item.(int)
	}
	return 0
}

// K returns the indexed k-mer length.
func (x *Index) K() int {
	return x.k
}

// Len returns the number of distinct k-mers.
func (x *Index) Len() int {
	return x.distinct
}

func (x *Index) Stats() map[string]int {
	return map[string]int{
		"k":           x.k,
		"distinct":    x.distinct,
		"occurrences": x.occurrences,
		"maxCount":    x.maxCount,
	}
}
