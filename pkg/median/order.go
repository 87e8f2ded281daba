package median

import (
	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/bastiangx/kmedian/pkg/trie"
)

// Orderer decides in which order the children of a partial word are searched.
// Children must return every symbol of the alphabet exactly once; the caller
// does not modify the slice.
type Orderer interface {
	Children(prefix motif.Word) []int
}

type alphabetOrder struct {
	syms []int
}

// AlphabetOrder tries the symbols of a in index order.
func AlphabetOrder(a *motif.Alphabet) Orderer {
	syms := make([]int, a.Size())
	for i := range syms {
		syms[i] = i
	}
	return alphabetOrder{syms: syms}
}

func (o alphabetOrder) Children(motif.Word) []int {
	return o.syms
}

type trieOrder struct {
	t *trie.Trie
	m int
}

// TrieOrder tries observed children of a prefix by descending count, then the
// unobserved ones in alphabet order.
func TrieOrder(t *trie.Trie) Orderer {
	return trieOrder{t: t, m: t.Alphabet().Size()}
}

func (o trieOrder) Children(prefix motif.Word) []int {
	syms := o.t.OrderedChildSymbols(prefix)
	if len(syms) == o.m {
		return syms
	}
	seen := make([]bool, o.m)
	for _, s := range syms {
		seen[s] = true
	}
	for s, ok := range seen {
		if !ok {
			syms = append(syms, s)
		}
	}
	return syms
}
