package trie_test

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/bastiangx/kmedian/pkg/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqs(t testing.TB, raw ...string) []*motif.Sequence {
	t.Helper()
	out := make([]*motif.Sequence, len(raw))
	for i, r := range raw {
		s, err := motif.NewSequence(motif.DNA(), "s", r)
		require.NoError(t, err)
		out[i] = s
	}
	return out
}

func word(t testing.TB, text string) motif.Word {
	t.Helper()
	w, err := motif.ParseWord(motif.DNA(), text)
	require.NoError(t, err)
	return w
}

func TestCountSingleSequence(t *testing.T) {
	tr, err := trie.New(seqs(t, "GGACACA"), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, tr.Count(word(t, "AC")))
	assert.Equal(t, 2, tr.Count(word(t, "A-")))
	assert.Equal(t, 1, tr.Count(word(t, "GG")))
	assert.Equal(t, 0, tr.Count(word(t, "TT")))
	assert.Equal(t, 0, tr.Count(word(t, "--")), "root is never counted")
	assert.Equal(t, 0, tr.Count(word(t, "ACA")), "deeper than the trie")
}

func TestCountReferenceCases(t *testing.T) {
	tr, err := trie.New(seqs(t, "TCGGAC", "AGGTTG", "TAAGGC"), 4)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Count(word(t, "A---")))

	tr, err = trie.New(seqs(t, "TCGGACACA"), 3)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Count(word(t, "ACA")))
}

func TestOrderedChildSymbols(t *testing.T) {
	tr, err := trie.New(seqs(t, "TCGGAC", "AGGTTG", "TAAGGC"), 4)
	require.NoError(t, err)

	// A=3 G=3 T=2 C=1; A precedes G on the tie.
	assert.Equal(t, []int{0, 2, 3, 1}, tr.OrderedChildSymbols(word(t, "----")))
	assert.Equal(t, []int{2, 3}, tr.OrderedChildSymbols(word(t, "G---")))
	assert.Empty(t, tr.OrderedChildSymbols(word(t, "CC--")))
}

func TestOrderedChildSymbolsTiesKeepAlphabetOrder(t *testing.T) {
	tr, err := trie.New(seqs(t, "GGACACA"), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, tr.OrderedChildSymbols(word(t, "--")))
}

func TestNewRejects(t *testing.T) {
	_, err := trie.New(nil, 3)
	assert.ErrorIs(t, err, motif.ErrInvalidInput)

	_, err = trie.New(seqs(t, "ACGT"), -1)
	assert.ErrorIs(t, err, motif.ErrInvalidInput)

	rna, err := motif.NewAlphabet("ACGU")
	require.NoError(t, err)
	other, err := motif.NewSequence(rna, "r", "ACGU")
	require.NoError(t, err)
	_, err = trie.New(append(seqs(t, "ACGT"), other), 2)
	assert.ErrorIs(t, err, motif.ErrAlphabetMismatch)
}

func TestCountOtherAlphabet(t *testing.T) {
	tr, err := trie.New(seqs(t, "ACGT"), 2)
	require.NoError(t, err)
	rna, err := motif.NewAlphabet("ACGU")
	require.NoError(t, err)
	w, err := motif.ParseWord(rna, "AC")
	require.NoError(t, err)
	assert.Zero(t, tr.Count(w))

	_, err = tr.Lookup(w)
	assert.ErrorIs(t, err, motif.ErrAlphabetMismatch)
}

func TestLookup(t *testing.T) {
	tr, err := trie.New(seqs(t, "GGACACA"), 2)
	require.NoError(t, err)

	n, err := tr.Lookup(word(t, "AC"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = tr.Lookup(word(t, "TT"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestVisit(t *testing.T) {
	tr, err := trie.New(seqs(t, "GGACACA"), 2)
	require.NoError(t, err)

	var got []string
	require.NoError(t, tr.Visit(func(w motif.Word, count int) error {
		got = append(got, w.String())
		return nil
	}))
	assert.Equal(t, []string{"A-", "AC", "C-", "CA", "G-", "GA", "GG"}, got)
	assert.Equal(t, len(got)+1, tr.Nodes())

	n := 0
	require.NoError(t, tr.Visit(func(motif.Word, int) error {
		n++
		if n == 3 {
			return trie.ErrStop
		}
		return nil
	}))
	assert.Equal(t, 3, n)

	boom := errors.New("boom")
	assert.ErrorIs(t, tr.Visit(func(motif.Word, int) error { return boom }), boom)
}

// Every count must equal the number of inserted substrings with that prefix,
// and every inner node must split its count among its children.
func TestCountsMatchBruteForce(t *testing.T) {
	a := motif.DNA()
	rng := rand.New(rand.NewPCG(1, 2))

	for round := range 20 {
		var raw []string
		for range 1 + rng.IntN(4) {
			b := make([]byte, rng.IntN(15))
			for i := range b {
				b[i] = a.SymbolOf(rng.IntN(4))
			}
			raw = append(raw, string(b))
		}
		depth := 1 + rng.IntN(4)
		tr, err := trie.New(seqs(t, raw...), depth)
		require.NoError(t, err)

		var subs []string
		for _, r := range raw {
			for p := 0; p+depth <= len(r); p++ {
				subs = append(subs, r[p:p+depth])
			}
		}

		err = tr.Visit(func(w motif.Word, count int) error {
			prefix := strings.TrimRight(w.String(), "-")
			want := 0
			for _, s := range subs {
				if strings.HasPrefix(s, prefix) {
					want++
				}
			}
			assert.Equal(t, want, count, "round %d prefix %s", round, prefix)

			if w.Level() < depth {
				sum := 0
				for _, sym := range tr.OrderedChildSymbols(w) {
					child, err := w.PushSymbol(sym)
					require.NoError(t, err)
					c := tr.Count(child)
					assert.LessOrEqual(t, c, count)
					sum += c
				}
				assert.Equal(t, count, sum)
			}
			return nil
		})
		require.NoError(t, err)
	}
}
