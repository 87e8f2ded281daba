package median_test

import (
	"math/rand/v2"
	"testing"

	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/stretchr/testify/require"
)

func mkSeqs(t testing.TB, raw ...string) []*motif.Sequence {
	t.Helper()
	out := make([]*motif.Sequence, len(raw))
	for i, r := range raw {
		s, err := motif.NewSequence(motif.DNA(), "s"+string(rune('1'+i)), r)
		require.NoError(t, err)
		out[i] = s
	}
	return out
}

func mkWord(t testing.TB, text string) motif.Word {
	t.Helper()
	w, err := motif.ParseWord(motif.DNA(), text)
	require.NoError(t, err)
	return w
}

func randomSeqs(t testing.TB, rng *rand.Rand, n, length int) []*motif.Sequence {
	t.Helper()
	raw := make([]string, n)
	for i := range raw {
		b := make([]byte, length)
		for j := range b {
			b[j] = motif.DNA().SymbolOf(rng.IntN(4))
		}
		raw[i] = string(b)
	}
	return mkSeqs(t, raw...)
}

func totalDistance(t testing.TB, seqs []*motif.Sequence, w motif.Word) int {
	t.Helper()
	sum := 0
	for _, s := range seqs {
		d, err := motif.BestDistance(s, w)
		require.NoError(t, err)
		sum += d
	}
	return sum
}

// bruteForce scores every word in lexicographic order and keeps the first
// minimum.
func bruteForce(t testing.TB, seqs []*motif.Sequence, k int) (motif.Word, int) {
	t.Helper()
	idx := make([]int, k)
	var best motif.Word
	bestScore := -1
	for {
		w, err := motif.NewWord(motif.DNA(), idx)
		require.NoError(t, err)
		if s := totalDistance(t, seqs, w); bestScore < 0 || s < bestScore {
			best, bestScore = w, s
		}
		i := k - 1
		for i >= 0 && idx[i] == 3 {
			idx[i] = 0
			i--
		}
		if i < 0 {
			return best, bestScore
		}
		idx[i]++
	}
}
