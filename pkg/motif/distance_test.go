package motif_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWord(t testing.TB, text string) motif.Word {
	t.Helper()
	w, err := motif.ParseWord(motif.DNA(), text)
	require.NoError(t, err)
	return w
}

func TestBestDistanceCases(t *testing.T) {
	cases := []struct {
		seq, word string
		want      int
	}{
		{"TCGGAC", "CGA", 1},
		{"AATTCC", "CGAA", 4},
		{"TATGAA", "AA", 0},
		{"TCGGAC", "CG--", 0},
		{"TCGGAC", "----", 0},
		{"AC", "ACG-", 3},
	}
	for _, tc := range cases {
		t.Run(tc.seq+"/"+tc.word, func(t *testing.T) {
			got, err := motif.BestDistance(mustSeq(t, "s", tc.seq), mustWord(t, tc.word))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAlignmentDistances(t *testing.T) {
	d, err := motif.AlignmentDistances(mustSeq(t, "s", "TATGAA"), mustWord(t, "AA"))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2, 1, 0}, d)

	pos, err := motif.ArgminOffset(d)
	require.NoError(t, err)
	assert.Equal(t, 4, pos)

	d, err = motif.AlignmentDistances(mustSeq(t, "s", "TCGGAC"), mustWord(t, "CGA"))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 1, 3}, d)

	d, err = motif.AlignmentDistances(mustSeq(t, "s", "AC"), mustWord(t, "ACG"))
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestArgminOffset(t *testing.T) {
	pos, err := motif.ArgminOffset([]int{2, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, pos, "first minimum wins")

	_, err = motif.ArgminOffset(nil)
	assert.ErrorIs(t, err, motif.ErrInvalidInput)
}

func TestDistanceAlphabetMismatch(t *testing.T) {
	rna, err := motif.NewAlphabet("ACGU")
	require.NoError(t, err)
	w, err := motif.ParseWord(rna, "ACG")
	require.NoError(t, err)

	_, err = motif.BestDistance(mustSeq(t, "s", "ACGT"), w)
	assert.ErrorIs(t, err, motif.ErrAlphabetMismatch)
	_, err = motif.AlignmentDistances(mustSeq(t, "s", "ACGT"), w)
	assert.ErrorIs(t, err, motif.ErrAlphabetMismatch)
}

func TestBestDistanceMatchesAlignments(t *testing.T) {
	a := motif.DNA()
	rng := rand.New(rand.NewPCG(3, 5))

	for range 300 {
		n := rng.IntN(12)
		raw := make([]byte, n)
		for i := range raw {
			raw[i] = a.SymbolOf(rng.IntN(4))
		}
		seq := mustSeq(t, "r", string(raw))

		k := 1 + rng.IntN(6)
		w := motif.EmptyWord(a, k)
		for range rng.IntN(k + 1) {
			var err error
			w, err = w.PushSymbol(rng.IntN(4))
			require.NoError(t, err)
		}

		best, err := motif.BestDistance(seq, w)
		require.NoError(t, err)
		all, err := motif.AlignmentDistances(seq, w)
		require.NoError(t, err)

		if w.Level() > n {
			assert.Empty(t, all)
			assert.Equal(t, w.Level(), best)
			continue
		}
		assert.Equal(t, slices.Min(all), best, "seq %s word %s", seq.Symbols(), w)
		assert.GreaterOrEqual(t, best, 0)
		assert.LessOrEqual(t, best, w.Level())
	}
}
