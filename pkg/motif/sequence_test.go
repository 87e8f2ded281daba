package motif_test

import (
	"testing"

	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSeq(t testing.TB, name, raw string) *motif.Sequence {
	t.Helper()
	s, err := motif.NewSequence(motif.DNA(), name, raw)
	require.NoError(t, err)
	return s
}

func TestNewSequenceInvalid(t *testing.T) {
	_, err := motif.NewSequence(motif.DNA(), "bad", "ACGNT")
	require.ErrorIs(t, err, motif.ErrInvalidSymbol)

	var se *motif.SymbolError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 3, se.Position)

	_, err = motif.NewSequence(nil, "x", "A")
	assert.ErrorIs(t, err, motif.ErrInvalidInput)
}

func TestSequenceAccessors(t *testing.T) {
	s := mustSeq(t, "s1", "GGACACA")
	assert.Equal(t, 7, s.Len())
	assert.Equal(t, "s1", s.Name())
	assert.Equal(t, "GGACACA", s.Symbols())
	assert.Equal(t, "s1 (7)", s.String())

	v, err := s.At(2)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	_, err = s.At(7)
	assert.ErrorIs(t, err, motif.ErrOutOfRange)
	_, err = s.At(-1)
	assert.ErrorIs(t, err, motif.ErrOutOfRange)
}

func TestSubstrings(t *testing.T) {
	s := mustSeq(t, "s1", "GGACACA")

	var got []string
	for w := range s.Substrings(2) {
		assert.True(t, w.IsComplete())
		got = append(got, w.String())
	}
	assert.Equal(t, []string{"GG", "GA", "AC", "CA", "AC", "CA"}, got)

	n := 0
	for range s.Substrings(8) {
		n++
	}
	assert.Zero(t, n)

	n = 0
	for range s.Substrings(7) {
		n++
	}
	assert.Equal(t, 1, n)
}

func TestSubstringsStopsEarly(t *testing.T) {
	s := mustSeq(t, "s1", "ACGTACGT")
	n := 0
	for range s.Substrings(3) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}
