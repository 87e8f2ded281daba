package motif_test

import (
	"testing"

	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyWord(t *testing.T) {
	w := motif.EmptyWord(motif.DNA(), 3)
	assert.Equal(t, "---", w.String())
	assert.Equal(t, 0, w.Level())
	assert.Equal(t, 3, w.Cap())
	assert.False(t, w.IsComplete())
	assert.Equal(t, []int{motif.Unset, motif.Unset, motif.Unset}, w.Indices())
}

func TestExtensions(t *testing.T) {
	w, err := motif.EmptyWord(motif.DNA(), 3).PushSymbol(2)
	require.NoError(t, err)
	require.Equal(t, "G--", w.String())

	ext, err := w.Extensions()
	require.NoError(t, err)
	require.Len(t, ext, 4)
	for i, want := range []string{"GA-", "GC-", "GG-", "GT-"} {
		assert.Equal(t, want, ext[i].String())
		assert.Equal(t, 2, ext[i].Level())
	}
	assert.Equal(t, "G--", w.String(), "receiver must not change")
}

func TestExtensionsOfCompleteWord(t *testing.T) {
	w, err := motif.ParseWord(motif.DNA(), "ACG")
	require.NoError(t, err)
	_, err = w.Extensions()
	assert.ErrorIs(t, err, motif.ErrInvalidState)

	same, err := w.PushSymbol(0)
	require.NoError(t, err)
	assert.True(t, same.Equal(w))

	for _, bad := range []int{-1, 4, 99} {
		same, err = w.PushSymbol(bad)
		require.NoError(t, err, "complete word ignores index %d", bad)
		assert.True(t, same.Equal(w))
	}
}

func TestPushSymbolOutOfRange(t *testing.T) {
	_, err := motif.EmptyWord(motif.DNA(), 2).PushSymbol(4)
	assert.ErrorIs(t, err, motif.ErrInvalidIndex)
	_, err = motif.EmptyWord(motif.DNA(), 2).PushSymbol(-1)
	assert.ErrorIs(t, err, motif.ErrInvalidIndex)
}

func TestNewWord(t *testing.T) {
	idx := []int{0, 3, motif.Unset}
	w, err := motif.NewWord(motif.DNA(), idx)
	require.NoError(t, err)
	assert.Equal(t, "AT-", w.String())
	assert.Equal(t, 2, w.Level())

	idx[0] = 2
	assert.Equal(t, "AT-", w.String(), "input must be copied")

	_, err = motif.NewWord(motif.DNA(), []int{0, motif.Unset, 2})
	assert.ErrorIs(t, err, motif.ErrInvalidState)

	_, err = motif.NewWord(motif.DNA(), []int{0, 5})
	var ie *motif.IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 1, ie.Position)
}

func TestParseWord(t *testing.T) {
	w, err := motif.ParseWord(motif.DNA(), "AC--")
	require.NoError(t, err)
	assert.Equal(t, 2, w.Level())
	assert.Equal(t, 4, w.Cap())

	_, err = motif.ParseWord(motif.DNA(), "A-C")
	assert.ErrorIs(t, err, motif.ErrInvalidState)

	_, err = motif.ParseWord(motif.DNA(), "AXC")
	var se *motif.SymbolError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Position)
}

func TestWordAt(t *testing.T) {
	s := mustSeq(t, "s", "GGACACA")
	w, err := motif.WordAt(s, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, "ACA", w.String())
	assert.True(t, w.IsComplete())

	_, err = motif.WordAt(s, 5, 3)
	assert.ErrorIs(t, err, motif.ErrOutOfRange)
	_, err = motif.WordAt(s, -1, 3)
	assert.ErrorIs(t, err, motif.ErrOutOfRange)
}

func TestTruncate(t *testing.T) {
	w, err := motif.ParseWord(motif.DNA(), "ACG")
	require.NoError(t, err)

	short, err := motif.Truncate(w, 2)
	require.NoError(t, err)
	assert.Equal(t, "AC", short.String())
	assert.True(t, short.IsComplete())

	partial, err := motif.ParseWord(motif.DNA(), "A--")
	require.NoError(t, err)
	cut, err := motif.Truncate(partial, 2)
	require.NoError(t, err)
	assert.Equal(t, "A", cut.String())
	assert.Equal(t, 1, cut.Cap())
	assert.True(t, cut.IsComplete())

	same, err := motif.Truncate(w, 5)
	require.NoError(t, err)
	assert.Equal(t, "ACG", same.String())
	assert.Equal(t, 3, same.Cap())
	assert.Equal(t, 3, same.Level())
	assert.True(t, same.Equal(w))

	_, err = motif.Truncate(w, -1)
	assert.ErrorIs(t, err, motif.ErrInvalidInput)
}

func TestWordEqual(t *testing.T) {
	a, err := motif.ParseWord(motif.DNA(), "AC-")
	require.NoError(t, err)
	b, err := motif.EmptyWord(motif.DNA(), 3).PushSymbol(0)
	require.NoError(t, err)
	b, err = b.PushSymbol(1)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	c, err := motif.ParseWord(motif.DNA(), "AC")
	require.NoError(t, err)
	assert.False(t, a.Equal(c), "capacity differs")
}
