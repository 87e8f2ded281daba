package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/bastiangx/kmedian/pkg/median"
	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func newHandler(t *testing.T, out *bytes.Buffer) *InputHandler {
	t.Helper()
	raw := []string{"ACGGAC", "AGGACG", "AACGCC"}
	seqs := make([]*motif.Sequence, len(raw))
	for i, r := range raw {
		s, err := motif.NewSequence(motif.DNA(), fmt.Sprintf("s%d", i+1), r)
		require.NoError(t, err)
		seqs[i] = s
	}
	sr, err := median.New(seqs)
	require.NoError(t, err)

	h := NewInputHandler(sr, []median.Option{median.WithOrder(median.OrderTrie)}, 3, 0, 2)
	h.out = out
	return h
}

func TestRunAnswersEveryKind(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(t, &out)

	require.NoError(t, h.Run(strings.NewReader("3\n\nACG\n?G\n#ACG")))
	got := out.String()

	assert.True(t, strings.HasPrefix(got, "ACG:0\n"), got)
	assert.Contains(t, got, "REPORT for ACG\n")
	assert.Contains(t, got, "ACG\t0\t@ 3\tin s2")
	assert.Contains(t, got, "Distance: 0\n")
	assert.Contains(t, got, " 1. GAC")
	assert.Contains(t, got, " 2. GGA")
	assert.NotContains(t, got, "GCC")
	assert.True(t, strings.HasSuffix(got, "ACG: 3\n"), got)
	assert.Equal(t, 4, h.requestCount)
}

func TestRunSkipsInvalidInput(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(t, &out)

	require.NoError(t, h.Run(strings.NewReader("0\nAXG\n#\n?TTTTT\n")))
	assert.Empty(t, out.String())
}
