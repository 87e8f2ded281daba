package fasta_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/kmedian/pkg/fasta"
	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

const sample = `; comment line
junk before the first header
>seq1 first record
ACGG
AC

>bad
ACNN
>seq3
aacg
`

func TestReadSkipsInvalidRecords(t *testing.T) {
	res, err := fasta.Read(strings.NewReader(sample), motif.DNA())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Records)
	require.Len(t, res.Sequences, 1)
	assert.Equal(t, "seq1", res.Sequences[0].Name())
	assert.Equal(t, "ACGGAC", res.Sequences[0].Symbols())

	require.Len(t, res.Skipped, 2)
	assert.Equal(t, "bad", res.Skipped[0].Name)
	assert.Equal(t, 7, res.Skipped[0].Row)
	assert.ErrorIs(t, res.Skipped[0].Err, motif.ErrInvalidSymbol)
	assert.Equal(t, "seq3", res.Skipped[1].Name)
}

func TestReadUpperCase(t *testing.T) {
	res, err := fasta.Read(strings.NewReader(sample), motif.DNA(), fasta.WithUpperCase(true))
	require.NoError(t, err)
	require.Len(t, res.Sequences, 2)
	assert.Equal(t, "AACG", res.Sequences[1].Symbols())
	assert.Len(t, res.Skipped, 1)
}

func TestReadStrict(t *testing.T) {
	_, err := fasta.Read(strings.NewReader(sample), motif.DNA(), fasta.WithStrict(true))
	assert.ErrorIs(t, err, motif.ErrInvalidSymbol)
}

func TestReadHeaderWithoutName(t *testing.T) {
	_, err := fasta.Read(strings.NewReader(">ok\nACGT\n>\nACGT\n"), motif.DNA())
	assert.ErrorIs(t, err, fasta.ErrFormat)
}

func TestReadEmpty(t *testing.T) {
	res, err := fasta.Read(strings.NewReader(""), motif.DNA())
	require.NoError(t, err)
	assert.Zero(t, res.Records)
	assert.Empty(t, res.Sequences)
}

const plain = ">a\nTCGGAC\n>b\nAGGTTG\n>c\nTAAGGC\n"

func writeFile(t *testing.T, name string, wrap func(io.Writer) io.WriteCloser) string {
	t.Helper()
	var buf bytes.Buffer
	w := wrap(&buf)
	_, err := io.WriteString(w, plain)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func TestLoadCompressed(t *testing.T) {
	cases := map[string]func(io.Writer) io.WriteCloser{
		"seqs.fa": func(w io.Writer) io.WriteCloser { return nopWriteCloser{w} },
		"seqs.fa.gz": func(w io.Writer) io.WriteCloser {
			return gzip.NewWriter(w)
		},
		"seqs.fa.zst": func(w io.Writer) io.WriteCloser {
			enc, err := zstd.NewWriter(w)
			require.NoError(t, err)
			return enc
		},
		"seqs.fa.lz4": func(w io.Writer) io.WriteCloser { return lz4.NewWriter(w) },
		"seqs.gz.data": func(w io.Writer) io.WriteCloser {
			return gzip.NewWriter(w)
		},
	}
	for name, wrap := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, wrap)
			res, err := fasta.Load(path, motif.DNA())
			require.NoError(t, err)
			require.Len(t, res.Sequences, 3)
			assert.Equal(t, "TAAGGC", res.Sequences[2].Symbols())
		})
	}
}

func TestDetectCompression(t *testing.T) {
	c, ok := fasta.DetectCompression("reads.FA.GZ")
	assert.True(t, ok)
	assert.Equal(t, fasta.CompressionGzip, c)

	_, ok = fasta.DetectCompression("reads.bin")
	assert.False(t, ok)

	assert.Len(t, fasta.ListSupportedFormats(), 4)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := fasta.Load(filepath.Join(t.TempDir(), "nope.fa"), motif.DNA())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
