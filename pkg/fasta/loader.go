// Package fasta loads named sequences from FASTA files, plain or compressed.
package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/charmbracelet/log"
)

// ErrFormat is returned for input that is not FASTA.
var ErrFormat = errors.New("fasta: malformed input")

const maxLine = 64 << 20

// Skipped is a record that failed validation.
type Skipped struct {
	Name string
	Row  int
	Err  error
}

// LoadResult holds the sequences read from one input.
type LoadResult struct {
	Sequences []*motif.Sequence
	Skipped   []Skipped
	Records   int
}

// Options controls how records are read.
type Options struct {
	// Strict turns an invalid record into an error instead of skipping it.
	Strict bool
	// UpperCase folds sequence letters to upper case before validation.
	UpperCase bool
}

// Option configures Options.
type Option func(*Options)

// WithStrict fails on the first invalid record.
func WithStrict(strict bool) Option {
	return func(o *Options) { o.Strict = strict }
}

// WithUpperCase folds soft-masked (lower case) residues.
func WithUpperCase(upper bool) Option {
	return func(o *Options) { o.UpperCase = upper }
}

// Read parses FASTA records from r. A record starts at a '>' line whose first
// token names it; the following lines are joined into its sequence. Lines
// before the first header and ';' comment lines are ignored.
func Read(r io.Reader, a *motif.Alphabet, opts ...Option) (*LoadResult, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	res := &LoadResult{}
	var (
		name   string
		header int
		body   bytes.Buffer
		open   bool
	)
	flush := func() error {
		if !open {
			return nil
		}
		res.Records++
		raw := body.String()
		if o.UpperCase {
			raw = strings.ToUpper(raw)
		}
		body.Reset()
		seq, err := motif.NewSequence(a, name, raw)
		if err != nil {
			if o.Strict {
				return fmt.Errorf("record %q at row %d: %w", name, header, err)
			}
			log.Warnf("Ignored %s (row %d): %v", name, header, err)
			res.Skipped = append(res.Skipped, Skipped{Name: name, Row: header, Err: err})
			return nil
		}
		res.Sequences = append(res.Sequences, seq)
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	row := 0
	for sc.Scan() {
		row++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return nil, err
			}
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				return nil, fmt.Errorf("%w: header without a name at row %d", ErrFormat, row)
			}
			name, header, open = fields[0], row, true
			continue
		}
		if open {
			body.WriteString(line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading at row %d: %w", row, err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return res, nil
}

// Load opens filename, decompressing it if needed, and reads it.
func Load(filename string, a *motif.Alphabet, opts ...Option) (*LoadResult, error) {
	rc, err := Open(filename)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	res, err := Read(rc, a, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	log.Debugf("Read %d sequences from %s (%d records, %d skipped)",
		len(res.Sequences), filename, res.Records, len(res.Skipped))
	return res, nil
}
