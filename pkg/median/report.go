package median

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bastiangx/kmedian/pkg/motif"
)

// Match is the best alignment of a query against one sequence.
type Match struct {
	Sequence *motif.Sequence
	// Position is the first offset with the smallest distance, -1 when the
	// sequence is shorter than the query.
	Position int
	Distance int
	// Window is the matched substring; the zero Word when Position is -1.
	Window motif.Word
}

// Report describes how a complete word aligns to every sequence.
type Report struct {
	Query   motif.Word
	Matches []Match
	Total   int
	// Profile[i][s] counts matched windows holding symbol s at position i.
	Profile [][]int
}

// Report aligns query against every sequence. Total equals the score Search
// assigns to the same word.
func (s *Searcher) Report(query motif.Word) (*Report, error) {
	if !query.IsComplete() {
		return nil, fmt.Errorf("%w: report needs a complete word, got %s", motif.ErrInvalidState, query)
	}
	if query.Cap() < 1 {
		return nil, fmt.Errorf("%w: empty query", motif.ErrInvalidInput)
	}
	if !query.Alphabet().Equal(s.alpha) {
		return nil, fmt.Errorf("%w: query uses %v, sequences use %v", motif.ErrAlphabetMismatch, query.Alphabet(), s.alpha)
	}

	k, m := query.Cap(), s.alpha.Size()
	r := &Report{
		Query:   query,
		Matches: make([]Match, 0, len(s.seqs)),
		Profile: make([][]int, k),
	}
	for i := range r.Profile {
		r.Profile[i] = make([]int, m)
	}

	for _, seq := range s.seqs {
		d, err := motif.AlignmentDistances(seq, query)
		if err != nil {
			return nil, err
		}
		if len(d) == 0 {
			r.Matches = append(r.Matches, Match{Sequence: seq, Position: -1, Distance: k})
			r.Total += k
			continue
		}
		pos, err := motif.ArgminOffset(d)
		if err != nil {
			return nil, err
		}
		win, err := motif.WordAt(seq, pos, k)
		if err != nil {
			return nil, err
		}
		for i := range k {
			sym, _ := win.At(i)
			r.Profile[i][sym]++
		}
		r.Matches = append(r.Matches, Match{Sequence: seq, Position: pos, Distance: d[pos], Window: win})
		r.Total += d[pos]
	}
	return r, nil
}

// Short renders "<word>:<total>".
func (r *Report) Short() string {
	return Distance{Score: r.Total, Word: r.Query}.String()
}

// WriteTo renders one line per sequence, the total and the symbol profile
// with one row per symbol and one column per position.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	a := r.Query.Alphabet()

	fmt.Fprintf(&buf, "REPORT for %s\n", r.Query)
	for _, m := range r.Matches {
		if m.Position < 0 {
			fmt.Fprintf(&buf, "%s\t%d\t@ -\tin %s\n", motif.EmptyWord(a, r.Query.Cap()), m.Distance, m.Sequence)
			continue
		}
		fmt.Fprintf(&buf, "%s\t%d\t@ %d\tin %s\n", m.Window, m.Distance, m.Position, m.Sequence)
	}
	fmt.Fprintf(&buf, "Distance: %d\n", r.Total)
	buf.WriteString("Counts:\n")
	for s := range a.Size() {
		buf.WriteByte(a.SymbolOf(s))
		for i := range r.Profile {
			fmt.Fprintf(&buf, "%5d", r.Profile[i][s])
		}
		buf.WriteByte('\n')
	}
	return buf.WriteTo(w)
}
