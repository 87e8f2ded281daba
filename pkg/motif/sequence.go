package motif

import (
	"fmt"
	"iter"
)

// Sequence is a named, immutable run of symbol indices over one alphabet.
type Sequence struct {
	alpha *Alphabet
	name  string
	syms  []int
}

// NewSequence validates raw against a and encodes it.
func NewSequence(a *Alphabet, name, raw string) (*Sequence, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil alphabet", ErrInvalidInput)
	}
	syms, err := a.Encode(raw)
	if err != nil {
		return nil, fmt.Errorf("sequence %q: %w", name, err)
	}
	return &Sequence{alpha: a, name: name, syms: syms}, nil
}

// Len returns the number of symbols.
func (s *Sequence) Len() int {
	return len(s.syms)
}

// Name returns the sequence label.
func (s *Sequence) Name() string {
	return s.name
}

// Alphabet returns the alphabet the sequence is encoded with.
func (s *Sequence) Alphabet() *Alphabet {
	return s.alpha
}

// At returns the symbol index at pos.
func (s *Sequence) At(pos int) (int, error) {
	if pos < 0 || pos >= len(s.syms) {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, pos, len(s.syms))
	}
	return s.syms[pos], nil
}

// Substrings yields every complete length-k word of the sequence, left to right.
// Nothing is yielded when k is negative or longer than the sequence.
func (s *Sequence) Substrings(k int) iter.Seq[Word] {
	return func(yield func(Word) bool) {
		if k < 0 || k > len(s.syms) {
			return
		}
		for pos := 0; pos+k <= len(s.syms); pos++ {
			if !yield(s.word(pos, k)) {
				return
			}
		}
	}
}

// Symbols returns the decoded text.
func (s *Sequence) Symbols() string {
	out, _ := s.alpha.Decode(s.syms)
	return out
}

func (s *Sequence) String() string {
	return fmt.Sprintf("%s (%d)", s.name, len(s.syms))
}

// word copies the window [pos, pos+k); the caller checks bounds.
func (s *Sequence) word(pos, k int) Word {
	syms := make([]int, k)
	copy(syms, s.syms[pos:pos+k])
	return Word{alpha: s.alpha, syms: syms, k: k}
}
