package motif

import (
	"fmt"
)

// Undefined is the printable marker for unset slots and indices outside the alphabet.
const Undefined byte = '-'

// Unset marks an unset word slot at the API edges (NewWord input, Indices output).
const Unset = -1

// Alphabet is an ordered set of distinct byte symbols. The zero value is not usable;
// build one with NewAlphabet or use DNA.
type Alphabet struct {
	symbols []byte
	lookup  [256]int16
}

var dna = mustAlphabet("ACGT")

// DNA returns the nucleotide alphabet A, C, G, T.
func DNA() *Alphabet {
	return dna
}

// NewAlphabet builds an alphabet from symbols, in the given order.
func NewAlphabet(symbols string) (*Alphabet, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", ErrInvalidInput)
	}
	a := &Alphabet{symbols: []byte(symbols)}
	for i := range a.lookup {
		a.lookup[i] = -1
	}
	for i := 0; i < len(symbols); i++ {
		b := symbols[i]
		if b == Undefined {
			return nil, fmt.Errorf("%w: %q is reserved for unset slots", ErrInvalidInput, b)
		}
		if a.lookup[b] >= 0 {
			return nil, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidInput, b)
		}
		a.lookup[b] = int16(i)
	}
	return a, nil
}

func mustAlphabet(symbols string) *Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// Size returns the number of symbols m.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// Symbols returns the symbols in index order.
func (a *Alphabet) Symbols() string {
	return string(a.symbols)
}

// IndexOf returns the index of b.
func (a *Alphabet) IndexOf(b byte) (int, error) {
	i := a.lookup[b]
	if i < 0 {
		return 0, &SymbolError{Position: -1, Value: b}
	}
	return int(i), nil
}

// SymbolOf returns the symbol at index i, or Undefined when i is outside [0, m).
func (a *Alphabet) SymbolOf(i int) byte {
	if i < 0 || i >= len(a.symbols) {
		return Undefined
	}
	return a.symbols[i]
}

// Encode converts raw text into symbol indices.
func (a *Alphabet) Encode(raw string) ([]int, error) {
	out := make([]int, len(raw))
	for i := 0; i < len(raw); i++ {
		idx := a.lookup[raw[i]]
		if idx < 0 {
			return nil, &SymbolError{Position: i, Value: raw[i]}
		}
		out[i] = int(idx)
	}
	return out, nil
}

// Decode converts symbol indices back into text. Negative indices decode to
// Undefined; indices >= m are an error.
func (a *Alphabet) Decode(idx []int) (string, error) {
	out := make([]byte, len(idx))
	for i, v := range idx {
		if v >= len(a.symbols) {
			return "", &IndexError{Position: i, Value: v}
		}
		out[i] = a.SymbolOf(v)
	}
	return string(out), nil
}

// Equal reports whether both alphabets hold the same symbols in the same order.
func (a *Alphabet) Equal(other *Alphabet) bool {
	if a == other {
		return true
	}
	if a == nil || other == nil {
		return false
	}
	return string(a.symbols) == string(other.symbols)
}

func (a *Alphabet) String() string {
	if a == nil {
		return "<nil>"
	}
	return string(a.symbols)
}
