package motif

import (
	"fmt"
	"slices"
	"strings"
)

// Word is a length-k word whose first Level() slots are set and whose
// remaining slots are unset. The zero value is an empty word of capacity 0.
type Word struct {
	alpha *Alphabet
	syms  []int // set prefix only
	k     int
}

// EmptyWord returns a word of capacity k with every slot unset.
// A negative k is treated as 0.
func EmptyWord(a *Alphabet, k int) Word {
	return Word{alpha: a, k: max(k, 0)}
}

// WordAt copies the length-k window of seq starting at pos.
func WordAt(seq *Sequence, pos, k int) (Word, error) {
	if k < 0 || pos < 0 || pos+k > seq.Len() {
		return Word{}, fmt.Errorf("%w: window [%d,%d) of %s", ErrOutOfRange, pos, pos+k, seq)
	}
	return seq.word(pos, k), nil
}

// Truncate returns the complete word made of the first min(k, w.Level())
// set symbols of w. Its capacity equals its level.
func Truncate(w Word, k int) (Word, error) {
	if k < 0 {
		return Word{}, fmt.Errorf("%w: negative capacity %d", ErrInvalidInput, k)
	}
	n := min(k, len(w.syms))
	return Word{alpha: w.alpha, syms: slices.Clone(w.syms[:n]), k: n}, nil
}

// NewWord builds a word of capacity len(idx) from explicit indices. A negative
// entry starts the unset suffix; every entry after it must be negative too.
func NewWord(a *Alphabet, idx []int) (Word, error) {
	if a == nil {
		return Word{}, fmt.Errorf("%w: nil alphabet", ErrInvalidInput)
	}
	level := len(idx)
	for i, v := range idx {
		switch {
		case v < 0:
			if level == len(idx) {
				level = i
			}
		case level < i:
			return Word{}, fmt.Errorf("%w: set slot %d follows unset slot %d", ErrInvalidState, i, level)
		case v >= a.Size():
			return Word{}, &IndexError{Position: i, Value: v}
		}
	}
	return Word{alpha: a, syms: slices.Clone(idx[:level]), k: len(idx)}, nil
}

// ParseWord reads a word from text; Undefined characters mark the unset suffix.
func ParseWord(a *Alphabet, text string) (Word, error) {
	if a == nil {
		return Word{}, fmt.Errorf("%w: nil alphabet", ErrInvalidInput)
	}
	idx := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == Undefined {
			idx[i] = Unset
			continue
		}
		v, err := a.IndexOf(text[i])
		if err != nil {
			return Word{}, &SymbolError{Position: i, Value: text[i]}
		}
		idx[i] = v
	}
	return NewWord(a, idx)
}

// Alphabet returns the alphabet of the word; nil for the zero value.
func (w Word) Alphabet() *Alphabet {
	return w.alpha
}

// Level returns the number of set slots.
func (w Word) Level() int {
	return len(w.syms)
}

// Cap returns the capacity k.
func (w Word) Cap() int {
	return w.k
}

// IsComplete reports whether every slot is set.
func (w Word) IsComplete() bool {
	return len(w.syms) == w.k
}

// At returns the symbol in slot i and whether it is set.
func (w Word) At(i int) (int, bool) {
	if i < 0 || i >= len(w.syms) {
		return Unset, false
	}
	return w.syms[i], true
}

// Indices returns a copy of all k slots, unset ones as Unset.
func (w Word) Indices() []int {
	out := make([]int, w.k)
	n := copy(out, w.syms)
	for i := n; i < w.k; i++ {
		out[i] = Unset
	}
	return out
}

// Extensions returns the m words obtained by setting the first unset slot,
// in alphabet order.
func (w Word) Extensions() ([]Word, error) {
	if w.IsComplete() {
		return nil, fmt.Errorf("%w: %s is complete", ErrInvalidState, w)
	}
	if w.alpha == nil {
		return nil, fmt.Errorf("%w: word has no alphabet", ErrInvalidState)
	}
	out := make([]Word, w.alpha.Size())
	for i := range out {
		out[i] = w.push(i)
	}
	return out, nil
}

// PushSymbol returns the extension that sets the first unset slot to i.
// A complete word is returned unchanged whatever i is.
func (w Word) PushSymbol(i int) (Word, error) {
	if w.IsComplete() {
		return w, nil
	}
	if w.alpha == nil {
		return w, fmt.Errorf("%w: word has no alphabet", ErrInvalidState)
	}
	if i < 0 || i >= w.alpha.Size() {
		return w, &IndexError{Position: len(w.syms), Value: i}
	}
	return w.push(i), nil
}

func (w Word) push(i int) Word {
	syms := make([]int, len(w.syms)+1, w.k)
	copy(syms, w.syms)
	syms[len(w.syms)] = i
	return Word{alpha: w.alpha, syms: syms, k: w.k}
}

// Equal reports whether both words share alphabet, capacity and set prefix.
func (w Word) Equal(o Word) bool {
	return w.k == o.k && w.alpha.Equal(o.alpha) && slices.Equal(w.syms, o.syms)
}

// String decodes the word, unset slots as Undefined.
func (w Word) String() string {
	var b strings.Builder
	b.Grow(w.k)
	for _, s := range w.syms {
		if w.alpha == nil {
			b.WriteByte(Undefined)
			continue
		}
		b.WriteByte(w.alpha.SymbolOf(s))
	}
	for i := len(w.syms); i < w.k; i++ {
		b.WriteByte(Undefined)
	}
	return b.String()
}
