package motif

import (
	"fmt"
)

// AlignmentDistances returns the Hamming distance between the set prefix of w
// and seq at every offset in [0, n-K], K being w.Level(). The slice is empty
// when the prefix is longer than the sequence.
func AlignmentDistances(seq *Sequence, w Word) ([]int, error) {
	if err := sameAlphabet(seq, w); err != nil {
		return nil, err
	}
	n, K := len(seq.syms), len(w.syms)
	if K > n {
		return []int{}, nil
	}
	out := make([]int, n-K+1)
	for off := range out {
		window := seq.syms[off : off+K]
		d := 0
		for j, s := range w.syms {
			if window[j] != s {
				d++
			}
		}
		out[off] = d
	}
	return out, nil
}

// BestDistance returns the smallest alignment distance of w's set prefix
// against seq. A prefix longer than the sequence scores K.
func BestDistance(seq *Sequence, w Word) (int, error) {
	if err := sameAlphabet(seq, w); err != nil {
		return 0, err
	}
	return bestDistance(seq.syms, w.syms), nil
}

func bestDistance(text, pattern []int) int {
	K := len(pattern)
	if K > len(text) {
		return K
	}
	best := K
	for off := 0; off+K <= len(text) && best > 0; off++ {
		window := text[off : off+K]
		d := 0
		for j, s := range pattern {
			if window[j] != s {
				d++
				if d >= best {
					break
				}
			}
		}
		if d < best {
			best = d
		}
	}
	return best
}

// ArgminOffset returns the first position holding the minimum of distances.
func ArgminOffset(distances []int) (int, error) {
	if len(distances) == 0 {
		return 0, fmt.Errorf("%w: no distances", ErrInvalidInput)
	}
	pos := 0
	for i, d := range distances[1:] {
		if d < distances[pos] {
			pos = i + 1
		}
	}
	return pos, nil
}

func sameAlphabet(seq *Sequence, w Word) error {
	if seq == nil {
		return fmt.Errorf("%w: nil sequence", ErrInvalidInput)
	}
	if !seq.alpha.Equal(w.alpha) {
		return fmt.Errorf("%w: sequence %q uses %v, word uses %v", ErrAlphabetMismatch, seq.name, seq.alpha, w.alpha)
	}
	return nil
}
