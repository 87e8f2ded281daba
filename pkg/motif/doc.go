/*
Package motif holds the data model of the median word search: alphabets,
sequences, partially specified words and the distance metrics between them.

# Alphabet

An Alphabet is a small, closed, totally ordered set of byte symbols. Every
symbol maps to an index in [0, m) and back:

	a := motif.DNA() // A=0 C=1 G=2 T=3
	idx, _ := a.Encode("GATTACA")
	text, _ := a.Decode(idx)

Indices outside the alphabet decode to the Undefined marker '-'.

# Sequences and words

A Sequence is a named, immutable run of symbol indices. A Word has a fixed
capacity k and a contiguous set prefix of length Level(); the remaining slots
are unset. Words are values: Extensions and PushSymbol return new words and
never touch the receiver.

	root := motif.EmptyWord(a, 3)       // "---"
	w, _ := root.PushSymbol(2)          // "G--"
	kids, _ := w.Extensions()           // "GA-" "GC-" "GG-" "GT-"

Every complete length-k substring of a sequence is available lazily:

	for w := range seq.Substrings(3) {
		fmt.Println(w)
	}

# Distances

AlignmentDistances slides the set prefix of a word over a sequence and
returns the Hamming distance at every offset. BestDistance is the minimum of
those values; it exits an offset early once it cannot improve. A prefix
longer than the sequence has no alignment and scores its full length.

# Errors

Failures are reported with the sentinel errors of this package. Positional
failures carry a *SymbolError or *IndexError that unwraps to the matching
sentinel, so both errors.Is and errors.As work:

	_, err := a.Encode("ACXT")
	var se *motif.SymbolError
	if errors.As(err, &se) {
		fmt.Println(se.Position) // 2
	}
*/
package motif
