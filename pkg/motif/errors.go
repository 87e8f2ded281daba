package motif

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every package that works on motifs.
var (
	// ErrInvalidSymbol is returned when a byte is not part of the alphabet.
	ErrInvalidSymbol = errors.New("motif: symbol not in alphabet")

	// ErrInvalidIndex is returned when a symbol index is outside [0, m).
	ErrInvalidIndex = errors.New("motif: index outside alphabet")

	// ErrOutOfRange is returned for positions outside a sequence.
	ErrOutOfRange = errors.New("motif: position out of range")

	// ErrAlphabetMismatch is returned when operands use different alphabets.
	ErrAlphabetMismatch = errors.New("motif: alphabet mismatch")

	// ErrInvalidState is returned when a word cannot take the requested operation.
	ErrInvalidState = errors.New("motif: invalid word state")

	// ErrInvalidInput is returned for malformed arguments.
	ErrInvalidInput = errors.New("motif: invalid input")
)

// SymbolError reports a byte that is not part of the alphabet.
// Position is -1 when the byte was not read from a string.
type SymbolError struct {
	Position int
	Value    byte
}

func (e *SymbolError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("motif: symbol %q not in alphabet", e.Value)
	}
	return fmt.Sprintf("motif: symbol %q at position %d not in alphabet", e.Value, e.Position)
}

func (e *SymbolError) Unwrap() error {
	return ErrInvalidSymbol
}

// IndexError reports a symbol index outside the alphabet.
type IndexError struct {
	Position int
	Value    int
}

func (e *IndexError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("motif: index %d outside alphabet", e.Value)
	}
	return fmt.Sprintf("motif: index %d at position %d outside alphabet", e.Value, e.Position)
}

func (e *IndexError) Unwrap() error {
	return ErrInvalidIndex
}
