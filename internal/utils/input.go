// Package utils holds helpers shared by the binaries: TOML loading, path
// resolution, input classification and human readable formatting.
package utils

import (
	"strings"
	"unicode"
)

// InputKind is the meaning of a line typed in interactive mode.
type InputKind int

const (
	InputEmpty  InputKind = iota
	InputLength           // "7": search for a median of that length
	InputPrefix           // "?AC": list observed k-mers starting with AC
	InputCount            // "#ACG": trie count of ACG
	InputWord             // "ACGT": report for that word
)

// ClassifyInput splits a line into its kind and argument.
func ClassifyInput(line string) (InputKind, string) {
	s := strings.TrimSpace(line)
	switch {
	case s == "":
		return InputEmpty, ""
	case IsOnlyNumbers(s):
		return InputLength, s
	case s[0] == '?':
		return InputPrefix, strings.TrimSpace(s[1:])
	case s[0] == '#':
		return InputCount, strings.TrimSpace(s[1:])
	}
	return InputWord, s
}

// IsOnlyNumbers reports whether s is a non-empty run of digits.
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
