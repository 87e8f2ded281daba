// Package kmers indexes the k-mers observed in a sequence set and completes
// prefixes against them, most frequent first.
package kmers

// Completer lists observed k-mers that extend a prefix.
type Completer interface {
	// Complete returns up to limit entries extending prefix; limit <= 0 means all.
	Complete(prefix string, limit int) []Entry

	// Count returns how often word was observed.
	Count(word string) int

	// Stats returns statistics about the index.
	Stats() map[string]int
}
