package median

import (
	"fmt"
	"strings"
	"time"

	"github.com/bastiangx/kmedian/pkg/motif"
)

// Order selects a built-in branch order.
type Order int

const (
	// OrderAlphabet tries children in alphabet order.
	OrderAlphabet Order = iota
	// OrderTrie tries frequently observed children first.
	OrderTrie
)

func (o Order) String() string {
	switch o {
	case OrderAlphabet:
		return "alphabet"
	case OrderTrie:
		return "trie"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder reads "alphabet" or "trie".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "alphabet", "plain", "":
		return OrderAlphabet, nil
	case "trie":
		return OrderTrie, nil
	}
	return 0, fmt.Errorf("%w: unknown order %q", motif.ErrInvalidInput, s)
}

// Options configures a search.
type Options struct {
	// Order picks a built-in Orderer. Ignored when Orderer is set.
	Order Order

	// Orderer overrides Order with a custom branch order.
	Orderer Orderer

	// TrieDepth is the depth of the trie used by OrderTrie; 0 means k.
	// Larger values are capped at k.
	TrieDepth int

	// Workers is the number of goroutines; values below 2 search sequentially.
	Workers int
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns a sequential search in alphabet order.
func DefaultOptions() Options {
	return Options{
		Order:   OrderAlphabet,
		Workers: 1,
	}
}

// WithOrder selects a built-in branch order.
func WithOrder(o Order) Option {
	return func(opts *Options) { opts.Order = o }
}

// WithOrderer installs a custom branch order.
func WithOrderer(o Orderer) Option {
	return func(opts *Options) { opts.Orderer = o }
}

// WithTrieDepth sets the trie depth used by OrderTrie.
func WithTrieDepth(d int) Option {
	return func(opts *Options) { opts.TrieDepth = d }
}

// WithWorkers sets the number of search goroutines.
func WithWorkers(n int) Option {
	return func(opts *Options) { opts.Workers = n }
}

// Distance is a scored word.
type Distance struct {
	Score int
	Word  motif.Word
}

// String renders "<word>:<score>".
func (d Distance) String() string {
	return fmt.Sprintf("%s:%d", d.Word, d.Score)
}

// Stats describes the work done by a search.
type Stats struct {
	Nodes        int64 // words expanded, root included
	Pruned       int64 // words dropped by the bound
	Leaves       int64 // complete words scored
	Improvements int64 // incumbent replacements
	Tasks        int   // subtrees searched; 1 when sequential
	Elapsed      time.Duration
}

func (s *Stats) add(o Stats) {
	s.Nodes += o.Nodes
	s.Pruned += o.Pruned
	s.Leaves += o.Leaves
	s.Improvements += o.Improvements
}

// Result is the outcome of a search.
type Result struct {
	Distance
	Stats Stats
}
