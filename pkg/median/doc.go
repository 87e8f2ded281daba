/*
Package median finds a median word: a length-k word over the alphabet of a
sequence set that minimizes the sum, over all sequences, of its best
alignment Hamming distance.

The search is an exact depth-first branch and bound over all m^k words.
At a partially set word the sum of BestDistance over the sequences is a lower
bound on the score of every completion, so a subtree is dropped once that sum
reaches the best score found so far. The incumbent is seeded with k*n+1,
which no word can reach.

	s, err := median.New(seqs)
	res, err := s.Search(ctx, 8, median.WithOrder(median.OrderTrie))
	fmt.Println(res) // e.g. "TCGGTC:6"

# Branch order

Children are tried in the order given by an Orderer. OrderAlphabet tries the
symbols in alphabet order. OrderTrie counts the observed substrings in a
trie and tries frequent continuations first, which tends to find a good
incumbent early; symbols never observed after a prefix are still explored,
after the observed ones. Both orders return the same score.

# Ties

A word replaces the incumbent only when its score is strictly lower. With
alphabet order the result is the first optimal word in lexicographic order.

# Workers

WithWorkers(n) splits the tree into subtrees at a shallow depth and searches
them on n goroutines that share the best score. The merge keeps the optimum
of the earliest subtree, so the result is the one the sequential search
would return.

# Cancellation

The context is polled every 4096 nodes. A cancelled search returns the best
word found so far together with the context error.
*/
package median
