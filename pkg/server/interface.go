/*
Package server implements msgpack IPC for median searches.

The server reads a stream of msgpack requests from stdin and writes one
msgpack response per request to stdout. Requests are handled synchronously in
arrival order, and every response carries the ID of its request.

# IPC

The first message written is a ready status:

	{"status": "ready"}

Every request names an operation in "op" and carries the fields it needs:

	{"id": "r1", "op": "search", "k": 8, "order": "trie", "workers": 4}
	{"id": "r2", "op": "report", "q": "ACGTACGT"}
	{"id": "r3", "op": "count", "q": "ACG"}
	{"id": "r4", "op": "kmers", "k": 6, "p": "AC", "l": 10}
	{"id": "r5", "op": "info"}
	{"id": "r6", "op": "health"}

A search answers with the median, its score and search statistics; "t" is the
time taken in microseconds:

	{"id": "r1", "w": "ACGTTGCA", "s": 12, "n": 40211, "pr": 39877, "t": 5120}

# Errors

A failed request is answered with an ErrorResponse:

	{"id": "r1", "e": "k must be in [1, 16], got 40", "c": 400}

Codes follow HTTP: 400 for requests the engine rejects, 408 when a search runs
out of its time budget and 500 for everything else.
*/
package server

// Request is the envelope of every operation.
type Request struct {
	ID      string `msgpack:"id"`
	Op      string `msgpack:"op"`
	K       int    `msgpack:"k,omitempty"`
	Query   string `msgpack:"q,omitempty"`
	Order   string `msgpack:"order,omitempty"`
	Workers int    `msgpack:"workers,omitempty"`
	Limit   int    `msgpack:"l,omitempty"`
	Prefix  string `msgpack:"p,omitempty"`
}

// SearchResponse carries a median word and its total distance.
type SearchResponse struct {
	ID        string `msgpack:"id"`
	Word      string `msgpack:"w"`
	Score     int    `msgpack:"s"`
	Nodes     int64  `msgpack:"n"`
	Pruned    int64  `msgpack:"pr"`
	TimeTaken int64  `msgpack:"t"`
}

// ReportRow is the best alignment in one sequence. Pos is -1 and Window empty
// when the sequence is shorter than the query.
type ReportRow struct {
	Sequence string `msgpack:"seq"`
	Pos      int    `msgpack:"pos"`
	Distance int    `msgpack:"d"`
	Window   string `msgpack:"w,omitempty"`
}

// ReportResponse - per sequence alignment of a query
type ReportResponse struct {
	ID    string      `msgpack:"id"`
	Query string      `msgpack:"q"`
	Total int         `msgpack:"total"`
	Rows  []ReportRow `msgpack:"rows"`
}

// CountResponse - occurrences of a word across all sequences
type CountResponse struct {
	ID    string `msgpack:"id"`
	Word  string `msgpack:"w"`
	Count int    `msgpack:"c"`
}

// KmerEntry - minimal observed k-mer
type KmerEntry struct {
	Word  string `msgpack:"w"`
	Count int    `msgpack:"c"`
}

// KmersResponse lists observed k-mers for a prefix, most frequent first.
type KmersResponse struct {
	ID      string      `msgpack:"id"`
	Entries []KmerEntry `msgpack:"s"`
	Count   int         `msgpack:"c"`
}

// InfoResponse describes the loaded sequences.
type InfoResponse struct {
	ID          string `msgpack:"id"`
	Sequences   int    `msgpack:"sequences"`
	Alphabet    string `msgpack:"alphabet"`
	TotalLength int    `msgpack:"total_length"`
	MaxK        int    `msgpack:"max_k"`
}

// StatusResponse answers health checks and announces readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
