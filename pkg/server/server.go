package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/kmedian/internal/logger"
	"github.com/bastiangx/kmedian/pkg/config"
	"github.com/bastiangx/kmedian/pkg/kmers"
	"github.com/bastiangx/kmedian/pkg/median"
	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/bastiangx/kmedian/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Error codes sent in ErrorResponse.
const (
	CodeBadRequest = 400
	CodeTimeout    = 408
	CodeInternal   = 500
)

// Server handles the IPC for median searches
type Server struct {
	searcher *median.Searcher
	config   *config.Config
	dec      *msgpack.Decoder
	enc      *msgpack.Encoder
	log      *log.Logger
	indexes  map[int]*kmers.Index
	tries    map[int]*trie.Trie
	requests int
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(searcher *median.Searcher, cfg *config.Config) *Server {
	return NewServerIO(searcher, cfg, os.Stdin, os.Stdout)
}

// NewServerIO creates a server over arbitrary streams.
func NewServerIO(searcher *median.Searcher, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		searcher: searcher,
		config:   cfg,
		dec:      msgpack.NewDecoder(r),
		enc:      msgpack.NewEncoder(w),
		log:      logger.New("server"),
		indexes:  make(map[int]*kmers.Index),
		tries:    make(map[int]*trie.Trie),
	}
}

// Start answers requests until the input ends. A message that does not
// decode ends the stream, since msgpack cannot resynchronise after it.
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")
	s.send(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			s.sendError("", "invalid msgpack request", CodeBadRequest)
			return fmt.Errorf("decoding request: %w", err)
		}
		s.requests++
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	s.log.Debug("Processing request", "id", req.ID, "op", req.Op)
	switch req.Op {
	case "search":
		s.handleSearch(req)
	case "report":
		s.handleReport(req)
	case "count":
		s.handleCount(req)
	case "kmers":
		s.handleKmers(req)
	case "info":
		s.handleInfo(req)
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %q", req.Op), CodeBadRequest)
	}
}

func (s *Server) handleSearch(req Request) {
	if !s.checkK(req) {
		return
	}
	opts, err := s.searchOptions(req)
	if err != nil {
		s.sendError(req.ID, err.Error(), CodeBadRequest)
		return
	}

	ctx := context.Background()
	if ms := s.config.Server.TimeLimitMs; ms > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(ms)*time.Millisecond)
		defer cancel()
	}

	res, err := s.searcher.Search(ctx, req.K, opts...)
	if err != nil {
		code := errorCode(err)
		msg := err.Error()
		if code == CodeTimeout {
			msg = fmt.Sprintf("search exceeded %dms, best so far %s", s.config.Server.TimeLimitMs, res.Distance)
		}
		s.log.Warnf("search %s: %s", req.ID, msg)
		s.sendError(req.ID, msg, code)
		return
	}
	s.send(SearchResponse{
		ID:        req.ID,
		Word:      res.Word.String(),
		Score:     res.Score,
		Nodes:     res.Stats.Nodes,
		Pruned:    res.Stats.Pruned,
		TimeTaken: res.Stats.Elapsed.Microseconds(),
	})
}

func (s *Server) searchOptions(req Request) ([]median.Option, error) {
	search := s.config.Search
	if req.Order != "" {
		search.Order = req.Order
	}
	if req.Workers > 0 {
		search.Workers = req.Workers
	}
	cfg := config.Config{Search: search}
	return cfg.SearchOptions()
}

func (s *Server) handleReport(req Request) {
	w, ok := s.parseQuery(req)
	if !ok {
		return
	}
	r, err := s.searcher.Report(w)
	if err != nil {
		s.sendError(req.ID, err.Error(), errorCode(err))
		return
	}
	rows := make([]ReportRow, len(r.Matches))
	for i, m := range r.Matches {
		rows[i] = ReportRow{Sequence: m.Sequence.Name(), Pos: m.Position, Distance: m.Distance}
		if m.Position >= 0 {
			rows[i].Window = m.Window.String()
		}
	}
	s.send(ReportResponse{ID: req.ID, Query: w.String(), Total: r.Total, Rows: rows})
}

func (s *Server) handleCount(req Request) {
	w, ok := s.parseQuery(req)
	if !ok {
		return
	}
	if !w.IsComplete() {
		s.sendError(req.ID, fmt.Sprintf("count needs a complete word, got %s", w), CodeBadRequest)
		return
	}
	t, err := s.frequencyTrie(w.Cap())
	if err != nil {
		s.sendError(req.ID, err.Error(), errorCode(err))
		return
	}
	n, err := t.Lookup(w)
	if err != nil {
		s.sendError(req.ID, err.Error(), errorCode(err))
		return
	}
	s.send(CountResponse{ID: req.ID, Word: w.String(), Count: n})
}

func (s *Server) handleKmers(req Request) {
	if !s.checkK(req) {
		return
	}
	limit := req.Limit
	if limit < 1 || limit > s.config.Server.MaxLimit {
		limit = s.config.Server.MaxLimit
	}
	x, err := s.index(req.K)
	if err != nil {
		s.sendError(req.ID, err.Error(), errorCode(err))
		return
	}
	found := x.Complete(req.Prefix, limit)
	entries := make([]KmerEntry, len(found))
	for i, e := range found {
		entries[i] = KmerEntry{Word: e.Word, Count: e.Count}
	}
	s.send(KmersResponse{ID: req.ID, Entries: entries, Count: len(entries)})
}

func (s *Server) handleInfo(req Request) {
	seqs := s.searcher.Sequences()
	total := 0
	for _, seq := range seqs {
		total += seq.Len()
	}
	s.send(InfoResponse{
		ID:          req.ID,
		Sequences:   len(seqs),
		Alphabet:    s.searcher.Alphabet().Symbols(),
		TotalLength: total,
		MaxK:        s.config.Server.MaxK,
	})
}

func (s *Server) checkK(req Request) bool {
	if req.K < 1 || req.K > s.config.Server.MaxK {
		s.sendError(req.ID, fmt.Sprintf("k must be in [1, %d], got %d", s.config.Server.MaxK, req.K), CodeBadRequest)
		return false
	}
	return true
}

func (s *Server) parseQuery(req Request) (motif.Word, bool) {
	if req.Query == "" {
		s.sendError(req.ID, "missing 'q' parameter", CodeBadRequest)
		return motif.Word{}, false
	}
	if len(req.Query) > s.config.Server.MaxK {
		s.sendError(req.ID, fmt.Sprintf("query exceeds maximum length of %d", s.config.Server.MaxK), CodeBadRequest)
		return motif.Word{}, false
	}
	w, err := motif.ParseWord(s.searcher.Alphabet(), req.Query)
	if err != nil {
		s.sendError(req.ID, err.Error(), errorCode(err))
		return motif.Word{}, false
	}
	return w, true
}

// frequencyTrie returns the trie of depth k, building it on first use.
func (s *Server) frequencyTrie(k int) (*trie.Trie, error) {
	if t, ok := s.tries[k]; ok {
		return t, nil
	}
	t, err := trie.New(s.searcher.Sequences(), k)
	if err != nil {
		return nil, err
	}
	s.tries[k] = t
	return t, nil
}

// index returns the k-mer index of depth k, building it on first use.
func (s *Server) index(k int) (*kmers.Index, error) {
	if x, ok := s.indexes[k]; ok {
		return x, nil
	}
	x, err := kmers.FromSequences(s.searcher.Sequences(), k)
	if err != nil {
		return nil, err
	}
	s.indexes[k] = x
	return x, nil
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

// errorCode maps engine errors onto response codes.
func errorCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return CodeTimeout
	case errors.Is(err, motif.ErrInvalidInput),
		errors.Is(err, motif.ErrInvalidSymbol),
		errors.Is(err, motif.ErrInvalidIndex),
		errors.Is(err, motif.ErrInvalidState),
		errors.Is(err, motif.ErrOutOfRange),
		errors.Is(err, motif.ErrAlphabetMismatch):
		return CodeBadRequest
	}
	return CodeInternal
}
