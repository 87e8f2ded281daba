// Package cli handles cmd line input for exploring a sequence set interactively.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/bastiangx/kmedian/internal/utils"
	"github.com/bastiangx/kmedian/pkg/kmers"
	"github.com/bastiangx/kmedian/pkg/median"
	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/charmbracelet/log"
)

// InputHandler reads lines from stdin and answers each one:
// a number searches for a median of that length, a word prints its report,
// "?PREFIX" lists observed k-mers and "#WORD" prints how often WORD occurs.
type InputHandler struct {
	searcher     *median.Searcher
	k            int
	opts         []median.Option
	timeout      time.Duration
	limit        int
	out          io.Writer
	indexes      map[int]*kmers.Index
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
// k is the length of the k-mers listed for ?PREFIX.
func NewInputHandler(searcher *median.Searcher, opts []median.Option, k int, timeout time.Duration, limit int) *InputHandler {
	return &InputHandler{
		searcher: searcher,
		k:        k,
		opts:     opts,
		timeout:  timeout,
		limit:    limit,
		out:      os.Stdout,
		indexes:  make(map[int]*kmers.Index),
	}
}

// Start begins the interface loop on stdin.
func (h *InputHandler) Start() error {
	log.Print("kmedian CLI")
	log.Print("type a length, a word, ?PREFIX or #WORD and press Enter (Ctrl+C to exit):")
	return h.Run(os.Stdin)
}

// Run answers every line of r. It returns nil once r is exhausted.
func (h *InputHandler) Run(r io.Reader) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			h.handleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (h *InputHandler) handleInput(line string) {
	kind, arg := utils.ClassifyInput(line)
	if kind == utils.InputEmpty {
		return
	}
	h.requestCount++
	log.Debug("Processing request", "n", h.requestCount, "input", arg)

	switch kind {
	case utils.InputLength:
		h.search(arg)
	case utils.InputPrefix:
		h.complete(arg)
	case utils.InputCount:
		h.count(arg)
	case utils.InputWord:
		h.report(arg)
	}
}

func (h *InputHandler) search(arg string) {
	k, err := strconv.Atoi(arg)
	if err != nil || k < 1 {
		log.Errorf("Invalid length: %s", arg)
		return
	}

	ctx := context.Background()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	res, err := h.searcher.Search(ctx, k, h.opts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warnf("Search stopped after %s, best so far %s", utils.FormatDuration(h.timeout), res.Distance)
			return
		}
		log.Errorf("Search failed: %v", err)
		return
	}
	fmt.Fprintln(h.out, res.Distance)
	log.Debugf("Took [ %s ] for k=%d, %s nodes, %s pruned", utils.FormatDuration(res.Stats.Elapsed),
		k, utils.FormatCount(res.Stats.Nodes), utils.FormatCount(res.Stats.Pruned))
}

func (h *InputHandler) report(arg string) {
	w, err := motif.ParseWord(h.searcher.Alphabet(), arg)
	if err != nil {
		log.Errorf("Invalid word %q: %v", arg, err)
		return
	}
	r, err := h.searcher.Report(w)
	if err != nil {
		log.Errorf("Report failed: %v", err)
		return
	}
	if _, err := r.WriteTo(h.out); err != nil {
		log.Errorf("Writing report: %v", err)
	}
}

func (h *InputHandler) complete(prefix string) {
	if prefix == "" {
		log.Errorf("Prefix too short, use ?PREFIX")
		return
	}
	x, err := h.index(max(h.k, len(prefix)))
	if err != nil {
		log.Errorf("Indexing failed: %v", err)
		return
	}
	entries := x.Complete(prefix, h.limit)
	if len(entries) == 0 {
		log.Warnf("No k-mers found for prefix: '%s'", prefix)
		return
	}
	for i, e := range entries {
		fmt.Fprintf(h.out, "%2d. %-24s (count: %8s)\n", i+1, e.Word, utils.FormatCount(e.Count))
	}
}

func (h *InputHandler) count(arg string) {
	if _, err := motif.ParseWord(h.searcher.Alphabet(), arg); err != nil || arg == "" {
		log.Errorf("Invalid word %q", arg)
		return
	}
	x, err := h.index(len(arg))
	if err != nil {
		log.Errorf("Indexing failed: %v", err)
		return
	}
	fmt.Fprintf(h.out, "%s: %s\n", arg, utils.FormatCount(x.Count(arg)))
}

// index returns the k-mer index of depth k, building it on first use.
func (h *InputHandler) index(k int) (*kmers.Index, error) {
	if x, ok := h.indexes[k]; ok {
		return x, nil
	}
	x, err := kmers.FromSequences(h.searcher.Sequences(), k)
	if err != nil {
		return nil, err
	}
	h.indexes[k] = x
	return x, nil
}
