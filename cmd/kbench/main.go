// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command kbench times median searches over random sequence sets of growing
// size and writes "n,k,ms" rows to a CSV file.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bastiangx/kmedian/internal/logger"
	"github.com/bastiangx/kmedian/internal/utils"
	"github.com/bastiangx/kmedian/pkg/config"
	"github.com/bastiangx/kmedian/pkg/median"
	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/charmbracelet/log"
	"github.com/cheggaaa/pb/v3"
)

func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	configFile := flag.String("config", "", "Path to a custom config.toml")
	output := flag.String("o", "", "CSV output file (default from config)")
	seed := flag.Int("seed", -1, "Random seed (default from config)")
	order := flag.String("order", "", "Visit order: alphabet or trie (default from config)")
	workers := flag.Int("workers", 0, "Number of parallel search workers (default from config)")
	noProgress := flag.Bool("q", false, "Hide the progress bar")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Parse()

	logger.SetupGlobal(*debugMode)
	lg := logger.New("kbench")

	cfg, _, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		lg.Fatalf("Failed to load config: %v", err)
	}
	if *output != "" {
		cfg.Bench.Output = *output
	}
	if *seed >= 0 {
		cfg.Bench.Seed = *seed
	}
	if *order != "" {
		cfg.Search.Order = *order
	}
	if *workers > 0 {
		cfg.Search.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		lg.Fatalf("Invalid options: %v", err)
	}

	f, err := os.Create(cfg.Bench.Output)
	if err != nil {
		lg.Fatalf("Failed to create %s: %v", cfg.Bench.Output, err)
	}
	defer f.Close()

	b, err := newBench(cfg)
	if err != nil {
		lg.Fatalf("Invalid options: %v", err)
	}
	if !*noProgress {
		b.bar = pb.Full.New(b.cells()).SetWriter(os.Stderr).Start()
	}

	start := time.Now()
	rows, err := b.run(context.Background(), f)
	if b.bar != nil {
		b.bar.Finish()
	}
	if err != nil {
		lg.Fatalf("Benchmark failed: %v", err)
	}
	lg.Infof("Wrote %s rows to %s in %s", utils.FormatCount(rows), cfg.Bench.Output,
		utils.FormatDuration(time.Since(start)))
}

// bench runs the grid described by a BenchConfig.
type bench struct {
	cfg   config.BenchConfig
	alpha *motif.Alphabet
	opts  []median.Option
	rng   *rand.Rand
	bar   *pb.ProgressBar
}

func newBench(cfg *config.Config) (*bench, error) {
	alpha, err := motif.NewAlphabet(cfg.Input.Alphabet)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.SearchOptions()
	if err != nil {
		return nil, err
	}
	if cfg.Bench.MinN < 1 || cfg.Bench.MinK < 1 || cfg.Bench.SeqLength < 1 {
		return nil, fmt.Errorf("bench sizes must be positive")
	}
	seed := uint64(cfg.Bench.Seed)
	return &bench{
		cfg:   cfg.Bench,
		alpha: alpha,
		opts:  opts,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

func (b *bench) cells() int {
	return (b.cfg.MaxN - b.cfg.MinN + 1) * (b.cfg.MaxK - b.cfg.MinK + 1)
}

// randomSequences draws n sequences of the configured length.
func (b *bench) randomSequences(n int) ([]*motif.Sequence, error) {
	symbols := b.alpha.Symbols()
	seqs := make([]*motif.Sequence, n)
	raw := make([]byte, b.cfg.SeqLength)
	for i := range seqs {
		for j := range raw {
			raw[j] = symbols[b.rng.IntN(len(symbols))]
		}
		s, err := motif.NewSequence(b.alpha, "r"+strconv.Itoa(i+1), string(raw))
		if err != nil {
			return nil, err
		}
		seqs[i] = s
	}
	return seqs, nil
}

// run warms up, then times every (n, k) cell. A k row stops once its average
// exceeds the cutoff. It returns the number of rows written.
func (b *bench) run(ctx context.Context, w io.Writer) (int, error) {
	out := csv.NewWriter(w)
	cutoff := time.Duration(b.cfg.CutoffMs) * time.Millisecond

	warm, err := b.randomSequences(b.cfg.MinN)
	if err != nil {
		return 0, err
	}
	ws, err := median.New(warm)
	if err != nil {
		return 0, err
	}
	for range b.cfg.Warmup {
		if _, err := ws.Search(ctx, b.cfg.MinK, b.opts...); err != nil {
			return 0, err
		}
	}

	rows := 0
	for n := b.cfg.MinN; n <= b.cfg.MaxN; n++ {
		seqs, err := b.randomSequences(n)
		if err != nil {
			return rows, err
		}
		s, err := median.New(seqs)
		if err != nil {
			return rows, err
		}
		for k := b.cfg.MinK; k <= b.cfg.MaxK; k++ {
			avg, err := b.time(ctx, s, n, k)
			if err != nil {
				return rows, err
			}
			record := []string{strconv.Itoa(n), strconv.Itoa(k), strconv.FormatInt(avg.Milliseconds(), 10)}
			if err := out.Write(record); err != nil {
				return rows, err
			}
			rows++
			b.step(1)
			log.Debugf("n=%d k=%d avg=%s", n, k, utils.FormatDuration(avg))
			if cutoff > 0 && avg > cutoff {
				b.step(b.cfg.MaxK - k)
				break
			}
		}
		out.Flush()
		if err := out.Error(); err != nil {
			return rows, err
		}
	}
	return rows, nil
}

// time averages max(1, budget/(n*k)) searches.
func (b *bench) time(ctx context.Context, s *median.Searcher, n, k int) (time.Duration, error) {
	iters := max(1, b.cfg.Budget/(n*k))
	var total time.Duration
	for range iters {
		res, err := s.Search(ctx, k, b.opts...)
		if err != nil {
			return 0, err
		}
		total += res.Stats.Elapsed
	}
	return total / time.Duration(iters), nil
}

func (b *bench) step(n int) {
	if b.bar != nil && n > 0 {
		b.bar.Add(n)
	}
}
