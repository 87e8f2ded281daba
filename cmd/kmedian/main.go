// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the kmedian search tool, its interactive CLI and its
IPC server.

kmedian finds a median string of a set of sequences: a word of length k whose
summed best-alignment Hamming distance to all sequences is minimal. The search
is an exact branch-and-bound over the tree of partial words, pruned with the
partial distance of each prefix and visited in the order given by a trie of
the observed substrings.

# Usage

Find the median 8-mer of a FASTA file:

	kmedian -f reads.fa -k 8

Search on four workers with a time budget:

	kmedian -f reads.fa.gz -k 12 -workers 4 -timeout 30s

Report how a word aligns to every sequence:

	kmedian -f reads.fa -q ACGTACGT
	kmedian -f reads.fa -qs ACGTACGT

Explore interactively, or serve msgpack requests on stdin/stdout:

	kmedian -f reads.fa -c
	kmedian -f reads.fa -s

Input may be plain FASTA or compressed with gzip (.gz), zstd (.zst) or lz4
(.lz4). Relative names are looked up in the working directory, next to the
executable and in the data dir under the config directory.

# Configuration

Defaults come from a TOML file created on first run in the user config
directory:

	[search]
	k = 10
	order = "trie"
	workers = 1

	[input]
	alphabet = "ACGT"
	skip_invalid = true

Flags given on the command line override the file.

# Command Line Flags

	-f string      input FASTA file
	-k int         median length
	-q string      print the report of a word instead of searching
	-qs string     print only "<word>:<distance>" for this word
	-order string  visit order, "alphabet" or "trie"
	-depth int     trie depth for the trie order (0 means k)
	-workers int   parallel search workers
	-timeout dur   search time budget (0 means none)
	-alphabet str  symbols of the alphabet
	-config path   config file
	-c             interactive mode
	-s             IPC server mode
	-d             debug logging
	-version       show the version
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bastiangx/kmedian/internal/cli"
	"github.com/bastiangx/kmedian/internal/logger"
	"github.com/bastiangx/kmedian/internal/utils"
	"github.com/bastiangx/kmedian/pkg/config"
	"github.com/bastiangx/kmedian/pkg/fasta"
	"github.com/bastiangx/kmedian/pkg/median"
	"github.com/bastiangx/kmedian/pkg/motif"
	"github.com/bastiangx/kmedian/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "kmedian"
	gh      = "https://github.com/bastiangx/kmedian"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires flags, config and input together and hands over to a mode.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	inputFile := flag.String("f", "", "Input FASTA file (.fa, .fa.gz, .fa.zst, .fa.lz4)")
	k := flag.Int("k", defaults.Search.K, "Length of the median word")
	query := flag.String("q", "", "Report how this word aligns instead of searching")
	queryShort := flag.String("qs", "", "Print only <word>:<distance> for this word")
	order := flag.String("order", defaults.Search.Order, "Visit order: alphabet or trie")
	depth := flag.Int("depth", defaults.Search.TrieDepth, "Trie depth for the trie order (0 means k)")
	workers := flag.Int("workers", defaults.Search.Workers, "Number of parallel search workers")
	timeout := flag.Duration("timeout", 0, "Search time budget, e.g. 30s (0 means none)")
	alphabet := flag.String("alphabet", defaults.Input.Alphabet, "Symbols of the sequence alphabet")
	configFile := flag.String("config", "", "Path to a custom config.toml")
	cliMode := flag.Bool("c", false, "Run interactive CLI")
	serverMode := flag.Bool("s", false, "Run msgpack IPC server on stdin/stdout")
	debugMode := flag.Bool("d", false, "Toggle debug mode")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}
	logger.SetupGlobal(*debugMode)

	cfg, cfgPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(cfgPath))

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "k":
			cfg.Search.K = *k
		case "order":
			cfg.Search.Order = *order
		case "depth":
			cfg.Search.TrieDepth = *depth
		case "workers":
			cfg.Search.Workers = *workers
		case "timeout":
			cfg.Search.TimeLimitMs = int(timeout.Milliseconds())
		case "alphabet":
			cfg.Input.Alphabet = *alphabet
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	if *inputFile == "" {
		log.Error("No input file, use -f")
		flag.Usage()
		os.Exit(1)
	}
	searcher, err := loadSearcher(cfg, *inputFile)
	if err != nil {
		log.Fatalf("Failed to load sequences: %v", err)
	}

	opts, err := cfg.SearchOptions()
	if err != nil {
		log.Fatalf("Invalid search options: %v", err)
	}

	switch {
	case *cliMode:
		log.SetReportTimestamp(false)
		h := cli.NewInputHandler(searcher, opts, cfg.Search.K, cfg.SearchTimeout(), cfg.CLI.DefaultLimit)
		if err := h.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
	case *serverMode:
		log.Debug("spawning IPC")
		srv := server.NewServer(searcher, cfg)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case *query != "" || *queryShort != "":
		word, short := reportQuery(*query, *queryShort)
		if err := runReport(searcher, word, short); err != nil {
			log.Fatalf("Report failed: %v", err)
		}
	default:
		if err := runSearch(searcher, cfg, opts); err != nil {
			log.Fatalf("Search failed: %v", err)
		}
	}
}

func loadSearcher(cfg *config.Config, name string) (*median.Searcher, error) {
	alpha, err := motif.NewAlphabet(cfg.Input.Alphabet)
	if err != nil {
		return nil, err
	}
	pr, err := utils.NewPathResolver(AppName)
	if err != nil {
		return nil, err
	}
	path, err := pr.ResolveInput(name)
	if err != nil {
		return nil, err
	}

	res, err := fasta.Load(path, alpha,
		fasta.WithStrict(!cfg.Input.SkipInvalid),
		fasta.WithUpperCase(cfg.Input.UpperCase))
	if err != nil {
		return nil, err
	}
	if len(res.Skipped) > 0 {
		log.Warnf("Skipped %d of %d records in %s", len(res.Skipped), res.Records, path)
	}
	log.Debugf("Loaded %d sequences from %s", len(res.Sequences), path)
	return median.New(res.Sequences)
}

// reportQuery picks the word to report; -qs wins over -q.
func reportQuery(query, queryShort string) (string, bool) {
	if queryShort != "" {
		if query != "" && query != queryShort {
			log.Warnf("Both -q %s and -qs %s given, reporting %s", query, queryShort, queryShort)
		}
		return queryShort, true
	}
	return query, false
}

func runReport(searcher *median.Searcher, query string, short bool) error {
	w, err := motif.ParseWord(searcher.Alphabet(), query)
	if err != nil {
		return err
	}
	r, err := searcher.Report(w)
	if err != nil {
		return err
	}
	if short {
		fmt.Println(r.Short())
		return nil
	}
	_, err = r.WriteTo(os.Stdout)
	return err
}

func runSearch(searcher *median.Searcher, cfg *config.Config, opts []median.Option) error {
	ctx := context.Background()
	if d := cfg.SearchTimeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	log.SetLevel(min(log.GetLevel(), log.InfoLevel))
	log.Infof("Start: %s", time.Now().Format(time.DateTime))
	res, err := searcher.Search(ctx, cfg.Search.K, opts...)
	log.Infof("End: %s (%s, %s nodes)", time.Now().Format(time.DateTime),
		utils.FormatDuration(res.Stats.Elapsed), utils.FormatCount(res.Stats.Nodes))

	if errors.Is(err, context.DeadlineExceeded) {
		log.Warnf("Time budget exhausted, best so far %s", res.Distance)
		return err
	}
	if err != nil {
		return err
	}
	fmt.Println(res.Distance)
	return nil
}

// printVersion shows a styled version banner.
func printVersion() {
	l := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ kmedian ] Exact median strings by branch and bound")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}
