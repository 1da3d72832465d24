package bench

import (
	"context"

	"matchbook/internal/common"
	"matchbook/internal/engine"
	"matchbook/internal/stream"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

// backendResult is one backend's full benchmark output: its latency
// report plus the trade stream and final depth snapshot, so callers can
// compare outputs across backends for the same workload.
type backendResult struct {
	Name   string
	Report Report
	Trades []common.Trade
	Depth  engine.Depth
}

// RunAllConfig parameterizes a full multi-backend benchmark pass.
type RunAllConfig struct {
	Harness Config
	Stream  stream.Config
	DepthK  int
}

// RunAll fans the identical workload (same stream seed, replayed once per
// backend) out across all three Book backends concurrently. Each matcher/
// book instance stays single-threaded-owned: every worker gets its own
// fresh Book and its own fresh stream built from the same config and never
// shares either with another goroutine — each backend here is simply
// treated as an independent per-symbol matcher.
//
// Supervised by gopkg.in/tomb.v2, same as the pool in pool.go.
func RunAll(ctx context.Context, cfg RunAllConfig) map[string]Result {
	backends := map[string]func() engine.Book{
		"hash":   func() engine.Book { return engine.NewHashBook() },
		"sorted": func() engine.Book { return engine.NewSortedBook() },
		"heap":   func() engine.Book { return engine.NewHeapBook() },
	}
	if cfg.DepthK == 0 {
		cfg.DepthK = 10
	}

	jobs := make([]backendJob, 0, len(backends))
	for name, newBook := range backends {
		name, newBook := name, newBook
		jobs = append(jobs, backendJob{
			name: name,
			run: func() backendResult {
				book := newBook()
				h := New(book, cfg.Harness)
				h.Run(stream.New(cfg.Stream))
				return backendResult{
					Name:   name,
					Report: h.Stats(),
					Trades: h.Trades(),
					Depth:  book.Depth(cfg.DepthK),
				}
			},
		})
	}

	t, _ := tomb.WithContext(ctx)
	pool := newJobPool(len(jobs), jobs)
	results := pool.run(t)
	if err := t.Wait(); err != nil {
		log.Error().Err(err).Msg("backend benchmark pool exited with error")
	}

	out := make(map[string]Result, len(results))
	for _, r := range results {
		out[r.Name] = Result{Report: r.Report, Trades: r.Trades, Depth: r.Depth}
	}
	return out
}

// Result is the public per-backend outcome of RunAll.
type Result struct {
	Report Report
	Trades []common.Trade
	Depth  engine.Depth
}
