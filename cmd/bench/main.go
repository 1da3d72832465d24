// Command bench drives the latency harness across all three book backends
// and prints a human-readable report. This is a convenience driver, not a
// golden-output contract.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"matchbook/internal/bench"
	"matchbook/internal/stream"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	nEvents := flag.Int("events", 10000, "number of stream events to replay per backend")
	warmup := flag.Int("warmup", bench.DefaultWarmup, "number of leading events to discard before measuring")
	seed := flag.Int64("seed", 1, "stream RNG seed")
	depthK := flag.Int("depth", 10, "number of price levels to report per side")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	log.Info().
		Int("events", *nEvents).
		Int("warmup", *warmup).
		Int64("seed", *seed).
		Msg("starting backend benchmark pool")

	cfg := bench.RunAllConfig{
		Harness: bench.Config{Warmup: *warmup},
		Stream: stream.Config{
			NEvents: *nEvents,
			Seed:    *seed,
		},
		DepthK: *depthK,
	}

	results := bench.RunAll(ctx, cfg)
	if ctx.Err() != nil {
		log.Warn().Msg("benchmark interrupted")
		os.Exit(1)
	}

	for _, name := range []string{"hash", "sorted", "heap"} {
		r, ok := results[name]
		if !ok {
			continue
		}
		printReport(name, r)
	}

	log.Info().Msg("benchmark complete")
}

func printReport(name string, r bench.Result) {
	fmt.Printf("=== backend: %s ===\n", name)
	fmt.Printf("events:        %d\n", r.Report.EventCount)
	fmt.Printf("throughput:    %.0f events/sec\n", r.Report.Throughput)
	fmt.Printf("trades:        %d\n", len(r.Trades))
	printStage("overall", r.Report.Overall)
	printStage("insert", r.Report.Insert)
	printStage("match", r.Report.Match)
	printStage("trade-emit", r.Report.TradeEmit)
	printStage("cancel", r.Report.Cancel)
	fmt.Printf("depth bids / asks: %v / %v\n", r.Depth.Bids, r.Depth.Asks)
	fmt.Println()
}

func printStage(label string, s bench.StageStats) {
	if s.N == 0 {
		fmt.Printf("  %-10s (no samples)\n", label)
		return
	}
	fmt.Printf("  %-10s n=%-6d p50=%-9.0fns p90=%-9.0fns p99=%-9.0fns max=%.0fns\n",
		label, s.N, s.P50, s.P90, s.P99, s.Max)
}
