// Package bench implements the latency harness: a
// single-threaded driver that applies stream events to a matcher/book pair
// and records per-stage nanosecond latencies, plus a concurrent runner that
// fans the same workload out across backend variants (see runner.go).
package bench

import (
	"time"

	"matchbook/internal/common"
	"matchbook/internal/engine"
	"matchbook/internal/stream"
)

// Config parameterizes a harness run. There is no implicit default:
// callers that want the usual warmup of 100 events set Warmup: 100
// explicitly (DefaultWarmup is provided for that).
type Config struct {
	// Warmup is the number of leading events applied and discarded before
	// measurement begins.
	Warmup int
}

// DefaultWarmup is the usual warmup event count.
const DefaultWarmup = 100

// Harness drives a single book/matcher pair with events pulled from a
// stream, one event at a time, on the calling goroutine — the engine
// itself is never touched from more than one goroutine.
type Harness struct {
	book    engine.Book
	matcher *engine.Matcher
	cfg     Config

	overall   []int64
	insert    []int64
	cancel    []int64
	match     []int64
	tradeEmit []int64
	trades    []common.Trade

	eventCount int
	wallStart  time.Time
	wallEnd    time.Time
}

// New wires a harness onto a book backend. The caller supplies the book so
// the same harness code drives every variant (runner.go does exactly
// this).
func New(book engine.Book, cfg Config) *Harness {
	return &Harness{
		book:    book,
		matcher: engine.NewMatcher(book),
		cfg:     cfg,
	}
}

// Run consumes the stream to exhaustion: warmup events are applied and
// discarded, then every subsequent event is timed and recorded. The stream
// is single-pass — both phases read from the same channel.
func (h *Harness) Run(s *stream.SyntheticEventStream) {
	events := s.Events()

	for i := 0; i < h.cfg.Warmup; i++ {
		ev, ok := <-events
		if !ok {
			break
		}
		h.apply(ev)
	}
	// Stage samples taken during warmup are discarded with it.
	h.insert, h.cancel, h.match, h.tradeEmit = nil, nil, nil, nil

	h.wallStart = time.Now()
	for ev := range events {
		t0 := time.Now()
		h.apply(ev)
		h.overall = append(h.overall, time.Since(t0).Nanoseconds())
		h.eventCount++
	}
	h.wallEnd = time.Now()
}

func (h *Harness) apply(ev stream.Event) {
	switch ev.Kind {
	case stream.Add:
		h.applyAdd(ev.Order)
	case stream.Cancel:
		t0 := time.Now()
		h.book.CancelOrder(ev.CancelID)
		h.cancel = append(h.cancel, time.Since(t0).Nanoseconds())
	}
}

func (h *Harness) applyAdd(order common.Order) {
	if order.Type != common.Limit {
		// Market orders are dispatched through the matcher as a single
		// unit -- only LIMIT adds break into insert/match/trade-emit
		// stages, since only that path makes two separate book calls.
		trades, _ := h.matcher.Submit(order)
		h.trades = append(h.trades, trades...)
		return
	}

	t0 := time.Now()
	if err := h.book.AddOrder(order); err != nil {
		return
	}
	h.insert = append(h.insert, time.Since(t0).Nanoseconds())

	t1 := time.Now()
	trades := h.book.Match()
	h.match = append(h.match, time.Since(t1).Nanoseconds())

	for _, tr := range trades {
		t2 := time.Now()
		_ = common.Trade{Ts: tr.Ts, Price: tr.Price, Qty: tr.Qty, MakerID: tr.MakerID, TakerID: tr.TakerID}
		h.tradeEmit = append(h.tradeEmit, time.Since(t2).Nanoseconds())
	}
	h.trades = append(h.trades, trades...)
}

// Report is the harness's §4.4 "Reporting" phase output.
type Report struct {
	Overall    StageStats
	Insert     StageStats
	Cancel     StageStats
	Match      StageStats
	TradeEmit  StageStats
	Throughput float64 // events/sec
	EventCount int
}

// Trades returns every trade emitted over the course of Run, in emission
// order.
func (h *Harness) Trades() []common.Trade {
	return h.trades
}

// Stats computes the report once Run has completed.
func (h *Harness) Stats() Report {
	overall, _ := computeStats(h.overall)
	insert, _ := computeStats(h.insert)
	cancel, _ := computeStats(h.cancel)
	match, _ := computeStats(h.match)
	tradeEmit, _ := computeStats(h.tradeEmit)

	var throughput float64
	if wall := h.wallEnd.Sub(h.wallStart).Seconds(); wall > 0 {
		throughput = float64(h.eventCount) / wall
	}

	return Report{
		Overall:    overall,
		Insert:     insert,
		Cancel:     cancel,
		Match:      match,
		TradeEmit:  tradeEmit,
		Throughput: throughput,
		EventCount: h.eventCount,
	}
}
