// Package engine implements the order book backends and the matcher that
// dispatches orders onto them.
package engine

import "matchbook/internal/common"

// PriceLevel is an aggregated depth entry: a price and the total remaining
// quantity resting at it.
type PriceLevel struct {
	Price float64
	Qty   uint64
}

// Depth is the L2 snapshot returned by Book.Depth: bids sorted descending
// by price, asks ascending, each truncated to k levels.
type Depth struct {
	Bids []PriceLevel
	Asks []PriceLevel
}

// Book is the capability set every backend implements identically in
// semantics, differing only in the index structure behind price levels.
// The matcher is written entirely against this interface and never
// assumes a particular backend.
type Book interface {
	// AddOrder inserts a LIMIT order at its price level. It fails with
	// common.ErrInvalidOrder if the order has no price or a NaN price.
	// MARKET orders are silently ignored (they never rest).
	AddOrder(order common.Order) error

	// CancelOrder removes the resting order with the given id. It returns
	// false if the id is unknown, already consumed, or not a resting
	// limit order. Idempotent.
	CancelOrder(id int64) bool

	// BestBid returns the highest bid price and its aggregate quantity.
	BestBid() (price float64, qty uint64, ok bool)

	// BestAsk returns the lowest ask price and its aggregate quantity.
	BestAsk() (price float64, qty uint64, ok bool)

	// GetOrdersAtPrice returns the FIFO queue resting at a price, in
	// arrival order. The returned orders alias the book's own resting
	// state — the matcher relies on this to mutate Qty in place during a
	// market sweep, but any other caller should treat the result as
	// read-only.
	GetOrdersAtPrice(side common.Side, price float64) []*common.Order

	// Depth returns the top k levels per side, aggregated.
	Depth(k int) Depth

	// Levels returns every non-empty price level on one side, best price
	// first, with no truncation. Unlike Depth, the result is not bounded
	// by a caller-supplied k, so the matcher's market sweep (which must
	// walk as many levels as the incoming quantity demands) doesn't need
	// to fake an unbounded request through Depth with an oversized k.
	Levels(side common.Side) []PriceLevel

	// Match continuously crosses the book while best bid >= best ask,
	// emitting one Trade per crossing pair under price-time priority.
	Match() []common.Trade
}
