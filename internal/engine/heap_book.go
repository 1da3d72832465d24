package engine

import (
	"container/heap"

	"matchbook/internal/common"
)

// priceHeap is a slice of prices implementing heap.Interface, parameterized
// by a less function so the same type serves as both the bid max-heap and
// the ask min-heap.
type priceHeap struct {
	prices []float64
	less   func(a, b float64) bool
}

func (h *priceHeap) Len() int { return len(h.prices) }
func (h *priceHeap) Less(i, j int) bool {
	return h.less(h.prices[i], h.prices[j])
}
func (h *priceHeap) Swap(i, j int) { h.prices[i], h.prices[j] = h.prices[j], h.prices[i] }
func (h *priceHeap) Push(x any)    { h.prices = append(h.prices, x.(float64)) }
func (h *priceHeap) Pop() any {
	old := h.prices
	n := len(old)
	x := old[n-1]
	h.prices = old[:n-1]
	return x
}

// HeapBook keeps price levels in hash maps, as HashBook does, but tracks
// the frontier of each side with a heap of prices so best bid/ask are
// logarithmic amortized instead of a linear key scan. Deletion from the
// middle of a heap isn't supported, so cancellations and empty fills leave
// stale entries behind; every best-price call pops them lazily until the
// top names a price that still has a non-empty level.
type HeapBook struct {
	bids    map[float64]*level
	asks    map[float64]*level
	bidHeap *priceHeap
	askHeap *priceHeap
	ids     map[int64]locator
}

// NewHeapBook constructs an empty two-sided book.
func NewHeapBook() *HeapBook {
	bh := &priceHeap{less: func(a, b float64) bool { return a > b }} // max-heap
	ah := &priceHeap{less: func(a, b float64) bool { return a < b }} // min-heap
	heap.Init(bh)
	heap.Init(ah)
	return &HeapBook{
		bids:    make(map[float64]*level),
		asks:    make(map[float64]*level),
		bidHeap: bh,
		askHeap: ah,
		ids:     make(map[int64]locator),
	}
}

func (b *HeapBook) ladder(side common.Side) map[float64]*level {
	if side == common.Buy {
		return b.bids
	}
	return b.asks
}

func (b *HeapBook) sideHeap(side common.Side) *priceHeap {
	if side == common.Buy {
		return b.bidHeap
	}
	return b.askHeap
}

func (b *HeapBook) AddOrder(order common.Order) error {
	if order.Type == common.Market {
		return nil
	}
	if err := validateOrder(order); err != nil {
		return err
	}
	price, _ := order.LimitPrice()
	ladder := b.ladder(order.Side)
	lvl, exists := ladder[price]
	if !exists {
		lvl = newLevel(price)
		ladder[price] = lvl
		// Only push a fresh price; one already in the map is already
		// represented there.
		heap.Push(b.sideHeap(order.Side), price)
	}
	stored := order
	lvl.push(&stored)
	b.ids[order.ID] = locator{side: order.Side, price: price}
	return nil
}

func (b *HeapBook) CancelOrder(id int64) bool {
	loc, ok := b.ids[id]
	if !ok {
		return false
	}
	ladder := b.ladder(loc.side)
	lvl, ok := ladder[loc.price]
	if !ok {
		delete(b.ids, id)
		return false
	}
	if !lvl.removeByID(id) {
		return false
	}
	delete(b.ids, id)
	if lvl.empty() {
		// Lazy cleanup: the price stays in the heap until a best_* call
		// pops it as stale. Removing it from the map is enough for
		// correctness since every peek re-checks the map.
		delete(ladder, loc.price)
	}
	return true
}

// cleanBest pops stale heap tops (prices no longer keyed in the ladder map,
// or keyed but empty) until the top is live, then returns it.
func cleanBest(h *priceHeap, ladder map[float64]*level) (float64, uint64, bool) {
	for h.Len() > 0 {
		price := h.prices[0]
		lvl, ok := ladder[price]
		if ok && !lvl.empty() {
			return price, lvl.aggregateQty(), true
		}
		heap.Pop(h)
	}
	return 0, 0, false
}

func (b *HeapBook) BestBid() (float64, uint64, bool) {
	return cleanBest(b.bidHeap, b.bids)
}

func (b *HeapBook) BestAsk() (float64, uint64, bool) {
	return cleanBest(b.askHeap, b.asks)
}

func (b *HeapBook) GetOrdersAtPrice(side common.Side, price float64) []*common.Order {
	lvl, ok := b.ladder(side)[price]
	if !ok {
		return nil
	}
	out := make([]*common.Order, len(lvl.orders))
	copy(out, lvl.orders)
	return out
}

func (b *HeapBook) Depth(k int) Depth {
	return Depth{
		Bids: topLevels(b.bids, k, func(a, c float64) bool { return a > c }),
		Asks: topLevels(b.asks, k, func(a, c float64) bool { return a < c }),
	}
}

func (b *HeapBook) Levels(side common.Side) []PriceLevel {
	if side == common.Buy {
		return topLevels(b.bids, len(b.bids), func(a, c float64) bool { return a > c })
	}
	return topLevels(b.asks, len(b.asks), func(a, c float64) bool { return a < c })
}

func (b *HeapBook) Match() []common.Trade {
	return matchCrossing(b)
}
