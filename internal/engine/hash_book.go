package engine

import "matchbook/internal/common"

// HashBook is the baseline backend: unordered maps from price to FIFO
// queue. Best-bid/best-ask linearly scan keys — acceptable for small
// ladders, and the reference everything else is benchmarked against.
type HashBook struct {
	bids map[float64]*level
	asks map[float64]*level
	ids  map[int64]locator
}

// NewHashBook constructs an empty two-sided book.
func NewHashBook() *HashBook {
	return &HashBook{
		bids: make(map[float64]*level),
		asks: make(map[float64]*level),
		ids:  make(map[int64]locator),
	}
}

func (b *HashBook) ladder(side common.Side) map[float64]*level {
	if side == common.Buy {
		return b.bids
	}
	return b.asks
}

func (b *HashBook) AddOrder(order common.Order) error {
	if order.Type == common.Market {
		return nil
	}
	if err := validateOrder(order); err != nil {
		return err
	}
	price, _ := order.LimitPrice()
	ladder := b.ladder(order.Side)
	lvl, ok := ladder[price]
	if !ok {
		lvl = newLevel(price)
		ladder[price] = lvl
	}
	stored := order
	lvl.push(&stored)
	b.ids[order.ID] = locator{side: order.Side, price: price}
	return nil
}

func (b *HashBook) CancelOrder(id int64) bool {
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
		delete(ladder, loc.price)
	}
	return true
}

func bestOf(ladder map[float64]*level, better func(a, b float64) bool) (float64, uint64, bool) {
	var (
		found     bool
		bestPrice float64
	)
	for price, lvl := range ladder {
		if lvl.empty() {
			continue
		}
		if !found || better(price, bestPrice) {
			bestPrice = price
			found = true
		}
	}
	if !found {
		return 0, 0, false
	}
	return bestPrice, ladder[bestPrice].aggregateQty(), true
}

func (b *HashBook) BestBid() (float64, uint64, bool) {
	return bestOf(b.bids, func(a, c float64) bool { return a > c })
}

func (b *HashBook) BestAsk() (float64, uint64, bool) {
	return bestOf(b.asks, func(a, c float64) bool { return a < c })
}

func (b *HashBook) GetOrdersAtPrice(side common.Side, price float64) []*common.Order {
	lvl, ok := b.ladder(side)[price]
	if !ok {
		return nil
	}
	out := make([]*common.Order, len(lvl.orders))
	copy(out, lvl.orders)
	return out
}

func (b *HashBook) Depth(k int) Depth {
	return Depth{
		Bids: topLevels(b.bids, k, func(a, c float64) bool { return a > c }),
		Asks: topLevels(b.asks, k, func(a, c float64) bool { return a < c }),
	}
}

func (b *HashBook) Levels(side common.Side) []PriceLevel {
	if side == common.Buy {
		return topLevels(b.bids, len(b.bids), func(a, c float64) bool { return a > c })
	}
	return topLevels(b.asks, len(b.asks), func(a, c float64) bool { return a < c })
}

// topLevels sorts the ladder's keys by the given order and returns the
// first k as aggregated PriceLevels.
func topLevels(ladder map[float64]*level, k int, less func(a, b float64) bool) []PriceLevel {
	prices := make([]float64, 0, len(ladder))
	for p, lvl := range ladder {
		if !lvl.empty() {
			prices = append(prices, p)
		}
	}
	sortFloats(prices, less)
	if k < len(prices) {
		prices = prices[:k]
	}
	out := make([]PriceLevel, len(prices))
	for i, p := range prices {
		out[i] = PriceLevel{Price: p, Qty: ladder[p].aggregateQty()}
	}
	return out
}

func (b *HashBook) Match() []common.Trade {
	return matchCrossing(b)
}
