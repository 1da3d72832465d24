package engine

import (
	"matchbook/internal/common"

	"github.com/tidwall/btree"
)

// ladderTree is a price-ordered index of levels for one side, keyed by a
// side-specific comparator.
type ladderTree = btree.BTreeG[*level]

// SortedBook keeps each side in a tidwall/btree ordered by price, so
// insert/cancel/best-price lookups are all logarithmic in the number of
// distinct price levels rather than linear in the hash backend's key scan.
type SortedBook struct {
	bids *ladderTree
	asks *ladderTree
	ids  map[int64]locator
}

// NewSortedBook constructs an empty two-sided book. Bids are ordered with
// the highest price first, asks with the lowest price first, so Min() on
// either tree is always that side's best price.
func NewSortedBook() *SortedBook {
	bids := btree.NewBTreeG(func(a, b *level) bool { return a.price > b.price })
	asks := btree.NewBTreeG(func(a, b *level) bool { return a.price < b.price })
	return &SortedBook{bids: bids, asks: asks, ids: make(map[int64]locator)}
}

func (b *SortedBook) ladder(side common.Side) *ladderTree {
	if side == common.Buy {
		return b.bids
	}
	return b.asks
}

func (b *SortedBook) AddOrder(order common.Order) error {
	if order.Type == common.Market {
		return nil
	}
	if err := validateOrder(order); err != nil {
		return err
	}
	price, _ := order.LimitPrice()
	ladder := b.ladder(order.Side)
	stored := order

	probe := &level{price: price}
	if lvl, ok := ladder.GetMut(probe); ok {
		lvl.push(&stored)
	} else {
		lvl = newLevel(price)
		lvl.push(&stored)
		ladder.Set(lvl)
	}
	b.ids[order.ID] = locator{side: order.Side, price: price}
	return nil
}

func (b *SortedBook) CancelOrder(id int64) bool {
	loc, ok := b.ids[id]
	if !ok {
		return false
	}
	ladder := b.ladder(loc.side)
	lvl, ok := ladder.GetMut(&level{price: loc.price})
	if !ok {
		delete(b.ids, id)
		return false
	}
	if !lvl.removeByID(id) {
		return false
	}
	delete(b.ids, id)
	if lvl.empty() {
		ladder.Delete(&level{price: loc.price})
	}
	return true
}

func (b *SortedBook) BestBid() (float64, uint64, bool) {
	lvl, ok := b.bids.Min()
	if !ok {
		return 0, 0, false
	}
	return lvl.price, lvl.aggregateQty(), true
}

func (b *SortedBook) BestAsk() (float64, uint64, bool) {
	lvl, ok := b.asks.Min()
	if !ok {
		return 0, 0, false
	}
	return lvl.price, lvl.aggregateQty(), true
}

func (b *SortedBook) GetOrdersAtPrice(side common.Side, price float64) []*common.Order {
	lvl, ok := b.ladder(side).Get(&level{price: price})
	if !ok {
		return nil
	}
	out := make([]*common.Order, len(lvl.orders))
	copy(out, lvl.orders)
	return out
}

func (b *SortedBook) Depth(k int) Depth {
	return Depth{
		Bids: scanLevels(b.bids, k),
		Asks: scanLevels(b.asks, k),
	}
}

func (b *SortedBook) Levels(side common.Side) []PriceLevel {
	return allLevels(b.ladder(side))
}

// scanLevels walks a ladder tree in its own sort order (already best-first
// for both sides, by construction of the two comparators above) and
// collects up to k aggregated levels. Capacity is never sized off k
// directly -- a caller asking for an oversized k (there is no such caller
// left, but Depth is a public method) must not translate into an
// oversized allocation.
func scanLevels(tree *ladderTree, k int) []PriceLevel {
	out := []PriceLevel{}
	if k <= 0 {
		return out
	}
	tree.Scan(func(lvl *level) bool {
		if lvl.empty() {
			return true
		}
		out = append(out, PriceLevel{Price: lvl.price, Qty: lvl.aggregateQty()})
		return len(out) < k
	})
	return out
}

// allLevels walks a ladder tree to completion with no truncation, for
// Levels -- the matcher's market sweep needs every level, not a
// caller-chosen top-k.
func allLevels(tree *ladderTree) []PriceLevel {
	var out []PriceLevel
	tree.Scan(func(lvl *level) bool {
		if !lvl.empty() {
			out = append(out, PriceLevel{Price: lvl.price, Qty: lvl.aggregateQty()})
		}
		return true
	})
	return out
}

func (b *SortedBook) Match() []common.Trade {
	return matchCrossing(b)
}
