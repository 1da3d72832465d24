package engine

import "matchbook/internal/common"

// backends lists every Book constructor under test; every property and
// scenario test below runs once per backend.
func backends() map[string]func() Book {
	return map[string]func() Book{
		"hash":   func() Book { return NewHashBook() },
		"sorted": func() Book { return NewSortedBook() },
		"heap":   func() Book { return NewHeapBook() },
	}
}

func px(p float64) *float64 { return &p }

func limitOrder(id int64, ts float64, side common.Side, price float64, qty uint64) common.Order {
	return common.Order{ID: id, Ts: ts, Side: side, Type: common.Limit, Price: px(price), Qty: qty}
}

func marketOrder(id int64, ts float64, side common.Side, qty uint64) common.Order {
	return common.Order{ID: id, Ts: ts, Side: side, Type: common.Market, Qty: qty}
}

// restingQty looks up the current remaining quantity of a still-resting
// order by id, or 0 if it isn't (or is no longer) in the queue at price.
func restingQty(book Book, side common.Side, price float64, id int64) uint64 {
	for _, o := range book.GetOrdersAtPrice(side, price) {
		if o.ID == id {
			return o.Qty
		}
	}
	return 0
}
