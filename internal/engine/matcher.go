package engine

import "matchbook/internal/common"

// Matcher dispatches an incoming order by type and is written entirely
// against the Book interface (Design Note: "do not hard-code the
// hash-table layout into the matcher").
type Matcher struct {
	book Book
}

// NewMatcher wires a matcher onto a book backend.
func NewMatcher(book Book) *Matcher {
	return &Matcher{book: book}
}

// Submit is the engine's public façade: submit(order) -> trades.
func (m *Matcher) Submit(order common.Order) ([]common.Trade, error) {
	switch order.Type {
	case common.Limit:
		if err := m.book.AddOrder(order); err != nil {
			return nil, err
		}
		return m.book.Match(), nil
	case common.Market:
		return m.matchMarket(order), nil
	default:
		return nil, nil
	}
}

// matchMarket walks the opposite side from best price outward, filling
// from the head of each level's queue until the incoming quantity is
// exhausted or the book side runs out — at which point the residual is
// silently discarded. No partial-fill reporting is invented for the
// discarded remainder.
func (m *Matcher) matchMarket(order common.Order) []common.Trade {
	var trades []common.Trade
	remaining := order.Qty
	oppositeSide := common.Sell
	if order.Side == common.Sell {
		oppositeSide = common.Buy
	}

	for _, lv := range m.book.Levels(oppositeSide) {
		if remaining == 0 {
			break
		}
		for remaining > 0 {
			resting := m.book.GetOrdersAtPrice(oppositeSide, lv.Price)
			if len(resting) == 0 {
				break
			}
			head := resting[0]
			qty := min(remaining, head.Qty)

			ts := order.Ts
			if head.Ts > ts {
				ts = head.Ts
			}
			trades = append(trades, common.Trade{
				Ts:      ts,
				Price:   lv.Price,
				Qty:     qty,
				MakerID: head.ID,
				TakerID: order.ID,
			})

			head.Qty -= qty
			remaining -= qty
			if head.Qty == 0 {
				m.book.CancelOrder(head.ID)
			}
		}
	}
	return trades
}
