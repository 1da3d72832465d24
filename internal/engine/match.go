package engine

import "matchbook/internal/common"

// matchCrossing implements the book-side crossing algorithm. It is written
// once against the Book interface because all three backends
// share identical crossing semantics and differ only in how best_bid/
// best_ask/get_orders_at_price/cancel_order locate a price level — the
// crossing loop itself never needs to know which index a backend uses.
func matchCrossing(b Book) []common.Trade {
	var trades []common.Trade
	for {
		bidPrice, _, bidOk := b.BestBid()
		askPrice, _, askOk := b.BestAsk()
		if !bidOk || !askOk || bidPrice < askPrice {
			return trades
		}

		bidOrders := b.GetOrdersAtPrice(common.Buy, bidPrice)
		askOrders := b.GetOrdersAtPrice(common.Sell, askPrice)
		if len(bidOrders) == 0 || len(askOrders) == 0 {
			// A backend reporting a non-empty aggregate with an empty
			// queue is inconsistent; treat as done rather than loop.
			return trades
		}

		bidOrder := bidOrders[0]
		askOrder := askOrders[0]
		qty := min(bidOrder.Qty, askOrder.Qty)

		ts := bidOrder.Ts
		if askOrder.Ts > ts {
			ts = askOrder.Ts
		}
		trades = append(trades, common.Trade{
			Ts:      ts,
			Price:   askPrice, // trade price is always the resting-ask price
			Qty:     qty,
			MakerID: askOrder.ID,
			TakerID: bidOrder.ID,
		})

		bidOrder.Qty -= qty
		askOrder.Qty -= qty
		if bidOrder.Qty == 0 {
			b.CancelOrder(bidOrder.ID)
		}
		if askOrder.Qty == 0 {
			b.CancelOrder(askOrder.ID)
		}
	}
}
