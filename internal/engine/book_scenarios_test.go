package engine

import (
	"testing"

	"matchbook/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Literal walkthroughs of the core crossing behaviors, run against every
// backend.

func TestScenario_NoCross(t *testing.T) {
	for name, newBook := range backends() {
		t.Run(name, func(t *testing.T) {
			book := newBook()
			require.NoError(t, book.AddOrder(limitOrder(1, 1, common.Buy, 100, 10)))
			require.NoError(t, book.AddOrder(limitOrder(2, 2, common.Sell, 101, 5)))

			trades := book.Match()
			assert.Empty(t, trades)

			bidPx, bidQty, ok := book.BestBid()
			require.True(t, ok)
			assert.Equal(t, 100.0, bidPx)
			assert.Equal(t, uint64(10), bidQty)

			askPx, askQty, ok := book.BestAsk()
			require.True(t, ok)
			assert.Equal(t, 101.0, askPx)
			assert.Equal(t, uint64(5), askQty)
		})
	}
}

func TestScenario_ExactFill(t *testing.T) {
	for name, newBook := range backends() {
		t.Run(name, func(t *testing.T) {
			book := newBook()
			require.NoError(t, book.AddOrder(limitOrder(1, 1, common.Buy, 100, 10)))
			require.NoError(t, book.AddOrder(limitOrder(2, 2, common.Sell, 100, 10)))

			trades := book.Match()
			require.Len(t, trades, 1)
			assert.Equal(t, common.Trade{Ts: 2, Price: 100, Qty: 10, MakerID: 2, TakerID: 1}, trades[0])

			_, _, bidOk := book.BestBid()
			_, _, askOk := book.BestAsk()
			assert.False(t, bidOk)
			assert.False(t, askOk)

			assert.False(t, book.CancelOrder(1))
			assert.False(t, book.CancelOrder(2))
		})
	}
}

func TestScenario_PartialMaker(t *testing.T) {
	for name, newBook := range backends() {
		t.Run(name, func(t *testing.T) {
			book := newBook()
			require.NoError(t, book.AddOrder(limitOrder(1, 1, common.Buy, 101, 10)))
			require.NoError(t, book.AddOrder(limitOrder(2, 2, common.Sell, 101, 5)))

			trades := book.Match()
			require.Len(t, trades, 1)
			assert.Equal(t, common.Trade{Ts: 2, Price: 101, Qty: 5, MakerID: 2, TakerID: 1}, trades[0])

			bidPx, bidQty, ok := book.BestBid()
			require.True(t, ok)
			assert.Equal(t, 101.0, bidPx)
			assert.Equal(t, uint64(5), bidQty)

			_, _, askOk := book.BestAsk()
			assert.False(t, askOk)
		})
	}
}

func TestScenario_PriceTimePriority(t *testing.T) {
	for name, newBook := range backends() {
		t.Run(name, func(t *testing.T) {
			book := newBook()
			require.NoError(t, book.AddOrder(limitOrder(1, 1.0, common.Sell, 100, 5)))
			require.NoError(t, book.AddOrder(limitOrder(2, 2.0, common.Sell, 100, 7)))
			require.NoError(t, book.AddOrder(limitOrder(3, 3.0, common.Buy, 100, 8)))

			trades := book.Match()
			require.Len(t, trades, 2)
			assert.Equal(t, common.Trade{Ts: 3.0, Price: 100, Qty: 5, MakerID: 1, TakerID: 3}, trades[0])
			assert.Equal(t, common.Trade{Ts: 3.0, Price: 100, Qty: 3, MakerID: 2, TakerID: 3}, trades[1])

			askPx, askQty, ok := book.BestAsk()
			require.True(t, ok)
			assert.Equal(t, 100.0, askPx)
			assert.Equal(t, uint64(4), askQty)

			remaining := book.GetOrdersAtPrice(common.Sell, 100)
			require.Len(t, remaining, 1)
			assert.Equal(t, int64(2), remaining[0].ID)
		})
	}
}

func TestScenario_MarketWalksBook(t *testing.T) {
	for name, newBook := range backends() {
		t.Run(name, func(t *testing.T) {
			book := newBook()
			require.NoError(t, book.AddOrder(limitOrder(1, 1, common.Sell, 100, 5)))
			require.NoError(t, book.AddOrder(limitOrder(2, 2, common.Sell, 101, 3)))

			matcher := NewMatcher(book)
			trades, err := matcher.Submit(marketOrder(3, 3, common.Buy, 6))
			require.NoError(t, err)
			require.Len(t, trades, 2)
			assert.Equal(t, common.Trade{Ts: 3, Price: 100, Qty: 5, MakerID: 1, TakerID: 3}, trades[0])
			assert.Equal(t, common.Trade{Ts: 3, Price: 101, Qty: 1, MakerID: 2, TakerID: 3}, trades[1])

			askPx, askQty, ok := book.BestAsk()
			require.True(t, ok)
			assert.Equal(t, 101.0, askPx)
			assert.Equal(t, uint64(2), askQty)
		})
	}
}

func TestScenario_CancelRemovesFromQueueHead(t *testing.T) {
	for name, newBook := range backends() {
		t.Run(name, func(t *testing.T) {
			book := newBook()
			require.NoError(t, book.AddOrder(limitOrder(1, 1, common.Sell, 100, 5)))
			require.NoError(t, book.AddOrder(limitOrder(2, 2, common.Sell, 100, 5)))

			assert.True(t, book.CancelOrder(1))

			require.NoError(t, book.AddOrder(limitOrder(3, 3, common.Buy, 100, 5)))
			trades := book.Match()
			require.Len(t, trades, 1)
			assert.Equal(t, common.Trade{Ts: 3, Price: 100, Qty: 5, MakerID: 2, TakerID: 3}, trades[0])
		})
	}
}

func TestMarketResidualIsSilentlyDiscarded(t *testing.T) {
	for name, newBook := range backends() {
		t.Run(name, func(t *testing.T) {
			book := newBook()
			require.NoError(t, book.AddOrder(limitOrder(1, 1, common.Sell, 100, 3)))

			matcher := NewMatcher(book)
			trades, err := matcher.Submit(marketOrder(2, 2, common.Buy, 10))
			require.NoError(t, err)
			require.Len(t, trades, 1)
			assert.Equal(t, uint64(3), trades[0].Qty)

			_, _, askOk := book.BestAsk()
			assert.False(t, askOk)
		})
	}
}

func TestAddOrderRejectsMissingOrNaNPrice(t *testing.T) {
	for name, newBook := range backends() {
		t.Run(name, func(t *testing.T) {
			book := newBook()
			noPrice := common.Order{ID: 1, Ts: 1, Side: common.Buy, Type: common.Limit, Qty: 1}
			assert.ErrorIs(t, book.AddOrder(noPrice), common.ErrInvalidOrder)

			nan := common.Order{ID: 2, Ts: 1, Side: common.Buy, Type: common.Limit, Price: px(nanValue()), Qty: 1}
			assert.ErrorIs(t, book.AddOrder(nan), common.ErrInvalidOrder)
		})
	}
}

func TestMarketOrderNeverRests(t *testing.T) {
	for name, newBook := range backends() {
		t.Run(name, func(t *testing.T) {
			book := newBook()
			require.NoError(t, book.AddOrder(marketOrder(1, 1, common.Buy, 5)))
			_, _, ok := book.BestBid()
			assert.False(t, ok)
		})
	}
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}
