package common

import "fmt"

// Trade records a single cross between a resting maker and an incoming (or
// crossing) taker. For a book cross (Book.Match) Price is the resting-ask
// price; for a market order it is the price of the opposite-side level being
// swept (see engine package).
type Trade struct {
	Ts      float64
	Price   float64
	Qty     uint64
	MakerID int64
	TakerID int64
}

func (t Trade) String() string {
	return fmt.Sprintf(
		"Trade{ts=%.6f price=%.2f qty=%d maker=%d taker=%d}",
		t.Ts, t.Price, t.Qty, t.MakerID, t.TakerID,
	)
}
