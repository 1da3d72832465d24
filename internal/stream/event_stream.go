// Package stream implements the synthetic event generator collaborator
// described by the Event schema it emits below.
package stream

import (
	"math"
	"math/rand"

	"matchbook/internal/common"
	"github.com/google/uuid"
)

// Kind tags a stream event.
type Kind int

const (
	Add Kind = iota
	Cancel
)

// Event is the stream's wire-free schema: ('add', Order) or
// ('cancel', order_id).
type Event struct {
	Kind     Kind
	Order    common.Order
	CancelID int64
}

// Config parameterizes the stream; zero-value fields fall back to the
// defaults below.
type Config struct {
	NEvents    int
	MidStart   float64
	Drift      float64
	Sigma      float64
	CancelProb float64
	Seed       int64
	NTraders   int
}

func (c Config) withDefaults() Config {
	if c.NEvents == 0 {
		c.NEvents = 10000
	}
	if c.MidStart == 0 {
		c.MidStart = 100.0
	}
	if c.Sigma == 0 {
		c.Sigma = 0.01
	}
	if c.CancelProb == 0 {
		c.CancelProb = 0.1
	}
	if c.NTraders == 0 {
		c.NTraders = 9
	}
	return c
}

// SyntheticEventStream produces a finite, ordered, reproducible (given a
// seed) sequence of add/cancel events: a reproducible exponential-arrival,
// Gaussian-drift, log-normal-quantity generator; trader identity is minted
// with google/uuid once per roster slot.
type SyntheticEventStream struct {
	cfg    Config
	rng    *rand.Rand
	mid    float64
	clock  float64
	nextID int64
	active []common.Order
	owners []string
}

// New constructs a stream ready for a single pass over cfg.NEvents events.
func New(cfg Config) *SyntheticEventStream {
	cfg = cfg.withDefaults()
	s := &SyntheticEventStream{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		mid:    cfg.MidStart,
		nextID: 1,
	}
	s.owners = make([]string, cfg.NTraders)
	for i := range s.owners {
		// Derived from the seeded rng, not uuid.New()'s crypto-random
		// default, so the whole event sequence -- owners included -- is
		// reproducible given a seed.
		id, err := uuid.NewRandomFromReader(s.rng)
		if err != nil {
			id = uuid.New()
		}
		s.owners[i] = id.String()
	}
	return s
}

// Events returns a channel that emits exactly cfg.NEvents events and then
// closes. The stream is single-pass: a harness that wants a warmup phase
// followed by measurement reads from the same channel continuously.
func (s *SyntheticEventStream) Events() <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for i := 0; i < s.cfg.NEvents; i++ {
			out <- s.next()
		}
	}()
	return out
}

func (s *SyntheticEventStream) next() Event {
	dt := s.rng.ExpFloat64()
	s.mid += s.cfg.Drift + s.rng.NormFloat64()*s.cfg.Sigma
	// Accumulate inter-arrival gaps into a running clock so ts is
	// strictly increasing (the arrival gap alone is not a timestamp).
	s.clock += dt
	ts := s.clock

	if len(s.active) > 0 && s.rng.Float64() < s.cfg.CancelProb {
		idx := s.rng.Intn(len(s.active))
		id := s.active[idx].ID
		s.active = append(s.active[:idx], s.active[idx+1:]...)
		return Event{Kind: Cancel, CancelID: id}
	}

	side := common.Buy
	if s.rng.Float64() >= 0.5 {
		side = common.Sell
	}
	orderType := common.Limit
	if s.rng.Float64() >= 0.9 {
		orderType = common.Market
	}

	var price *float64
	if orderType == common.Limit {
		sign := 1.0
		if side == common.Sell {
			sign = -1.0
		}
		p := s.mid + s.rng.NormFloat64()*0.05*sign
		price = &p
	}

	// Log-normal quantity: exponentiate a normal sample, matching
	// numpy.random.Generator.lognormal(mean=1.5, sigma=0.5).
	qty := uint64(math.Exp(1.5 + s.rng.NormFloat64()*0.5))
	if qty == 0 {
		qty = 1
	}

	order := common.Order{
		ID:    s.nextID,
		Ts:    ts,
		Side:  side,
		Type:  orderType,
		Price: price,
		Qty:   qty,
		Owner: s.owners[s.rng.Intn(len(s.owners))],
	}
	s.nextID++
	s.active = append(s.active, order)
	return Event{Kind: Add, Order: order}
}
