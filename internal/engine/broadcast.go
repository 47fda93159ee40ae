package engine

import (
	"sync"
	"time"

	"crypto-portfolio-go/internal/portfolio"
)

// TickSnapshot is the published outcome of one evaluation pass.
type TickSnapshot struct {
	At        time.Time                  `json:"at"`
	Prices    map[string]float64         `json:"prices"`
	Valuation portfolio.ValuationReport  `json:"valuation"`
	Triggered []portfolio.TriggeredAlert `json:"triggered,omitempty"`
	Actions   []portfolio.ProposedAction `json:"actions,omitempty"`
}

// Broadcaster fans tick snapshots out to subscribers over channels. Publish
// never blocks: a subscriber that is not keeping up misses ticks rather than
// stalling the engine loop.
type Broadcaster struct {
	mu   sync.Mutex
	subs []chan TickSnapshot
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe registers a new subscriber and returns its channel.
func (b *Broadcaster) Subscribe() <-chan TickSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan TickSnapshot, 1)
	b.subs = append(b.subs, ch)
	return ch
}

// Publish delivers a snapshot to every subscriber that has room for it.
func (b *Broadcaster) Publish(snap TickSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- snap:
		default: // subscriber is behind, drop this tick for it
		}
	}
}
