package portfolio

import (
	"fmt"
	"time"
)

// Side is the direction of a transaction.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Transaction is a single historical buy or sell event. Transactions are
// immutable once recorded; the ledger only ever appends to its history.
type Transaction struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Side      Side      `json:"side"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	Fees      float64   `json:"fees"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

// TotalValue is the quote-currency amount exchanged, excluding fees.
func (t Transaction) TotalValue() float64 {
	return t.Quantity * t.Price
}

// Validate checks the structural invariants of a transaction before it may
// be recorded.
func (t Transaction) Validate() error {
	if t.Symbol == "" {
		return fmt.Errorf("%w: empty symbol", ErrValidation)
	}
	if t.Side != SideBuy && t.Side != SideSell {
		return fmt.Errorf("%w: %q", ErrUnknownSide, t.Side)
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %f", ErrValidation, t.Quantity)
	}
	if t.Price <= 0 {
		return fmt.Errorf("%w: price must be positive, got %f", ErrValidation, t.Price)
	}
	if t.Fees < 0 {
		return fmt.Errorf("%w: fees must not be negative, got %f", ErrValidation, t.Fees)
	}
	return nil
}
