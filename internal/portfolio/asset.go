package portfolio

import (
	"time"

	"github.com/google/uuid"
)

// Asset represents a holding of a single instrument in the portfolio.
// CoinID is the external price-feed key (e.g. CoinGecko's "bitcoin"); it is
// distinct from the user-facing Symbol and may be empty when the instrument
// could not be resolved, in which case live pricing is unavailable.
type Asset struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name,omitempty"`
	Quantity     float64   `json:"quantity"`
	AvgBuyPrice  float64   `json:"avg_buy_price"`
	CoinID       string    `json:"coin_id,omitempty"`
	Currency     string    `json:"currency"`
	PurchaseDate time.Time `json:"purchase_date"`
	Notes        string    `json:"notes,omitempty"`
}

// NewAsset creates a new asset holding with a fresh id.
func NewAsset(symbol string, quantity, buyPrice float64) *Asset {
	return &Asset{
		ID:           uuid.NewString(),
		Symbol:       symbol,
		Quantity:     quantity,
		AvgBuyPrice:  buyPrice,
		Currency:     "USD",
		PurchaseDate: time.Now(),
	}
}

// Closed reports whether the position has been fully sold off. Closed assets
// are excluded from valuation.
func (a *Asset) Closed() bool {
	return a.Quantity <= 0
}

// CurrentValue calculates the holding's value at the given price.
func (a *Asset) CurrentValue(price float64) float64 {
	return a.Quantity * price
}

// ProfitLoss calculates the holding's P/L at the given price.
func (a *Asset) ProfitLoss(price float64) float64 {
	return a.CurrentValue(price) - a.Quantity*a.AvgBuyPrice
}
