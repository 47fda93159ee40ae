package portfolio

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// quantityEpsilon absorbs float64 rounding when a position is sold down to
// zero.
const quantityEpsilon = 1e-9

// Position is the aggregate view of the holdings for one symbol,
// reconstructed from the transaction history.
type Position struct {
	Symbol      string  `json:"symbol"`
	Quantity    float64 `json:"quantity"`
	AvgBuyPrice float64 `json:"avg_buy_price"`
}

// Ledger holds the current assets and the append-only transaction history
// they are derived from. Cost basis is the fee-inclusive weighted average of
// buys; sells reduce quantity and leave the average untouched.
//
// A Ledger is not safe for concurrent mutation; callers serialize Record
// calls for a given user.
type Ledger struct {
	Assets       map[string]*Asset `json:"assets"`
	Transactions []Transaction     `json:"transactions"`
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{Assets: make(map[string]*Asset)}
}

// Record validates and appends a transaction, then updates or creates the
// corresponding asset. The transaction is rejected entirely on validation
// failure; the ledger is never left partially applied. Missing id/timestamp
// fields are filled in.
func (l *Ledger) Record(tx Transaction) (*Asset, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	asset := l.AssetBySymbol(tx.Symbol)
	if tx.Side == SideSell {
		if asset == nil {
			return nil, fmt.Errorf("%w: %s is not held", ErrInsufficientQuantity, tx.Symbol)
		}
		if tx.Quantity > asset.Quantity+quantityEpsilon {
			return nil, fmt.Errorf("%w: %s sell %f > held %f", ErrInsufficientQuantity, tx.Symbol, tx.Quantity, asset.Quantity)
		}
	}

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now()
	}
	l.Transactions = append(l.Transactions, tx)

	if l.Assets == nil {
		l.Assets = make(map[string]*Asset)
	}

	switch tx.Side {
	case SideBuy:
		if asset == nil {
			asset = NewAsset(tx.Symbol, 0, 0)
			asset.PurchaseDate = tx.Timestamp
			l.Assets[asset.ID] = asset
		}
		newQty := asset.Quantity + tx.Quantity
		asset.AvgBuyPrice = (asset.Quantity*asset.AvgBuyPrice + tx.TotalValue() + tx.Fees) / newQty
		asset.Quantity = newQty
	case SideSell:
		asset.Quantity -= tx.Quantity
		if asset.Quantity < quantityEpsilon {
			asset.Quantity = 0 // position closed
		}
	}

	return asset, nil
}

// AssetBySymbol returns the open asset for a symbol, or nil when the symbol
// is not held.
func (l *Ledger) AssetBySymbol(symbol string) *Asset {
	for _, a := range l.Assets {
		if a.Symbol == symbol && !a.Closed() {
			return a
		}
	}
	return nil
}

// OpenAssets returns the assets with a non-zero quantity, ordered by symbol
// then id for deterministic iteration.
func (l *Ledger) OpenAssets() []*Asset {
	assets := make([]*Asset, 0, len(l.Assets))
	for _, a := range l.Assets {
		if !a.Closed() {
			assets = append(assets, a)
		}
	}
	sort.Slice(assets, func(i, j int) bool {
		if assets[i].Symbol != assets[j].Symbol {
			return assets[i].Symbol < assets[j].Symbol
		}
		return assets[i].ID < assets[j].ID
	})
	return assets
}

// Positions reconstructs the per-symbol positions by replaying the
// transaction history in chronological order. Replaying the same history
// always yields the same result.
func (l *Ledger) Positions() map[string]Position {
	txs := make([]Transaction, len(l.Transactions))
	copy(txs, l.Transactions)
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp.Before(txs[j].Timestamp)
	})

	positions := make(map[string]Position)
	for _, tx := range txs {
		pos := positions[tx.Symbol]
		pos.Symbol = tx.Symbol
		switch tx.Side {
		case SideBuy:
			newQty := pos.Quantity + tx.Quantity
			pos.AvgBuyPrice = (pos.Quantity*pos.AvgBuyPrice + tx.TotalValue() + tx.Fees) / newQty
			pos.Quantity = newQty
		case SideSell:
			pos.Quantity -= tx.Quantity
			if pos.Quantity < quantityEpsilon {
				pos.Quantity = 0
			}
		}
		positions[tx.Symbol] = pos
	}
	return positions
}

// RemoveAsset deletes an asset by id and reports whether it existed. The
// transaction history is left untouched: this is a presentational removal,
// not a reversal.
func (l *Ledger) RemoveAsset(id string) bool {
	if _, ok := l.Assets[id]; !ok {
		return false
	}
	delete(l.Assets, id)
	return true
}

// RemoveAssetsBySymbol deletes every asset with the given symbol and returns
// how many were removed. Legacy bulk shortcut; id-based removal is the
// primary path.
func (l *Ledger) RemoveAssetsBySymbol(symbol string) int {
	removed := 0
	for id, a := range l.Assets {
		if a.Symbol == symbol {
			delete(l.Assets, id)
			removed++
		}
	}
	return removed
}
