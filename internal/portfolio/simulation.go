package portfolio

import (
	"time"

	"github.com/google/uuid"
)

// SimulationStatus is the lifecycle state of a simulation record.
type SimulationStatus string

const (
	SimulationActive   SimulationStatus = "active"
	SimulationArchived SimulationStatus = "archived"
)

// SimulationRecord is a read-only snapshot of a hypothetical position used
// for projections. It is not linked to the live ledger.
type SimulationRecord struct {
	ID        string           `json:"id"`
	Name      string           `json:"name,omitempty"`
	Symbol    string           `json:"symbol"`
	Quantity  float64          `json:"quantity"`
	BasePrice float64          `json:"base_price"`
	Status    SimulationStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewSimulationRecord creates an active simulation record with a fresh id.
func NewSimulationRecord(symbol string, quantity, basePrice float64) *SimulationRecord {
	return &SimulationRecord{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		Quantity:  quantity,
		BasePrice: basePrice,
		Status:    SimulationActive,
		CreatedAt: time.Now(),
	}
}

// SimulatedPosition is the projected state of one record under a price
// shock.
type SimulatedPosition struct {
	Symbol    string  `json:"symbol"`
	Quantity  float64 `json:"quantity"`
	BasePrice float64 `json:"base_price"`
	SimPrice  float64 `json:"sim_price"`
	SimValue  float64 `json:"sim_value"`
}

// SimulationResult is the outcome of projecting a set of records.
type SimulationResult struct {
	PctChange  float64             `json:"pct_change"`
	Positions  []SimulatedPosition `json:"positions"`
	TotalValue float64             `json:"total_value"`
}

// Project applies a uniform percentage price shock to the given records and
// returns the projected values. Archived records are excluded. Pure and
// deterministic; the live ledger is never touched.
func Project(records []*SimulationRecord, pctChange float64) SimulationResult {
	factor := 1 + pctChange/100
	result := SimulationResult{
		PctChange: pctChange,
		Positions: make([]SimulatedPosition, 0, len(records)),
	}

	for _, r := range records {
		if r.Status == SimulationArchived {
			continue
		}
		simPrice := r.BasePrice * factor
		pos := SimulatedPosition{
			Symbol:    r.Symbol,
			Quantity:  r.Quantity,
			BasePrice: r.BasePrice,
			SimPrice:  simPrice,
			SimValue:  r.Quantity * simPrice,
		}
		result.Positions = append(result.Positions, pos)
		result.TotalValue += pos.SimValue
	}
	return result
}
