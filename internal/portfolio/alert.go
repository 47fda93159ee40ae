package portfolio

import (
	"fmt"

	"github.com/google/uuid"
)

// Condition is the direction of a price alert.
type Condition string

const (
	ConditionAbove Condition = "above"
	ConditionBelow Condition = "below"
)

// Alert is a user-defined price alert. Armed alerts are eligible to trigger;
// a triggered alert stays around until explicitly re-armed or deleted.
type Alert struct {
	ID          string    `json:"id"`
	Symbol      string    `json:"symbol"`
	TargetPrice float64   `json:"target_price"`
	Condition   Condition `json:"condition"`
	Armed       bool      `json:"armed"`
}

// NewAlert creates an armed alert with a fresh id.
func NewAlert(symbol string, targetPrice float64, condition Condition) (*Alert, error) {
	if condition != ConditionAbove && condition != ConditionBelow {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCondition, condition)
	}
	if targetPrice <= 0 {
		return nil, fmt.Errorf("%w: target price must be positive, got %f", ErrValidation, targetPrice)
	}
	return &Alert{
		ID:          uuid.NewString(),
		Symbol:      symbol,
		TargetPrice: targetPrice,
		Condition:   condition,
		Armed:       true,
	}, nil
}

// ConditionMet reports whether the alert condition holds at the given price,
// regardless of armed state.
func (a *Alert) ConditionMet(price float64) bool {
	switch a.Condition {
	case ConditionAbove:
		return price >= a.TargetPrice
	case ConditionBelow:
		return price <= a.TargetPrice
	}
	return false
}

// Rearm makes the alert eligible to trigger again.
func (a *Alert) Rearm() { a.Armed = true }

// Disarm marks the alert as triggered so it will not fire again until
// re-armed.
func (a *Alert) Disarm() { a.Armed = false }

// TriggeredAlert is the record of an alert whose condition was met during an
// evaluation pass.
type TriggeredAlert struct {
	AlertID     string    `json:"alert_id"`
	Symbol      string    `json:"symbol"`
	Condition   Condition `json:"condition"`
	TargetPrice float64   `json:"target_price"`
	Price       float64   `json:"price"`
}

// EvaluateAlerts returns the armed alerts whose condition is met by the
// given prices, keyed by symbol. Unarmed alerts and alerts with no
// resolvable price are skipped. The alerts themselves are never mutated:
// the armed -> triggered transition is an explicit caller decision, which
// keeps evaluation idempotent and a tick safe to replay. At most one trigger
// is produced per alert id per call.
func EvaluateAlerts(alerts []*Alert, pricesBySymbol map[string]float64) []TriggeredAlert {
	var triggered []TriggeredAlert
	seen := make(map[string]bool, len(alerts))

	for _, alert := range alerts {
		if !alert.Armed || seen[alert.ID] {
			continue
		}
		price, ok := pricesBySymbol[alert.Symbol]
		if !ok {
			continue
		}
		if alert.ConditionMet(price) {
			seen[alert.ID] = true
			triggered = append(triggered, TriggeredAlert{
				AlertID:     alert.ID,
				Symbol:      alert.Symbol,
				Condition:   alert.Condition,
				TargetPrice: alert.TargetPrice,
				Price:       price,
			})
		}
	}
	return triggered
}
