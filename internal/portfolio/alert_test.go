package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAlert_Validation(t *testing.T) {
	// Unknown condition
	_, err := NewAlert("BTC", 35000, "between")
	assert.ErrorIs(t, err, ErrUnknownCondition)

	// Non-positive target price
	_, err = NewAlert("BTC", 0, ConditionAbove)
	assert.ErrorIs(t, err, ErrValidation)

	// Valid alert starts armed
	alert, err := NewAlert("BTC", 35000, ConditionAbove)
	assert.NoError(t, err)
	assert.True(t, alert.Armed)
}

func TestEvaluateAlerts_AboveCondition(t *testing.T) {
	// Arrange
	alert, err := NewAlert("BTC", 35000, ConditionAbove)
	assert.NoError(t, err)
	alerts := []*Alert{alert}

	// Act & Assert: price above target triggers
	triggered := EvaluateAlerts(alerts, map[string]float64{"BTC": 40000})
	assert.Len(t, triggered, 1)
	assert.Equal(t, alert.ID, triggered[0].AlertID)
	assert.Equal(t, 40000.0, triggered[0].Price)

	// Price below target does not
	triggered = EvaluateAlerts(alerts, map[string]float64{"BTC": 30000})
	assert.Empty(t, triggered)

	// Price exactly at target triggers
	triggered = EvaluateAlerts(alerts, map[string]float64{"BTC": 35000})
	assert.Len(t, triggered, 1)
}

func TestEvaluateAlerts_BelowCondition(t *testing.T) {
	// Arrange
	alert, err := NewAlert("ETH", 1500, ConditionBelow)
	assert.NoError(t, err)
	alerts := []*Alert{alert}

	// Act & Assert
	triggered := EvaluateAlerts(alerts, map[string]float64{"ETH": 1400})
	assert.Len(t, triggered, 1)

	triggered = EvaluateAlerts(alerts, map[string]float64{"ETH": 1600})
	assert.Empty(t, triggered)
}

func TestEvaluateAlerts_NoPriceIsSkipped(t *testing.T) {
	// Arrange
	alert, err := NewAlert("DOGE", 1, ConditionAbove)
	assert.NoError(t, err)

	// Act: no resolvable price for DOGE
	triggered := EvaluateAlerts([]*Alert{alert}, map[string]float64{"BTC": 40000})

	// Assert: skipped, not triggered, not an error
	assert.Empty(t, triggered)
}

func TestEvaluateAlerts_UnarmedIsSkipped(t *testing.T) {
	// Arrange
	alert, err := NewAlert("BTC", 35000, ConditionAbove)
	assert.NoError(t, err)
	alert.Disarm()

	// Act
	triggered := EvaluateAlerts([]*Alert{alert}, map[string]float64{"BTC": 40000})

	// Assert
	assert.Empty(t, triggered)

	// Re-arming makes it eligible again
	alert.Rearm()
	triggered = EvaluateAlerts([]*Alert{alert}, map[string]float64{"BTC": 40000})
	assert.Len(t, triggered, 1)
}

func TestEvaluateAlerts_DoesNotMutateAndIsReplaySafe(t *testing.T) {
	// Arrange
	alert, err := NewAlert("BTC", 35000, ConditionAbove)
	assert.NoError(t, err)
	alerts := []*Alert{alert}
	prices := map[string]float64{"BTC": 40000}

	// Act: evaluating twice without the caller advancing armed state
	first := EvaluateAlerts(alerts, prices)
	second := EvaluateAlerts(alerts, prices)

	// Assert: idempotent under replay, alert still armed
	assert.Equal(t, first, second)
	assert.True(t, alert.Armed)

	// At most one trigger per alert id in a single call
	assert.Len(t, first, 1)
}
