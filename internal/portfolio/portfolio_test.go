package portfolio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortfolio_AlertLifecycle(t *testing.T) {
	// Arrange
	p := New()
	alert, err := NewAlert("BTC", 35000, ConditionAbove)
	assert.NoError(t, err)
	p.AddAlert(alert)

	// Act & Assert: triggering never deletes; deletion is explicit
	alert.Disarm()
	assert.Len(t, p.AlertList(), 1)

	assert.True(t, p.RearmAlert(alert.ID))
	assert.True(t, p.Alerts[alert.ID].Armed)

	assert.True(t, p.RemoveAlert(alert.ID))
	assert.False(t, p.RemoveAlert(alert.ID))
	assert.Empty(t, p.Alerts)
}

func TestPortfolio_UpdateSettingsIsWholesale(t *testing.T) {
	// Arrange
	p := New()
	originalID := p.Settings.ID

	// Act: replace with a sparse struct, no field merge happens
	p.UpdateSettings(AutoTradeSettings{Enabled: true, TakeProfitPct: 12})

	// Assert
	assert.True(t, p.Settings.Enabled)
	assert.Equal(t, 12.0, p.Settings.TakeProfitPct)
	assert.Zero(t, p.Settings.StopLossPct) // not merged from defaults
	assert.Equal(t, originalID, p.Settings.ID)
}

func TestPortfolio_SimulationManagement(t *testing.T) {
	// Arrange
	p := New()
	record := NewSimulationRecord("ETH", 10, 2000)
	p.AddSimulation(record)

	// Act & Assert
	assert.Len(t, p.SimulationList(), 1)
	assert.True(t, p.RemoveSimulation(record.ID))
	assert.False(t, p.RemoveSimulation(record.ID))
}

func TestPortfolio_NormalizeRepairsSparseSnapshot(t *testing.T) {
	// Arrange: a legacy snapshot missing whole collections
	var p Portfolio
	err := json.Unmarshal([]byte(`{"ledger": null}`), &p)
	assert.NoError(t, err)

	// Act
	p.Normalize()

	// Assert
	assert.NotNil(t, p.Ledger)
	assert.NotNil(t, p.Ledger.Assets)
	assert.NotNil(t, p.Alerts)
	assert.NotNil(t, p.Simulations)
	assert.NotEmpty(t, p.Settings.ID)

	// The repaired portfolio is fully usable
	_, err = p.Ledger.Record(Transaction{Symbol: "BTC", Side: SideBuy, Quantity: 1, Price: 100})
	assert.NoError(t, err)
}
