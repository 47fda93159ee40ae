package portfolio

import (
	"strings"

	"github.com/google/uuid"
)

// AutoTradeSettings configures the rule engine for one user. The struct is
// replaced wholesale on update; there is no partial-field merge.
type AutoTradeSettings struct {
	ID                 string   `json:"id"`
	Enabled            bool     `json:"enabled"`
	TakeProfitPct      float64  `json:"take_profit_percentage"`
	StopLossPct        float64  `json:"stop_loss_percentage"`
	AutoCashoutEnabled bool     `json:"auto_cashout_enabled"`
	CashoutPct         float64  `json:"cashout_percentage"`
	MinProfitToCashout float64  `json:"min_profit_to_cashout"`
	MaxPositionSize    float64  `json:"max_position_size"`
	TradingPairs       []string `json:"trading_pairs"`
}

// DefaultAutoTradeSettings returns the disabled defaults for a new user.
func DefaultAutoTradeSettings() AutoTradeSettings {
	return AutoTradeSettings{
		ID:                 uuid.NewString(),
		Enabled:            false,
		TakeProfitPct:      5.0,
		StopLossPct:        2.0,
		AutoCashoutEnabled: false,
		CashoutPct:         50.0,
		MinProfitToCashout: 100.0,
		MaxPositionSize:    1000.0,
		TradingPairs:       []string{"BTC/USDT"},
	}
}

// AllowsSymbol reports whether the symbol is covered by the configured
// trading pairs. Pairs may be given as a bare symbol ("BTC") or as a quoted
// pair ("BTC/USDT"); matching is on the base symbol.
func (s AutoTradeSettings) AllowsSymbol(symbol string) bool {
	for _, pair := range s.TradingPairs {
		base, _, _ := strings.Cut(pair, "/")
		if strings.EqualFold(base, symbol) {
			return true
		}
	}
	return false
}
