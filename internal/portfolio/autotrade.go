package portfolio

// Rule names recorded on proposed actions.
const (
	ReasonTakeProfit = "take_profit"
	ReasonStopLoss   = "stop_loss"
	ReasonCashout    = "cashout"
)

// ProposedAction is a trade intention produced by the rule engine. The
// engine never executes anything itself; an external order-execution
// collaborator carries the action out and records the resulting fill as a
// transaction.
type ProposedAction struct {
	Symbol   string  `json:"symbol"`
	Side     Side    `json:"side"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Reason   string  `json:"reason"`
}

// EvaluateRules applies the auto-trade rules to a single valued asset and
// returns the proposed action, or nil when no rule fires. Rules are checked
// in a fixed order so that contradictory thresholds cannot fire together:
//
//  1. take-profit: P/L% at or above TakeProfitPct sells the full position
//  2. stop-loss: P/L% at or below -StopLossPct sells the full position
//  3. cash-out: absolute profit at or above MinProfitToCashout sells
//     CashoutPct% of the position (only when auto cash-out is enabled)
func EvaluateRules(s AutoTradeSettings, asset *Asset, v AssetValuation) *ProposedAction {
	if !s.Enabled || asset == nil || asset.Closed() {
		return nil
	}
	if !s.AllowsSymbol(asset.Symbol) {
		return nil
	}

	var action *ProposedAction
	switch {
	case v.ProfitLossPct >= s.TakeProfitPct:
		action = &ProposedAction{
			Symbol:   asset.Symbol,
			Side:     SideSell,
			Quantity: asset.Quantity,
			Price:    v.Price,
			Reason:   ReasonTakeProfit,
		}
	case v.ProfitLossPct <= -s.StopLossPct:
		action = &ProposedAction{
			Symbol:   asset.Symbol,
			Side:     SideSell,
			Quantity: asset.Quantity,
			Price:    v.Price,
			Reason:   ReasonStopLoss,
		}
	case s.AutoCashoutEnabled && v.ProfitLoss >= s.MinProfitToCashout:
		action = &ProposedAction{
			Symbol:   asset.Symbol,
			Side:     SideSell,
			Quantity: asset.Quantity * s.CashoutPct / 100,
			Price:    v.Price,
			Reason:   ReasonCashout,
		}
	}

	if action == nil || action.Quantity <= 0 {
		return nil
	}
	return capToMaxPosition(action, s)
}

// capToMaxPosition limits a buy-side action so its quote-currency value
// never exceeds MaxPositionSize. Current rules only sell, but any future
// buy-side rule goes through the same gate.
func capToMaxPosition(a *ProposedAction, s AutoTradeSettings) *ProposedAction {
	if a.Side != SideBuy || s.MaxPositionSize <= 0 || a.Price <= 0 {
		return a
	}
	maxQty := s.MaxPositionSize / a.Price
	if a.Quantity > maxQty {
		a.Quantity = maxQty
	}
	return a
}
