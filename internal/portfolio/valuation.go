package portfolio

// AssetValuation is the per-asset output of a valuation pass. Priced is
// false when the price feed had no entry for the asset's instrument and the
// average buy price was used as a stale fallback.
type AssetValuation struct {
	AssetID       string  `json:"asset_id"`
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	Price         float64 `json:"price"`
	Priced        bool    `json:"priced"`
	Value         float64 `json:"value"`
	Cost          float64 `json:"cost"`
	ProfitLoss    float64 `json:"profit_loss"`
	ProfitLossPct float64 `json:"profit_loss_pct"`
}

// ValuationReport aggregates the per-asset valuations.
type ValuationReport struct {
	Assets             []AssetValuation `json:"assets"`
	TotalValue         float64          `json:"total_value"`
	TotalCost          float64          `json:"total_cost"`
	TotalProfitLoss    float64          `json:"total_profit_loss"`
	TotalProfitLossPct float64          `json:"total_profit_loss_pct"`
}

// Evaluate combines the given holdings with a price snapshot (keyed by
// instrument id) into a valuation report. Closed assets are excluded. The
// function is pure: it holds no state and returns an identical report for
// identical inputs.
func Evaluate(assets []*Asset, prices map[string]float64) ValuationReport {
	report := ValuationReport{Assets: make([]AssetValuation, 0, len(assets))}

	for _, a := range assets {
		if a.Closed() {
			continue
		}

		price, priced := prices[a.CoinID]
		if a.CoinID == "" {
			priced = false
		}
		if !priced {
			// Stale-price fallback: value at cost rather than fail.
			price = a.AvgBuyPrice
		}

		v := AssetValuation{
			AssetID:  a.ID,
			Symbol:   a.Symbol,
			Quantity: a.Quantity,
			Price:    price,
			Priced:   priced,
			Value:    a.Quantity * price,
			Cost:     a.Quantity * a.AvgBuyPrice,
		}
		v.ProfitLoss = v.Value - v.Cost
		v.ProfitLossPct = plPercent(v.ProfitLoss, v.Cost)

		report.Assets = append(report.Assets, v)
		report.TotalValue += v.Value
		report.TotalCost += v.Cost
	}

	report.TotalProfitLoss = report.TotalValue - report.TotalCost
	report.TotalProfitLossPct = plPercent(report.TotalProfitLoss, report.TotalCost)
	return report
}

// plPercent returns pl/cost*100 with a zero-cost position defined as 0%,
// never NaN.
func plPercent(pl, cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	return pl / cost * 100
}
