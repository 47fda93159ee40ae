package portfolio

import "sort"

// Portfolio is the aggregate root for one user's full entity set: the
// ledger plus alerts, auto-trade settings, and simulation records. All
// collections are id-keyed and relations are expressed by id or symbol,
// never by object back-pointers. One evaluation pass operates on exactly
// one Portfolio.
type Portfolio struct {
	Ledger      *Ledger                      `json:"ledger"`
	Alerts      map[string]*Alert            `json:"alerts"`
	Settings    AutoTradeSettings            `json:"auto_trade_settings"`
	Simulations map[string]*SimulationRecord `json:"simulations"`
}

// New creates an empty portfolio with default settings.
func New() *Portfolio {
	return &Portfolio{
		Ledger:      NewLedger(),
		Alerts:      make(map[string]*Alert),
		Settings:    DefaultAutoTradeSettings(),
		Simulations: make(map[string]*SimulationRecord),
	}
}

// Normalize repairs nil collections after deserialization so that a sparse
// or legacy snapshot still yields a usable portfolio.
func (p *Portfolio) Normalize() {
	if p.Ledger == nil {
		p.Ledger = NewLedger()
	}
	if p.Ledger.Assets == nil {
		p.Ledger.Assets = make(map[string]*Asset)
	}
	if p.Alerts == nil {
		p.Alerts = make(map[string]*Alert)
	}
	if p.Simulations == nil {
		p.Simulations = make(map[string]*SimulationRecord)
	}
	if p.Settings.ID == "" {
		p.Settings = DefaultAutoTradeSettings()
	}
}

// AddAlert registers an alert.
func (p *Portfolio) AddAlert(a *Alert) {
	p.Alerts[a.ID] = a
}

// RemoveAlert deletes an alert by id and reports whether it existed.
// Deletion is always explicit; triggering never removes an alert.
func (p *Portfolio) RemoveAlert(id string) bool {
	if _, ok := p.Alerts[id]; !ok {
		return false
	}
	delete(p.Alerts, id)
	return true
}

// RearmAlert re-arms a triggered alert by id and reports whether it existed.
func (p *Portfolio) RearmAlert(id string) bool {
	a, ok := p.Alerts[id]
	if !ok {
		return false
	}
	a.Rearm()
	return true
}

// AlertList returns the alerts ordered by symbol then id.
func (p *Portfolio) AlertList() []*Alert {
	alerts := make([]*Alert, 0, len(p.Alerts))
	for _, a := range p.Alerts {
		alerts = append(alerts, a)
	}
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Symbol != alerts[j].Symbol {
			return alerts[i].Symbol < alerts[j].Symbol
		}
		return alerts[i].ID < alerts[j].ID
	})
	return alerts
}

// UpdateSettings replaces the auto-trade settings wholesale.
func (p *Portfolio) UpdateSettings(s AutoTradeSettings) {
	if s.ID == "" {
		s.ID = p.Settings.ID
	}
	p.Settings = s
}

// AddSimulation registers a simulation record.
func (p *Portfolio) AddSimulation(r *SimulationRecord) {
	p.Simulations[r.ID] = r
}

// RemoveSimulation deletes a simulation record by id and reports whether it
// existed.
func (p *Portfolio) RemoveSimulation(id string) bool {
	if _, ok := p.Simulations[id]; !ok {
		return false
	}
	delete(p.Simulations, id)
	return true
}

// SimulationList returns the simulation records ordered by symbol then id.
func (p *Portfolio) SimulationList() []*SimulationRecord {
	records := make([]*SimulationRecord, 0, len(p.Simulations))
	for _, r := range p.Simulations {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Symbol != records[j].Symbol {
			return records[i].Symbol < records[j].Symbol
		}
		return records[i].ID < records[j].ID
	})
	return records
}
