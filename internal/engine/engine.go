package engine

import (
	"context"
	"fmt"
	"time"

	"crypto-portfolio-go/internal/coingecko"
	"crypto-portfolio-go/internal/config"
	"crypto-portfolio-go/internal/database"
	"crypto-portfolio-go/internal/models"
	"crypto-portfolio-go/internal/portfolio"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Engine runs the valuation and decision pipeline: it reconciles the ledger
// against a price snapshot, derives valuation and P/L, evaluates alert and
// auto-trade conditions, and hands the resulting actions to the notifier and
// order-execution collaborators.
//
// Each tick is one synchronous, single-writer pass over one user's
// portfolio. Concurrent engines for different users need no coordination.
type Engine struct {
	logger      *zap.Logger
	cfg         *config.Config
	feed        coingecko.PriceFeed
	store       *database.SnapshotStore
	db          *gorm.DB
	notifier    Notifier
	executor    OrderExecutor
	broadcaster *Broadcaster
}

// NewEngine creates a new decision engine.
func NewEngine(logger *zap.Logger, cfg *config.Config, feed coingecko.PriceFeed, db *gorm.DB, notifier Notifier, executor OrderExecutor) *Engine {
	return &Engine{
		logger:      logger,
		cfg:         cfg,
		feed:        feed,
		store:       database.NewSnapshotStore(db, logger),
		db:          db,
		notifier:    notifier,
		executor:    executor,
		broadcaster: NewBroadcaster(),
	}
}

// Subscribe returns a channel receiving the snapshot of every completed
// tick.
func (e *Engine) Subscribe() <-chan TickSnapshot {
	return e.broadcaster.Subscribe()
}

// Run starts the engine's periodic evaluation loop. A failed tick is logged
// and retried on the next interval; the loop itself never dies until the
// context is cancelled.
func (e *Engine) Run(ctx context.Context) {
	interval := time.Duration(e.cfg.Engine.TickInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.logger.Info("Starting evaluation loop",
		zap.String("user_id", e.cfg.Engine.UserID),
		zap.Duration("interval", interval),
	)

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Stopping engine...")
			return
		case <-ticker.C:
			if err := e.Tick(); err != nil {
				e.logger.Error("Tick failed", zap.Error(err))
			}
		}
	}
}

// Tick runs one full pipeline pass for the configured user.
func (e *Engine) Tick() error {
	userID := e.cfg.Engine.UserID

	p, err := e.store.Load(userID)
	if err != nil {
		return fmt.Errorf("could not load portfolio: %w", err)
	}

	assets := p.Ledger.OpenAssets()
	e.resolveInstruments(assets)

	prices, err := e.feed.GetPrices(coinIDs(assets))
	if err != nil {
		// Feed unavailability is not an engine failure: assets are valued
		// at cost and flagged as stale in the report.
		e.logger.Warn("Price feed unavailable, valuing at cost", zap.Error(err))
		prices = map[string]float64{}
	}

	report := portfolio.Evaluate(assets, prices)

	triggered := e.processAlerts(p, assets, prices)
	actions := e.processAutoTrade(p, report)

	if err := e.store.Save(userID, p); err != nil {
		return fmt.Errorf("could not save portfolio: %w", err)
	}

	e.broadcaster.Publish(TickSnapshot{
		At:        time.Now(),
		Prices:    prices,
		Valuation: report,
		Triggered: triggered,
		Actions:   actions,
	})

	e.logger.Info("Tick complete",
		zap.Int("assets", len(report.Assets)),
		zap.Float64("total_value", report.TotalValue),
		zap.Int("alerts_triggered", len(triggered)),
		zap.Int("actions", len(actions)),
	)
	return nil
}

// processAlerts evaluates the armed alerts and delivers each trigger exactly
// once, disarming the alert only after successful delivery so that a failed
// notification is retried on the next tick.
func (e *Engine) processAlerts(p *portfolio.Portfolio, assets []*portfolio.Asset, prices map[string]float64) []portfolio.TriggeredAlert {
	triggered := portfolio.EvaluateAlerts(p.AlertList(), pricesBySymbol(assets, prices))

	delivered := triggered[:0]
	for _, t := range triggered {
		if err := e.notifier.Notify(t); err != nil {
			e.logger.Error("Failed to deliver alert",
				zap.String("alert_id", t.AlertID),
				zap.Error(err),
			)
			continue
		}
		p.Alerts[t.AlertID].Disarm()
		delivered = append(delivered, t)
	}
	return delivered
}

// processAutoTrade runs the rule engine over every live-priced asset and
// executes the proposals. Stale-priced assets are never traded. Each fill is
// recorded in the ledger and in the trade log.
func (e *Engine) processAutoTrade(p *portfolio.Portfolio, report portfolio.ValuationReport) []portfolio.ProposedAction {
	var actions []portfolio.ProposedAction

	for _, v := range report.Assets {
		if !v.Priced {
			continue
		}
		action := portfolio.EvaluateRules(p.Settings, p.Ledger.Assets[v.AssetID], v)
		if action == nil {
			continue
		}
		actions = append(actions, *action)

		l := e.logger.With(
			zap.String("symbol", action.Symbol),
			zap.String("side", string(action.Side)),
			zap.String("reason", action.Reason),
			zap.Float64("quantity", action.Quantity),
		)
		l.Info("Auto-trade rule fired")

		fill, err := e.executor.Execute(*action)
		if err != nil {
			l.Error("Order execution failed", zap.Error(err))
			continue
		}

		tx := portfolio.Transaction{
			Symbol:    fill.Symbol,
			Side:      fill.Side,
			Quantity:  fill.Quantity,
			Price:     fill.Price,
			Fees:      fill.Fees,
			Timestamp: fill.Timestamp,
		}
		if _, err := p.Ledger.Record(tx); err != nil {
			l.Error("Failed to record fill in ledger", zap.Error(err))
			continue
		}

		record := models.TradeRecord{
			UserID:       e.cfg.Engine.UserID,
			Symbol:       fill.Symbol,
			Side:         string(fill.Side),
			Price:        fill.Price,
			Quantity:     fill.Quantity,
			QuoteAmount:  fill.Quantity * fill.Price,
			Fees:         fill.Fees,
			Reason:       action.Reason,
			Timestamp:    fill.Timestamp.UnixMilli(),
			IsSimulation: e.cfg.Engine.DryRun,
		}
		if err := e.db.Create(&record).Error; err != nil {
			l.Error("Failed to save trade record", zap.Error(err))
		}
	}
	return actions
}

// resolveInstruments backfills missing price-feed instrument ids by symbol
// lookup, so an asset added without one picks up live pricing instead of
// staying on the stale fallback. A failed or empty lookup leaves the asset
// unresolved and is retried on the next tick; the resolved id is persisted
// with the rest of the portfolio at the end of the pass.
func (e *Engine) resolveInstruments(assets []*portfolio.Asset) {
	for _, a := range assets {
		if a.CoinID != "" {
			continue
		}
		id, err := e.feed.SearchCoin(a.Symbol)
		if err != nil {
			e.logger.Warn("Instrument lookup failed",
				zap.String("symbol", a.Symbol),
				zap.Error(err),
			)
			continue
		}
		if id == "" {
			e.logger.Warn("No instrument id found for symbol", zap.String("symbol", a.Symbol))
			continue
		}
		a.CoinID = id
		e.logger.Info("Resolved instrument id",
			zap.String("symbol", a.Symbol),
			zap.String("coin_id", id),
		)
	}
}

// coinIDs collects the distinct price-feed instrument ids of the given
// assets.
func coinIDs(assets []*portfolio.Asset) []string {
	seen := make(map[string]struct{}, len(assets))
	var ids []string
	for _, a := range assets {
		if a.CoinID == "" {
			continue
		}
		if _, ok := seen[a.CoinID]; ok {
			continue
		}
		seen[a.CoinID] = struct{}{}
		ids = append(ids, a.CoinID)
	}
	return ids
}

// pricesBySymbol re-keys the instrument-id price map by user-facing symbol
// for alert evaluation. Symbols without a live price are absent.
func pricesBySymbol(assets []*portfolio.Asset, prices map[string]float64) map[string]float64 {
	bySymbol := make(map[string]float64, len(assets))
	for _, a := range assets {
		if price, ok := prices[a.CoinID]; ok && a.CoinID != "" {
			bySymbol[a.Symbol] = price
		}
	}
	return bySymbol
}
