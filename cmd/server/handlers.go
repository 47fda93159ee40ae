package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"crypto-portfolio-go/internal/coingecko"
	"crypto-portfolio-go/internal/config"
	"crypto-portfolio-go/internal/database"
	"crypto-portfolio-go/internal/models"
	"crypto-portfolio-go/internal/portfolio"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log   *zap.Logger
	cfg   *config.Config
	db    *gorm.DB
	store *database.SnapshotStore
	feed  coingecko.PriceFeed
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, cfg *config.Config, db *gorm.DB, feed coingecko.PriceFeed) *APIHandler {
	return &APIHandler{
		log:   log,
		cfg:   cfg,
		db:    db,
		store: database.NewSnapshotStore(db, log),
		feed:  feed,
	}
}

func (h *APIHandler) userID(r *http.Request) string {
	if id := r.URL.Query().Get("user"); id != "" {
		return id
	}
	return h.cfg.Engine.UserID
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to write response", zap.Error(err))
	}
}

// PortfolioHandler returns the persisted portfolio snapshot.
func (h *APIHandler) PortfolioHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Load(h.userID(r))
	if err != nil {
		h.log.Error("Failed to load portfolio", zap.Error(err))
		http.Error(w, "Failed to load portfolio", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, p)
}

// ValuationHandler evaluates the portfolio against live prices. Assets whose
// price could not be fetched are valued at cost and flagged.
func (h *APIHandler) ValuationHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Load(h.userID(r))
	if err != nil {
		h.log.Error("Failed to load portfolio", zap.Error(err))
		http.Error(w, "Failed to load portfolio", http.StatusInternalServerError)
		return
	}

	assets := p.Ledger.OpenAssets()
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		if a.CoinID != "" {
			ids = append(ids, a.CoinID)
		}
	}

	prices, err := h.feed.GetPrices(ids)
	if err != nil {
		h.log.Warn("Price feed unavailable, valuing at cost", zap.Error(err))
		prices = map[string]float64{}
	}

	h.writeJSON(w, portfolio.Evaluate(assets, prices))
}

// AlertsHandler returns the configured alerts.
func (h *APIHandler) AlertsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Load(h.userID(r))
	if err != nil {
		h.log.Error("Failed to load portfolio", zap.Error(err))
		http.Error(w, "Failed to load portfolio", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, p.AlertList())
}

// TradesHandler returns the executed fills, most recent first.
func (h *APIHandler) TradesHandler(w http.ResponseWriter, r *http.Request) {
	var trades []models.TradeRecord
	if err := h.db.Where("user_id = ?", h.userID(r)).Order("timestamp desc").Find(&trades).Error; err != nil {
		h.log.Error("Failed to get trades from database", zap.Error(err))
		http.Error(w, "Failed to get trades", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, trades)
}

// SimulateHandler projects the stored simulation records under a uniform
// price shock given as ?pct=-20.
func (h *APIHandler) SimulateHandler(w http.ResponseWriter, r *http.Request) {
	pct, err := strconv.ParseFloat(r.URL.Query().Get("pct"), 64)
	if err != nil {
		http.Error(w, "Invalid pct parameter", http.StatusBadRequest)
		return
	}

	p, err := h.store.Load(h.userID(r))
	if err != nil {
		h.log.Error("Failed to load portfolio", zap.Error(err))
		http.Error(w, "Failed to load portfolio", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, portfolio.Project(p.SimulationList(), pct))
}

// HistoryHandler returns daily historical prices for one instrument as
// [timestamp_ms, price] pairs.
func (h *APIHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	coinID := r.URL.Query().Get("coin_id")
	if coinID == "" {
		http.Error(w, "Missing coin_id parameter", http.StatusBadRequest)
		return
	}
	days := 30
	if d, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && d > 0 {
		days = d
	}

	history, err := h.feed.GetCoinHistory(coinID, days)
	if err != nil {
		h.log.Error("Failed to get coin history", zap.String("coin_id", coinID), zap.Error(err))
		http.Error(w, "Failed to get history", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, history)
}

// HealthHandler reports liveness.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK\n"))
}
