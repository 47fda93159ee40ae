package models

import "gorm.io/gorm"

// TradeRecord is a completed fill recorded by the order-execution
// collaborator.
type TradeRecord struct {
	gorm.Model
	UserID       string  `json:"user_id" gorm:"index"`
	Symbol       string  `json:"symbol"`
	Side         string  `json:"side"` // "buy" or "sell"
	Price        float64 `json:"price"`
	Quantity     float64 `json:"quantity"`
	QuoteAmount  float64 `json:"quote_amount"`
	Fees         float64 `json:"fees"`
	Reason       string  `json:"reason"` // rule that proposed the trade
	Timestamp    int64   `json:"timestamp"`
	IsSimulation bool    `json:"is_simulation"`
}
