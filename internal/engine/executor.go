package engine

import (
	"time"

	"crypto-portfolio-go/internal/portfolio"
	"go.uber.org/zap"
)

// Credentials carries exchange key material for the order-execution
// collaborator. It is passed explicitly to the executor constructor and held
// nowhere else; there is no process-wide key state.
type Credentials struct {
	APIKey    string
	SecretKey string
}

// Fill is a confirmed execution of a proposed action.
type Fill struct {
	Symbol    string
	Side      portfolio.Side
	Quantity  float64
	Price     float64
	Fees      float64
	Timestamp time.Time
}

// OrderExecutor carries out proposed trade actions and returns the
// resulting fill. The engine only produces proposals; executors own the
// actual order placement.
type OrderExecutor interface {
	Execute(action portfolio.ProposedAction) (*Fill, error)
}

// PaperExecutor fills every proposal locally at the proposed price, charging
// a configurable fee rate. No exchange is ever contacted.
type PaperExecutor struct {
	creds   Credentials
	feeRate float64
	logger  *zap.Logger
}

// ensure PaperExecutor implements the interface
var _ OrderExecutor = (*PaperExecutor)(nil)

// NewPaperExecutor creates a simulated order executor. Credentials are
// accepted so real executors can share the constructor shape; the paper
// implementation never signs anything.
func NewPaperExecutor(creds Credentials, feeRate float64, logger *zap.Logger) *PaperExecutor {
	return &PaperExecutor{
		creds:   creds,
		feeRate: feeRate,
		logger:  logger,
	}
}

// Execute simulates an immediate fill at the proposed price.
func (x *PaperExecutor) Execute(action portfolio.ProposedAction) (*Fill, error) {
	quote := action.Quantity * action.Price
	fill := &Fill{
		Symbol:    action.Symbol,
		Side:      action.Side,
		Quantity:  action.Quantity,
		Price:     action.Price,
		Fees:      quote * x.feeRate,
		Timestamp: time.Now(),
	}

	x.logger.Info("Paper fill",
		zap.String("symbol", fill.Symbol),
		zap.String("side", string(fill.Side)),
		zap.Float64("quantity", fill.Quantity),
		zap.Float64("price", fill.Price),
		zap.String("reason", action.Reason),
	)
	return fill, nil
}
