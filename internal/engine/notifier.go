package engine

import (
	"crypto-portfolio-go/internal/portfolio"
	"go.uber.org/zap"
)

// Notifier delivers triggered alerts to the user.
type Notifier interface {
	Notify(alert portfolio.TriggeredAlert) error
}

// ConsoleNotifier delivers alerts through the structured log.
type ConsoleNotifier struct {
	logger *zap.Logger
}

// ensure ConsoleNotifier implements the interface
var _ Notifier = (*ConsoleNotifier)(nil)

// NewConsoleNotifier creates a log-backed notifier.
func NewConsoleNotifier(logger *zap.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{logger: logger}
}

// Notify logs the triggered alert.
func (n *ConsoleNotifier) Notify(alert portfolio.TriggeredAlert) error {
	n.logger.Info("ALERT TRIGGERED",
		zap.String("symbol", alert.Symbol),
		zap.String("condition", string(alert.Condition)),
		zap.Float64("target_price", alert.TargetPrice),
		zap.Float64("price", alert.Price),
	)
	return nil
}
