package database

import (
	"encoding/json"
	"errors"
	"fmt"

	"crypto-portfolio-go/internal/models"
	"crypto-portfolio-go/internal/portfolio"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotStore loads and saves the full serialized portfolio per user.
type SnapshotStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSnapshotStore creates a snapshot store backed by the given database.
func NewSnapshotStore(db *gorm.DB, logger *zap.Logger) *SnapshotStore {
	return &SnapshotStore{db: db, logger: logger}
}

// Load returns the portfolio for a user. A missing or corrupt snapshot
// yields a fresh empty portfolio rather than a startup failure; corruption
// is logged and the bad row is left in place until the next Save overwrites
// it.
func (s *SnapshotStore) Load(userID string) (*portfolio.Portfolio, error) {
	var snap models.Snapshot
	err := s.db.Where("user_id = ?", userID).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return portfolio.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for user %s: %w", userID, err)
	}

	p := portfolio.New()
	if err := json.Unmarshal(snap.Data, p); err != nil {
		s.logger.Warn("Snapshot is corrupt, starting with an empty portfolio",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return portfolio.New(), nil
	}
	p.Normalize()
	return p, nil
}

// Save serializes the portfolio and upserts it as the user's snapshot.
func (s *SnapshotStore) Save(userID string, p *portfolio.Portfolio) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to serialize portfolio for user %s: %w", userID, err)
	}

	snap := models.Snapshot{UserID: userID, Data: data}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot for user %s: %w", userID, err)
	}
	return nil
}
