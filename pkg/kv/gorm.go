package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/izishop-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQL stores slots in the kv_slots table through GORM. It works against sqlite and postgres.
type SQL struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewSQL builds a table-backed store. A positive ttl stamps an expiry on every write; expired
// slots read as missing.
func NewSQL(db *gorm.DB, ttl time.Duration) *SQL {
	return &SQL{db: db, ttl: ttl, now: time.Now}
}

func (s *SQL) Get(ctx context.Context, key string) (string, error) {
	var slot models.KVSlot
	err := s.db.WithContext(ctx).Where("slot_key = ?", key).Take(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read slot %q: %w", key, err)
	}
	if slot.ExpiresAt != nil && !slot.ExpiresAt.After(s.now()) {
		return "", ErrNotFound
	}
	return slot.Value, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	now := s.now().UTC()
	slot := models.KVSlot{Key: key, Value: value, UpdatedAt: now}
	if s.ttl > 0 {
		expires := now.Add(s.ttl)
		slot.ExpiresAt = &expires
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"slot_value", "expires_at", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("slot_key = ?", key).Delete(&models.KVSlot{}).Error; err != nil {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}
