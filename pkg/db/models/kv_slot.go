package models

import "time"

// KVSlot is one persisted key/value slot. Cart snapshots are stored here as JSON text.
type KVSlot struct {
	Key       string     `gorm:"column:slot_key;primaryKey;size:255"`
	Value     string     `gorm:"column:slot_value;type:text;not null"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (KVSlot) TableName() string {
	return "kv_slots"
}
