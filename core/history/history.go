package history

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TickRecord is one reconciliation pass as stored in the history table.
type TickRecord struct {
	ID              uint   `gorm:"primaryKey"`
	RunID           string `gorm:"size:36;index"`
	Cluster         string `gorm:"size:64;index"`
	Features        int
	JobsDeleted     int
	BookingsDeleted int
	ReservationSpec string `gorm:"size:1024"`
	DurationMs      int64
	Error           string `gorm:"size:1024"`
	CreatedAt       time.Time
}

// Recorder appends tick records to the history table.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder migrates the history table and returns a recorder bound
// to db.
func NewRecorder(db *gorm.DB) (*Recorder, error) {
	if err := db.AutoMigrate(&TickRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tick history: %w", err)
	}
	return &Recorder{db: db}, nil
}

// Record inserts one tick record. A nil recorder is a no-op so the agent
// can run without a database.
func (r *Recorder) Record(ctx context.Context, record TickRecord) error {
	if r == nil {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record tick: %w", err)
	}
	return nil
}

// Recent returns the latest n tick records for one cluster, newest first.
func (r *Recorder) Recent(ctx context.Context, cluster string, n int) ([]TickRecord, error) {
	if r == nil {
		return nil, nil
	}
	var records []TickRecord
	err := r.db.WithContext(ctx).
		Where("cluster = ?", cluster).
		Order("id desc").
		Limit(n).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load tick history: %w", err)
	}
	return records, nil
}
