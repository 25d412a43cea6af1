package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/protheus/connector/internal/domain/connector"
	"github.com/protheus/connector/internal/infrastructure/persistence/models"
)

// GormSyncRunRepository implements connector.SyncRunRepository using GORM
type GormSyncRunRepository struct {
	db *gorm.DB
}

// NewGormSyncRunRepository creates a new GormSyncRunRepository
func NewGormSyncRunRepository(db *gorm.DB) *GormSyncRunRepository {
	return &GormSyncRunRepository{db: db}
}

// Append inserts one run log entry
func (r *GormSyncRunRepository) Append(ctx context.Context, run *connector.SyncRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	var model models.SyncRunModel
	if err := model.FromDomain(run); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	run.ID = model.ID
	return nil
}

// GormRawPayloadRepository implements connector.RawPayloadRepository using GORM
type GormRawPayloadRepository struct {
	db *gorm.DB
}

// NewGormRawPayloadRepository creates a new GormRawPayloadRepository
func NewGormRawPayloadRepository(db *gorm.DB) *GormRawPayloadRepository {
	return &GormRawPayloadRepository{db: db}
}

// Store inserts one raw payload row
func (r *GormRawPayloadRepository) Store(ctx context.Context, raw *connector.RawPayload) error {
	if raw.CreatedAt.IsZero() {
		raw.CreatedAt = time.Now()
	}

	var model models.RawPayloadModel
	if err := model.FromDomain(raw); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	raw.ID = model.ID
	return nil
}
