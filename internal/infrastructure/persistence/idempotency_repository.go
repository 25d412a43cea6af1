package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/protheus/connector/internal/domain/connector"
	"github.com/protheus/connector/internal/infrastructure/persistence/models"
)

// GormIdempotencyStore implements connector.IdempotencyStore using GORM
type GormIdempotencyStore struct {
	db *gorm.DB
}

// NewGormIdempotencyStore creates a new GormIdempotencyStore
func NewGormIdempotencyStore(db *gorm.DB) *GormIdempotencyStore {
	return &GormIdempotencyStore{db: db}
}

// Lookup returns the cached record for (key, endpoint), or (nil, nil) on miss
func (s *GormIdempotencyStore) Lookup(ctx context.Context, key, endpoint string) (*connector.IdempotencyRecord, error) {
	var model models.IdempotencyKeyModel
	if err := s.db.WithContext(ctx).
		Where("key = ? AND endpoint = ?", key, endpoint).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Record persists a new record. The unique index on (key, endpoint) turns a
// concurrent double-write into connector.ErrDuplicateRecord.
func (s *GormIdempotencyStore) Record(ctx context.Context, key, endpoint string, response any) error {
	var model models.IdempotencyKeyModel
	if err := model.FromDomain(&connector.IdempotencyRecord{
		Key:       key,
		Endpoint:  endpoint,
		Response:  response,
		CreatedAt: time.Now(),
	}); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return connector.ErrDuplicateRecord
		}
		return err
	}
	return nil
}
