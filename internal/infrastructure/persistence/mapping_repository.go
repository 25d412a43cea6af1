package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/protheus/connector/internal/domain/connector"
	"github.com/protheus/connector/internal/infrastructure/persistence/models"
)

// GormMappingRepository implements connector.MappingRepository using GORM
type GormMappingRepository struct {
	db *gorm.DB
}

// NewGormMappingRepository creates a new GormMappingRepository
func NewGormMappingRepository(db *gorm.DB) *GormMappingRepository {
	return &GormMappingRepository{db: db}
}

// FindBySource finds the mapping for (entityType, sourceID)
func (r *GormMappingRepository) FindBySource(ctx context.Context, entityType connector.EntityType, sourceID string) (*connector.ExternalMapping, error) {
	var model models.ExternalMappingModel
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND source_id = ?", string(entityType), sourceID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, connector.ErrMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates the row for the mapping's (entityType, sourceID) pair
func (r *GormMappingRepository) Save(ctx context.Context, mapping *connector.ExternalMapping) error {
	var model models.ExternalMappingModel
	if err := model.FromDomain(mapping); err != nil {
		return err
	}

	var existing models.ExternalMappingModel
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND source_id = ?", model.EntityType, model.SourceID).
		First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return r.db.WithContext(ctx).Create(&model).Error
	}

	return r.db.WithContext(ctx).
		Model(&models.ExternalMappingModel{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"protheus_code":  model.ProtheusCode,
			"protheus_store": model.ProtheusStore,
			"extra":          model.ExtraJSON,
		}).Error
}
