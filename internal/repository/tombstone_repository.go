package repository

import (
	"Folio/internal/models"
	"context"

	"gorm.io/gorm"
)

type TombstoneRepository interface {
	GenericRepository[models.BlobTombstone]
	FindPending(ctx context.Context, limit int) ([]models.BlobTombstone, error)
	RecordFailure(ctx context.Context, id string, cause error) error
}

type TombstoneRepositoryImpl struct {
	GenericRepository[models.BlobTombstone]
	db *gorm.DB
}

func NewTombstoneRepository(db *gorm.DB) TombstoneRepository {
	return &TombstoneRepositoryImpl{
		GenericRepository: NewGenericRepository[models.BlobTombstone](db),
		db:                db,
	}
}

// FindPending returns the oldest tombstones, least-attempted first.
func (r *TombstoneRepositoryImpl) FindPending(ctx context.Context, limit int) ([]models.BlobTombstone, error) {
	var tombstones []models.BlobTombstone
	query := r.db.WithContext(ctx).Order("attempts ASC, created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&tombstones).Error; err != nil {
		return nil, err
	}
	return tombstones, nil
}

func (r *TombstoneRepositoryImpl) RecordFailure(ctx context.Context, id string, cause error) error {
	return r.db.WithContext(ctx).Model(&models.BlobTombstone{}).Where("id = ?", id).Updates(map[string]interface{}{
		"attempts":   gorm.Expr("attempts + 1"),
		"last_error": cause.Error(),
	}).Error
}
