package repository

import (
	"Folio/internal/domain"
	"Folio/internal/models"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FolderFilter holds equality filters. A nil Scope matches every scope; a
// non-nil Scope matches exactly, with null fields also matching legacy empty
// strings.
type FolderFilter struct {
	Scope     *models.Scope
	RootsOnly bool
	ParentID  *string
}

type FolderRepository interface {
	GenericRepository[models.Folder]
	BatchWriter
	Query(ctx context.Context, filter FolderFilter) ([]models.Folder, error)
	CreateAt(ctx context.Context, folder *models.Folder) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	CountChildren(ctx context.Context, id string) (int64, error)
}

type FolderRepositoryImpl struct {
	GenericRepository[models.Folder]
	BatchWriter
	db *gorm.DB
}

func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &FolderRepositoryImpl{
		GenericRepository: NewGenericRepository[models.Folder](db),
		BatchWriter:       NewBatchWriter(db),
		db:                db,
	}
}

func (r *FolderRepositoryImpl) Query(ctx context.Context, filter FolderFilter) ([]models.Folder, error) {
	var folders []models.Folder
	query := r.db.WithContext(ctx).Model(&models.Folder{})
	if filter.Scope != nil {
		query = whereScope(query, filter.Scope.Normalize())
	}
	if filter.RootsOnly {
		query = query.Where("parent_id IS NULL")
	}
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	}
	err := query.Order("created_at ASC, id ASC").Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

// CreateAt inserts a folder under the id the caller chose. An existing
// record with that id yields domain.ErrAlreadyExists and is left untouched.
func (r *FolderRepositoryImpl) CreateAt(ctx context.Context, folder *models.Folder) error {
	if folder.ID == "" {
		return fmt.Errorf("%w: deterministic create requires an id", domain.ErrValidation)
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(folder)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrAlreadyExists)
	}
	return nil
}

func (r *FolderRepositoryImpl) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Folder{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *FolderRepositoryImpl) CountChildren(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Folder{}).Where("parent_id = ?", id).Count(&count).Error
	return count, err
}

func whereScope(query *gorm.DB, scope models.Scope) *gorm.DB {
	query = whereNullable(query, "area_id", scope.AreaID)
	query = whereNullable(query, "proceso_id", scope.ProcesoID)
	return whereNullable(query, "subproceso_id", scope.SubprocesoID)
}

// whereNullable compares trimmed values, matching Scope.Normalize.
func whereNullable(query *gorm.DB, column string, value *string) *gorm.DB {
	if value == nil {
		return query.Where(fmt.Sprintf("(%s IS NULL OR TRIM(%s) = '')", column, column))
	}
	return query.Where(fmt.Sprintf("TRIM(%s) = ?", column), *value)
}
