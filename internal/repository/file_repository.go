package repository

import (
	"Folio/internal/models"
	"context"

	"gorm.io/gorm"
)

type FileRepository interface {
	GenericRepository[models.File]
	FindByFolderID(ctx context.Context, folderID string) ([]models.File, error)
}

type FileRepositoryImpl struct {
	GenericRepository[models.File]
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &FileRepositoryImpl{
		GenericRepository: NewGenericRepository[models.File](db),
		db:                db,
	}
}

func (r *FileRepositoryImpl) FindByFolderID(ctx context.Context, folderID string) ([]models.File, error) {
	var files []models.File
	err := r.db.WithContext(ctx).Where("folder_id = ?", folderID).Order("name ASC, id ASC").Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}
