package services

import (
	"Folio/internal/authz"
	"Folio/internal/helpers"
	"Folio/internal/models"
	"Folio/internal/repository"
	"Folio/internal/storage"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type FileService interface {
	UploadFile(ctx context.Context, principal authz.Principal, folderID string, name string, contentType string, size int64, body io.Reader) (*models.File, error)
	ListFiles(ctx context.Context, principal authz.Principal, folderID string) ([]models.File, error)
	GetFile(ctx context.Context, principal authz.Principal, id string) (*models.File, error)
	DownloadURL(ctx context.Context, principal authz.Principal, id string) (string, error)
	DeleteFile(ctx context.Context, principal authz.Principal, id string) error
}

type fileServiceImpl struct {
	folderRepo   repository.FolderRepository
	fileRepo     repository.FileRepository
	batchWriter  repository.BatchWriter
	blobStore    storage.BlobStore
	sweepService SweepService
	logService   LogService
}

func NewFileService(
	folderRepo repository.FolderRepository,
	fileRepo repository.FileRepository,
	batchWriter repository.BatchWriter,
	blobStore storage.BlobStore,
	sweepService SweepService,
	logService LogService,
) FileService {
	return &fileServiceImpl{
		folderRepo:   folderRepo,
		fileRepo:     fileRepo,
		batchWriter:  batchWriter,
		blobStore:    blobStore,
		sweepService: sweepService,
		logService:   logService,
	}
}

// BlobPath is <scopeKey>/<folderId>/<uuid>-<name>.
func BlobPath(scope models.Scope, folderID string, name string) string {
	return path.Join(
		storage.SanitizeName(scope.Key()),
		storage.SanitizeName(folderID),
		uuid.NewString()+"-"+storage.SanitizeName(name),
	)
}

func (s *fileServiceImpl) UploadFile(ctx context.Context, principal authz.Principal, folderID string, name string, contentType string, size int64, body io.Reader) (*models.File, error) {
	if err := authz.Authorize(principal, authz.ActionWrite); err != nil {
		return nil, err
	}
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	folder, err := s.folderRepo.FindByID(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("folder: %w", err)
	}

	contentType = helpers.ContentTypeFor(name, contentType)
	info, err := s.blobStore.Put(ctx, BlobPath(folder.Scope, folder.ID, name), body, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}
	file := &models.File{
		Scope:       folder.Scope.Normalize(),
		FolderID:    folder.ID,
		Name:        name,
		ContentType: contentType,
		Size:        info.Size,
		SHA256:      info.SHA256,
		StoragePath: info.Path,
		DownloadURL: info.DownloadURL,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		if deleteErr := s.blobStore.Delete(ctx, info.Path); deleteErr != nil {
			s.logService.Log.WithFields(logrus.Fields{
				"path":  info.Path,
				"error": deleteErr.Error(),
			}).Error("failed to remove blob after record insert failed")
		}
		return nil, err
	}
	return file, nil
}

func (s *fileServiceImpl) ListFiles(ctx context.Context, principal authz.Principal, folderID string) ([]models.File, error) {
	if err := authz.Authorize(principal, authz.ActionRead); err != nil {
		return nil, err
	}
	if _, err := s.folderRepo.FindByID(ctx, folderID); err != nil {
		return nil, fmt.Errorf("folder: %w", err)
	}
	return s.fileRepo.FindByFolderID(ctx, folderID)
}

func (s *fileServiceImpl) GetFile(ctx context.Context, principal authz.Principal, id string) (*models.File, error) {
	if err := authz.Authorize(principal, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.fileRepo.FindByID(ctx, id)
}

// DownloadURL returns a fresh link; presigned links stored on the record may
// have expired.
func (s *fileServiceImpl) DownloadURL(ctx context.Context, principal authz.Principal, id string) (string, error) {
	file, err := s.GetFile(ctx, principal, id)
	if err != nil {
		return "", err
	}
	return s.blobStore.URL(ctx, file.StoragePath)
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, principal authz.Principal, id string) error {
	if err := authz.Authorize(principal, authz.ActionManage); err != nil {
		return err
	}
	file, err := s.fileRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	tombstone := &models.BlobTombstone{StoragePath: file.StoragePath}
	batch := repository.NewBatch().DeleteFile(file.ID).CreateTombstone(tombstone)
	if err := s.batchWriter.Commit(ctx, batch); err != nil {
		return fmt.Errorf("delete file %s: %w", id, err)
	}
	if result := s.sweepService.Reap(ctx, []models.BlobTombstone{*tombstone}); result.Failed > 0 {
		s.logService.Log.WithFields(logrus.Fields{
			"file": id,
			"path": file.StoragePath,
		}).Warn("blob left for the sweep")
	}
	return nil
}
