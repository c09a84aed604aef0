package services

import (
	"Folio/internal/authz"
	"Folio/internal/config"
	"Folio/internal/domain"
	"Folio/internal/models"
	"Folio/internal/repository"
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sirupsen/logrus"
)

type FolderService interface {
	CreateFolder(ctx context.Context, principal authz.Principal, parentID string, name string) (*models.Folder, error)
	GetFolder(ctx context.Context, principal authz.Principal, id string) (*models.Folder, error)
	RenameFolder(ctx context.Context, principal authz.Principal, id string, name string) (*models.Folder, error)
	DeleteFolder(ctx context.Context, principal authz.Principal, id string) error
}

type folderServiceImpl struct {
	folderRepo    repository.FolderRepository
	fileRepo      repository.FileRepository
	sweepService  SweepService
	configuration *config.Configuration
	logService    LogService
}

func NewFolderService(
	folderRepo repository.FolderRepository,
	fileRepo repository.FileRepository,
	sweepService SweepService,
	configuration *config.Configuration,
	logService LogService,
) FolderService {
	return &folderServiceImpl{
		folderRepo:    folderRepo,
		fileRepo:      fileRepo,
		sweepService:  sweepService,
		configuration: configuration,
		logService:    logService,
	}
}

var noSlash = validation.NewStringRuleWithError(
	func(s string) bool { return !strings.Contains(s, "/") },
	validation.NewError("validation_no_slash", "must not contain '/'"),
)

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := validation.Validate(name, validation.Required, validation.RuneLength(1, 255), noSlash); err != nil {
		return "", fmt.Errorf("%w: name %v", domain.ErrValidation, err)
	}
	return name, nil
}

// CreateFolder adds a child under parentID in the parent's scope. Sibling
// names are not required to be unique.
func (s *folderServiceImpl) CreateFolder(ctx context.Context, principal authz.Principal, parentID string, name string) (*models.Folder, error) {
	if err := authz.Authorize(principal, authz.ActionWrite); err != nil {
		return nil, err
	}
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if parentID == "" {
		return nil, fmt.Errorf("%w: parentId is required", domain.ErrValidation)
	}
	parent, err := s.folderRepo.FindByID(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("parent folder: %w", err)
	}
	folder := &models.Folder{Scope: parent.Scope.Normalize(), Name: name, ParentID: &parent.ID}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *folderServiceImpl) GetFolder(ctx context.Context, principal authz.Principal, id string) (*models.Folder, error) {
	if err := authz.Authorize(principal, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.folderRepo.FindByID(ctx, id)
}

func (s *folderServiceImpl) RenameFolder(ctx context.Context, principal authz.Principal, id string, name string) (*models.Folder, error) {
	if err := authz.Authorize(principal, authz.ActionManage); err != nil {
		return nil, err
	}
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if err := s.folderRepo.UpdateFields(ctx, id, map[string]interface{}{"name": name}); err != nil {
		return nil, err
	}
	return s.folderRepo.FindByID(ctx, id)
}

// DeleteFolder removes a leaf folder together with its files. Roots and
// folders with subfolders are refused before anything is written.
func (s *folderServiceImpl) DeleteFolder(ctx context.Context, principal authz.Principal, id string) error {
	if err := authz.Authorize(principal, authz.ActionManage); err != nil {
		return err
	}
	folder, err := s.folderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if folder.IsRoot() {
		return fmt.Errorf("folder %s: %w", id, domain.ErrProtectedRoot)
	}
	children, err := s.folderRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return fmt.Errorf("folder %s has %d subfolders: %w", id, children, domain.ErrFolderNotEmpty)
	}

	files, err := s.fileRepo.FindByFolderID(ctx, id)
	if err != nil {
		return err
	}

	maxOps := s.configuration.Reconcile.MaxBatchOps
	var committed []models.BlobTombstone
	var pending []*models.BlobTombstone
	batch := repository.NewBatch()
	flush := func() error {
		if err := s.folderRepo.Commit(ctx, batch); err != nil {
			return err
		}
		for _, tombstone := range pending {
			committed = append(committed, *tombstone)
		}
		pending = nil
		batch = repository.NewBatch()
		return nil
	}

	// A file delete and its tombstone always share a batch.
	for _, file := range files {
		if batch.Len()+2 > maxOps {
			if err := flush(); err != nil {
				return s.abortDelete(ctx, id, committed, err)
			}
		}
		tombstone := &models.BlobTombstone{StoragePath: file.StoragePath}
		batch.DeleteFile(file.ID)
		batch.CreateTombstone(tombstone)
		pending = append(pending, tombstone)
	}
	if batch.Len()+1 > maxOps {
		if err := flush(); err != nil {
			return s.abortDelete(ctx, id, committed, err)
		}
	}
	batch.DeleteFolder(id)
	if err := flush(); err != nil {
		return s.abortDelete(ctx, id, committed, err)
	}

	result := s.sweepService.Reap(ctx, committed)
	s.logService.Log.WithFields(logrus.Fields{
		"folder":       id,
		"files":        len(files),
		"blobsDeleted": result.Deleted,
		"blobsFailed":  result.Failed,
	}).Info("folder deleted")
	return nil
}

// abortDelete still reaps blobs whose records were removed by earlier batches.
func (s *folderServiceImpl) abortDelete(ctx context.Context, id string, committed []models.BlobTombstone, cause error) error {
	if len(committed) > 0 {
		s.sweepService.Reap(ctx, committed)
	}
	return fmt.Errorf("delete folder %s: %w", id, cause)
}
