package services

import (
	"Folio/internal/authz"
	"Folio/internal/config"
	"Folio/internal/domain"
	"Folio/internal/models"
	"Folio/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

type RootService interface {
	// ResolveRoot returns the scope's root folder, creating it together with
	// the default child folders on first access. Reading needs read; the
	// first access, which writes, needs write.
	ResolveRoot(ctx context.Context, principal authz.Principal, scope models.Scope) (*models.Folder, error)
}

type rootServiceImpl struct {
	folderRepo    repository.FolderRepository
	configuration *config.Configuration
	logService    LogService
}

func NewRootService(folderRepo repository.FolderRepository, configuration *config.Configuration, logService LogService) RootService {
	return &rootServiceImpl{folderRepo: folderRepo, configuration: configuration, logService: logService}
}

func (s *rootServiceImpl) ResolveRoot(ctx context.Context, principal authz.Principal, scope models.Scope) (*models.Folder, error) {
	if err := authz.Authorize(principal, authz.ActionRead); err != nil {
		return nil, err
	}
	scope = scope.Normalize()

	existing, err := s.findRoot(ctx, scope)
	if err != nil || existing != nil {
		return existing, err
	}
	if err := authz.Authorize(principal, authz.ActionWrite); err != nil {
		return nil, fmt.Errorf("scope %s has no root yet: %w", scope.Key(), err)
	}

	if s.configuration.Repository.RootCreation == config.RootCreationDeterministic {
		return s.createDeterministic(ctx, scope)
	}
	return s.createProbe(ctx, scope)
}

func (s *rootServiceImpl) findRoot(ctx context.Context, scope models.Scope) (*models.Folder, error) {
	roots, err := s.folderRepo.Query(ctx, repository.FolderFilter{Scope: &scope, RootsOnly: true})
	if err != nil {
		return nil, fmt.Errorf("query roots for %s: %w", scope.Key(), err)
	}
	if len(roots) == 0 {
		return nil, nil
	}
	winner, losers := selectWinner(roots, scope.RootID())
	if len(losers) > 0 {
		s.logService.Log.WithFields(logrus.Fields{
			"scope":  scope.Key(),
			"roots":  len(roots),
			"winner": winner.ID,
		}).Warn("duplicate root folders detected")
	}
	return &winner, nil
}

// createProbe inserts a root with a store-assigned id. Two callers that both
// saw no root each create one; the reconciler merges them later.
func (s *rootServiceImpl) createProbe(ctx context.Context, scope models.Scope) (*models.Folder, error) {
	root := &models.Folder{Scope: scope, Name: s.configuration.Repository.RootName}
	if err := s.folderRepo.Create(ctx, root); err != nil {
		return nil, fmt.Errorf("create root for %s: %w", scope.Key(), err)
	}
	if err := s.createDefaultChildren(ctx, root); err != nil {
		return nil, err
	}
	return root, nil
}

func (s *rootServiceImpl) createDeterministic(ctx context.Context, scope models.Scope) (*models.Folder, error) {
	root := &models.Folder{
		BaseModel: models.BaseModel{ID: scope.RootID()},
		Scope:     scope,
		Name:      s.configuration.Repository.RootName,
	}
	err := s.folderRepo.CreateAt(ctx, root)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return s.folderRepo.FindByID(ctx, root.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("create root for %s: %w", scope.Key(), err)
	}
	if err := s.createDefaultChildren(ctx, root); err != nil {
		return nil, err
	}
	return root, nil
}

func (s *rootServiceImpl) createDefaultChildren(ctx context.Context, root *models.Folder) error {
	names := sortNames(s.configuration.Repository.Locale, s.configuration.Repository.DefaultFolders)
	batch := repository.NewBatch()
	for _, name := range names {
		batch.CreateFolder(&models.Folder{Scope: root.Scope, Name: name, ParentID: &root.ID})
	}
	if err := s.folderRepo.Commit(ctx, batch); err != nil {
		return fmt.Errorf("create default folders under %s: %w", root.ID, err)
	}
	s.logService.Log.WithFields(logrus.Fields{
		"scope":   root.Scope.Key(),
		"root":    root.ID,
		"folders": batch.Len(),
	}).Info("root folder created")
	return nil
}
