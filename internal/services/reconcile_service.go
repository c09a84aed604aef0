package services

import (
	"Folio/internal/authz"
	"Folio/internal/config"
	"Folio/internal/domain"
	"Folio/internal/lock"
	"Folio/internal/models"
	"Folio/internal/repository"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// DuplicateGroup is a scope with more than one parentless folder.
type DuplicateGroup struct {
	ScopeKey string       `json:"scopeKey"`
	Scope    models.Scope `json:"scope"`
	RootIDs  []string     `json:"rootIds"`
	WinnerID string       `json:"winnerId"`
}

type ScopeResult struct {
	ScopeKey          string   `json:"scopeKey"`
	WinnerID          string   `json:"winnerId"`
	PromotedFrom      string   `json:"promotedFrom,omitempty"`
	MergedRootIDs     []string `json:"mergedRootIds"`
	ReparentedFolders int      `json:"reparentedFolders"`
	ReparentedFiles   int      `json:"reparentedFiles"`
	Writes            int      `json:"writes"`
	Skipped           bool     `json:"skipped,omitempty"`
}

func (r ScopeResult) Promoted() bool {
	return r.PromotedFrom != ""
}

type Report struct {
	GroupsFound int           `json:"groupsFound"`
	Scopes      []ScopeResult `json:"scopes"`
	Writes      int           `json:"writes"`
}

func (r *Report) add(result ScopeResult) {
	r.Scopes = append(r.Scopes, result)
	r.Writes += result.Writes
}

type ReconcileService interface {
	ReconcileScope(ctx context.Context, principal authz.Principal, scope models.Scope) (*Report, error)
	ReconcileAll(ctx context.Context, principal authz.Principal) (*Report, error)
	// Scan lists duplicate-root groups without writing anything.
	Scan(ctx context.Context, principal authz.Principal) ([]DuplicateGroup, error)
}

type reconcileServiceImpl struct {
	folderRepo    repository.FolderRepository
	fileRepo      repository.FileRepository
	locker        lock.Locker
	configuration *config.Configuration
	logService    LogService
}

func NewReconcileService(
	folderRepo repository.FolderRepository,
	fileRepo repository.FileRepository,
	locker lock.Locker,
	configuration *config.Configuration,
	logService LogService,
) ReconcileService {
	return &reconcileServiceImpl{
		folderRepo:    folderRepo,
		fileRepo:      fileRepo,
		locker:        locker,
		configuration: configuration,
		logService:    logService,
	}
}

func (s *reconcileServiceImpl) ReconcileScope(ctx context.Context, principal authz.Principal, scope models.Scope) (*Report, error) {
	if err := authz.Authorize(principal, authz.ActionReconcile); err != nil {
		return nil, err
	}
	scope = scope.Normalize()
	report := &Report{Scopes: []ScopeResult{}}

	roots, err := s.folderRepo.Query(ctx, repository.FolderFilter{Scope: &scope, RootsOnly: true})
	if err != nil {
		return nil, fmt.Errorf("query roots for %s: %w", scope.Key(), err)
	}
	if len(roots) < 2 {
		return report, nil
	}
	report.GroupsFound = 1

	result, err := s.reconcileGroup(ctx, scope)
	if err != nil {
		return report, err
	}
	report.add(result)
	return report, nil
}

func (s *reconcileServiceImpl) ReconcileAll(ctx context.Context, principal authz.Principal) (*Report, error) {
	if err := authz.Authorize(principal, authz.ActionReconcile); err != nil {
		return nil, err
	}
	groups, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	report := &Report{GroupsFound: len(groups), Scopes: []ScopeResult{}}
	for _, group := range groups {
		result, err := s.reconcileGroup(ctx, group.Scope)
		if errors.Is(err, domain.ErrReconcileInProgress) {
			s.logService.Log.WithFields(logrus.Fields{
				"job":   "reconcile",
				"scope": group.ScopeKey,
			}).Info("scope is being reconciled elsewhere, skipping")
			report.add(ScopeResult{ScopeKey: group.ScopeKey, MergedRootIDs: []string{}, Skipped: true})
			continue
		}
		if err != nil {
			return report, err
		}
		report.add(result)
	}
	return report, nil
}

func (s *reconcileServiceImpl) Scan(ctx context.Context, principal authz.Principal) ([]DuplicateGroup, error) {
	if err := authz.Authorize(principal, authz.ActionReconcile); err != nil {
		return nil, err
	}
	return s.scan(ctx)
}

func (s *reconcileServiceImpl) scan(ctx context.Context) ([]DuplicateGroup, error) {
	roots, err := s.folderRepo.Query(ctx, repository.FolderFilter{RootsOnly: true})
	if err != nil {
		return nil, fmt.Errorf("query roots: %w", err)
	}
	byKey := make(map[string][]models.Folder)
	for _, root := range roots {
		key := root.Scope.Key()
		byKey[key] = append(byKey[key], root)
	}

	groups := []DuplicateGroup{}
	for key, members := range byKey {
		if len(members) < 2 {
			continue
		}
		scope := members[0].Scope.Normalize()
		winner, _ := selectWinner(members, scope.RootID())
		ids := make([]string, 0, len(members))
		for _, member := range members {
			ids = append(ids, member.ID)
		}
		groups = append(groups, DuplicateGroup{ScopeKey: key, Scope: scope, RootIDs: ids, WinnerID: winner.ID})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ScopeKey < groups[j].ScopeKey })
	return groups, nil
}

// reconcileGroup merges every root of the scope into the deterministic-id
// root while holding the scope's lease. Roots are re-read under the lease.
func (s *reconcileServiceImpl) reconcileGroup(ctx context.Context, scope models.Scope) (ScopeResult, error) {
	scopeKey := scope.Key()
	result := ScopeResult{ScopeKey: scopeKey, MergedRootIDs: []string{}}

	release, err := s.locker.Acquire(ctx, scopeKey, s.configuration.Reconcile.LeaseTTL)
	if err != nil {
		return result, err
	}
	defer release()

	roots, err := s.folderRepo.Query(ctx, repository.FolderFilter{Scope: &scope, RootsOnly: true})
	if err != nil {
		return result, fmt.Errorf("query roots for %s: %w", scopeKey, err)
	}
	if len(roots) < 2 {
		if len(roots) == 1 {
			result.WinnerID = roots[0].ID
		}
		return result, nil
	}

	canonicalID := scope.RootID()
	winner, losers := selectWinner(roots, canonicalID)
	result.WinnerID = canonicalID

	if winner.ID != canonicalID {
		promoted := winner
		promoted.ID = canonicalID
		promoted.Scope = scope
		promoted.ParentID = nil
		if err := s.mergeInto(ctx, winner, canonicalID, &promoted, &result); err != nil {
			return result, fmt.Errorf("promote %s to %s: %w", winner.ID, canonicalID, err)
		}
		result.PromotedFrom = winner.ID
	}

	for _, loser := range losers {
		if err := s.mergeInto(ctx, loser, canonicalID, nil, &result); err != nil {
			return result, fmt.Errorf("merge %s into %s: %w", loser.ID, canonicalID, err)
		}
		result.MergedRootIDs = append(result.MergedRootIDs, loser.ID)
	}

	s.logService.Log.WithFields(logrus.Fields{
		"job":      "reconcile",
		"scope":    scopeKey,
		"winner":   canonicalID,
		"promoted": result.Promoted(),
		"merged":   len(result.MergedRootIDs),
		"writes":   result.Writes,
	}).Info("duplicate roots reconciled")
	return result, nil
}

// mergeInto moves the direct children and files of from under targetID and
// deletes from. create, when set, is written first. Batches are bounded by
// reconcile.max_batch_ops and the delete always goes in the last one, so an
// interrupted merge leaves from in place for the next run.
func (s *reconcileServiceImpl) mergeInto(ctx context.Context, from models.Folder, targetID string, create *models.Folder, result *ScopeResult) error {
	children, err := s.folderRepo.Query(ctx, repository.FolderFilter{ParentID: &from.ID})
	if err != nil {
		return err
	}
	files, err := s.fileRepo.FindByFolderID(ctx, from.ID)
	if err != nil {
		return err
	}

	maxOps := s.configuration.Reconcile.MaxBatchOps
	batch := repository.NewBatch()
	flush := func() error {
		if err := s.folderRepo.Commit(ctx, batch); err != nil {
			return err
		}
		result.Writes += batch.Len()
		batch = repository.NewBatch()
		return nil
	}
	flushIfFull := func() error {
		if batch.Len() >= maxOps {
			return flush()
		}
		return nil
	}

	if create != nil {
		batch.CreateFolder(create)
	}
	for _, child := range children {
		if child.ID == targetID {
			continue
		}
		if err := flushIfFull(); err != nil {
			return err
		}
		batch.UpdateFolder(child.ID, map[string]interface{}{"parent_id": targetID})
		result.ReparentedFolders++
	}
	for _, file := range files {
		if err := flushIfFull(); err != nil {
			return err
		}
		batch.UpdateFile(file.ID, map[string]interface{}{"folder_id": targetID})
		result.ReparentedFiles++
	}
	if err := flushIfFull(); err != nil {
		return err
	}
	batch.DeleteFolder(from.ID)
	return flush()
}

// selectWinner picks the root that survives: the deterministic id when
// present, otherwise the earliest createdAt with the smallest id breaking ties.
func selectWinner(roots []models.Folder, deterministicID string) (models.Folder, []models.Folder) {
	ordered := append([]models.Folder(nil), roots...)
	sortByCreation(ordered)
	winnerIndex := 0
	for i := range ordered {
		if ordered[i].ID == deterministicID {
			winnerIndex = i
			break
		}
	}
	winner := ordered[winnerIndex]
	losers := make([]models.Folder, 0, len(ordered)-1)
	losers = append(losers, ordered[:winnerIndex]...)
	losers = append(losers, ordered[winnerIndex+1:]...)
	return winner, losers
}

func sortByCreation(folders []models.Folder) {
	sort.SliceStable(folders, func(i, j int) bool {
		if !folders[i].CreatedAt.Equal(folders[j].CreatedAt) {
			return folders[i].CreatedAt.Before(folders[j].CreatedAt)
		}
		return folders[i].ID < folders[j].ID
	})
}
