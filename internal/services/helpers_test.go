package services

import (
	"Folio/database"
	"Folio/internal/authz"
	"Folio/internal/config"
	"Folio/internal/lock"
	"Folio/internal/models"
	"Folio/internal/repository"
	"Folio/internal/storage"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	admin   = authz.System()
	manager = authz.Principal{UserID: "manager-1", Role: authz.RoleManager}
	editor  = authz.Principal{UserID: "editor-1", Role: authz.RoleEditor}
	viewer  = authz.Principal{UserID: "viewer-1", Role: authz.RoleViewer}
)

type testEnv struct {
	db            *gorm.DB
	cfg           *config.Configuration
	folderRepo    repository.FolderRepository
	fileRepo      repository.FileRepository
	tombstoneRepo repository.TombstoneRepository
	batchWriter   repository.BatchWriter
	blobStore     storage.BlobStore
	locker        *lock.LocalLocker
	logService    LogService
}

func newTestEnv(t *testing.T, configure ...func(cfg *config.Configuration)) *testEnv {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseDatabase(db) })

	cfg := config.Default()
	cfg.Storage.Path = t.TempDir()
	for _, fn := range configure {
		fn(cfg)
	}
	blobStore, err := storage.NewDiskStore(cfg.Storage.Path, "")
	require.NoError(t, err)

	return &testEnv{
		db:            db,
		cfg:           cfg,
		folderRepo:    repository.NewFolderRepository(db),
		fileRepo:      repository.NewFileRepository(db),
		tombstoneRepo: repository.NewTombstoneRepository(db),
		batchWriter:   repository.NewBatchWriter(db),
		blobStore:     blobStore,
		locker:        lock.NewLocalLocker(),
		logService:    NewDiscardLogService(),
	}
}

func (e *testEnv) rootService() RootService {
	return NewRootService(e.folderRepo, e.cfg, e.logService)
}

func (e *testEnv) treeService() TreeService {
	return NewTreeService(e.rootService(), e.folderRepo, e.cfg)
}

func (e *testEnv) reconcileService() ReconcileService {
	return NewReconcileService(e.folderRepo, e.fileRepo, e.locker, e.cfg, e.logService)
}

func (e *testEnv) sweepService() SweepService {
	return NewSweepService(e.tombstoneRepo, e.blobStore, e.logService)
}

func (e *testEnv) folderService() FolderService {
	return NewFolderService(e.folderRepo, e.fileRepo, e.sweepService(), e.cfg, e.logService)
}

func (e *testEnv) fileService() FileService {
	return NewFileService(e.folderRepo, e.fileRepo, e.batchWriter, e.blobStore, e.sweepService(), e.logService)
}

// seedFolder inserts a folder as-is; CreatedAt is kept when set.
func (e *testEnv) seedFolder(t *testing.T, id string, scope models.Scope, name string, parentID *string, createdAt time.Time) *models.Folder {
	t.Helper()
	folder := &models.Folder{
		BaseModel: models.BaseModel{ID: id, CreatedAt: createdAt},
		Scope:     scope,
		Name:      name,
		ParentID:  parentID,
	}
	require.NoError(t, e.folderRepo.Create(context.Background(), folder))
	return folder
}

func (e *testEnv) roots(t *testing.T, scope models.Scope) []models.Folder {
	t.Helper()
	roots, err := e.folderRepo.Query(context.Background(), repository.FolderFilter{Scope: &scope, RootsOnly: true})
	require.NoError(t, err)
	return roots
}

func (e *testEnv) children(t *testing.T, parentID string) []models.Folder {
	t.Helper()
	children, err := e.folderRepo.Query(context.Background(), repository.FolderFilter{ParentID: &parentID})
	require.NoError(t, err)
	return children
}

func (e *testEnv) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(model).Count(&count).Error)
	return count
}

func strPtr(s string) *string { return &s }

func names(folders []models.Folder) []string {
	result := make([]string, 0, len(folders))
	for _, folder := range folders {
		result = append(result, folder.Name)
	}
	return result
}

// racingFolderRepo holds the first two root lookups until both have read, so
// both callers see an empty store before either writes.
type racingFolderRepo struct {
	repository.FolderRepository
	barrier  sync.WaitGroup
	arrivals atomic.Int32
}

func newRacingFolderRepo(inner repository.FolderRepository) *racingFolderRepo {
	r := &racingFolderRepo{FolderRepository: inner}
	r.barrier.Add(2)
	return r
}

func (r *racingFolderRepo) Query(ctx context.Context, filter repository.FolderFilter) ([]models.Folder, error) {
	folders, err := r.FolderRepository.Query(ctx, filter)
	if filter.RootsOnly && r.arrivals.Add(1) <= 2 {
		r.barrier.Done()
		r.barrier.Wait()
	}
	return folders, err
}

// flakyFolderRepo fails the failOn-th batch commit.
type flakyFolderRepo struct {
	repository.FolderRepository
	failOn  int
	commits int
}

var errStoreUnavailable = errors.New("store unavailable")

func (r *flakyFolderRepo) Commit(ctx context.Context, batch *repository.Batch) error {
	r.commits++
	if r.commits == r.failOn {
		return errStoreUnavailable
	}
	return r.FolderRepository.Commit(ctx, batch)
}

// failingBlobStore stores normally but refuses deletes.
type failingBlobStore struct {
	storage.BlobStore
}

var errBlobUnavailable = errors.New("blob store unavailable")

func (s failingBlobStore) Delete(context.Context, string) error {
	return errBlobUnavailable
}
