package services

import (
	"Folio/internal/config"
	"Folio/internal/domain"
	"Folio/internal/models"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveFin(t *testing.T, env *testEnv) *models.Folder {
	t.Helper()
	root, err := env.rootService().ResolveRoot(context.Background(), editor, models.NewScope("fin", "", ""))
	require.NoError(t, err)
	return root
}

func TestFolderService_CreateInheritsParentScope(t *testing.T) {
	env := newTestEnv(t)
	root := resolveFin(t, env)
	service := env.folderService()

	folder, err := service.CreateFolder(context.Background(), editor, root.ID, "  Contratos  ")

	require.NoError(t, err)
	assert.Equal(t, "Contratos", folder.Name)
	assert.Equal(t, root.ID, *folder.ParentID)
	assert.Equal(t, "fin____", folder.Scope.Key())
}

func TestFolderService_CreateAllowsDuplicateSiblingNames(t *testing.T) {
	env := newTestEnv(t)
	root := resolveFin(t, env)
	service := env.folderService()

	_, err := service.CreateFolder(context.Background(), editor, root.ID, "Actas")

	require.NoError(t, err)
	count := 0
	for _, name := range names(env.children(t, root.ID)) {
		if name == "Actas" {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestFolderService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	root := resolveFin(t, env)
	service := env.folderService()
	ctx := context.Background()

	for _, name := range []string{"", "   ", "a/b", strings.Repeat("ñ", 256)} {
		_, err := service.CreateFolder(ctx, editor, root.ID, name)
		assert.ErrorIs(t, err, domain.ErrValidation, name)
	}
	_, err := service.CreateFolder(ctx, editor, root.ID, strings.Repeat("ñ", 255))
	assert.NoError(t, err)

	_, err = service.CreateFolder(ctx, editor, "", "Actas")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = service.CreateFolder(ctx, editor, "missing", "Actas")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = service.CreateFolder(ctx, viewer, root.ID, "Actas")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestFolderService_GetAndRename(t *testing.T) {
	env := newTestEnv(t)
	root := resolveFin(t, env)
	service := env.folderService()
	ctx := context.Background()
	folder, err := service.CreateFolder(ctx, editor, root.ID, "Borrador")
	require.NoError(t, err)

	renamed, err := service.RenameFolder(ctx, manager, folder.ID, "Final")
	require.NoError(t, err)
	assert.Equal(t, "Final", renamed.Name)
	assert.Equal(t, root.ID, *renamed.ParentID)

	fetched, err := service.GetFolder(ctx, viewer, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", fetched.Name)

	_, err = service.RenameFolder(ctx, editor, folder.ID, "Nope")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = service.RenameFolder(ctx, manager, "missing", "Nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = service.RenameFolder(ctx, manager, folder.ID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = service.GetFolder(ctx, viewer, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// A folder with a subfolder cannot be deleted until the subfolder is gone.
func TestScenario_DeleteRequiresEmptyFolder(t *testing.T) {
	env := newTestEnv(t)
	root := resolveFin(t, env)
	service := env.folderService()
	ctx := context.Background()
	a, err := service.CreateFolder(ctx, editor, root.ID, "A")
	require.NoError(t, err)
	b, err := service.CreateFolder(ctx, editor, a.ID, "B")
	require.NoError(t, err)

	err = service.DeleteFolder(ctx, manager, a.ID)
	assert.ErrorIs(t, err, domain.ErrFolderNotEmpty)
	_, err = env.folderRepo.FindByID(ctx, a.ID)
	assert.NoError(t, err)

	require.NoError(t, service.DeleteFolder(ctx, manager, b.ID))
	require.NoError(t, service.DeleteFolder(ctx, manager, a.ID))

	_, err = env.folderRepo.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFolderService_DeleteGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	root := resolveFin(t, env)
	orphanRoot := env.seedFolder(t, "", models.NewScope("ops", "", ""), "Empty root", nil, time.Time{})
	service := env.folderService()

	assert.ErrorIs(t, service.DeleteFolder(ctx, manager, root.ID), domain.ErrProtectedRoot)
	assert.ErrorIs(t, service.DeleteFolder(ctx, admin, orphanRoot.ID), domain.ErrProtectedRoot, "even an empty root is protected")
	assert.ErrorIs(t, service.DeleteFolder(ctx, manager, "missing"), domain.ErrNotFound)

	child := env.children(t, root.ID)[0]
	assert.ErrorIs(t, service.DeleteFolder(ctx, editor, child.ID), domain.ErrForbidden)
	assert.Equal(t, int64(13), env.countRows(t, &models.Folder{}))
}

func uploadText(t *testing.T, env *testEnv, folderID string, name string, content string) *models.File {
	t.Helper()
	file, err := env.fileService().UploadFile(context.Background(), editor, folderID, name, "text/plain", int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)
	return file
}

func TestFolderService_DeleteCascadesFiles(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Configuration) {
		// Forces the cascade across several batches.
		cfg.Reconcile.MaxBatchOps = 3
	})
	ctx := context.Background()
	root := resolveFin(t, env)
	folder, err := env.folderService().CreateFolder(ctx, editor, root.ID, "Evidencias")
	require.NoError(t, err)
	var paths []string
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		paths = append(paths, uploadText(t, env, folder.ID, name, "data-"+name).StoragePath)
	}

	require.NoError(t, env.folderService().DeleteFolder(ctx, manager, folder.ID))

	_, err = env.folderRepo.FindByID(ctx, folder.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(0), env.countRows(t, &models.File{}))
	assert.Equal(t, int64(0), env.countRows(t, &models.BlobTombstone{}))
	for _, p := range paths {
		_, statErr := os.Stat(filepath.Join(env.cfg.Storage.Path, filepath.FromSlash(p)))
		assert.True(t, os.IsNotExist(statErr), p)
	}
}

func TestFolderService_DeleteLeavesTombstonesWhenBlobStoreFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	root := resolveFin(t, env)
	folder, err := env.folderService().CreateFolder(ctx, editor, root.ID, "Evidencias")
	require.NoError(t, err)
	file := uploadText(t, env, folder.ID, "a.txt", "hello")

	broken := NewSweepService(env.tombstoneRepo, failingBlobStore{env.blobStore}, env.logService)
	service := NewFolderService(env.folderRepo, env.fileRepo, broken, env.cfg, env.logService)
	require.NoError(t, service.DeleteFolder(ctx, manager, folder.ID))

	tombstones, err := env.tombstoneRepo.FindPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tombstones, 1)
	assert.Equal(t, file.StoragePath, tombstones[0].StoragePath)
	assert.Equal(t, 1, tombstones[0].Attempts)
	assert.Contains(t, tombstones[0].LastError, errBlobUnavailable.Error())

	result, err := env.sweepService().Sweep(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Pending: 1, Deleted: 1}, result)
	assert.Equal(t, int64(0), env.countRows(t, &models.BlobTombstone{}))
}
