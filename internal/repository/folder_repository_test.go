package repository

import (
	"Folio/database"
	"Folio/internal/domain"
	"Folio/internal/models"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseDatabase(db) })
	return db
}

func strPtr(s string) *string { return &s }

func TestFolderRepository_CreateAssignsID(t *testing.T) {
	repo := NewFolderRepository(setupTestDB(t))
	folder := &models.Folder{Name: "Root", Scope: models.NewScope("fin", "", "")}

	err := repo.Create(context.Background(), folder)

	assert.NoError(t, err)
	assert.NotEmpty(t, folder.ID)
	assert.False(t, folder.CreatedAt.IsZero())
}

func TestFolderRepository_FindByIDNotFound(t *testing.T) {
	repo := NewFolderRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFolderRepository_QueryByScopeAndParent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFolderRepository(db)
	ctx := context.Background()
	fin := models.NewScope("fin", "", "")
	ops := models.NewScope("ops", "", "")

	finRoot := &models.Folder{Name: "fin", Scope: fin}
	require.NoError(t, repo.Create(ctx, finRoot))
	require.NoError(t, repo.Create(ctx, &models.Folder{Name: "child", Scope: fin, ParentID: &finRoot.ID}))
	require.NoError(t, repo.Create(ctx, &models.Folder{Name: "ops", Scope: ops}))
	// Legacy record written with an empty string instead of null.
	legacy := &models.Folder{Name: "legacy", Scope: models.Scope{AreaID: strPtr("fin"), ProcesoID: strPtr("")}}
	require.NoError(t, db.Create(legacy).Error)

	roots, err := repo.Query(ctx, FolderFilter{Scope: &fin, RootsOnly: true})
	require.NoError(t, err)
	assert.Len(t, roots, 2)

	all, err := repo.Query(ctx, FolderFilter{Scope: &fin})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	children, err := repo.Query(ctx, FolderFilter{ParentID: &finRoot.ID})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "child", children[0].Name)

	everyRoot, err := repo.Query(ctx, FolderFilter{RootsOnly: true})
	require.NoError(t, err)
	assert.Len(t, everyRoot, 3)
}

func TestFolderRepository_QueryOrdersByCreatedAt(t *testing.T) {
	repo := NewFolderRepository(setupTestDB(t))
	ctx := context.Background()
	scope := models.NewScope("fin", "", "")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	later := &models.Folder{BaseModel: models.BaseModel{ID: "b", CreatedAt: base.Add(time.Hour)}, Name: "later", Scope: scope}
	earlier := &models.Folder{BaseModel: models.BaseModel{ID: "a", CreatedAt: base}, Name: "earlier", Scope: scope}
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, earlier))

	roots, err := repo.Query(ctx, FolderFilter{Scope: &scope, RootsOnly: true})
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "earlier", roots[0].Name)
}

func TestFolderRepository_CreateAt(t *testing.T) {
	repo := NewFolderRepository(setupTestDB(t))
	ctx := context.Background()
	scope := models.NewScope("fin", "", "")

	first := &models.Folder{BaseModel: models.BaseModel{ID: scope.RootID()}, Name: "first", Scope: scope}
	require.NoError(t, repo.CreateAt(ctx, first))

	second := &models.Folder{BaseModel: models.BaseModel{ID: scope.RootID()}, Name: "second", Scope: scope}
	err := repo.CreateAt(ctx, second)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	stored, err := repo.FindByID(ctx, scope.RootID())
	require.NoError(t, err)
	assert.Equal(t, "first", stored.Name)

	err = repo.CreateAt(ctx, &models.Folder{Name: "no id"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFolderRepository_UpdateFieldsAndCountChildren(t *testing.T) {
	repo := NewFolderRepository(setupTestDB(t))
	ctx := context.Background()
	scope := models.NewScope("fin", "", "")
	root := &models.Folder{Name: "root", Scope: scope}
	require.NoError(t, repo.Create(ctx, root))
	require.NoError(t, repo.Create(ctx, &models.Folder{Name: "a", Scope: scope, ParentID: &root.ID}))
	require.NoError(t, repo.Create(ctx, &models.Folder{Name: "b", Scope: scope, ParentID: &root.ID}))

	count, err := repo.CountChildren(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.UpdateFields(ctx, root.ID, map[string]interface{}{"name": "renamed"}))
	stored, err := repo.FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", stored.Name)

	err = repo.UpdateFields(ctx, "missing", map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFolderRepository_Delete(t *testing.T) {
	repo := NewFolderRepository(setupTestDB(t))
	ctx := context.Background()
	folder := &models.Folder{Name: "To Delete"}
	require.NoError(t, repo.Create(ctx, folder))

	require.NoError(t, repo.Delete(ctx, folder.ID))

	_, err := repo.FindByID(ctx, folder.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, repo.Delete(ctx, folder.ID))
}
