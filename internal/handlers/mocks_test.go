package handlers

import (
	"Folio/internal/authz"
	"Folio/internal/models"
	"Folio/internal/services"
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

// newTestApp returns an app whose requests run as principal.
func newTestApp(principal authz.Principal) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(principalKey, principal)
		return c.Next()
	})
	return app
}

type MockRootService struct {
	mock.Mock
}

func (m *MockRootService) ResolveRoot(ctx context.Context, principal authz.Principal, scope models.Scope) (*models.Folder, error) {
	args := m.Called(ctx, principal, scope)
	if folder, ok := args.Get(0).(*models.Folder); ok {
		return folder, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTreeService struct {
	mock.Mock
}

func (m *MockTreeService) Snapshot(ctx context.Context, principal authz.Principal, scope models.Scope) (*services.Tree, error) {
	args := m.Called(ctx, principal, scope)
	if tree, ok := args.Get(0).(*services.Tree); ok {
		return tree, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockReconcileService struct {
	mock.Mock
}

func (m *MockReconcileService) ReconcileScope(ctx context.Context, principal authz.Principal, scope models.Scope) (*services.Report, error) {
	args := m.Called(ctx, principal, scope)
	if report, ok := args.Get(0).(*services.Report); ok {
		return report, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReconcileService) ReconcileAll(ctx context.Context, principal authz.Principal) (*services.Report, error) {
	args := m.Called(ctx, principal)
	if report, ok := args.Get(0).(*services.Report); ok {
		return report, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReconcileService) Scan(ctx context.Context, principal authz.Principal) ([]services.DuplicateGroup, error) {
	args := m.Called(ctx, principal)
	if groups, ok := args.Get(0).([]services.DuplicateGroup); ok {
		return groups, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockFolderService struct {
	mock.Mock
}

func (m *MockFolderService) CreateFolder(ctx context.Context, principal authz.Principal, parentID string, name string) (*models.Folder, error) {
	args := m.Called(ctx, principal, parentID, name)
	if folder, ok := args.Get(0).(*models.Folder); ok {
		return folder, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFolderService) GetFolder(ctx context.Context, principal authz.Principal, id string) (*models.Folder, error) {
	args := m.Called(ctx, principal, id)
	if folder, ok := args.Get(0).(*models.Folder); ok {
		return folder, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFolderService) RenameFolder(ctx context.Context, principal authz.Principal, id string, name string) (*models.Folder, error) {
	args := m.Called(ctx, principal, id, name)
	if folder, ok := args.Get(0).(*models.Folder); ok {
		return folder, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFolderService) DeleteFolder(ctx context.Context, principal authz.Principal, id string) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) UploadFile(ctx context.Context, principal authz.Principal, folderID string, name string, contentType string, size int64, body io.Reader) (*models.File, error) {
	content, _ := io.ReadAll(body)
	args := m.Called(ctx, principal, folderID, name, contentType, size, string(content))
	if file, ok := args.Get(0).(*models.File); ok {
		return file, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFileService) ListFiles(ctx context.Context, principal authz.Principal, folderID string) ([]models.File, error) {
	args := m.Called(ctx, principal, folderID)
	if files, ok := args.Get(0).([]models.File); ok {
		return files, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFileService) GetFile(ctx context.Context, principal authz.Principal, id string) (*models.File, error) {
	args := m.Called(ctx, principal, id)
	if file, ok := args.Get(0).(*models.File); ok {
		return file, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFileService) DownloadURL(ctx context.Context, principal authz.Principal, id string) (string, error) {
	args := m.Called(ctx, principal, id)
	return args.String(0), args.Error(1)
}

func (m *MockFileService) DeleteFile(ctx context.Context, principal authz.Principal, id string) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}

type MockJanitor struct {
	mock.Mock
}

func (m *MockJanitor) ForceStartCycle() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockJanitor) LatestReport() *services.JanitorReport {
	args := m.Called()
	if report, ok := args.Get(0).(*services.JanitorReport); ok {
		return report
	}
	return nil
}
