package cmd

import (
	"Folio/internal/authz"
	"Folio/internal/config"
	"Folio/internal/handlers"
	"Folio/internal/services"
	"Folio/internal/storage"

	"gorm.io/gorm"
)

type Server struct {
	Configuration     *config.Configuration
	DB                *gorm.DB
	BlobStore         storage.BlobStore
	TokenVerifier     authz.TokenVerifier
	LogService        services.LogService
	ReconcileService  services.ReconcileService
	SweepService      services.SweepService
	JanitorService    *services.Janitor
	RepositoryHandler *handlers.RepositoryHandler
	FolderHandler     *handlers.FolderHandler
	FileHandler       *handlers.FileHandler
	JanitorHandler    *handlers.JanitorHandler
}

func NewServer(
	configuration *config.Configuration,
	db *gorm.DB,
	blobStore storage.BlobStore,
	tokenVerifier authz.TokenVerifier,
	logService services.LogService,
	reconcileService services.ReconcileService,
	sweepService services.SweepService,
	janitorService *services.Janitor,
	repositoryHandler *handlers.RepositoryHandler,
	folderHandler *handlers.FolderHandler,
	fileHandler *handlers.FileHandler,
	janitorHandler *handlers.JanitorHandler,
) *Server {
	return &Server{
		Configuration:     configuration,
		DB:                db,
		BlobStore:         blobStore,
		TokenVerifier:     tokenVerifier,
		LogService:        logService,
		ReconcileService:  reconcileService,
		SweepService:      sweepService,
		JanitorService:    janitorService,
		RepositoryHandler: repositoryHandler,
		FolderHandler:     folderHandler,
		FileHandler:       fileHandler,
		JanitorHandler:    janitorHandler,
	}
}

// Toolkit is what the maintenance commands need; it does not require an
// auth secret.
type Toolkit struct {
	Configuration    *config.Configuration
	LogService       services.LogService
	ReconcileService services.ReconcileService
	SweepService     services.SweepService
}

func NewToolkit(
	configuration *config.Configuration,
	logService services.LogService,
	reconcileService services.ReconcileService,
	sweepService services.SweepService,
) *Toolkit {
	return &Toolkit{
		Configuration:    configuration,
		LogService:       logService,
		ReconcileService: reconcileService,
		SweepService:     sweepService,
	}
}
