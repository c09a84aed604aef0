//go:build wireinject
// +build wireinject

package main

import (
	"Folio/cmd"
	"Folio/database"
	"Folio/internal/authz"
	"Folio/internal/config"
	"Folio/internal/handlers"
	"Folio/internal/lock"
	"Folio/internal/repository"
	"Folio/internal/services"
	"Folio/internal/storage"
	"github.com/google/wire"
)

var storeSet = wire.NewSet(
	database.NewDatabase,
	repository.NewFolderRepository,
	repository.NewFileRepository,
	repository.NewTombstoneRepository,
	storage.NewBlobStore,
	lock.NewLocker,
	services.NewLogService,
	services.NewReconcileService,
	services.NewSweepService,
)

func InitializeServer(configuration *config.Configuration) (*cmd.Server, func(), error) {
	wire.Build(
		storeSet,
		repository.NewBatchWriter,
		provideTokens,
		wire.Bind(new(authz.TokenVerifier), new(*authz.HMACTokens)),
		services.NewRootService,
		services.NewTreeService,
		services.NewFolderService,
		services.NewFileService,
		services.NewJanitorService,
		handlers.NewRepositoryHandler,
		handlers.NewFolderHandler,
		handlers.NewFileHandler,
		handlers.NewJanitorHandler,
		cmd.NewServer,
	)
	return nil, nil, nil
}

func InitializeToolkit(configuration *config.Configuration) (*cmd.Toolkit, func(), error) {
	wire.Build(
		storeSet,
		cmd.NewToolkit,
	)
	return nil, nil, nil
}
