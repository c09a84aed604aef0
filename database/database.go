package database

import (
	"Folio/internal/config"
	"Folio/internal/models"
	"errors"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupDatabase(configuration *config.Configuration) (*gorm.DB, error) {
	dialector, err := dialectorFor(configuration.Database)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if configuration.Database.Driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// One connection: sqlite has a single writer and ":memory:" is per-connection.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Folder{}, &models.File{}, &models.BlobTombstone{})
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	case "postgres":
		dsn := cfg.DSN
		if dsn == "" {
			var err error
			dsn, err = postgresDSNFromEnv()
			if err != nil {
				return nil, err
			}
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func postgresDSNFromEnv() (string, error) {
	var envVariables = [...]string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_TZ"}
	for _, envVariable := range envVariables {
		if os.Getenv(envVariable) == "" && envVariable != "DB_SSLMODE" {
			return "", errors.New(fmt.Sprintf("%s environment variable not set", envVariable))
		}
		if envVariable == "DB_SSLMODE" && os.Getenv(envVariable) == "" {
			err := os.Setenv("DB_SSLMODE", "disable")
			if err != nil {
				return "", err
			}
		}
	}
	return os.ExpandEnv("host=${DB_HOST} user=${DB_USER} password=${DB_PASSWORD} dbname=${DB_NAME} port=${DB_PORT} sslmode=${DB_SSLMODE} TimeZone=${DB_TZ}"), nil
}

// OpenInMemory returns a migrated sqlite database that lives as long as the handle.
func OpenInMemory() (*gorm.DB, error) {
	cfg := config.Default()
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = ":memory:"
	return SetupDatabase(cfg)
}

func CloseDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Could not get DB instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// NewDatabase opens the configured database and returns a cleanup that
// closes it.
func NewDatabase(configuration *config.Configuration) (*gorm.DB, func(), error) {
	db, err := SetupDatabase(configuration)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { CloseDatabase(db) }, nil
}
