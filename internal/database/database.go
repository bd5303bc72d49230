package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yertz/yapr/internal/model"
)

// MemoryPath opens a private in-memory database when passed to GetSqliteDB.
const MemoryPath = ":memory:"

// GetSqliteDB returns a connection to a SQLite database file, creating the
// parent directory if needed. MemoryPath gives an in-memory database.
func GetSqliteDB(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite file path not set")
	}
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        500,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// set PRAGMAS
	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA cache_size = -8000;",
		"PRAGMA temp_store = MEMORY;",
	}
	if path == MemoryPath {
		pragmas[1] = "PRAGMA journal_mode = MEMORY;"
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %s", err)
		}
	}

	// a single writer keeps the in-memory database on one connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %s", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Setup migrates the schema and creates the profile row if it doesn't exist.
func Setup(db *gorm.DB, log zerolog.Logger) error {
	log.Info().Msg("Migrating schema")
	if err := db.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %s", err)
	}

	var count int64
	if err := db.Model(&model.Profile{}).Where("id = ?", model.ProfileID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check profile row: %s", err)
	}
	if count == 0 {
		err := db.Create(&model.Profile{
			ID:          model.ProfileID,
			PlayerName:  "Unknown",
			GameVersion: "Unknown",
		}).Error
		if err != nil {
			return fmt.Errorf("failed to create profile entry: %s", err)
		}
	}

	log.Info().Msg("Database setup complete")
	return nil
}
