// Package sqlitestorage implements the storage.Backend interface on a SQLite
// database. Scalars live in a single profile row; the name sets are tables
// with a unique name column, so a save is an insert-or-ignore per name.
// Kills and vehicle destructions are also kept as an append-only history.
package sqlitestorage

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yertz/yapr/internal/database"
	"github.com/yertz/yapr/internal/model"
	"github.com/yertz/yapr/internal/model/convert"
	"github.com/yertz/yapr/pkg/core"
)

// Config holds configuration for the SQLite storage backend.
type Config struct {
	Path string
}

var ignoreExisting = clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}

// Backend stores the summary and history in SQLite.
type Backend struct {
	cfg Config
	log zerolog.Logger

	mu sync.Mutex
	db *gorm.DB
}

// New creates a new SQLite storage backend. The database is opened by Init.
func New(cfg Config, log zerolog.Logger) *Backend {
	return &Backend{cfg: cfg, log: log}
}

// Init opens the database and migrates the schema.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := database.GetSqliteDB(b.cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to open SQLite DB: %w", err)
	}
	if err := database.Setup(db, b.log); err != nil {
		return err
	}
	b.db = db
	b.log.Info().Str("path", b.cfg.Path).Msg("Using local SQLite DB")
	return nil
}

// Close closes the database.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return nil
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	b.db = nil
	return sqlDB.Close()
}

// Target returns the database path.
func (b *Backend) Target() string {
	return b.cfg.Path
}

// Load reads the profile row and the name sets.
func (b *Backend) Load() (*core.Export, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	var p model.Profile
	if err := b.db.First(&p, model.ProfileID).Error; err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	transits, err := b.names(&model.TransitLocation{})
	if err != nil {
		return nil, err
	}
	players, err := b.names(&model.PlayerName{})
	if err != nil {
		return nil, err
	}
	killed, err := b.names(&model.KilledPlayer{})
	if err != nil {
		return nil, err
	}
	zones, err := b.names(&model.Zone{})
	if err != nil {
		return nil, err
	}
	return convert.ProfileToExport(p, transits, players, killed, zones), nil
}

func (b *Backend) names(table interface{}) ([]string, error) {
	out := []string{}
	if err := b.db.Model(table).Order("name").Pluck("name", &out).Error; err != nil {
		return nil, fmt.Errorf("failed to read names: %w", err)
	}
	return out, nil
}

// Save overwrites the profile row and adds any new names, in one transaction.
func (b *Backend) Save(e *core.Export) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return fmt.Errorf("database not initialized")
	}

	return b.db.Transaction(func(tx *gorm.DB) error {
		profile := convert.CoreToProfile(*e)
		if err := tx.Save(&profile).Error; err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		if rows := convert.TransitRows(e.UniqueTransits); len(rows) > 0 {
			if err := tx.Clauses(ignoreExisting).Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to save transit locations: %w", err)
			}
		}
		if rows := convert.PlayerRows(e.UniquePlayers); len(rows) > 0 {
			if err := tx.Clauses(ignoreExisting).Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to save player names: %w", err)
			}
		}
		if rows := convert.KilledRows(e.PlayersKilled); len(rows) > 0 {
			if err := tx.Clauses(ignoreExisting).Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to save killed players: %w", err)
			}
		}
		if rows := convert.ZoneRows(e.DetectedZones); len(rows) > 0 {
			if err := tx.Clauses(ignoreExisting).Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to save zones: %w", err)
			}
		}
		return nil
	})
}

// RecordKill appends a kill to the history.
func (b *Backend) RecordKill(k *core.KillRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return fmt.Errorf("database not initialized")
	}
	rec := convert.CoreToKillRecord(*k)
	if err := b.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to record kill: %w", err)
	}
	return nil
}

// RecordVehicle appends a vehicle destroy level change to the history.
func (b *Backend) RecordVehicle(v *core.Vehicle) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return fmt.Errorf("database not initialized")
	}
	rec := convert.CoreToVehicleRecord(*v)
	if err := b.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to record vehicle: %w", err)
	}
	return nil
}

// Kills returns the kill history, oldest first.
func (b *Backend) Kills() ([]core.KillRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	var recs []model.KillRecord
	if err := b.db.Order("time, id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to read kills: %w", err)
	}
	out := make([]core.KillRecord, 0, len(recs))
	for _, r := range recs {
		out = append(out, convert.KillRecordToCore(r))
	}
	return out, nil
}

// VehicleHistory returns the recorded changes for one vehicle, oldest first.
func (b *Backend) VehicleHistory(id string) ([]core.Vehicle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	var recs []model.VehicleRecord
	if err := b.db.Where("object_id = ?", id).Order("time, id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to read vehicle history: %w", err)
	}
	out := make([]core.Vehicle, 0, len(recs))
	for _, r := range recs {
		out = append(out, convert.VehicleRecordToCore(r))
	}
	return out, nil
}
