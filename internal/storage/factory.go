package storage

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/yertz/yapr/internal/config"
	"github.com/yertz/yapr/internal/storage/jsonfile"
	sqlitestorage "github.com/yertz/yapr/internal/storage/sqlite"
)

// ErrUnknownType is returned by NewBackend for an unsupported storage.type.
var ErrUnknownType = errors.New("unknown storage type")

// NewBackend picks the backend named by cfg.Type. An empty type means the
// JSON file. Nothing is opened until Init.
func NewBackend(cfg config.StorageConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "", "json":
		return jsonfile.New(jsonfile.Config{
			Path:           cfg.JSON.Path,
			CompressOutput: cfg.JSON.CompressOutput,
		}), nil
	case "sqlite":
		return sqlitestorage.New(sqlitestorage.Config{Path: cfg.SQLite.Path}, log), nil
	}
	return nil, errors.WithHintf(errors.Wrapf(ErrUnknownType, "%q", cfg.Type),
		`storage.type must be "json" or "sqlite"`)
}
