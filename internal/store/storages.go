package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/internal/logger"
)

// NewAuditStorage opens the sink selected by cfg.Driver. SQL sinks are
// migrated before use.
func NewAuditStorage(ctx context.Context, cfg config.Storage, log *logger.Logger) (AuditStorage, error) {
	switch cfg.Driver {
	case config.DriverFile, "":
		return NewFileAuditStorage(cfg.AccessLogPath, cfg.SecurityLogPath, log)
	case config.DriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return migrated(db, log)
	case config.DriverPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return migrated(db, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

func migrated(db *DB, log *logger.Logger) (AuditStorage, error) {
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		log.Err(err).Str("func", "NewAuditStorage").Msg("error migrating audit tables")
		return nil, err
	}
	return NewSQLAuditStorage(db, log), nil
}
