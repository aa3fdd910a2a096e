package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/models"
)

const (
	accessLogTable   = "access_log"
	securityLogTable = "security_log"

	// maxAttempts bounds how often a retryable INSERT is tried.
	maxAttempts = 2
)

var (
	accessLogColumns   = []string{"id", "recorded_at", "trace_id", "method", "path", "status", "duration_ms", "client_ip", "protocol", "payload"}
	securityLogColumns = []string{"id", "recorded_at", "trace_id", "reason", "method", "path", "raw_length", "payload"}
)

// sqlAuditStorage stores each entry as one row; the full masked entry is
// kept as JSON in the payload column next to a few indexed columns.
type sqlAuditStorage struct {
	db      *DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
	retryIn time.Duration
}

// NewSQLAuditStorage builds a sink writing to the access_log and
// security_log tables of db. The tables must exist; see [DB.Migrate].
func NewSQLAuditStorage(db *DB, log *logger.Logger) AuditStorage {
	log.Debug().Msg("creating sql audit storage")
	return &sqlAuditStorage{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(db.placeholder),
		logger:  log,
		retryIn: 50 * time.Millisecond,
	}
}

func (s *sqlAuditStorage) AppendRecord(ctx context.Context, record models.AuditRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingEntry, err)
	}

	query, args, err := s.builder.
		Insert(accessLogTable).
		Columns(accessLogColumns...).
		Values(record.ID, record.Time.UTC(), record.TraceID, record.Method, record.Path,
			record.Status, record.DurationMs, record.IP, record.Protocol, string(payload)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.exec(ctx, "*sqlAuditStorage.AppendRecord", query, args)
}

func (s *sqlAuditStorage) AppendAlert(ctx context.Context, alert models.SecurityAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingEntry, err)
	}

	query, args, err := s.builder.
		Insert(securityLogTable).
		Columns(securityLogColumns...).
		Values(alert.ID, alert.Time.UTC(), alert.TraceID, alert.Reason, alert.Method, alert.Path,
			alert.RawLength, string(payload)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.exec(ctx, "*sqlAuditStorage.AppendAlert", query, args)
}

func (s *sqlAuditStorage) exec(ctx context.Context, fn, query string, args []any) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var res sql.Result
		res, err = s.db.ExecContext(ctx, query, args...)
		if err == nil {
			affected, rowsErr := res.RowsAffected()
			if rowsErr == nil && affected == 0 {
				return ErrEntryNotSaved
			}
			return nil
		}

		switch s.classify(err) {
		case Duplicate:
			s.logger.Debug().Str("func", fn).Msg("audit entry already stored")
			return nil
		case Retryable:
			if attempt < maxAttempts {
				s.logger.Warn().Err(err).Str("func", fn).Int("attempt", attempt).Msg("retrying audit insert")
				select {
				case <-ctx.Done():
					return fmt.Errorf("%w: %w", ErrExecutingStatement, ctx.Err())
				case <-time.After(s.retryIn):
				}
				continue
			}
		}
		break
	}

	s.logger.Err(err).Str("func", fn).Msg("error inserting audit entry")
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}

func (s *sqlAuditStorage) classify(err error) ErrorClassification {
	if s.db.errorClassificator == nil {
		return NonRetryable
	}
	return s.db.errorClassificator.Classify(err)
}

func (s *sqlAuditStorage) Close() error {
	return s.db.Close()
}
