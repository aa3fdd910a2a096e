package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/models"
)

func newTestSQLStorage(t *testing.T, placeholder sq.PlaceholderFormat) (*sqlAuditStorage, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	l := logger.Nop()
	s := NewSQLAuditStorage(&DB{
		DB:                 db,
		placeholder:        placeholder,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             l,
	}, l).(*sqlAuditStorage)
	s.retryIn = time.Millisecond
	return s, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func testRecord() models.AuditRecord {
	return models.AuditRecord{
		ID:         "01J0000000000000000000000A",
		TraceID:    "trace-1",
		Time:       time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Method:     "GET",
		Path:       "/dummy-get?x=1",
		Status:     200,
		DurationMs: 3,
		IP:         "127.0.0.1",
		Protocol:   "http",
	}
}

func TestSQLAuditStorage_AppendRecord(t *testing.T) {
	s, mock, db := newTestSQLStorage(t, sq.Dollar)
	defer db.Close()

	rec := testRecord()
	mock.ExpectExec(`INSERT INTO access_log \(id,recorded_at,trace_id,method,path,status,duration_ms,client_ip,protocol,payload\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9,\$10\)`).
		WithArgs(rec.ID, rec.Time, rec.TraceID, rec.Method, rec.Path, rec.Status, rec.DurationMs, rec.IP, rec.Protocol, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.AppendRecord(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLAuditStorage_AppendAlert_QuestionPlaceholders(t *testing.T) {
	s, mock, db := newTestSQLStorage(t, sq.Question)
	defer db.Close()

	alert := models.SecurityAlert{
		ID:        "01J0000000000000000000000B",
		Time:      time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Reason:    "SQL injection / invalid input detected",
		Method:    "POST",
		Path:      "/dummy-post",
		RawLength: 20,
	}
	mock.ExpectExec(`INSERT INTO security_log \(id,recorded_at,trace_id,reason,method,path,raw_length,payload\) VALUES \(\?,\?,\?,\?,\?,\?,\?,\?\)`).
		WithArgs(alert.ID, alert.Time, alert.TraceID, alert.Reason, alert.Method, alert.Path, alert.RawLength, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.AppendAlert(context.Background(), alert))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLAuditStorage_RetriesRetryableError(t *testing.T) {
	s, mock, db := newTestSQLStorage(t, sq.Dollar)
	defer db.Close()

	mock.ExpectExec("INSERT INTO access_log").WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectExec("INSERT INTO access_log").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.AppendRecord(context.Background(), testRecord()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLAuditStorage_GivesUpAfterMaxAttempts(t *testing.T) {
	s, mock, db := newTestSQLStorage(t, sq.Dollar)
	defer db.Close()

	mock.ExpectExec("INSERT INTO access_log").WillReturnError(pgError(pgerrcode.ConnectionFailure))
	mock.ExpectExec("INSERT INTO access_log").WillReturnError(pgError(pgerrcode.ConnectionFailure))

	err := s.AppendRecord(context.Background(), testRecord())
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLAuditStorage_NonRetryableFailsFast(t *testing.T) {
	s, mock, db := newTestSQLStorage(t, sq.Dollar)
	defer db.Close()

	mock.ExpectExec("INSERT INTO access_log").WillReturnError(errors.New("syntax error"))

	err := s.AppendRecord(context.Background(), testRecord())
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLAuditStorage_DuplicateIsSuccess(t *testing.T) {
	s, mock, db := newTestSQLStorage(t, sq.Dollar)
	defer db.Close()

	mock.ExpectExec("INSERT INTO access_log").WillReturnError(pgError(pgerrcode.UniqueViolation))

	assert.NoError(t, s.AppendRecord(context.Background(), testRecord()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLAuditStorage_NoRowsAffected(t *testing.T) {
	s, mock, db := newTestSQLStorage(t, sq.Dollar)
	defer db.Close()

	mock.ExpectExec("INSERT INTO access_log").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.AppendRecord(context.Background(), testRecord()), ErrEntryNotSaved)
}

func TestSQLAuditStorage_Close(t *testing.T) {
	s, mock, _ := newTestSQLStorage(t, sq.Dollar)
	mock.ExpectClose()

	require.NoError(t, s.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
