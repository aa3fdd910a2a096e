package store

import (
	"context"

	"github.com/MKhiriev/go-secure-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AuditStorage is an append-only sink for access records and security
// alerts. Implementations receive entries whose attacker-controlled fields
// are already masked.
type AuditStorage interface {
	AppendRecord(ctx context.Context, record models.AuditRecord) error
	AppendAlert(ctx context.Context, alert models.SecurityAlert) error
	Close() error
}
