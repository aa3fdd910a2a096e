package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/audit"
	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/mask"
	"github.com/MKhiriev/go-secure-api/internal/service"
	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/MKhiriev/go-secure-api/models"
	"github.com/stretchr/testify/require"
)

const (
	testStaticToken = "tokenrahasia13"
	testSignKey     = "tokenrahasia"
)

// memorySink collects audit entries in memory.
type memorySink struct {
	mu      sync.Mutex
	records []models.AuditRecord
	alerts  []models.SecurityAlert
}

func (s *memorySink) AppendRecord(_ context.Context, r models.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return nil
}

func (s *memorySink) AppendAlert(_ context.Context, a models.SecurityAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, a)
	return nil
}

func (s *memorySink) Close() error { return nil }

func (s *memorySink) Records() []models.AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AuditRecord(nil), s.records...)
}

func (s *memorySink) Alerts() []models.SecurityAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SecurityAlert(nil), s.alerts...)
}

func testConfig(strategy string) config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			AuthStrategy:   strategy,
			StaticToken:    testStaticToken,
			TokenSignKey:   testSignKey,
			TokenDuration:  time.Hour,
			LoginUsername:  "admin",
			LoginPassword:  "password123",
			HashIterations: 1_000,
			HashWorkers:    2,
			Version:        "1.0.0",
		},
	}
}

// newTestHandler wires a Handler with real services and an in-memory sink.
func newTestHandler(t *testing.T, strategy string) (*Handler, *memorySink) {
	t.Helper()

	services, err := service.NewServices(context.Background(), testConfig(strategy), logger.Nop())
	require.NoError(t, err)

	sink := &memorySink{}
	auditLogger := audit.NewLogger(sink, mask.DefaultSensitiveKeys(), utils.NewULIDGenerator(), logger.Nop())

	return NewHandler(services, auditLogger, "3000", logger.Nop()), sink
}

// serve runs one request through the full router.
func serve(h *Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
