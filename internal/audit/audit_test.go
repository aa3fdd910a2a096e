package audit

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/detector"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/mask"
	"github.com/MKhiriev/go-secure-api/internal/mock"
	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/MKhiriev/go-secure-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeSink struct {
	mu      sync.Mutex
	records []models.AuditRecord
	alerts  []models.SecurityAlert
}

func (s *fakeSink) AppendRecord(_ context.Context, r models.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return nil
}

func (s *fakeSink) AppendAlert(_ context.Context, a models.SecurityAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, a)
	return nil
}

func (s *fakeSink) Close() error { return nil }

type fixedID string

func (f fixedID) Generate() string { return string(f) }

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestLogger(sink *fakeSink, console *logger.Logger) *Logger {
	l := NewLogger(sink, mask.DefaultSensitiveKeys(), fixedID("01HZX0000000000000000000AB"), console)
	l.now = func() time.Time { return testNow }
	return l
}

func parse(t *testing.T, doc string) mask.Value {
	t.Helper()
	v, err := mask.Parse([]byte(doc))
	require.NoError(t, err)
	return v
}

func TestLogger_BuildRecord(t *testing.T) {
	l := newTestLogger(&fakeSink{}, logger.Nop())

	r := httptest.NewRequest(http.MethodPost, "/dummy-post?token=abc&page=2", nil)
	r.Header.Set("Authorization", "Bearer abc.def")
	r.Header.Set("User-Agent", "curl/8.0")
	r.Header.Set("Referer", "http://ref")
	r.RemoteAddr = "10.1.2.3:5555"
	ctx := context.WithValue(r.Context(), utils.TraceIDCtxKey, "trace-1")

	rec := l.BuildRecord(ctx, Exchange{
		Request: r,
		Body:    parse(t, `{"username":"bob","password":"secret","card":"4111111111111111"}`),
		Params:  map[string]string{"id": "7"},
		Status:  http.StatusCreated,
		Started: testNow.Add(-150 * time.Millisecond),
	})

	assert.Equal(t, "01HZX0000000000000000000AB", rec.ID)
	assert.Equal(t, "trace-1", rec.TraceID)
	assert.Equal(t, testNow, rec.Time)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/dummy-post", rec.Path)
	assert.Equal(t, http.StatusCreated, rec.Status)
	assert.Equal(t, int64(150), rec.DurationMs)
	assert.Equal(t, "10.1.2.3", rec.IP)
	assert.Equal(t, "http", rec.Protocol)
	assert.Equal(t, strings.Repeat("*", len("example.com")), rec.Host)
	assert.Equal(t, "********", rec.UserAgent)
	assert.Equal(t, "**********", rec.Referrer)

	pw, _ := rec.Body.Field("password")
	assert.Equal(t, "******", pw.Text())
	user, _ := rec.Body.Field("username")
	assert.Equal(t, "bob", user.Text())
	card, _ := rec.Body.Field("card")
	assert.Equal(t, strings.Repeat("*", 16), card.Text())

	tok, _ := rec.Query.Field("token")
	assert.Equal(t, "***", tok.Text())
	page, _ := rec.Query.Field("page")
	assert.Equal(t, "2", page.Text())

	id, _ := rec.Params.Field("id")
	assert.Equal(t, "7", id.Text())

	auth, ok := rec.Headers.Field("authorization")
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("*", len("Bearer abc.def")), auth.Text())
}

func TestLogger_BuildRecord_AuthorizationAlwaysMasked(t *testing.T) {
	l := NewLogger(&fakeSink{}, mask.NewSensitiveKeySet("ssn"), fixedID("x"), logger.Nop())

	r := httptest.NewRequest(http.MethodGet, "/dummy-get", nil)
	r.Header.Set("Authorization", "tokenrahasia13")

	rec := l.BuildRecord(context.Background(), Exchange{Request: r, Started: time.Now()})

	auth, ok := rec.Headers.Field("authorization")
	require.True(t, ok)
	assert.Equal(t, "**************", auth.Text())
}

func TestLogger_BuildRecord_RepeatedSensitiveValues(t *testing.T) {
	tests := []struct {
		name string
		keys mask.SensitiveKeySet
	}{
		{"default keys", mask.DefaultSensitiveKeys()},
		{"keys without authorization", mask.NewSensitiveKeySet("ssn", "token")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLogger(&fakeSink{}, tt.keys, fixedID("x"), logger.Nop())

			r := httptest.NewRequest(http.MethodGet, "/dummy-get?token=one&token=two&page=1&page=2", nil)
			r.Header.Add("Authorization", "Bearer SECRET-ONE")
			r.Header.Add("Authorization", "Bearer SECRET-TWO")
			r.Header.Add("X-Refresh-Token", "refresh-a")
			r.Header.Add("X-Refresh-Token", "refresh-b")
			r.Header.Add("Accept", "text/plain")
			r.Header.Add("Accept", "application/json")

			rec := l.BuildRecord(context.Background(), Exchange{Request: r, Started: testNow})

			raw, err := json.Marshal(rec)
			require.NoError(t, err)
			for _, secret := range []string{"SECRET-ONE", "SECRET-TWO", "refresh-a", "refresh-b", "token=one"} {
				assert.NotContains(t, string(raw), secret)
			}

			auth, ok := rec.Headers.Field("authorization")
			require.True(t, ok)
			require.Equal(t, mask.KindSequence, auth.Kind())
			for _, item := range auth.Items() {
				assert.Equal(t, strings.Repeat("*", len("Bearer SECRET-ONE")), item.Text())
			}

			refresh, _ := rec.Headers.Field("x-refresh-token")
			assert.Equal(t, []mask.Value{mask.String("*********"), mask.String("*********")}, refresh.Items())

			tokens, _ := rec.Query.Field("token")
			assert.Equal(t, []mask.Value{mask.String("***"), mask.String("***")}, tokens.Items())

			accept, _ := rec.Headers.Field("accept")
			assert.Equal(t, []mask.Value{mask.String("text/plain"), mask.String("application/json")}, accept.Items())
			pages, _ := rec.Query.Field("page")
			assert.Equal(t, []mask.Value{mask.String("1"), mask.String("2")}, pages.Items())
		})
	}
}

func TestLogger_BuildRecord_Defaults(t *testing.T) {
	l := newTestLogger(&fakeSink{}, logger.Nop())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.TLS = &tls.ConnectionState{}
	r.RemoteAddr = "no-port"

	rec := l.BuildRecord(context.Background(), Exchange{Request: r, Started: testNow})

	assert.Equal(t, http.StatusOK, rec.Status)
	assert.Equal(t, "https", rec.Protocol)
	assert.Equal(t, "no-port", rec.IP)
	assert.Empty(t, rec.TraceID)
	assert.True(t, rec.Body.IsNull())
}

func TestLogger_Record_WritesSinkAndConsole(t *testing.T) {
	sink := &fakeSink{}
	var buf bytes.Buffer
	l := newTestLogger(sink, logger.New(&buf, "test"))

	r := httptest.NewRequest(http.MethodGet, "/dummy-get", nil)
	rec := l.Record(context.Background(), Exchange{Request: r, Status: http.StatusUnauthorized, Started: testNow})

	require.Len(t, sink.records, 1)
	assert.Equal(t, rec, sink.records[0])
	assert.Contains(t, buf.String(), "[ACCESS]")
	assert.Contains(t, buf.String(), `"status":401`)
}

func TestLogger_SinkErrorsAreLoggedNotReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockAuditStorage(ctrl)
	sink.EXPECT().AppendRecord(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	sink.EXPECT().AppendAlert(gomock.Any(), gomock.Any()).Return(errors.New("database is locked"))

	var buf bytes.Buffer
	l := NewLogger(sink, mask.DefaultSensitiveKeys(), fixedID("x"), logger.New(&buf, "test"))

	r := httptest.NewRequest(http.MethodPost, "/dummy-post", nil)
	body := parse(t, `{"q":"1; DROP TABLE users"}`)
	assert.NotPanics(t, func() {
		rec := l.Record(context.Background(), Exchange{Request: r, Started: time.Now()})
		assert.Equal(t, "x", rec.ID)

		alert := l.Alert(context.Background(), r, body, detector.New().Inspect(http.MethodPost, body))
		assert.Equal(t, "x", alert.ID)
	})

	assert.Contains(t, buf.String(), "disk full")
	assert.Contains(t, buf.String(), "error appending access record")
	assert.Contains(t, buf.String(), "database is locked")
	assert.Contains(t, buf.String(), "error appending security alert")
}

func TestLogger_Alert(t *testing.T) {
	sink := &fakeSink{}
	var buf bytes.Buffer
	l := newTestLogger(sink, logger.New(&buf, "test"))

	body := parse(t, `{"name":"O'Brien","password":"hunter2"}`)
	verdict := detector.New().Inspect(http.MethodPost, body)
	require.True(t, verdict.Suspicious)

	r := httptest.NewRequest(http.MethodPost, "/dummy-post", nil)
	alert := l.Alert(context.Background(), r, body, verdict)

	require.Len(t, sink.alerts, 1)
	assert.Equal(t, alert, sink.alerts[0])
	assert.Equal(t, detector.Reason, alert.Reason)
	assert.Equal(t, verdict.RawLength, alert.RawLength)
	assert.Equal(t, "/dummy-post", alert.Path)

	pw, _ := alert.MaskedBody.Field("password")
	assert.Equal(t, "*******", pw.Text())
	name, _ := alert.MaskedBody.Field("name")
	assert.Equal(t, "O'Brien", name.Text())

	assert.Contains(t, buf.String(), "[SEC]")
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestDecodeBody(t *testing.T) {
	body, ok := DecodeBody(nil)
	assert.True(t, ok)
	assert.True(t, body.IsNull())

	body, ok = DecodeBody([]byte(`{"a":1}`))
	assert.True(t, ok)
	assert.Equal(t, mask.KindMapping, body.Kind())

	body, ok = DecodeBody([]byte("password=hunter2"))
	assert.False(t, ok)
	assert.Equal(t, "****************", body.Text())
}
