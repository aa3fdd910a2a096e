package workers

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/metrics"
	"github.com/MKhiriev/go-secure-api/internal/store"
	"github.com/MKhiriev/go-secure-api/models"
)

// ErrSinkBufferFull is returned when the queue has no room; the entry is
// dropped.
var ErrSinkBufferFull = errors.New("audit sink buffer is full")

type auditJob struct {
	record *models.AuditRecord
	alert  *models.SecurityAlert
}

// AuditWriter decouples request handling from sink I/O. Append calls only
// enqueue; Run performs the writes on a single goroutine, so the wrapped
// storage sees one writer at a time.
//
// AuditWriter implements both [store.AuditStorage] and [Worker].
type AuditWriter struct {
	storage store.AuditStorage
	queue   chan auditJob
	logger  *logger.Logger

	// sendMu is held shared across the closed check and the send, and
	// exclusively to set closed, so no entry is accepted after the final
	// drain has started.
	sendMu sync.RWMutex
	closed bool

	stop   chan struct{}
	done   chan struct{}
	once   sync.Once

	mu       sync.Mutex
	running  bool
	stopped  bool
	closeErr error
}

var _ store.AuditStorage = (*AuditWriter)(nil)
var _ Worker = (*AuditWriter)(nil)

// NewAuditWriter wraps storage with a queue of bufferSize entries.
func NewAuditWriter(storage store.AuditStorage, bufferSize int, log *logger.Logger) *AuditWriter {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &AuditWriter{
		storage: storage,
		queue:   make(chan auditJob, bufferSize),
		logger:  log,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (w *AuditWriter) AppendRecord(_ context.Context, record models.AuditRecord) error {
	return w.enqueue(auditJob{record: &record}, metrics.KindAccess)
}

func (w *AuditWriter) AppendAlert(_ context.Context, alert models.SecurityAlert) error {
	return w.enqueue(auditJob{alert: &alert}, metrics.KindSecurity)
}

func (w *AuditWriter) enqueue(job auditJob, kind string) error {
	w.sendMu.RLock()
	defer w.sendMu.RUnlock()

	if w.closed {
		metrics.SinkErrors.WithLabelValues(kind, metrics.ReasonClosed).Inc()
		return store.ErrSinkClosed
	}

	select {
	case w.queue <- job:
		metrics.AuditQueueDepth.Inc()
		return nil
	default:
		metrics.SinkErrors.WithLabelValues(kind, metrics.ReasonBufferFull).Inc()
		return ErrSinkBufferFull
	}
}

// Run writes queued entries until ctx is cancelled or Close is called, then
// drains what is left, closes the storage and returns. Run must be called
// at most once.
func (w *AuditWriter) Run(ctx context.Context) error {
	defer close(w.done)

	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	for {
		select {
		case job := <-w.queue:
			w.write(job)
		case <-ctx.Done():
			w.closeErr = w.shutdown()
			return w.closeErr
		case <-w.stop:
			w.closeErr = w.shutdown()
			return w.closeErr
		}
	}
}

func (w *AuditWriter) shutdown() error {
	w.sendMu.Lock()
	w.closed = true
	w.sendMu.Unlock()

	for {
		select {
		case job := <-w.queue:
			w.write(job)
		default:
			return w.storage.Close()
		}
	}
}

// write never fails the caller; errors are logged and counted.
func (w *AuditWriter) write(job auditJob) {
	metrics.AuditQueueDepth.Dec()

	// a fresh context: the originating request may be long gone
	ctx := context.Background()

	var err error
	kind := metrics.KindAccess
	if job.record != nil {
		err = w.storage.AppendRecord(ctx, *job.record)
	} else {
		kind = metrics.KindSecurity
		err = w.storage.AppendAlert(ctx, *job.alert)
	}

	if err != nil {
		metrics.SinkErrors.WithLabelValues(kind, metrics.ReasonWriteFailed).Inc()
		w.logger.Err(err).Str("func", "*AuditWriter.write").Str("kind", kind).Msg("error writing audit entry")
	}
}

// Close stops a running writer after it drained the queue. When Run was
// never started the queue is drained on the calling goroutine.
func (w *AuditWriter) Close() error {
	var err error
	w.once.Do(func() {
		w.mu.Lock()
		w.stopped = true
		running := w.running
		w.mu.Unlock()

		close(w.stop)
		if !running {
			err = w.shutdown()
			return
		}
		<-w.done
		err = w.closeErr
	})
	return err
}
