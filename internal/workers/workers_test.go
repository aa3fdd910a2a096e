// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount atomic.Int32
	err      error
	block    bool
}

func (m *mockWorker) Run(ctx context.Context) error {
	m.runCount.Add(1)
	if m.block {
		<-ctx.Done()
	}
	return m.err
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	if err := ws.Run(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for i, w := range []*mockWorker{w1, w2, w3} {
		if got := w.runCount.Load(); got != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, got)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not block or panic on an empty workers list
	if err := ws.Run(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	if err := ws.Run(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestWorkers_Run_RunsConcurrently(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w1 := &mockWorker{block: true}
	w2 := &mockWorker{block: true}

	done := make(chan error, 1)
	go func() { done <- NewWorkers(w1, w2).Run(ctx) }()

	deadline := time.After(time.Second)
	for w1.runCount.Load() == 0 || w2.runCount.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("workers did not start concurrently")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWorkers_Run_ReturnsError(t *testing.T) {
	boom := errors.New("boom")
	ws := NewWorkers(&mockWorker{}, &mockWorker{err: boom})

	if err := ws.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}
