// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-secure-api/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestIdentityCtxKey(t *testing.T) {
	if IdentityCtxKey.String() != "identity" {
		t.Errorf("expected 'identity', got '%s'", IdentityCtxKey.String())
	}
}

func TestGetIdentityFromContext_Success(t *testing.T) {
	want := models.Identity{Subject: "admin", Strategy: "jwt"}
	ctx := context.WithValue(context.Background(), IdentityCtxKey, want)

	got, ok := GetIdentityFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got.Subject != want.Subject || got.Strategy != want.Strategy {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestGetIdentityFromContext_Missing(t *testing.T) {
	got, ok := GetIdentityFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if got.Subject != "" {
		t.Errorf("expected empty identity, got %+v", got)
	}
}

func TestGetIdentityFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), IdentityCtxKey, "admin")

	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetIdentityFromContext_DifferentKey(t *testing.T) {
	otherKey := contextKey("otherKey")
	ctx := context.WithValue(context.Background(), otherKey, models.Identity{Subject: "x"})

	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}

func TestGetTraceIDFromContext(t *testing.T) {
	if got := GetTraceIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty trace id, got %q", got)
	}

	ctx := context.WithValue(context.Background(), TraceIDCtxKey, "trace-1")
	if got := GetTraceIDFromContext(ctx); got != "trace-1" {
		t.Errorf("expected 'trace-1', got %q", got)
	}
}
