package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-secure-api/internal/auth"
	"github.com/MKhiriev/go-secure-api/internal/mock"
	"github.com/MKhiriev/go-secure-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGate_EmptyCredentialSkipsStrategy(t *testing.T) {
	for _, header := range []string{"", "Bearer ", "  Bearer   "} {
		t.Run("header "+header, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			strategy := mock.NewMockStrategy(ctrl)
			strategy.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Times(0)

			_, err := auth.NewGate(strategy).Authenticate(context.Background(), header)

			assert.ErrorIs(t, err, auth.ErrMissingCredential)
			assert.ErrorIs(t, err, auth.ErrUnauthorized)
		})
	}
}

func TestGate_DelegatesExtractedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	strategy := mock.NewMockStrategy(ctrl)
	want := models.Identity{Subject: "admin", Strategy: "jwt"}
	strategy.EXPECT().Authenticate(gomock.Any(), "abc.def.ghi").Return(want, nil)
	strategy.EXPECT().Authenticate(gomock.Any(), "bad").Return(models.Identity{}, auth.ErrInvalidCredential)

	g := auth.NewGate(strategy)

	got, err := g.Authenticate(context.Background(), "Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = g.Authenticate(context.Background(), "bad")
	assert.True(t, errors.Is(err, auth.ErrInvalidCredential))
}
