package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domainerrors "pay-chain.backend/internal/domain/errors"
	"pay-chain.backend/pkg/jwt"
)

func testSigner() *jwt.ServiceTokenSigner {
	return jwt.NewServiceTokenSigner("secret", "profile-service", time.Minute)
}

func TestClient_Resolve(t *testing.T) {
	userID := uuid.New()
	signer := testSigner()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/internal/users/"+userID.String(), r.URL.Path)

		auth := r.Header.Get("Authorization")
		require.True(t, strings.HasPrefix(auth, "Bearer "))
		claims, err := signer.Validate(strings.TrimPrefix(auth, "Bearer "))
		require.NoError(t, err)
		require.Equal(t, "profile-service", claims.Service)

		json.NewEncoder(w).Encode(map[string]string{
			"id":       userID.String(),
			"email":    "user@coinbazaar.io",
			"username": "trader",
			"fullName": "Test Trader",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, signer, time.Second)
	record, err := c.Resolve(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, userID, record.UserID)
	require.Equal(t, "user@coinbazaar.io", record.Email)
	require.Equal(t, "trader", record.Username)
	require.Equal(t, "Test Trader", record.FullName)
}

func TestClient_Resolve_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testSigner(), time.Second)
	_, err := c.Resolve(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestClient_Resolve_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testSigner(), time.Second)
	_, err := c.Resolve(context.Background(), uuid.New())
	require.Error(t, err)
	require.NotErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestClient_Resolve_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testSigner(), time.Second)
	_, err := c.Resolve(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestClient_Resolve_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, testSigner(), time.Second)
	_, err := c.Resolve(context.Background(), uuid.New())
	require.Error(t, err)
}
