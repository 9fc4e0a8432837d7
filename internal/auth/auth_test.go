package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ujjwalpandey922/meeting-schedular/pkg/logger"
)

func newTestService() *Service {
	return New(logger.New(), Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/auth/google/callback",
		JWTSecret:    "test-secret",
	})
}

func TestIssueAndParseToken(t *testing.T) {
	s := newTestService()

	signed, err := s.IssueToken("alice@example.com", "ya29.token")
	require.NoError(t, err)

	claims, err := s.ParseToken(signed)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "ya29.token", claims.AccessToken)
}

func TestParseTokenWrongSecret(t *testing.T) {
	s := newTestService()
	signed, err := s.IssueToken("alice@example.com", "ya29.token")
	require.NoError(t, err)

	other := New(logger.New(), Config{JWTSecret: "other-secret"})
	_, err = other.ParseToken(signed)
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	s := newTestService()
	_, err := s.ParseToken("not-a-token")
	require.Error(t, err)
}

func TestConfigured(t *testing.T) {
	require.True(t, newTestService().Configured())
	require.False(t, New(logger.New(), Config{JWTSecret: "x"}).Configured())
}

func TestLoginURLCarriesState(t *testing.T) {
	s := newTestService()
	url, state := s.LoginURL()
	require.NotEmpty(t, state)
	require.Contains(t, url, "state="+state)
	require.Contains(t, url, "client-id")
}
