package jwt

import (
	"net/http"
	"testing"
	"time"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewJWTService("test-secret-key-for-jwt", "1h", "24h", false)
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "ops@example.com", user.RoleOperator)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	role, ok := decoded.Get("role")
	require.True(t, ok)
	assert.Equal(t, "operator", role)
	tokenType, _ := decoded.Get("type")
	assert.Equal(t, TokenTypeAccess, tokenType)
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	svc := NewJWTService("secret", "forever", "24h", false)
	_, _, err := svc.GenerateAccessToken("user-1", "a@b.cd", user.RoleAdmin)
	assert.Error(t, err)
}

func TestVerifyRefreshToken(t *testing.T) {
	svc := newTestService()

	refresh, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	userID, err := svc.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	other, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, refresh, other)

	access, _, err := svc.GenerateAccessToken("user-1", "a@b.cd", user.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.VerifyRefreshToken("not-a-token")
	assert.Error(t, err)

	foreign, _, err := NewJWTService("another-secret", "1h", "24h", false).GenerateRefreshToken("user-1")
	require.NoError(t, err)
	_, err = svc.VerifyRefreshToken(foreign)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := newTestService()

	svc.RevokeToken("stale", time.Now().Add(-time.Minute))
	svc.RevokeToken("live", time.Now().Add(time.Hour))

	assert.True(t, svc.IsTokenRevoked("live"))
	assert.False(t, svc.IsTokenRevoked("unknown"))
	// Expired entries are swept on the next revoke.
	assert.False(t, svc.IsTokenRevoked("stale"))
}

func TestRefreshTokenCookies(t *testing.T) {
	svc := NewJWTService("secret", "1h", "24h", true)

	cookie := svc.RefreshTokenCookie("abc", time.Now().Add(time.Hour).Unix())
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	cleared := svc.ClearRefreshTokenCookie()
	assert.Equal(t, -1, cleared.MaxAge)
	assert.Empty(t, cleared.Value)
}
