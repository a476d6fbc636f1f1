package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atoolsera/agency-backend/internal/auth/domain"
)

func testSession(expiresIn time.Duration) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:         "sess-1",
		IdentityID: "user-1",
		Email:      "jane@x.com",
		CreatedAt:  now,
		ExpiresAt:  now.Add(expiresIn),
	}
}

func TestIssuer_RoundTrip(t *testing.T) {
	iss := NewIssuer("secret")

	tok, err := iss.Issue(testSession(time.Hour))
	require.NoError(t, err)

	claims, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.ID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "jane@x.com", claims.Email)
}

func TestIssuer_Rejects(t *testing.T) {
	iss := NewIssuer("secret")

	t.Run("expired", func(t *testing.T) {
		tok, err := iss.Issue(testSession(-time.Minute))
		require.NoError(t, err)
		_, err = iss.Parse(tok)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := NewIssuer("other").Issue(testSession(time.Hour))
		require.NoError(t, err)
		_, err = iss.Parse(tok)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"jti": "sess-1", "sub": "user-1", "iss": issuer,
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = iss.Parse(tok)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := iss.Parse("not-a-token")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}
