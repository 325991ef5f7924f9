package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/items-api/internal/domain"
)

const testSecret = "test-secret-key-for-jwt-signing"

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)
	return tm
}

func signClaims(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestNewTokenManager(t *testing.T) {
	_, err := NewTokenManager("   ", time.Hour)
	assert.Error(t, err)

	tm, err := NewTokenManager("s", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, tm.TTL())
}

func TestGenerateAndParseToken(t *testing.T) {
	tm := newTestManager(t)

	for _, role := range []domain.Role{domain.RoleUser, domain.RoleAdmin} {
		token, exp, err := tm.GenerateToken("usr-001", role)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := tm.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "usr-001", claims.Subject)
		assert.Equal(t, role, claims.Role)
		assert.True(t, claims.ExpiresAt.Time.Equal(exp))
		assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
		assert.NotEmpty(t, claims.ID)
	}
}

func TestGenerateToken_RejectsBadInput(t *testing.T) {
	tm := newTestManager(t)

	_, _, err := tm.GenerateToken("", domain.RoleUser)
	assert.Error(t, err)

	_, _, err = tm.GenerateToken("usr-001", domain.Role(0))
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	tm := newTestManager(t)
	issued := time.Now()
	tm.now = func() time.Time { return issued }

	token, exp, err := tm.GenerateToken("usr-001", domain.RoleUser)
	require.NoError(t, err)

	tm.now = func() time.Time { return exp.Add(-time.Second) }
	_, err = tm.ParseToken(token)
	require.NoError(t, err)

	tm.now = func() time.Time { return exp }
	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	tm.now = func() time.Time { return exp.Add(time.Minute) }
	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_HandBuiltExpiredToken(t *testing.T) {
	tm := newTestManager(t)
	now := time.Now()

	token := signClaims(t, testSecret, &Claims{
		Role: domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "usr-001",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	})

	_, err := tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := newTestManager(t).GenerateToken("usr-001", domain.RoleUser)
	require.NoError(t, err)

	other, err := NewTokenManager("another-secret", time.Hour)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Tampered(t *testing.T) {
	tm := newTestManager(t)
	token, _, err := tm.GenerateToken("usr-001", domain.RoleUser)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	_, garbageErr := tm.ParseToken("not-a-valid-jwt")
	require.Error(t, garbageErr)

	t.Run("payload escalated to admin", func(t *testing.T) {
		payload, err := base64.RawURLEncoding.DecodeString(parts[1])
		require.NoError(t, err)
		forged := strings.Replace(string(payload), `"role":"User"`, `"role":"Admin"`, 1)
		require.NotEqual(t, string(payload), forged)

		tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte(forged)) + "." + parts[2]
		_, err = tm.ParseToken(tampered)
		assert.Equal(t, garbageErr, err)
	})

	t.Run("signature byte flipped", func(t *testing.T) {
		sig, err := base64.RawURLEncoding.DecodeString(parts[2])
		require.NoError(t, err)
		sig[0] ^= 0x01

		tampered := parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(sig)
		_, err = tm.ParseToken(tampered)
		assert.Equal(t, garbageErr, err)
	})

	t.Run("signature stripped", func(t *testing.T) {
		_, err := tm.ParseToken(parts[0] + "." + parts[1] + ".")
		assert.Equal(t, garbageErr, err)
	})
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	tm := newTestManager(t)
	claims := &Claims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "usr-001",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.ParseToken(none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = tm.ParseToken(hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_ClaimInvariants(t *testing.T) {
	tm := newTestManager(t)
	now := time.Now()

	tests := []struct {
		name   string
		claims jwt.Claims
	}{
		{"missing expiry", &Claims{Role: domain.RoleUser, RegisteredClaims: jwt.RegisteredClaims{
			Subject: "usr-001", IssuedAt: jwt.NewNumericDate(now),
		}}},
		{"missing issued-at", &Claims{Role: domain.RoleUser, RegisteredClaims: jwt.RegisteredClaims{
			Subject: "usr-001", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}},
		{"issued in the future", &Claims{Role: domain.RoleUser, RegisteredClaims: jwt.RegisteredClaims{
			Subject: "usr-001", IssuedAt: jwt.NewNumericDate(now.Add(time.Hour)), ExpiresAt: jwt.NewNumericDate(now.Add(2 * time.Hour)),
		}}},
		{"missing subject", &Claims{Role: domain.RoleUser, RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now), ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}},
		{"unknown role", jwt.MapClaims{
			"sub": "usr-001", "role": "Root", "iat": now.Unix(), "exp": now.Add(time.Hour).Unix(),
		}},
		{"missing role", jwt.MapClaims{
			"sub": "usr-001", "iat": now.Unix(), "exp": now.Add(time.Hour).Unix(),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.ParseToken(signClaims(t, testSecret, tt.claims))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParseToken_Garbage(t *testing.T) {
	tm := newTestManager(t)
	for _, in := range []string{"", "   ", "abc.def", "a.b.c", "Bearer x"} {
		_, err := tm.ParseToken(in)
		assert.ErrorIs(t, err, ErrInvalidToken, in)
	}
}
