package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	subject := uuid.New()

	tok, err := m.Issue(subject, 0)
	require.NoError(t, err)

	got, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, subject, got)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	tok, err := m.Issue(uuid.New(), time.Minute)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsMalformedAndForeignTokens(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)
	other := NewTokenManager("another_secret_with_enough_length", time.Hour)

	foreign, err := other.Issue(uuid.New(), 0)
	require.NoError(t, err)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	noSubjectStr, err := noSubject.SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: uuid.NewString()})
	noExpStr, err := noExp.SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"garbage":    "not-a-jwt",
		"empty":      "",
		"foreign":    foreign,
		"no subject": noSubjectStr,
		"no expiry":  noExpStr,
	} {
		_, err := m.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}
}

func TestPassword_HashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("s3cret-pass", hash))
	assert.False(t, VerifyPassword("wrong", hash))
	assert.False(t, VerifyPassword("s3cret-pass", "not-a-hash"))
}
