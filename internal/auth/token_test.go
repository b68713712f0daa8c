package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-management/internal/domain"
	"task-management/internal/errors"
)

func testUser() domain.User {
	return domain.User{
		ID:        42,
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		IsActive:  true,
	}
}

func testIssuer(secret string) *TokenIssuer {
	return NewTokenIssuer([]byte(secret), "TaskManagement", "TaskManagementUsers", 24*time.Hour)
}

const tokenTestSecret = "test-signing-secret-at-least-32-bytes!!"

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := testIssuer(tokenTestSecret)
	now := time.Now().UTC()

	token, expiresAt, err := issuer.Issue(testUser(), now)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, now.Add(24*time.Hour), expiresAt, time.Second)

	claims, err := issuer.Verify(token, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.FirstName)
	assert.Equal(t, "TaskManagement", claims.Issuer)
}

func TestTokenIssuer_Verify_Rejections(t *testing.T) {
	issuer := testIssuer(tokenTestSecret)
	now := time.Now().UTC()

	token, _, err := issuer.Issue(testUser(), now)
	require.NoError(t, err)

	tests := []struct {
		name     string
		verifier *TokenIssuer
		token    string
		at       time.Time
	}{
		{
			name:     "expired token",
			verifier: issuer,
			token:    token,
			at:       now.Add(25 * time.Hour),
		},
		{
			name:     "wrong secret",
			verifier: testIssuer("another-signing-secret-32-bytes-long!!"),
			token:    token,
			at:       now.Add(time.Minute),
		},
		{
			name: "wrong audience",
			verifier: NewTokenIssuer([]byte(tokenTestSecret),
				"TaskManagement", "SomeoneElse", 24*time.Hour),
			token: token,
			at:    now.Add(time.Minute),
		},
		{
			name: "wrong issuer",
			verifier: NewTokenIssuer([]byte(tokenTestSecret),
				"SomeoneElse", "TaskManagementUsers", 24*time.Hour),
			token: token,
			at:    now.Add(time.Minute),
		},
		{
			name:     "garbage token",
			verifier: issuer,
			token:    "not.a.token",
			at:       now,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.verifier.Verify(tt.token, tt.at)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidToken))
		})
	}
}

func TestTokenIssuer_TokenStaysValidUntilExpiry(t *testing.T) {
	issuer := testIssuer(tokenTestSecret)
	now := time.Now().UTC()

	token, expiresAt, err := issuer.Issue(testUser(), now)
	require.NoError(t, err)

	_, err = issuer.Verify(token, expiresAt.Add(-time.Minute))
	assert.NoError(t, err)

	_, err = issuer.Verify(token, expiresAt.Add(time.Minute))
	assert.Error(t, err)
}
