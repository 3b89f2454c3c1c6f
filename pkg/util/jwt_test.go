package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func TestGenerateToken(t *testing.T) {
	token, claims, err := GenerateToken(1, "marcp", "marc@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.Equal(t, uint(1), claims.UserID)
	assert.NotEmpty(t, claims.ID)

	// every issue gets its own token id
	other, otherClaims, err := GenerateToken(1, "marcp", "marc@example.com", testSecret, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
	assert.NotEqual(t, claims.ID, otherClaims.ID)
}

func TestValidateToken(t *testing.T) {
	token, issued, err := GenerateToken(42, "admin", "admin@example.com", testSecret, 15*time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{name: "Valid token", token: token, secret: testSecret},
		{name: "Invalid secret", token: token, secret: "wrong-secret", wantErr: ErrInvalidToken},
		{name: "Invalid token format", token: "invalid.token.format", secret: testSecret, wantErr: ErrInvalidToken},
		{name: "Empty token", token: "", secret: testSecret, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(42), claims.UserID)
			assert.Equal(t, "admin", claims.Username)
			assert.Equal(t, "admin@example.com", claims.Email)
			assert.Equal(t, issued.ID, claims.ID)
			assert.True(t, claims.IssuedAt.Before(claims.ExpiresAt.Time))
		})
	}
}

func TestExpiredToken(t *testing.T) {
	token, _, err := GenerateToken(1, "marcp", "marc@example.com", testSecret, -time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestClaims_RemainingLifetime(t *testing.T) {
	_, claims, err := GenerateToken(1, "marcp", "marc@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	remaining := claims.RemainingLifetime()
	assert.True(t, remaining > 59*time.Minute && remaining <= time.Hour)

	_, expired, err := GenerateToken(1, "marcp", "marc@example.com", testSecret, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), expired.RemainingLifetime())
}
