package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test_secret_key_32_characters_min", time.Hour)

	token, err := svc.GenerateToken(7, "ops@example.com", RoleStaff)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.StaffID)
	assert.Equal(t, RoleStaff, claims.Role)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestValidateRejectsForeignAndExpiredTokens(t *testing.T) {
	svc := New("test_secret_key_32_characters_min", time.Hour)
	other := New("another_secret_key_32_characters", time.Hour)
	expired := New("test_secret_key_32_characters_min", -time.Minute)

	token, err := other.GenerateToken(1, "", RoleAdmin)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	token, err = expired.GenerateToken(1, "", RoleAdmin)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
