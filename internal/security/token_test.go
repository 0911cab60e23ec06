package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/security"
)

const testSecret = "test-secret-which-is-long-enough-0123"

func TestTokenManager_AccessToken(t *testing.T) {
	mgr := security.NewTokenManager(testSecret, 60, 60*24*7)

	token, err := mgr.GenerateAccessToken(1, "user@test.com", domain.UserRoleCustomer)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := mgr.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), claims.UserID)
	assert.Equal(t, "user@test.com", claims.Email)
	assert.Equal(t, domain.UserRoleCustomer, claims.Role)
	assert.Equal(t, security.TokenTypeAccess, claims.Type)
}

func TestTokenManager_RefreshToken(t *testing.T) {
	mgr := security.NewTokenManager(testSecret, 60, 60*24*7)

	token, err := mgr.GenerateRefreshToken(1, "user@test.com")
	assert.NoError(t, err)

	claims, err := mgr.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, security.TokenTypeRefresh, claims.Type)
}

func TestTokenManager_ValidateToken_Errors(t *testing.T) {
	mgr := security.NewTokenManager(testSecret, 60, 60*24*7)

	t.Run("Garbage", func(t *testing.T) {
		_, err := mgr.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := security.NewTokenManager("another-secret-which-is-long-enough-x", 60, 60)
		token, err := other.GenerateAccessToken(1, "user@test.com", domain.UserRoleCustomer)
		assert.NoError(t, err)

		_, err = mgr.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := security.NewTokenManager(testSecret, -1, -1)
		token, err := expired.GenerateAccessToken(1, "user@test.com", domain.UserRoleCustomer)
		assert.NoError(t, err)

		_, err = mgr.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrExpiredToken)
	})
}
