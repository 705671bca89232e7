package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aqarshare/admin-portal/admin-portal-backend/internal/users"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)
	user := &users.User{
		ID:    uuid.New(),
		Email: "admin@example.com",
		Role:  users.RoleAdmin,
	}

	token, err := manager.Generate(user)
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, users.RoleAdmin, claims.Role)
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret-key-32-bytes-long!!!", -time.Minute)
	token, err := manager.Generate(&users.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)
	token, err := manager.Generate(&users.User{ID: uuid.New()})
	require.NoError(t, err)

	other := NewJWTManager("a-completely-different-secret!!!", time.Hour)
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
