package services

import (
	"testing"

	"expense-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.Register(&models.UserRegisterRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.UserID)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	logged, err := svc.Login(&models.UserLoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.UserID, logged.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(&models.UserRegisterRequest{Email: "dup@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(&models.UserRegisterRequest{Email: "dup@example.com", Password: "another456"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoginFailures(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.Register(&models.UserRegisterRequest{Email: "bob@example.com", Password: "secret123"})
	require.NoError(t, err)

	// 密码错误
	_, err = svc.Login(&models.UserLoginRequest{Email: "bob@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrValidation)

	// 邮箱不存在
	_, err = svc.Login(&models.UserLoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrValidation)

	// 停用的账号无法登录
	require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", user.UserID).Update("is_active", false).Error)
	_, err = svc.Login(&models.UserLoginRequest{Email: "bob@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrValidation)

	// 停用的账号对认证查询不可见
	_, err = svc.GetUserByID(user.UserID)
	assert.ErrorIs(t, err, ErrNotFound)
}
