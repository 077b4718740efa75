package services

import (
	"context"
	"testing"
	"time"

	"github.com/monazzem/amlak-api/internal/config"
	"github.com/monazzem/amlak-api/internal/models"
	"github.com/monazzem/amlak-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

type mockRefreshTokenRepository struct {
	repository.RefreshTokenRepository
	mockFindByToken func(ctx context.Context, token string) (*models.RefreshToken, error)
	mockDelete      func(ctx context.Context, token string) error
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	return m.mockFindByToken(ctx, token)
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, rt *models.RefreshToken) error {
	return nil
}

func (m *mockRefreshTokenRepository) Delete(ctx context.Context, token string) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return nil
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
	}
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := &mockUserRepository{}
	mockRTRepo := &mockRefreshTokenRepository{}
	service := NewAuthService(mockRepo, mockRTRepo, testAuthConfig())

	hash, err := HashPassword("secret123")
	assert.NoError(t, err)

	mockRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{
			ID:                1,
			Email:             email,
			EncryptedPassword: hash,
			FullName:          "Admin User",
			Role:              models.RoleAdmin,
			Status:            models.StatusActive,
		}, nil
	}

	result, err := service.Login(context.Background(), "admin@example.com", "secret123")
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "admin@example.com", result.User.Email)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := &mockUserRepository{}
	service := NewAuthService(mockRepo, nil, testAuthConfig())

	hash, _ := HashPassword("secret123")
	mockRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{
			Email:             email,
			EncryptedPassword: hash,
			Status:            models.StatusActive,
		}, nil
	}

	result, err := service.Login(context.Background(), "admin@example.com", "wrong")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	mockRepo := &mockUserRepository{}
	service := NewAuthService(mockRepo, nil, testAuthConfig())

	mockRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{
			Email:  email,
			Status: models.StatusInactive,
		}, nil
	}

	result, err := service.Login(context.Background(), "inactive@example.com", "password")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "account is inactive", err.Error())
}

func TestAuthService_RefreshToken_InactiveUser(t *testing.T) {
	mockRepo := &mockUserRepository{}
	mockRTRepo := &mockRefreshTokenRepository{}
	service := NewAuthService(mockRepo, mockRTRepo, testAuthConfig())

	mockRTRepo.mockFindByToken = func(ctx context.Context, token string) (*models.RefreshToken, error) {
		return &models.RefreshToken{UserID: 1}, nil
	}
	mockRepo.mockFindByID = func(ctx context.Context, id uint) (*models.User, error) {
		return &models.User{
			ID:     id,
			Status: models.StatusInactive,
		}, nil
	}

	result, err := service.RefreshToken(context.Background(), "token")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "account is inactive", err.Error())
}

func TestAuthService_RefreshToken_Expired(t *testing.T) {
	mockRTRepo := &mockRefreshTokenRepository{}
	service := NewAuthService(nil, mockRTRepo, testAuthConfig())

	expired := time.Now().Add(-time.Hour)
	mockRTRepo.mockFindByToken = func(ctx context.Context, token string) (*models.RefreshToken, error) {
		return &models.RefreshToken{UserID: 1, Token: token, ExpiresAt: &expired}, nil
	}

	var deleted string
	mockRTRepo.mockDelete = func(ctx context.Context, token string) error {
		deleted = token
		return nil
	}

	result, err := service.RefreshToken(context.Background(), "stale-token")
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Equal(t, "token expired", err.Error())
	assert.Equal(t, "stale-token", deleted, "expired tokens are purged on use")
}

func TestAuthService_RefreshToken_Rotation(t *testing.T) {
	mockRepo := &mockUserRepository{}
	mockRTRepo := &mockRefreshTokenRepository{}
	service := NewAuthService(mockRepo, mockRTRepo, testAuthConfig())

	mockRTRepo.mockFindByToken = func(ctx context.Context, token string) (*models.RefreshToken, error) {
		return &models.RefreshToken{UserID: 1, Token: token}, nil
	}
	mockRepo.mockFindByID = func(ctx context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Email: "admin@example.com", Status: models.StatusActive}, nil
	}

	var deleted string
	mockRTRepo.mockDelete = func(ctx context.Context, token string) error {
		deleted = token
		return nil
	}

	result, err := service.RefreshToken(context.Background(), "old-token")
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "old-token", deleted)
	assert.NotEqual(t, "old-token", result.RefreshToken)
}
