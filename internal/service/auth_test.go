package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tastyhub/ordering-service/internal/db/repository"
	"github.com/tastyhub/ordering-service/internal/mocks"
	"github.com/tastyhub/ordering-service/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func testAuthService(repo UserRepository) *AuthService {
	return NewAuthService(repo, JWTConfig{Secret: "test-secret", ExpiresIn: 1})
}

func TestLoginIssuesValidToken(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := testAuthService(repo)

	repo.On("GetByUsername", mock.Anything, "admin").Return(&models.User{
		ID:           uuid.New(),
		Username:     "admin",
		PasswordHash: hashOf(t, "secret"),
		IsActive:     true,
	}, nil)

	token, err := svc.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := testAuthService(repo)

	repo.On("GetByUsername", mock.Anything, "admin").Return(&models.User{
		ID:           uuid.New(),
		Username:     "admin",
		PasswordHash: hashOf(t, "secret"),
		IsActive:     true,
	}, nil)

	_, err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := testAuthService(repo)

	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	_, err := svc.Login(context.Background(), "ghost", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := testAuthService(repo)

	repo.On("GetByUsername", mock.Anything, "admin").Return(&models.User{
		ID:           uuid.New(),
		Username:     "admin",
		PasswordHash: hashOf(t, "secret"),
		IsActive:     false,
	}, nil)

	_, err := svc.Login(context.Background(), "admin", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	repo := new(mocks.UserRepository)

	issuer := NewAuthService(repo, JWTConfig{Secret: "secret-a", ExpiresIn: 1})
	verifier := NewAuthService(repo, JWTConfig{Secret: "secret-b", ExpiresIn: 1})

	repo.On("GetByUsername", mock.Anything, "admin").Return(&models.User{
		ID:           uuid.New(),
		Username:     "admin",
		PasswordHash: hashOf(t, "secret"),
		IsActive:     true,
	}, nil)

	token, err := issuer.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestEnsureAdminCreatesOnce(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := testAuthService(repo)

	repo.On("GetByUsername", mock.Anything, "admin").Return(nil, repository.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "admin" && u.IsActive &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")) == nil
	})).Return(&models.User{ID: uuid.New(), Username: "admin"}, nil).Once()

	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "secret"))

	// second call finds the account and does nothing
	repo.On("GetByUsername", mock.Anything, "admin").Return(&models.User{
		ID:       uuid.New(),
		Username: "admin",
		IsActive: true,
	}, nil).Once()

	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "secret"))
	repo.AssertExpectations(t)
}

func TestEnsureAdminRequiresCredentials(t *testing.T) {
	svc := testAuthService(new(mocks.UserRepository))
	assert.Error(t, svc.EnsureAdmin(context.Background(), "", "secret"))
	assert.Error(t, svc.EnsureAdmin(context.Background(), "admin", ""))
}
