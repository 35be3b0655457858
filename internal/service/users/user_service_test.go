package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mvetrova/flightdesk/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func TestUserService_Register(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)

	ctx := context.Background()
	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, err := service.Register(ctx, "masha", "s3cret")

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "masha", user.Username)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
}

func TestUserService_Register_Validation(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)
	ctx := context.Background()

	_, err := service.Register(ctx, "", "s3cret")
	assert.Error(t, err)

	_, err = service.Register(ctx, "masha", "abc")
	assert.Error(t, err)

	repo.AssertNotCalled(t, "Create")
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)

	ctx := context.Background()
	repo.On("Create", ctx, mock.Anything).Return(domain.ErrUserExists).Once()

	user, err := service.Register(ctx, "masha", "s3cret")

	assert.ErrorIs(t, err, domain.ErrUserExists)
	assert.Nil(t, user)
}

func TestUserService_Authenticate(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{ID: "u1", Username: "masha", PasswordHash: string(hash)}

	ctx := context.Background()
	repo.On("GetByUsername", ctx, "masha").Return(stored, nil)

	user, err := service.Authenticate(ctx, "masha", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = service.Authenticate(ctx, "masha", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserService_Authenticate_UnknownUsername(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo)

	ctx := context.Background()
	repo.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrUnknownUser).Once()

	// An unknown username reads the same as a wrong password.
	_, err := service.Authenticate(ctx, "ghost", "s3cret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
