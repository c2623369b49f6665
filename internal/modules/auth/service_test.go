package auth

import (
	"context"
	"testing"

	"tooltrack/internal/domain"
	"tooltrack/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubIssuer struct{}

func (stubIssuer) GenerateToken(userID int64, role string) (string, error) {
	return "test-token", nil
}

func TestRegister_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubIssuer{})

	users.On("GetByEmail", mock.Anything, "new@test.local").Return(nil, repository.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@test.local" && u.Role == domain.RoleUser && u.PasswordHash != "secret123"
	})).Return(nil)

	user, token, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  New@Test.Local ",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@test.local", user.Email)
	assert.Equal(t, "test-token", token)
	users.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubIssuer{})

	users.On("GetByEmail", mock.Anything, "taken@test.local").
		Return(&domain.User{ID: 1, Email: "taken@test.local"}, nil)

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@test.local",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create")
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubIssuer{})

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "u@test.local").Return(&domain.User{
		ID:           5,
		Email:        "u@test.local",
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}, nil)

	user, token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "u@test.local",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, "test-token", token)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubIssuer{})

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "u@test.local").Return(&domain.User{
		ID:           5,
		Email:        "u@test.local",
		PasswordHash: string(hash),
	}, nil)

	_, _, err = svc.Login(context.Background(), LoginRequest{
		Email:    "u@test.local",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmailIsInvalidCredentials(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubIssuer{})

	users.On("GetByEmail", mock.Anything, "ghost@test.local").Return(nil, repository.ErrNotFound)

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@test.local",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUser_NotFound(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubIssuer{})

	users.On("GetByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	_, err := svc.GetUser(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
