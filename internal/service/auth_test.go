package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	args := m.Called(ctx, student)

	return args.Get(0).(domain.Student), args.Error(1)
}

func (m *MockUserRepository) FindStudentByID(ctx context.Context, id uint) (domain.Student, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(domain.Student), args.Error(1)
}

func (m *MockUserRepository) FindStudentByEmail(ctx context.Context, email string) (domain.Student, error) {
	args := m.Called(ctx, email)

	return args.Get(0).(domain.Student), args.Error(1)
}

func (m *MockUserRepository) FindCoordinatorByID(ctx context.Context, id uint) (domain.Coordinator, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(domain.Coordinator), args.Error(1)
}

func (m *MockUserRepository) FindCoordinatorByEmail(ctx context.Context, email string) (domain.Coordinator, error) {
	args := m.Called(ctx, email)

	return args.Get(0).(domain.Coordinator), args.Error(1)
}

func (m *MockUserRepository) FindMentorByID(ctx context.Context, id uint) (domain.Mentor, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(domain.Mentor), args.Error(1)
}

func (m *MockUserRepository) FindMentorByEmail(ctx context.Context, email string) (domain.Mentor, error) {
	args := m.Called(ctx, email)

	return args.Get(0).(domain.Mentor), args.Error(1)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("student login succeeds with correct password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindStudentByEmail", ctx, "ada@example.com").Return(domain.Student{
			ID:       1,
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: hashPassword(t, "secret123"),
		}, nil)

		svc := NewAuthService(repo)
		profile, err := svc.Login(ctx, "ada@example.com", "secret123", domain.RoleStudent)

		require.NoError(t, err)
		assert.Equal(t, uint(1), profile.ID)
		assert.Equal(t, domain.RoleStudent, profile.Role)
	})

	t.Run("wrong password yields invalid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindStudentByEmail", ctx, "ada@example.com").Return(domain.Student{
			ID:       1,
			Password: hashPassword(t, "secret123"),
		}, nil)

		svc := NewAuthService(repo)
		_, err := svc.Login(ctx, "ada@example.com", "wrong-password", domain.RoleStudent)

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email yields the same invalid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindStudentByEmail", ctx, "ghost@example.com").
			Return(domain.Student{}, repository.ErrStudentNotFound)

		svc := NewAuthService(repo)
		_, err := svc.Login(ctx, "ghost@example.com", "whatever", domain.RoleStudent)

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("mentor email under student role fails like an unknown email", func(t *testing.T) {
		// The mentor row exists, but only the students table is consulted.
		repo := new(MockUserRepository)
		repo.On("FindStudentByEmail", ctx, "mentor@example.com").
			Return(domain.Student{}, repository.ErrStudentNotFound)

		svc := NewAuthService(repo)
		_, err := svc.Login(ctx, "mentor@example.com", "secret123", domain.RoleStudent)

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		repo.AssertNotCalled(t, "FindMentorByEmail", ctx, "mentor@example.com")
	})

	t.Run("coordinator login consults the coordinators table", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindCoordinatorByEmail", ctx, "coord@example.com").Return(domain.Coordinator{
			ID:       3,
			Email:    "coord@example.com",
			Password: hashPassword(t, "secret123"),
		}, nil)

		svc := NewAuthService(repo)
		profile, err := svc.Login(ctx, "coord@example.com", "secret123", domain.RoleCoordinator)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleCoordinator, profile.Role)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository))
		_, err := svc.Login(ctx, "x@example.com", "secret123", "superadmin")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_SignupStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("password is stored hashed", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("CreateStudent", ctx, mock.MatchedBy(func(s domain.Student) bool {
			err := bcrypt.CompareHashAndPassword([]byte(s.Password), []byte("secret123"))

			return s.Email == "ada@example.com" && err == nil
		})).Return(domain.Student{ID: 1, Email: "ada@example.com"}, nil)

		svc := NewAuthService(repo)
		profile, err := svc.SignupStudent(ctx, domain.Student{
			Email:    "ada@example.com",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.Equal(t, uint(1), profile.ID)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate student surfaces as ErrStudentExists", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("CreateStudent", ctx, mock.Anything).
			Return(domain.Student{}, repository.ErrStudentExists)

		svc := NewAuthService(repo)
		_, err := svc.SignupStudent(ctx, domain.Student{Email: "dup@example.com", Password: "secret123"})

		assert.ErrorIs(t, err, ErrStudentExists)
	})
}

func TestAuthService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves mentor profile from the mentors table", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindMentorByID", ctx, uint(9)).Return(domain.Mentor{
			ID:    9,
			Name:  "Grace",
			Email: "grace@example.com",
		}, nil)

		svc := NewAuthService(repo)
		profile, err := svc.GetProfile(ctx, domain.Identity{ID: 9, Role: domain.RoleMentor})

		require.NoError(t, err)
		assert.Equal(t, domain.RoleMentor, profile.Role)
		assert.Equal(t, "Grace", profile.Name)
	})

	t.Run("missing row maps to ErrUserNotFound", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindStudentByID", ctx, uint(404)).
			Return(domain.Student{}, repository.ErrStudentNotFound)

		svc := NewAuthService(repo)
		_, err := svc.GetProfile(ctx, domain.Identity{ID: 404, Role: domain.RoleStudent})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
