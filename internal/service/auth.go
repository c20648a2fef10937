package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/repository"
)

var (
	// ErrInvalidCredentials covers both an unknown email within the
	// selected role table and a wrong password, so responses never reveal
	// which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrStudentExists = repository.ErrStudentExists
	ErrUserNotFound  = errors.New("user not found")
)

type AuthUserRepository interface {
	CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error)
	FindStudentByID(ctx context.Context, id uint) (domain.Student, error)
	FindStudentByEmail(ctx context.Context, email string) (domain.Student, error)
	FindCoordinatorByID(ctx context.Context, id uint) (domain.Coordinator, error)
	FindCoordinatorByEmail(ctx context.Context, email string) (domain.Coordinator, error)
	FindMentorByID(ctx context.Context, id uint) (domain.Mentor, error)
	FindMentorByEmail(ctx context.Context, email string) (domain.Mentor, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Login verifies the credentials against the table selected by role only.
// A mentor's email submitted with role=student fails exactly like an
// unknown email.
func (s *AuthService) Login(ctx context.Context, email, password string, role domain.Role) (domain.Profile, error) {
	var (
		profile domain.Profile
		hash    string
	)

	switch role {
	case domain.RoleStudent:
		student, err := s.repo.FindStudentByEmail(ctx, email)
		if err != nil {
			return domain.Profile{}, loginLookupErr(err, repository.ErrStudentNotFound)
		}
		profile, hash = student.Profile(), student.Password
	case domain.RoleCoordinator:
		coordinator, err := s.repo.FindCoordinatorByEmail(ctx, email)
		if err != nil {
			return domain.Profile{}, loginLookupErr(err, repository.ErrCoordinatorNotFound)
		}
		profile, hash = coordinator.Profile(), coordinator.Password
	case domain.RoleMentor:
		mentor, err := s.repo.FindMentorByEmail(ctx, email)
		if err != nil {
			return domain.Profile{}, loginLookupErr(err, repository.ErrMentorNotFound)
		}
		profile, hash = mentor.Profile(), mentor.Password
	default:
		return domain.Profile{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.Profile{}, ErrInvalidCredentials
	}

	return profile, nil
}

func loginLookupErr(err, notFound error) error {
	if errors.Is(err, notFound) {
		return ErrInvalidCredentials
	}

	return fmt.Errorf("login lookup -> %w", err)
}

// SignupStudent hashes the password and creates the student row. Duplicate
// email or register number surfaces as ErrStudentExists.
func (s *AuthService) SignupStudent(ctx context.Context, student domain.Student) (domain.Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(student.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	student.Password = string(hash)

	created, err := s.repo.CreateStudent(ctx, student)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.CreateStudent -> %w", err)
	}

	return created.Profile(), nil
}

// GetProfile resolves the current profile from the role table named by the
// token identity.
func (s *AuthService) GetProfile(ctx context.Context, identity domain.Identity) (domain.Profile, error) {
	switch identity.Role {
	case domain.RoleStudent:
		student, err := s.repo.FindStudentByID(ctx, identity.ID)
		if err != nil {
			return domain.Profile{}, profileLookupErr(err, repository.ErrStudentNotFound)
		}

		return student.Profile(), nil
	case domain.RoleCoordinator:
		coordinator, err := s.repo.FindCoordinatorByID(ctx, identity.ID)
		if err != nil {
			return domain.Profile{}, profileLookupErr(err, repository.ErrCoordinatorNotFound)
		}

		return coordinator.Profile(), nil
	case domain.RoleMentor:
		mentor, err := s.repo.FindMentorByID(ctx, identity.ID)
		if err != nil {
			return domain.Profile{}, profileLookupErr(err, repository.ErrMentorNotFound)
		}

		return mentor.Profile(), nil
	}

	return domain.Profile{}, ErrUserNotFound
}

func profileLookupErr(err, notFound error) error {
	if errors.Is(err, notFound) {
		return ErrUserNotFound
	}

	return fmt.Errorf("profile lookup -> %w", err)
}
