package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/repository"
)

var (
	ErrDeadlinePassed       = errors.New("registration deadline has passed")
	ErrTeamBasedContest     = errors.New("this is a team-based contest; create or join a team instead")
	ErrAlreadyRegistered    = repository.ErrRegistrationExists
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound
	ErrNotRegistrationOwner = errors.New("only the registrant may cancel a registration")
)

type RegistrationRepository interface {
	Create(ctx context.Context, contestID, studentID uint) (domain.Registration, error)
	FindByID(ctx context.Context, id uint) (domain.Registration, error)
	FindByStudent(ctx context.Context, studentID uint) ([]domain.Registration, error)
	FindByContest(ctx context.Context, contestID uint) ([]domain.Registration, error)
	Delete(ctx context.Context, id uint) error
}

type RegistrationContestRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Contest, error)
}

type RegistrationService struct {
	repo     RegistrationRepository
	contests RegistrationContestRepository
}

func NewRegistrationService(repo RegistrationRepository, contests RegistrationContestRepository) *RegistrationService {
	return &RegistrationService{
		repo:     repo,
		contests: contests,
	}
}

// Register creates an individual registration. Team-based contests must go
// through the team flow. The (contest, student) unique index is the final
// arbiter on duplicates.
func (s *RegistrationService) Register(ctx context.Context, contestID, studentID uint) (domain.Registration, error) {
	contest, err := s.contests.FindByID(ctx, contestID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.contests.FindByID -> %w", err)
	}

	if time.Now().After(contest.RegistrationDeadline) {
		return domain.Registration{}, ErrDeadlinePassed
	}
	if contest.IsTeamBased {
		return domain.Registration{}, ErrTeamBasedContest
	}

	registration, err := s.repo.Create(ctx, contestID, studentID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return registration, nil
}

func (s *RegistrationService) Cancel(ctx context.Context, registrationID, studentID uint) error {
	registration, err := s.repo.FindByID(ctx, registrationID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if registration.StudentID != studentID {
		return ErrNotRegistrationOwner
	}

	contest, err := s.contests.FindByID(ctx, registration.ContestID)
	if err != nil {
		return fmt.Errorf("s.contests.FindByID -> %w", err)
	}
	if time.Now().After(contest.RegistrationDeadline) {
		return ErrDeadlinePassed
	}

	if err = s.repo.Delete(ctx, registrationID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *RegistrationService) ListMine(ctx context.Context, studentID uint) ([]domain.Registration, error) {
	registrations, err := s.repo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByStudent -> %w", err)
	}

	return registrations, nil
}

func (s *RegistrationService) ListForContest(ctx context.Context, contestID uint) ([]domain.Registration, error) {
	registrations, err := s.repo.FindByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByContest -> %w", err)
	}

	return registrations, nil
}
