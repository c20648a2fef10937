package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/repository"
)

var (
	ErrContestNotFound  = repository.ErrContestNotFound
	ErrNotContestOwner  = errors.New("only the contest's creator may modify it")
	ErrInvalidDeadlines = errors.New("registration deadline must be before submission deadline")
)

type ContestRepository interface {
	Create(ctx context.Context, contest domain.Contest) (domain.Contest, error)
	FindByID(ctx context.Context, id uint) (domain.Contest, error)
	FindDetailByID(ctx context.Context, id uint) (domain.Contest, error)
	FindAll(ctx context.Context) ([]domain.Contest, error)
	Update(ctx context.Context, id uint, update domain.ContestUpdate) error
	Delete(ctx context.Context, id uint) error
}

type ContestTeamRepository interface {
	FindByContest(ctx context.Context, contestID uint) ([]domain.Team, error)
}

type ContestService struct {
	repo  ContestRepository
	teams ContestTeamRepository
}

func NewContestService(repo ContestRepository, teams ContestTeamRepository) *ContestService {
	return &ContestService{
		repo:  repo,
		teams: teams,
	}
}

func (s *ContestService) CreateContest(ctx context.Context, contest domain.Contest) (domain.Contest, error) {
	if !contest.RegistrationDeadline.Before(contest.SubmissionDeadline) {
		return domain.Contest{}, ErrInvalidDeadlines
	}
	if contest.MaxTeamSize < 1 {
		contest.MaxTeamSize = 1
	}

	created, err := s.repo.Create(ctx, contest)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ContestService) GetContests(ctx context.Context) ([]domain.Contest, error) {
	contests, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return contests, nil
}

// GetContest returns the annotated detail view, including the team list
// when the contest is team-based.
func (s *ContestService) GetContest(ctx context.Context, id uint) (domain.Contest, error) {
	contest, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("s.repo.FindDetailByID -> %w", err)
	}

	if contest.IsTeamBased {
		teams, err := s.teams.FindByContest(ctx, id)
		if err != nil {
			return domain.Contest{}, fmt.Errorf("s.teams.FindByContest -> %w", err)
		}
		contest.Teams = teams
	}

	return contest, nil
}

func (s *ContestService) UpdateContest(ctx context.Context, id, coordinatorID uint, update domain.ContestUpdate) error {
	contest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if contest.CreatedBy != coordinatorID {
		return ErrNotContestOwner
	}

	// Deadline ordering must hold for the merged result, whichever side
	// the update touches.
	regDeadline := contest.RegistrationDeadline
	if update.RegistrationDeadline != nil {
		regDeadline = *update.RegistrationDeadline
	}
	subDeadline := contest.SubmissionDeadline
	if update.SubmissionDeadline != nil {
		subDeadline = *update.SubmissionDeadline
	}
	if !regDeadline.Before(subDeadline) {
		return ErrInvalidDeadlines
	}

	if err = s.repo.Update(ctx, id, update); err != nil {
		return fmt.Errorf("s.repo.Update -> %w", err)
	}

	return nil
}

func (s *ContestService) DeleteContest(ctx context.Context, id, coordinatorID uint) error {
	contest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if contest.CreatedBy != coordinatorID {
		return ErrNotContestOwner
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
