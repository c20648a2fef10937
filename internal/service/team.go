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
	ErrTeamNotFound        = repository.ErrTeamNotFound
	ErrNotTeamBasedContest = errors.New("this contest does not support teams")
	ErrAlreadyInTeam       = repository.ErrAlreadyInTeam
	ErrTeamFull            = repository.ErrTeamFull
	ErrLeaderCannotLeave   = errors.New("team leader cannot leave the team")
	ErrNotTeamMember       = repository.ErrNotTeamMember
)

type TeamRepository interface {
	CreateWithLeader(ctx context.Context, team domain.Team) (domain.Team, error)
	AddMember(ctx context.Context, teamID, studentID uint) error
	RemoveMember(ctx context.Context, teamID, studentID uint) error
	FindByID(ctx context.Context, id uint) (domain.Team, error)
	FindWithMembers(ctx context.Context, id uint) (domain.Team, error)
	FindByContest(ctx context.Context, contestID uint) ([]domain.Team, error)
	FindByStudent(ctx context.Context, studentID uint) ([]domain.Team, error)
}

type TeamContestRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Contest, error)
}

type TeamService struct {
	repo     TeamRepository
	contests TeamContestRepository
}

func NewTeamService(repo TeamRepository, contests TeamContestRepository) *TeamService {
	return &TeamService{
		repo:     repo,
		contests: contests,
	}
}

// CreateTeam makes the leader the first member and registers them for the
// contest. A student who already belongs to a team in this contest gets
// ErrAlreadyInTeam.
func (s *TeamService) CreateTeam(ctx context.Context, contestID, leaderID uint, name string) (domain.Team, error) {
	contest, err := s.contests.FindByID(ctx, contestID)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.contests.FindByID -> %w", err)
	}

	if !contest.IsTeamBased {
		return domain.Team{}, ErrNotTeamBasedContest
	}
	if time.Now().After(contest.RegistrationDeadline) {
		return domain.Team{}, ErrDeadlinePassed
	}

	team, err := s.repo.CreateWithLeader(ctx, domain.Team{
		ContestID: contestID,
		Name:      name,
		LeaderID:  leaderID,
	})
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.CreateWithLeader -> %w", err)
	}

	return team, nil
}

// JoinTeam seats the student if the deadline has not passed, the team has
// a free slot and the student is not in another team for this contest.
func (s *TeamService) JoinTeam(ctx context.Context, teamID, studentID uint) error {
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	contest, err := s.contests.FindByID(ctx, team.ContestID)
	if err != nil {
		return fmt.Errorf("s.contests.FindByID -> %w", err)
	}
	if time.Now().After(contest.RegistrationDeadline) {
		return ErrDeadlinePassed
	}

	if err = s.repo.AddMember(ctx, teamID, studentID); err != nil {
		return fmt.Errorf("s.repo.AddMember -> %w", err)
	}

	return nil
}

// LeaveTeam removes the membership row. The leader must disband or
// transfer instead; the contest registration row is deliberately kept.
func (s *TeamService) LeaveTeam(ctx context.Context, teamID, studentID uint) error {
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if team.LeaderID == studentID {
		return ErrLeaderCannotLeave
	}

	if err = s.repo.RemoveMember(ctx, teamID, studentID); err != nil {
		return fmt.Errorf("s.repo.RemoveMember -> %w", err)
	}

	return nil
}

func (s *TeamService) GetTeam(ctx context.Context, id uint) (domain.Team, error) {
	team, err := s.repo.FindWithMembers(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.FindWithMembers -> %w", err)
	}

	return team, nil
}

func (s *TeamService) ListForContest(ctx context.Context, contestID uint) ([]domain.Team, error) {
	teams, err := s.repo.FindByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByContest -> %w", err)
	}

	return teams, nil
}

func (s *TeamService) ListMine(ctx context.Context, studentID uint) ([]domain.Team, error) {
	teams, err := s.repo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByStudent -> %w", err)
	}

	return teams, nil
}
