package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/repository"
)

var (
	ErrMentorEmailExists = repository.ErrMentorEmailExists
	ErrMentorNotFound    = repository.ErrMentorNotFound
)

type MentorUserRepository interface {
	CreateMentor(ctx context.Context, mentor domain.Mentor) (domain.Mentor, error)
	FindMentorByID(ctx context.Context, id uint) (domain.Mentor, error)
	FindAllMentors(ctx context.Context) ([]domain.Mentor, error)
}

type MentorContestRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Contest, error)
	FindByMentor(ctx context.Context, mentorID uint) ([]domain.Contest, error)
	AssignMentor(ctx context.Context, contestID, mentorID uint) error
}

type MentorTeamRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Team, error)
	FindByMentor(ctx context.Context, mentorID uint) ([]domain.Team, error)
	AssignMentor(ctx context.Context, teamID, mentorID uint) error
}

type MentorService struct {
	users    MentorUserRepository
	contests MentorContestRepository
	teams    MentorTeamRepository
}

func NewMentorService(users MentorUserRepository, contests MentorContestRepository, teams MentorTeamRepository) *MentorService {
	return &MentorService{
		users:    users,
		contests: contests,
		teams:    teams,
	}
}

// CreateMentor provisions a mentor account with a hashed password. Only
// coordinators reach this; the route enforces the role.
func (s *MentorService) CreateMentor(ctx context.Context, mentor domain.Mentor) (domain.Mentor, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(mentor.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Mentor{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	mentor.Password = string(hash)

	created, err := s.users.CreateMentor(ctx, mentor)
	if err != nil {
		return domain.Mentor{}, fmt.Errorf("s.users.CreateMentor -> %w", err)
	}
	created.Password = ""

	return created, nil
}

func (s *MentorService) ListMentors(ctx context.Context) ([]domain.Mentor, error) {
	mentors, err := s.users.FindAllMentors(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.users.FindAllMentors -> %w", err)
	}

	for i := range mentors {
		mentors[i].Password = ""
	}

	return mentors, nil
}

func (s *MentorService) ContestsForMentor(ctx context.Context, mentorID uint) ([]domain.Contest, error) {
	contests, err := s.contests.FindByMentor(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("s.contests.FindByMentor -> %w", err)
	}

	return contests, nil
}

func (s *MentorService) TeamsForMentor(ctx context.Context, mentorID uint) ([]domain.Team, error) {
	teams, err := s.teams.FindByMentor(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("s.teams.FindByMentor -> %w", err)
	}

	return teams, nil
}

// AssignToContest verifies both sides exist before writing the link, so a
// bad id surfaces as a not-found rather than a foreign key error.
func (s *MentorService) AssignToContest(ctx context.Context, contestID, mentorID uint) error {
	if _, err := s.users.FindMentorByID(ctx, mentorID); err != nil {
		return fmt.Errorf("s.users.FindMentorByID -> %w", err)
	}
	if _, err := s.contests.FindByID(ctx, contestID); err != nil {
		return fmt.Errorf("s.contests.FindByID -> %w", err)
	}

	if err := s.contests.AssignMentor(ctx, contestID, mentorID); err != nil {
		return fmt.Errorf("s.contests.AssignMentor -> %w", err)
	}

	return nil
}

func (s *MentorService) AssignToTeam(ctx context.Context, teamID, mentorID uint) error {
	if _, err := s.users.FindMentorByID(ctx, mentorID); err != nil {
		return fmt.Errorf("s.users.FindMentorByID -> %w", err)
	}
	if _, err := s.teams.FindByID(ctx, teamID); err != nil {
		return fmt.Errorf("s.teams.FindByID -> %w", err)
	}

	if err := s.teams.AssignMentor(ctx, teamID, mentorID); err != nil {
		return fmt.Errorf("s.teams.AssignMentor -> %w", err)
	}

	return nil
}
