package repository

import (
	"context"
	"fmt"

	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/repository/dao"
)

var (
	ErrTeamNotFound  = dao.ErrTeamNotFound
	ErrAlreadyInTeam = dao.ErrAlreadyInTeam
	ErrTeamFull      = dao.ErrTeamFull
	ErrNotTeamMember = dao.ErrNotTeamMember
)

type TeamDAO interface {
	InsertWithLeader(ctx context.Context, team dao.Team) (dao.Team, error)
	AddMember(ctx context.Context, teamID, studentID uint) error
	RemoveMember(ctx context.Context, teamID, studentID uint) error
	FindByID(ctx context.Context, id uint) (dao.Team, error)
	FindRowByID(ctx context.Context, id uint) (dao.TeamRow, error)
	FindByContest(ctx context.Context, contestID uint) ([]dao.TeamRow, error)
	FindByStudent(ctx context.Context, studentID uint) ([]dao.TeamRow, error)
	FindByMentor(ctx context.Context, mentorID uint) ([]dao.TeamRow, error)
	FindMembers(ctx context.Context, teamID uint) ([]dao.MemberRow, error)
	AssignMentor(ctx context.Context, teamID, mentorID uint) error
}

type TeamRepository struct {
	dao TeamDAO
}

func NewTeamRepository(dao TeamDAO) *TeamRepository {
	return &TeamRepository{
		dao: dao,
	}
}

func (r *TeamRepository) CreateWithLeader(ctx context.Context, team domain.Team) (domain.Team, error) {
	created, err := r.dao.InsertWithLeader(ctx, dao.Team{
		ContestID: team.ContestID,
		Name:      team.Name,
		LeaderID:  team.LeaderID,
	})
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.InsertWithLeader -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TeamRepository) AddMember(ctx context.Context, teamID, studentID uint) error {
	if err := r.dao.AddMember(ctx, teamID, studentID); err != nil {
		return fmt.Errorf("r.dao.AddMember -> %w", err)
	}

	return nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, studentID uint) error {
	if err := r.dao.RemoveMember(ctx, teamID, studentID); err != nil {
		return fmt.Errorf("r.dao.RemoveMember -> %w", err)
	}

	return nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id uint) (domain.Team, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TeamRepository) FindWithMembers(ctx context.Context, id uint) (domain.Team, error) {
	row, err := r.dao.FindRowByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindRowByID -> %w", err)
	}

	members, err := r.dao.FindMembers(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindMembers -> %w", err)
	}

	team := r.rowToDomain(row)
	team.Members = make([]domain.TeamMember, len(members))
	for i, m := range members {
		team.Members[i] = domain.TeamMember{
			StudentID:  m.StudentID,
			Name:       m.Name,
			Email:      m.Email,
			Department: m.Department,
			Year:       m.Year,
			Section:    m.Section,
			JoinedAt:   m.JoinedAt,
		}
	}

	return team, nil
}

func (r *TeamRepository) FindByContest(ctx context.Context, contestID uint) ([]domain.Team, error) {
	rows, err := r.dao.FindByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByContest -> %w", err)
	}

	return r.rowsToDomain(rows), nil
}

func (r *TeamRepository) FindByStudent(ctx context.Context, studentID uint) ([]domain.Team, error) {
	rows, err := r.dao.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStudent -> %w", err)
	}

	return r.rowsToDomain(rows), nil
}

func (r *TeamRepository) FindByMentor(ctx context.Context, mentorID uint) ([]domain.Team, error) {
	rows, err := r.dao.FindByMentor(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByMentor -> %w", err)
	}

	return r.rowsToDomain(rows), nil
}

func (r *TeamRepository) AssignMentor(ctx context.Context, teamID, mentorID uint) error {
	if err := r.dao.AssignMentor(ctx, teamID, mentorID); err != nil {
		return fmt.Errorf("r.dao.AssignMentor -> %w", err)
	}

	return nil
}

func (r *TeamRepository) daoToDomain(t dao.Team) domain.Team {
	return domain.Team{
		ID:        t.ID,
		ContestID: t.ContestID,
		Name:      t.Name,
		LeaderID:  t.LeaderID,
		MentorID:  t.MentorID,
		CreatedAt: t.CreatedAt,
	}
}

func (r *TeamRepository) rowToDomain(row dao.TeamRow) domain.Team {
	team := r.daoToDomain(row.Team)
	team.LeaderName = row.LeaderName
	team.LeaderEmail = row.LeaderEmail
	team.MentorName = row.MentorName
	team.ContestTitle = row.ContestTitle
	team.MemberCount = row.MemberCount

	return team
}

func (r *TeamRepository) rowsToDomain(rows []dao.TeamRow) []domain.Team {
	teams := make([]domain.Team, len(rows))
	for i, row := range rows {
		teams[i] = r.rowToDomain(row)
	}

	return teams
}
