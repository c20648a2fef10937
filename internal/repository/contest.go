package repository

import (
	"context"
	"fmt"

	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/repository/dao"
)

var ErrContestNotFound = dao.ErrContestNotFound

type ContestDAO interface {
	Insert(ctx context.Context, contest dao.Contest) (dao.Contest, error)
	FindByID(ctx context.Context, id uint) (dao.Contest, error)
	FindRowByID(ctx context.Context, id uint) (dao.ContestRow, error)
	FindAll(ctx context.Context) ([]dao.ContestRow, error)
	FindByMentor(ctx context.Context, mentorID uint) ([]dao.Contest, error)
	Update(ctx context.Context, id uint, columns map[string]interface{}) error
	AssignMentor(ctx context.Context, contestID, mentorID uint) error
	Delete(ctx context.Context, id uint) error
}

type ContestRepository struct {
	dao ContestDAO
}

func NewContestRepository(dao ContestDAO) *ContestRepository {
	return &ContestRepository{
		dao: dao,
	}
}

func (r *ContestRepository) Create(ctx context.Context, contest domain.Contest) (domain.Contest, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(contest))
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ContestRepository) FindByID(ctx context.Context, id uint) (domain.Contest, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ContestRepository) FindDetailByID(ctx context.Context, id uint) (domain.Contest, error) {
	row, err := r.dao.FindRowByID(ctx, id)
	if err != nil {
		return domain.Contest{}, fmt.Errorf("r.dao.FindRowByID -> %w", err)
	}

	return r.rowToDomain(row), nil
}

func (r *ContestRepository) FindAll(ctx context.Context) ([]domain.Contest, error) {
	rows, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	contests := make([]domain.Contest, len(rows))
	for i, row := range rows {
		contests[i] = r.rowToDomain(row)
	}

	return contests, nil
}

func (r *ContestRepository) FindByMentor(ctx context.Context, mentorID uint) ([]domain.Contest, error) {
	found, err := r.dao.FindByMentor(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByMentor -> %w", err)
	}

	contests := make([]domain.Contest, len(found))
	for i, c := range found {
		contests[i] = r.daoToDomain(c)
	}

	return contests, nil
}

func (r *ContestRepository) Update(ctx context.Context, id uint, update domain.ContestUpdate) error {
	columns := map[string]interface{}{}
	setIfPresent(columns, "title", update.Title)
	setIfPresent(columns, "description", update.Description)
	setIfPresent(columns, "location", update.Location)
	setIfPresent(columns, "department", update.Department)
	setIfPresent(columns, "registration_deadline", update.RegistrationDeadline)
	setIfPresent(columns, "submission_deadline", update.SubmissionDeadline)
	setIfPresent(columns, "is_team_based", update.IsTeamBased)
	setIfPresent(columns, "max_team_size", update.MaxTeamSize)
	setIfPresent(columns, "image_url", update.ImageURL)
	setIfPresent(columns, "external_reg_link", update.ExternalRegLink)
	setIfPresent(columns, "submission_link", update.SubmissionLink)
	setIfPresent(columns, "mentor_id", update.MentorID)

	if err := r.dao.Update(ctx, id, columns); err != nil {
		return fmt.Errorf("r.dao.Update -> %w", err)
	}

	return nil
}

func (r *ContestRepository) AssignMentor(ctx context.Context, contestID, mentorID uint) error {
	if err := r.dao.AssignMentor(ctx, contestID, mentorID); err != nil {
		return fmt.Errorf("r.dao.AssignMentor -> %w", err)
	}

	return nil
}

func (r *ContestRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func setIfPresent[T any](columns map[string]interface{}, name string, value *T) {
	if value != nil {
		columns[name] = *value
	}
}

func (r *ContestRepository) domainToDao(c domain.Contest) dao.Contest {
	return dao.Contest{
		ID:                   c.ID,
		Title:                c.Title,
		Description:          c.Description,
		Organizer:            c.Organizer,
		Platform:             c.Platform,
		Location:             c.Location,
		Department:           c.Department,
		RegistrationDeadline: c.RegistrationDeadline,
		SubmissionDeadline:   c.SubmissionDeadline,
		IsTeamBased:          c.IsTeamBased,
		MaxTeamSize:          c.MaxTeamSize,
		ImageURL:             c.ImageURL,
		ExternalRegLink:      c.ExternalRegLink,
		SubmissionLink:       c.SubmissionLink,
		CreatedBy:            c.CreatedBy,
		MentorID:             c.MentorID,
	}
}

func (r *ContestRepository) daoToDomain(c dao.Contest) domain.Contest {
	return domain.Contest{
		ID:                   c.ID,
		Title:                c.Title,
		Description:          c.Description,
		Organizer:            c.Organizer,
		Platform:             c.Platform,
		Location:             c.Location,
		Department:           c.Department,
		RegistrationDeadline: c.RegistrationDeadline,
		SubmissionDeadline:   c.SubmissionDeadline,
		IsTeamBased:          c.IsTeamBased,
		MaxTeamSize:          c.MaxTeamSize,
		ImageURL:             c.ImageURL,
		ExternalRegLink:      c.ExternalRegLink,
		SubmissionLink:       c.SubmissionLink,
		CreatedBy:            c.CreatedBy,
		MentorID:             c.MentorID,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func (r *ContestRepository) rowToDomain(row dao.ContestRow) domain.Contest {
	contest := r.daoToDomain(row.Contest)
	contest.CoordinatorName = row.CoordinatorName
	contest.CoordinatorEmail = row.CoordinatorEmail
	contest.MentorName = row.MentorName
	contest.MentorEmail = row.MentorEmail
	contest.RegistrationCount = row.RegistrationCount

	return contest
}
