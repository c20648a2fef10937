package repository

import (
	"context"
	"fmt"

	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/repository/dao"
)

var (
	ErrRegistrationExists   = dao.ErrRegistrationExists
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
)

type RegistrationDAO interface {
	Insert(ctx context.Context, registration dao.Registration) (dao.Registration, error)
	InsertIfAbsent(ctx context.Context, contestID, studentID uint) error
	FindByID(ctx context.Context, id uint) (dao.Registration, error)
	FindByStudent(ctx context.Context, studentID uint) ([]dao.RegistrationRow, error)
	FindByContest(ctx context.Context, contestID uint) ([]dao.RegistrationRow, error)
	Delete(ctx context.Context, id uint) error
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, contestID, studentID uint) (domain.Registration, error) {
	created, err := r.dao.Insert(ctx, dao.Registration{
		ContestID: contestID,
		StudentID: studentID,
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uint) (domain.Registration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) FindByStudent(ctx context.Context, studentID uint) ([]domain.Registration, error) {
	rows, err := r.dao.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStudent -> %w", err)
	}

	registrations := make([]domain.Registration, len(rows))
	for i, row := range rows {
		registrations[i] = r.rowToDomain(row)
	}

	return registrations, nil
}

func (r *RegistrationRepository) FindByContest(ctx context.Context, contestID uint) ([]domain.Registration, error) {
	rows, err := r.dao.FindByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByContest -> %w", err)
	}

	registrations := make([]domain.Registration, len(rows))
	for i, row := range rows {
		registrations[i] = r.rowToDomain(row)
	}

	return registrations, nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *RegistrationRepository) daoToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:           reg.ID,
		ContestID:    reg.ContestID,
		StudentID:    reg.StudentID,
		RegisteredAt: reg.RegisteredAt,
	}
}

func (r *RegistrationRepository) rowToDomain(row dao.RegistrationRow) domain.Registration {
	registration := r.daoToDomain(row.Registration)
	registration.ContestTitle = row.ContestTitle
	registration.ContestDescription = row.ContestDescription
	registration.Organizer = row.Organizer
	registration.Platform = row.Platform
	registration.Location = row.Location
	registration.ImageURL = row.ImageURL
	registration.ExternalRegLink = row.ExternalRegLink
	registration.SubmissionLink = row.SubmissionLink
	registration.RegistrationDeadline = row.RegistrationDeadline
	registration.SubmissionDeadline = row.SubmissionDeadline
	registration.IsTeamBased = row.IsTeamBased
	registration.StudentName = row.StudentName
	registration.StudentEmail = row.StudentEmail
	registration.StudentDepartment = row.StudentDepartment
	registration.StudentYear = row.StudentYear
	registration.StudentSection = row.StudentSection
	registration.StudentRegisterNo = row.StudentRegisterNo

	return registration
}
