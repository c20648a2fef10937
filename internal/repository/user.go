package repository

import (
	"context"
	"fmt"

	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/repository/dao"
)

var (
	ErrStudentExists       = dao.ErrStudentExists
	ErrStudentNotFound     = dao.ErrStudentNotFound
	ErrCoordinatorNotFound = dao.ErrCoordinatorNotFound
	ErrMentorEmailExists   = dao.ErrMentorEmailExists
	ErrMentorNotFound      = dao.ErrMentorNotFound
)

type UserDAO interface {
	InsertStudent(ctx context.Context, student dao.Student) (dao.Student, error)
	FindStudentByID(ctx context.Context, id uint) (dao.Student, error)
	FindStudentByEmail(ctx context.Context, email string) (dao.Student, error)
	FindCoordinatorByID(ctx context.Context, id uint) (dao.Coordinator, error)
	FindCoordinatorByEmail(ctx context.Context, email string) (dao.Coordinator, error)
	InsertMentor(ctx context.Context, mentor dao.Mentor) (dao.Mentor, error)
	FindMentorByID(ctx context.Context, id uint) (dao.Mentor, error)
	FindMentorByEmail(ctx context.Context, email string) (dao.Mentor, error)
	FindAllMentors(ctx context.Context) ([]dao.Mentor, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	created, err := r.dao.InsertStudent(ctx, dao.Student{
		Name:       student.Name,
		Email:      student.Email,
		Password:   student.Password,
		Department: student.Department,
		Year:       student.Year,
		Section:    student.Section,
		RegisterNo: student.RegisterNo,
		PhoneNo:    student.PhoneNo,
	})
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.InsertStudent -> %w", err)
	}

	return r.studentDaoToDomain(created), nil
}

func (r *UserRepository) FindStudentByID(ctx context.Context, id uint) (domain.Student, error) {
	found, err := r.dao.FindStudentByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindStudentByID -> %w", err)
	}

	return r.studentDaoToDomain(found), nil
}

func (r *UserRepository) FindStudentByEmail(ctx context.Context, email string) (domain.Student, error) {
	found, err := r.dao.FindStudentByEmail(ctx, email)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindStudentByEmail -> %w", err)
	}

	return r.studentDaoToDomain(found), nil
}

func (r *UserRepository) FindCoordinatorByID(ctx context.Context, id uint) (domain.Coordinator, error) {
	found, err := r.dao.FindCoordinatorByID(ctx, id)
	if err != nil {
		return domain.Coordinator{}, fmt.Errorf("r.dao.FindCoordinatorByID -> %w", err)
	}

	return r.coordinatorDaoToDomain(found), nil
}

func (r *UserRepository) FindCoordinatorByEmail(ctx context.Context, email string) (domain.Coordinator, error) {
	found, err := r.dao.FindCoordinatorByEmail(ctx, email)
	if err != nil {
		return domain.Coordinator{}, fmt.Errorf("r.dao.FindCoordinatorByEmail -> %w", err)
	}

	return r.coordinatorDaoToDomain(found), nil
}

func (r *UserRepository) CreateMentor(ctx context.Context, mentor domain.Mentor) (domain.Mentor, error) {
	created, err := r.dao.InsertMentor(ctx, dao.Mentor{
		Name:       mentor.Name,
		Email:      mentor.Email,
		Password:   mentor.Password,
		Department: mentor.Department,
		PhoneNo:    mentor.PhoneNo,
	})
	if err != nil {
		return domain.Mentor{}, fmt.Errorf("r.dao.InsertMentor -> %w", err)
	}

	return r.mentorDaoToDomain(created), nil
}

func (r *UserRepository) FindMentorByID(ctx context.Context, id uint) (domain.Mentor, error) {
	found, err := r.dao.FindMentorByID(ctx, id)
	if err != nil {
		return domain.Mentor{}, fmt.Errorf("r.dao.FindMentorByID -> %w", err)
	}

	return r.mentorDaoToDomain(found), nil
}

func (r *UserRepository) FindMentorByEmail(ctx context.Context, email string) (domain.Mentor, error) {
	found, err := r.dao.FindMentorByEmail(ctx, email)
	if err != nil {
		return domain.Mentor{}, fmt.Errorf("r.dao.FindMentorByEmail -> %w", err)
	}

	return r.mentorDaoToDomain(found), nil
}

func (r *UserRepository) FindAllMentors(ctx context.Context) ([]domain.Mentor, error) {
	found, err := r.dao.FindAllMentors(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllMentors -> %w", err)
	}

	mentors := make([]domain.Mentor, len(found))
	for i, m := range found {
		mentors[i] = r.mentorDaoToDomain(m)
	}

	return mentors, nil
}

func (r *UserRepository) studentDaoToDomain(s dao.Student) domain.Student {
	return domain.Student{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Password:   s.Password,
		Department: s.Department,
		Year:       s.Year,
		Section:    s.Section,
		RegisterNo: s.RegisterNo,
		PhoneNo:    s.PhoneNo,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (r *UserRepository) coordinatorDaoToDomain(c dao.Coordinator) domain.Coordinator {
	return domain.Coordinator{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Password:  c.Password,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *UserRepository) mentorDaoToDomain(m dao.Mentor) domain.Mentor {
	return domain.Mentor{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Password:   m.Password,
		Department: m.Department,
		PhoneNo:    m.PhoneNo,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
