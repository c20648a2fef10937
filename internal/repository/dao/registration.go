package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRegistrationExists   = errors.New("student already registered for this contest")
	ErrRegistrationNotFound = errors.New("registration not found")
)

type Registration struct {
	ID uint `gorm:"primaryKey"`

	// The composite unique index closes the duplicate-registration race
	// at the database instead of a check-then-insert.
	ContestID uint `gorm:"not null;uniqueIndex:uq_registrations_contest_student"`
	StudentID uint `gorm:"not null;uniqueIndex:uq_registrations_contest_student"`

	RegisteredAt time.Time `gorm:"not null;autoCreateTime"`
}

func (Registration) TableName() string {
	return "contest_registrations"
}

// RegistrationRow is a registration annotated with contest or student
// display fields, depending on which listing produced it.
type RegistrationRow struct {
	Registration

	ContestTitle         string
	ContestDescription   string
	Organizer            string
	Platform             string
	Location             string
	ImageURL             string
	ExternalRegLink      string
	SubmissionLink       string
	RegistrationDeadline *time.Time
	SubmissionDeadline   *time.Time
	IsTeamBased          *bool

	StudentName       string
	StudentEmail      string
	StudentDepartment string
	StudentYear       int
	StudentSection    string
	StudentRegisterNo string
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

func (d *RegistrationDAO) Insert(ctx context.Context, registration Registration) (Registration, error) {
	result := d.db.WithContext(ctx).Create(&registration)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Registration{}, ErrRegistrationExists
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

// InsertIfAbsent keeps team-based participants counted in the contest
// roster. ON CONFLICT DO NOTHING makes it idempotent.
func (d *RegistrationDAO) InsertIfAbsent(ctx context.Context, contestID, studentID uint) error {
	registration := Registration{ContestID: contestID, StudentID: studentID}

	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&registration).Error
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id uint) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).First(&registration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByStudent(ctx context.Context, studentID uint) ([]RegistrationRow, error) {
	var rows []RegistrationRow

	result := d.db.WithContext(ctx).
		Table("contest_registrations").
		Select(`contest_registrations.*,
			c.title AS contest_title,
			c.description AS contest_description,
			c.organizer,
			c.platform,
			c.location,
			c.image_url,
			c.external_reg_link,
			c.submission_link,
			c.registration_deadline,
			c.submission_deadline,
			c.is_team_based`).
		Joins("JOIN contests c ON contest_registrations.contest_id = c.id").
		Where("contest_registrations.student_id = ?", studentID).
		Order("contest_registrations.registered_at DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *RegistrationDAO) FindByContest(ctx context.Context, contestID uint) ([]RegistrationRow, error) {
	var rows []RegistrationRow

	result := d.db.WithContext(ctx).
		Table("contest_registrations").
		Select(`contest_registrations.*,
			s.name AS student_name,
			s.email AS student_email,
			s.department AS student_department,
			s.year AS student_year,
			s.section AS student_section,
			s.register_no AS student_register_no`).
		Joins("JOIN students s ON contest_registrations.student_id = s.id").
		Where("contest_registrations.contest_id = ?", contestID).
		Order("contest_registrations.registered_at DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *RegistrationDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&Registration{}, id).Error
}
