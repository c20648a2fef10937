package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrStudentExists       = errors.New("email or register number already exists")
	ErrStudentNotFound     = errors.New("student not found")
	ErrCoordinatorNotFound = errors.New("coordinator not found")
	ErrMentorEmailExists   = errors.New("mentor email already exists")
	ErrMentorNotFound      = errors.New("mentor not found")
)

// The three roles live in disjoint tables. A person exists in exactly one
// of them and the role is fixed at creation.

type Student struct {
	ID uint `gorm:"primaryKey"`

	Name       string `gorm:"not null"`
	Email      string `gorm:"unique;not null"`
	Password   string `gorm:"not null"`
	Department string `gorm:"not null"`
	Year       int    `gorm:"not null"`
	Section    string `gorm:"not null"`
	RegisterNo string `gorm:"unique;not null"`
	PhoneNo    string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Coordinator struct {
	ID uint `gorm:"primaryKey"`

	Name     string `gorm:"not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Mentor struct {
	ID uint `gorm:"primaryKey"`

	Name       string `gorm:"not null"`
	Email      string `gorm:"unique;not null"`
	Password   string `gorm:"not null"`
	Department string `gorm:"not null"`
	PhoneNo    string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (d *UserDAO) InsertStudent(ctx context.Context, student Student) (Student, error) {
	result := d.db.WithContext(ctx).Create(&student)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Student{}, ErrStudentExists
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *UserDAO) FindStudentByID(ctx context.Context, id uint) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).First(&student, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *UserDAO) FindStudentByEmail(ctx context.Context, email string) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).First(&student, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *UserDAO) FindCoordinatorByID(ctx context.Context, id uint) (Coordinator, error) {
	var coordinator Coordinator

	result := d.db.WithContext(ctx).First(&coordinator, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Coordinator{}, ErrCoordinatorNotFound
		}

		return Coordinator{}, result.Error
	}

	return coordinator, nil
}

func (d *UserDAO) FindCoordinatorByEmail(ctx context.Context, email string) (Coordinator, error) {
	var coordinator Coordinator

	result := d.db.WithContext(ctx).First(&coordinator, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Coordinator{}, ErrCoordinatorNotFound
		}

		return Coordinator{}, result.Error
	}

	return coordinator, nil
}

func (d *UserDAO) InsertMentor(ctx context.Context, mentor Mentor) (Mentor, error) {
	result := d.db.WithContext(ctx).Create(&mentor)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Mentor{}, ErrMentorEmailExists
		}

		return Mentor{}, result.Error
	}

	return mentor, nil
}

func (d *UserDAO) FindMentorByID(ctx context.Context, id uint) (Mentor, error) {
	var mentor Mentor

	result := d.db.WithContext(ctx).First(&mentor, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Mentor{}, ErrMentorNotFound
		}

		return Mentor{}, result.Error
	}

	return mentor, nil
}

func (d *UserDAO) FindMentorByEmail(ctx context.Context, email string) (Mentor, error) {
	var mentor Mentor

	result := d.db.WithContext(ctx).First(&mentor, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Mentor{}, ErrMentorNotFound
		}

		return Mentor{}, result.Error
	}

	return mentor, nil
}

func (d *UserDAO) FindAllMentors(ctx context.Context) ([]Mentor, error) {
	var mentors []Mentor

	result := d.db.WithContext(ctx).Order("name ASC").Find(&mentors)
	if result.Error != nil {
		return nil, result.Error
	}

	return mentors, nil
}
