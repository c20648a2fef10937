package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrContestNotFound = errors.New("contest not found")

type Contest struct {
	ID uint `gorm:"primaryKey"`

	Title                string `gorm:"not null"`
	Description          string
	Organizer            string
	Platform             string
	Location             string
	Department           string
	RegistrationDeadline time.Time `gorm:"not null;index"`
	SubmissionDeadline   time.Time `gorm:"not null"`
	IsTeamBased          bool      `gorm:"not null;default:false"`
	MaxTeamSize          int       `gorm:"not null;default:1"`
	ImageURL             string
	ExternalRegLink      string
	SubmissionLink       string
	CreatedBy            uint  `gorm:"not null;index"`
	MentorID             *uint `gorm:"index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ContestRow is a contest annotated with joined display fields.
type ContestRow struct {
	Contest
	CoordinatorName   string
	CoordinatorEmail  string
	MentorName        string
	MentorEmail       string
	RegistrationCount int
}

type ContestDAO struct {
	db *gorm.DB
}

func NewContestDAO(db *gorm.DB) *ContestDAO {
	return &ContestDAO{
		db: db,
	}
}

const contestListSelect = `contests.*,
	co.name AS coordinator_name,
	co.email AS coordinator_email,
	m.name AS mentor_name,
	m.email AS mentor_email,
	(SELECT COUNT(*) FROM contest_registrations r WHERE r.contest_id = contests.id) AS registration_count`

// Insert creates the contest together with its chat thread so the thread
// exists from the moment the contest is visible.
func (d *ContestDAO) Insert(ctx context.Context, contest Contest) (Contest, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&contest).Error; err != nil {
			return err
		}

		return tx.Create(&ChatThread{ContestID: contest.ID}).Error
	})
	if err != nil {
		return Contest{}, err
	}

	return contest, nil
}

func (d *ContestDAO) FindByID(ctx context.Context, id uint) (Contest, error) {
	var contest Contest

	result := d.db.WithContext(ctx).First(&contest, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Contest{}, ErrContestNotFound
		}

		return Contest{}, result.Error
	}

	return contest, nil
}

func (d *ContestDAO) FindRowByID(ctx context.Context, id uint) (ContestRow, error) {
	var row ContestRow

	result := d.db.WithContext(ctx).
		Table("contests").
		Select(contestListSelect).
		Joins("LEFT JOIN coordinators co ON contests.created_by = co.id").
		Joins("LEFT JOIN mentors m ON contests.mentor_id = m.id").
		Where("contests.id = ?", id).
		Scan(&row)
	if result.Error != nil {
		return ContestRow{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ContestRow{}, ErrContestNotFound
	}

	return row, nil
}

func (d *ContestDAO) FindAll(ctx context.Context) ([]ContestRow, error) {
	var rows []ContestRow

	result := d.db.WithContext(ctx).
		Table("contests").
		Select(contestListSelect).
		Joins("LEFT JOIN coordinators co ON contests.created_by = co.id").
		Joins("LEFT JOIN mentors m ON contests.mentor_id = m.id").
		Order("contests.registration_deadline DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *ContestDAO) FindByMentor(ctx context.Context, mentorID uint) ([]Contest, error) {
	var contests []Contest

	result := d.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Order("registration_deadline DESC").
		Find(&contests)
	if result.Error != nil {
		return nil, result.Error
	}

	return contests, nil
}

// Update applies the non-nil columns only.
func (d *ContestDAO) Update(ctx context.Context, id uint, columns map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}

	result := d.db.WithContext(ctx).Model(&Contest{}).Where("id = ?", id).Updates(columns)

	return result.Error
}

func (d *ContestDAO) AssignMentor(ctx context.Context, contestID, mentorID uint) error {
	return d.db.WithContext(ctx).
		Model(&Contest{}).
		Where("id = ?", contestID).
		Update("mentor_id", mentorID).Error
}

// Delete removes the contest and everything hanging off it: messages,
// chat thread, team memberships, teams and registrations, in one
// transaction.
func (d *ContestDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var threadIDs []uint
		if err := tx.Model(&ChatThread{}).Where("contest_id = ?", id).Pluck("id", &threadIDs).Error; err != nil {
			return err
		}

		if len(threadIDs) > 0 {
			if err := tx.Where("chat_id IN ?", threadIDs).Delete(&Message{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("contest_id = ?", id).Delete(&ChatThread{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contest_id = ?", id).Delete(&TeamMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contest_id = ?", id).Delete(&Team{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contest_id = ?", id).Delete(&Registration{}).Error; err != nil {
			return err
		}

		return tx.Delete(&Contest{}, id).Error
	})
}
