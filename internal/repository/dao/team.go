package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTeamNotFound  = errors.New("team not found")
	ErrAlreadyInTeam = errors.New("student already belongs to a team in this contest")
	ErrTeamFull      = errors.New("team is full")
	ErrNotTeamMember = errors.New("student is not a member of this team")
)

type Team struct {
	ID uint `gorm:"primaryKey"`

	ContestID uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	LeaderID  uint   `gorm:"not null"`
	MentorID  *uint  `gorm:"index"`

	CreatedAt time.Time `gorm:"not null"`
}

// TeamMember carries a denormalized contest id so one-team-per-contest is
// a database constraint rather than an application-level join check.
type TeamMember struct {
	ID uint `gorm:"primaryKey"`

	TeamID    uint `gorm:"not null;uniqueIndex:uq_team_members_team_student"`
	ContestID uint `gorm:"not null;uniqueIndex:uq_team_members_contest_student"`
	StudentID uint `gorm:"not null;uniqueIndex:uq_team_members_team_student;uniqueIndex:uq_team_members_contest_student"`

	JoinedAt time.Time `gorm:"not null;autoCreateTime"`
}

// TeamRow is a team annotated with joined display fields.
type TeamRow struct {
	Team
	LeaderName   string
	LeaderEmail  string
	MentorName   string
	ContestTitle string
	MemberCount  int
}

// MemberRow is a membership annotated with the student's profile.
type MemberRow struct {
	StudentID  uint
	Name       string
	Email      string
	Department string
	Year       int
	Section    string
	JoinedAt   time.Time
}

type TeamDAO struct {
	db *gorm.DB
}

func NewTeamDAO(db *gorm.DB) *TeamDAO {
	return &TeamDAO{
		db: db,
	}
}

const teamListSelect = `teams.*,
	s.name AS leader_name,
	s.email AS leader_email,
	m.name AS mentor_name,
	(SELECT COUNT(*) FROM team_members tm WHERE tm.team_id = teams.id) AS member_count`

// InsertWithLeader creates the team, seats the leader as its first member
// and makes sure a contest registration exists for them, atomically.
func (d *TeamDAO) InsertWithLeader(ctx context.Context, team Team) (Team, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		member := TeamMember{
			TeamID:    team.ID,
			ContestID: team.ContestID,
			StudentID: team.LeaderID,
		}
		if err := tx.Create(&member).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyInTeam
			}

			return err
		}

		registration := Registration{ContestID: team.ContestID, StudentID: team.LeaderID}

		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&registration).Error
	})
	if err != nil {
		return Team{}, err
	}

	return team, nil
}

// AddMember seats a student on the team. The team row is locked FOR UPDATE
// before counting members so two concurrent joins cannot both take the
// last slot.
func (d *TeamDAO) AddMember(ctx context.Context, teamID, studentID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var team Team
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&team, teamID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}

			return err
		}

		var contest Contest
		if err = tx.First(&contest, team.ContestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContestNotFound
			}

			return err
		}

		var memberCount int64
		if err = tx.Model(&TeamMember{}).Where("team_id = ?", teamID).Count(&memberCount).Error; err != nil {
			return err
		}
		if memberCount >= int64(contest.MaxTeamSize) {
			return ErrTeamFull
		}

		member := TeamMember{
			TeamID:    teamID,
			ContestID: team.ContestID,
			StudentID: studentID,
		}
		if err = tx.Create(&member).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyInTeam
			}

			return err
		}

		registration := Registration{ContestID: team.ContestID, StudentID: studentID}

		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&registration).Error
	})
}

// RemoveMember deletes the membership row only. The registration row is
// kept: the student still counts as a contest participant.
func (d *TeamDAO) RemoveMember(ctx context.Context, teamID, studentID uint) error {
	result := d.db.WithContext(ctx).
		Where("team_id = ? AND student_id = ?", teamID, studentID).
		Delete(&TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotTeamMember
	}

	return nil
}

func (d *TeamDAO) FindByID(ctx context.Context, id uint) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) FindRowByID(ctx context.Context, id uint) (TeamRow, error) {
	var row TeamRow

	result := d.db.WithContext(ctx).
		Table("teams").
		Select(teamListSelect+`, c.title AS contest_title`).
		Joins("LEFT JOIN students s ON teams.leader_id = s.id").
		Joins("LEFT JOIN mentors m ON teams.mentor_id = m.id").
		Joins("LEFT JOIN contests c ON teams.contest_id = c.id").
		Where("teams.id = ?", id).
		Scan(&row)
	if result.Error != nil {
		return TeamRow{}, result.Error
	}
	if result.RowsAffected == 0 {
		return TeamRow{}, ErrTeamNotFound
	}

	return row, nil
}

func (d *TeamDAO) FindByContest(ctx context.Context, contestID uint) ([]TeamRow, error) {
	var rows []TeamRow

	result := d.db.WithContext(ctx).
		Table("teams").
		Select(teamListSelect).
		Joins("LEFT JOIN students s ON teams.leader_id = s.id").
		Joins("LEFT JOIN mentors m ON teams.mentor_id = m.id").
		Where("teams.contest_id = ?", contestID).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *TeamDAO) FindByStudent(ctx context.Context, studentID uint) ([]TeamRow, error) {
	var rows []TeamRow

	result := d.db.WithContext(ctx).
		Table("teams").
		Select(`teams.*,
			c.title AS contest_title,
			(SELECT COUNT(*) FROM team_members tc WHERE tc.team_id = teams.id) AS member_count`).
		Joins("JOIN team_members tm ON teams.id = tm.team_id").
		Joins("JOIN contests c ON teams.contest_id = c.id").
		Where("tm.student_id = ?", studentID).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *TeamDAO) FindByMentor(ctx context.Context, mentorID uint) ([]TeamRow, error) {
	var rows []TeamRow

	result := d.db.WithContext(ctx).
		Table("teams").
		Select(teamListSelect+`, c.title AS contest_title`).
		Joins("LEFT JOIN students s ON teams.leader_id = s.id").
		Joins("LEFT JOIN mentors m ON teams.mentor_id = m.id").
		Joins("JOIN contests c ON teams.contest_id = c.id").
		Where("teams.mentor_id = ?", mentorID).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *TeamDAO) FindMembers(ctx context.Context, teamID uint) ([]MemberRow, error) {
	var rows []MemberRow

	result := d.db.WithContext(ctx).
		Table("team_members").
		Select(`s.id AS student_id,
			s.name,
			s.email,
			s.department,
			s.year,
			s.section,
			team_members.joined_at`).
		Joins("JOIN students s ON team_members.student_id = s.id").
		Where("team_members.team_id = ?", teamID).
		Order("team_members.joined_at ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *TeamDAO) AssignMentor(ctx context.Context, teamID, mentorID uint) error {
	return d.db.WithContext(ctx).
		Model(&Team{}).
		Where("id = ?", teamID).
		Update("mentor_id", mentorID).Error
}
