package domain

import "time"

type Team struct {
	ID        uint      `json:"team_id"`
	ContestID uint      `json:"contest_id"`
	Name      string    `json:"team_name"`
	LeaderID  uint      `json:"team_leader_id"`
	MentorID  *uint     `json:"mentor_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Display fields resolved by joins.
	LeaderName   string       `json:"leader_name,omitempty"`
	LeaderEmail  string       `json:"leader_email,omitempty"`
	MentorName   string       `json:"mentor_name,omitempty"`
	ContestTitle string       `json:"contest_title,omitempty"`
	MemberCount  int          `json:"member_count"`
	Members      []TeamMember `json:"members,omitempty"`
}

type TeamMember struct {
	StudentID  uint      `json:"student_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Year       int       `json:"year"`
	Section    string    `json:"section"`
	JoinedAt   time.Time `json:"joined_at"`
}
