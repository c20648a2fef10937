package domain

import "time"

type Contest struct {
	ID                   uint      `json:"contest_id"`
	Title                string    `json:"title"`
	Description          string    `json:"description,omitempty"`
	Organizer            string    `json:"organizer,omitempty"`
	Platform             string    `json:"platform,omitempty"`
	Location             string    `json:"location,omitempty"`
	Department           string    `json:"department,omitempty"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	SubmissionDeadline   time.Time `json:"submission_deadline"`
	IsTeamBased          bool      `json:"is_team_based"`
	MaxTeamSize          int       `json:"max_team_size"`
	ImageURL             string    `json:"image_url,omitempty"`
	ExternalRegLink      string    `json:"external_reg_link,omitempty"`
	SubmissionLink       string    `json:"submission_link,omitempty"`
	CreatedBy            uint      `json:"created_by"`
	MentorID             *uint     `json:"mentor_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	// Display fields resolved by joins, not stored on the contest row.
	CoordinatorName   string `json:"coordinator_name,omitempty"`
	CoordinatorEmail  string `json:"coordinator_email,omitempty"`
	MentorName        string `json:"mentor_name,omitempty"`
	MentorEmail       string `json:"mentor_email,omitempty"`
	RegistrationCount int    `json:"registration_count"`
	Teams             []Team `json:"teams,omitempty"`
}

// ContestUpdate carries a partial update; nil fields are left untouched.
type ContestUpdate struct {
	Title                *string
	Description          *string
	Location             *string
	Department           *string
	RegistrationDeadline *time.Time
	SubmissionDeadline   *time.Time
	IsTeamBased          *bool
	MaxTeamSize          *int
	ImageURL             *string
	ExternalRegLink      *string
	SubmissionLink       *string
	MentorID             *uint
}
