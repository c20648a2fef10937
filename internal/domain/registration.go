package domain

import "time"

type Registration struct {
	ID           uint      `json:"registration_id"`
	ContestID    uint      `json:"contest_id"`
	StudentID    uint      `json:"student_id"`
	RegisteredAt time.Time `json:"registered_at"`

	// Contest display fields for a student's own listing.
	ContestTitle         string     `json:"title,omitempty"`
	ContestDescription   string     `json:"description,omitempty"`
	Organizer            string     `json:"organizer,omitempty"`
	Platform             string     `json:"platform,omitempty"`
	Location             string     `json:"location,omitempty"`
	ImageURL             string     `json:"image_url,omitempty"`
	ExternalRegLink      string     `json:"external_reg_link,omitempty"`
	SubmissionLink       string     `json:"submission_link,omitempty"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	SubmissionDeadline   *time.Time `json:"submission_deadline,omitempty"`
	IsTeamBased          *bool      `json:"is_team_based,omitempty"`

	// Student display fields for the coordinator/mentor roster.
	StudentName       string `json:"student_name,omitempty"`
	StudentEmail      string `json:"student_email,omitempty"`
	StudentDepartment string `json:"department,omitempty"`
	StudentYear       int    `json:"year,omitempty"`
	StudentSection    string `json:"section,omitempty"`
	StudentRegisterNo string `json:"register_no,omitempty"`
}
