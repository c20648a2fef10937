package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/kiotdev/contesthub-api/internal/domain"
)

var errDeadlineOrder = errors.New("registration_deadline must be before submission_deadline")

// CreateContestRequest binds from multipart form data so an image file can
// ride along. Deadlines are RFC 3339 strings.
type CreateContestRequest struct {
	Title                string `form:"title" json:"title"`
	Description          string `form:"description" json:"description"`
	Organizer            string `form:"organizer" json:"organizer"`
	Platform             string `form:"platform" json:"platform"`
	Location             string `form:"location" json:"location"`
	Department           string `form:"department" json:"department"`
	RegistrationDeadline string `form:"registration_deadline" json:"registration_deadline"`
	SubmissionDeadline   string `form:"submission_deadline" json:"submission_deadline"`
	IsTeamBased          bool   `form:"is_team_based" json:"is_team_based"`
	MaxTeamSize          int    `form:"max_team_size" json:"max_team_size"`
	ImageURL             string `form:"image_url" json:"image_url"`
	ExternalRegLink      string `form:"external_reg_link" json:"external_reg_link"`
	SubmissionLink       string `form:"submission_link" json:"submission_link"`
}

func (req *CreateContestRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.RegistrationDeadline, validation.Required, validation.Date(time.RFC3339)),
		validation.Field(&req.SubmissionDeadline, validation.Required, validation.Date(time.RFC3339)),
		validation.Field(&req.MaxTeamSize, validation.Min(0), validation.Max(100)),
		validation.Field(&req.ImageURL, is.URL),
		validation.Field(&req.ExternalRegLink, is.URL),
		validation.Field(&req.SubmissionLink, is.URL),
	)
	if err != nil {
		return err
	}

	regDeadline, _ := time.Parse(time.RFC3339, req.RegistrationDeadline)
	subDeadline, _ := time.Parse(time.RFC3339, req.SubmissionDeadline)
	if !regDeadline.Before(subDeadline) {
		return errDeadlineOrder
	}

	return nil
}

// ToDomain assumes Validate has already passed, so the deadline strings
// parse cleanly.
func (req *CreateContestRequest) ToDomain() domain.Contest {
	regDeadline, _ := time.Parse(time.RFC3339, req.RegistrationDeadline)
	subDeadline, _ := time.Parse(time.RFC3339, req.SubmissionDeadline)

	return domain.Contest{
		Title:                req.Title,
		Description:          req.Description,
		Organizer:            req.Organizer,
		Platform:             req.Platform,
		Location:             req.Location,
		Department:           req.Department,
		RegistrationDeadline: regDeadline,
		SubmissionDeadline:   subDeadline,
		IsTeamBased:          req.IsTeamBased,
		MaxTeamSize:          req.MaxTeamSize,
		ImageURL:             req.ImageURL,
		ExternalRegLink:      req.ExternalRegLink,
		SubmissionLink:       req.SubmissionLink,
	}
}

type UpdateContestRequest struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	Location             *string    `json:"location"`
	Department           *string    `json:"department"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	SubmissionDeadline   *time.Time `json:"submission_deadline"`
	IsTeamBased          *bool      `json:"is_team_based"`
	MaxTeamSize          *int       `json:"max_team_size"`
	ImageURL             *string    `json:"image_url"`
	ExternalRegLink      *string    `json:"external_reg_link"`
	SubmissionLink       *string    `json:"submission_link"`
}

func (req *UpdateContestRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(2, 200)),
		validation.Field(&req.MaxTeamSize, validation.Min(0), validation.Max(100)),
	)
}

func (req *UpdateContestRequest) ToDomain() domain.ContestUpdate {
	return domain.ContestUpdate{
		Title:                req.Title,
		Description:          req.Description,
		Location:             req.Location,
		Department:           req.Department,
		RegistrationDeadline: req.RegistrationDeadline,
		SubmissionDeadline:   req.SubmissionDeadline,
		IsTeamBased:          req.IsTeamBased,
		MaxTeamSize:          req.MaxTeamSize,
		ImageURL:             req.ImageURL,
		ExternalRegLink:      req.ExternalRegLink,
		SubmissionLink:       req.SubmissionLink,
	}
}
