package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateMentorRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
	PhoneNo    string `json:"phone_no"`
}

func (req *CreateMentorRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Department, validation.Required),
	)
	if err != nil {
		return err
	}

	ok, err := passwordRegex.MatchString(req.Password)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}

type AssignContestMentorRequest struct {
	ContestID uint `json:"contest_id"`
	MentorID  uint `json:"mentor_id"`
}

func (req *AssignContestMentorRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ContestID, validation.Required),
		validation.Field(&req.MentorID, validation.Required),
	)
}

type AssignTeamMentorRequest struct {
	TeamID   uint `json:"team_id"`
	MentorID uint `json:"mentor_id"`
}

func (req *AssignTeamMentorRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TeamID, validation.Required),
		validation.Field(&req.MentorID, validation.Required),
	)
}
