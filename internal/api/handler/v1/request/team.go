package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTeamRequest struct {
	ContestID uint   `json:"contest_id"`
	TeamName  string `json:"team_name"`
}

func (req *CreateTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ContestID, validation.Required),
		validation.Field(&req.TeamName, validation.Required, validation.Length(2, 50)),
	)
}
