package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SendMessageRequest struct {
	MessageText string `json:"message_text"`
}

func (req *SendMessageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MessageText, validation.Required, validation.Length(1, 2000)),
	)
}
