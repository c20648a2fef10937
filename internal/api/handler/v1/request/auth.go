package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Lookahead groups need regexp2; the stdlib engine rejects them.
const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	passwordRegex = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	errInvalidPassword = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errInvalidRole     = errors.New("role must be one of student, coordinator, mentor")
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Role, validation.Required,
			validation.In("student", "coordinator", "mentor").Error(errInvalidRole.Error())),
	)
}

type SignupRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
	Year       int    `json:"year"`
	Section    string `json:"section"`
	RegisterNo string `json:"register_no"`
	PhoneNo    string `json:"phone_no"`
}

func (req *SignupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Department, validation.Required),
		validation.Field(&req.Year, validation.Required, validation.Min(1), validation.Max(6)),
		validation.Field(&req.Section, validation.Required),
		validation.Field(&req.RegisterNo, validation.Required),
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
