package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSignup() SignupRequest {
	return SignupRequest{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Password:   "secret123",
		Department: "CSE",
		Year:       3,
		Section:    "A",
		RegisterNo: "CSE2023001",
	}
}

func TestSignupRequest_Validate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := validSignup()
		assert.NoError(t, req.Validate())
	})

	t.Run("missing required fields fail", func(t *testing.T) {
		for _, mutate := range []func(*SignupRequest){
			func(r *SignupRequest) { r.Name = "" },
			func(r *SignupRequest) { r.Email = "" },
			func(r *SignupRequest) { r.Password = "" },
			func(r *SignupRequest) { r.Department = "" },
			func(r *SignupRequest) { r.Year = 0 },
			func(r *SignupRequest) { r.Section = "" },
			func(r *SignupRequest) { r.RegisterNo = "" },
		} {
			req := validSignup()
			mutate(&req)
			assert.Error(t, req.Validate())
		}
	})

	t.Run("malformed email fails", func(t *testing.T) {
		req := validSignup()
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("weak passwords fail", func(t *testing.T) {
		for _, password := range []string{
			"short1",      // under 8 chars
			"lettersonly", // no digit
			"12345678",    // no letter
		} {
			req := validSignup()
			req.Password = password
			assert.Error(t, req.Validate(), "password %q should be rejected", password)
		}
	})

	t.Run("year out of range fails", func(t *testing.T) {
		req := validSignup()
		req.Year = 7
		assert.Error(t, req.Validate())
	})
}

func TestLoginRequest_Validate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := LoginRequest{Email: "ada@example.com", Password: "secret123", Role: "student"}
		assert.NoError(t, req.Validate())
	})

	t.Run("unknown role fails", func(t *testing.T) {
		req := LoginRequest{Email: "ada@example.com", Password: "secret123", Role: "superadmin"}
		assert.Error(t, req.Validate())
	})

	t.Run("missing password fails", func(t *testing.T) {
		req := LoginRequest{Email: "ada@example.com", Role: "mentor"}
		assert.Error(t, req.Validate())
	})
}
