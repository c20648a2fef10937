package response

import "github.com/kiotdev/contesthub-api/internal/domain"

type LoginResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    domain.Profile `json:"user"`
}
