package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kiotdev/contesthub-api/internal/api/handler/v1/request"
	"github.com/kiotdev/contesthub-api/internal/api/handler/v1/response"
	"github.com/kiotdev/contesthub-api/internal/config"
	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/pkg/jwthelper"
	"github.com/kiotdev/contesthub-api/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, email, password string, role domain.Role) (domain.Profile, error)
	SignupStudent(ctx context.Context, student domain.Student) (domain.Profile, error)
	GetProfile(ctx context.Context, identity domain.Identity) (domain.Profile, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleLogin godoc
// @Summary      Login with email, password and role
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	profile, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.RenderErr(ctx, response.ErrWrongCredentials(service.ErrInvalidCredentials))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := h.issueToken(profile)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Message: "login successful",
		Token:   token,
		User:    profile,
	})
}

// HandleSignup godoc
// @Summary      Register a new student account
// @Tags         auth
// @Produce      json
// @Param        request   body      request.SignupRequest true "request body"
// @Success      201      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/register [post]
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	req := request.SignupRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	profile, err := h.svc.SignupStudent(ctx.Request.Context(), domain.Student{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
		Year:       req.Year,
		Section:    req.Section,
		RegisterNo: req.RegisterNo,
		PhoneNo:    req.PhoneNo,
	})
	if err != nil {
		if errors.Is(err, service.ErrStudentExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrStudentExists))

			return
		}

		err = fmt.Errorf("v1.HandleSignup -> h.svc.SignupStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := h.issueToken(profile)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.LoginResponse{
		Message: "registration successful",
		Token:   token,
		User:    profile,
	})
}

// HandleGetMe godoc
// @Summary      Get the current user's profile
// @Tags         auth
// @Produce      json
// @Success      200      {object}   domain.Profile
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /auth/me [get]
func (h *AuthHandler) HandleGetMe(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	profile, err := h.svc.GetProfile(ctx.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "id", identity.ID))

			return
		}

		err = fmt.Errorf("v1.HandleGetMe -> h.svc.GetProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func (h *AuthHandler) issueToken(profile domain.Profile) (string, error) {
	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), domain.Identity{
		ID:    profile.ID,
		Name:  profile.Name,
		Email: profile.Email,
		Role:  profile.Role,
	})
	if err != nil {
		return "", fmt.Errorf("jwthelper.GenerateToken -> %w", err)
	}

	return token, nil
}
