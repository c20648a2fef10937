package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kiotdev/contesthub-api/internal/api/handler/v1/response"
	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/service"
)

type RegistrationService interface {
	Register(ctx context.Context, contestID, studentID uint) (domain.Registration, error)
	Cancel(ctx context.Context, registrationID, studentID uint) error
	ListMine(ctx context.Context, studentID uint) ([]domain.Registration, error)
	ListForContest(ctx context.Context, contestID uint) ([]domain.Registration, error)
}

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		svc: svc,
	}
}

// HandleRegister godoc
// @Summary      Register the current student for an individual contest
// @Tags         registrations
// @Produce      json
// @Param        contestID  path      int  true  "contest ID"
// @Success      201      {object}   domain.Registration
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /registrations/contest/{contestID} [post]
func (h *RegistrationHandler) HandleRegister(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	contestID, err := strconv.ParseUint(ctx.Param("contestID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("contest ID must be an integer")))

		return
	}

	registration, err := h.svc.Register(ctx.Request.Context(), uint(contestID), identity.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("contest", "id", contestID))
		case errors.Is(err, service.ErrDeadlinePassed):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrDeadlinePassed))
		case errors.Is(err, service.ErrTeamBasedContest):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTeamBasedContest))
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyRegistered))
		default:
			err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, registration)
}

// HandleCancel godoc
// @Summary      Cancel the current student's registration
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path      int  true  "registration ID"
// @Success      200      {object}   map[string]string
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /registrations/{registrationID} [delete]
func (h *RegistrationHandler) HandleCancel(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	registrationID, err := strconv.ParseUint(ctx.Param("registrationID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("registration ID must be an integer")))

		return
	}

	if err = h.svc.Cancel(ctx.Request.Context(), uint(registrationID), identity.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "id", registrationID))
		case errors.Is(err, service.ErrNotRegistrationOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotRegistrationOwner))
		case errors.Is(err, service.ErrDeadlinePassed):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrDeadlinePassed))
		default:
			err = fmt.Errorf("v1.HandleCancel -> h.svc.Cancel -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "registration cancelled"})
}

// HandleListMine godoc
// @Summary      List the current student's registrations
// @Tags         registrations
// @Produce      json
// @Success      200      {object}   []domain.Registration
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /registrations/my [get]
func (h *RegistrationHandler) HandleListMine(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	registrations, err := h.svc.ListMine(ctx.Request.Context(), identity.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMine -> h.svc.ListMine -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleListForContest godoc
// @Summary      List everyone registered for a contest
// @Tags         registrations
// @Produce      json
// @Param        contestID  path      int  true  "contest ID"
// @Success      200      {object}   []domain.Registration
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /registrations/contest/{contestID} [get]
func (h *RegistrationHandler) HandleListForContest(ctx *gin.Context) {
	contestID, err := strconv.ParseUint(ctx.Param("contestID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("contest ID must be an integer")))

		return
	}

	registrations, err := h.svc.ListForContest(ctx.Request.Context(), uint(contestID))
	if err != nil {
		err = fmt.Errorf("v1.HandleListForContest -> h.svc.ListForContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, registrations)
}
