package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kiotdev/contesthub-api/internal/api/handler/v1/request"
	"github.com/kiotdev/contesthub-api/internal/api/handler/v1/response"
	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/service"
)

type TeamService interface {
	CreateTeam(ctx context.Context, contestID, leaderID uint, name string) (domain.Team, error)
	JoinTeam(ctx context.Context, teamID, studentID uint) error
	LeaveTeam(ctx context.Context, teamID, studentID uint) error
	GetTeam(ctx context.Context, id uint) (domain.Team, error)
	ListForContest(ctx context.Context, contestID uint) ([]domain.Team, error)
	ListMine(ctx context.Context, studentID uint) ([]domain.Team, error)
}

type TeamHandler struct {
	svc TeamService
}

func NewTeamHandler(svc TeamService) *TeamHandler {
	return &TeamHandler{
		svc: svc,
	}
}

// HandleCreateTeam godoc
// @Summary      Create a team with the current student as leader
// @Tags         teams
// @Produce      json
// @Param        request   body      request.CreateTeamRequest true "request body"
// @Success      201      {object}   domain.Team
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams [post]
func (h *TeamHandler) HandleCreateTeam(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	req := request.CreateTeamRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	team, err := h.svc.CreateTeam(ctx.Request.Context(), req.ContestID, identity.ID, req.TeamName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("contest", "id", req.ContestID))
		case errors.Is(err, service.ErrNotTeamBasedContest):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrNotTeamBasedContest))
		case errors.Is(err, service.ErrDeadlinePassed):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrDeadlinePassed))
		case errors.Is(err, service.ErrAlreadyInTeam):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyInTeam))
		default:
			err = fmt.Errorf("v1.HandleCreateTeam -> h.svc.CreateTeam -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, team)
}

// HandleJoinTeam godoc
// @Summary      Join an existing team
// @Tags         teams
// @Produce      json
// @Param        teamID  path      int  true  "team ID"
// @Success      200      {object}   map[string]string
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{teamID}/join [post]
func (h *TeamHandler) HandleJoinTeam(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	teamID, err := strconv.ParseUint(ctx.Param("teamID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("team ID must be an integer")))

		return
	}

	if err = h.svc.JoinTeam(ctx.Request.Context(), uint(teamID), identity.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "id", teamID))
		case errors.Is(err, service.ErrContestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("contest", "team id", teamID))
		case errors.Is(err, service.ErrDeadlinePassed):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrDeadlinePassed))
		case errors.Is(err, service.ErrTeamFull):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTeamFull))
		case errors.Is(err, service.ErrAlreadyInTeam):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyInTeam))
		default:
			err = fmt.Errorf("v1.HandleJoinTeam -> h.svc.JoinTeam -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "joined team"})
}

// HandleLeaveTeam godoc
// @Summary      Leave a team (leaders cannot)
// @Tags         teams
// @Produce      json
// @Param        teamID  path      int  true  "team ID"
// @Success      200      {object}   map[string]string
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{teamID}/leave [delete]
func (h *TeamHandler) HandleLeaveTeam(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	teamID, err := strconv.ParseUint(ctx.Param("teamID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("team ID must be an integer")))

		return
	}

	if err = h.svc.LeaveTeam(ctx.Request.Context(), uint(teamID), identity.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "id", teamID))
		case errors.Is(err, service.ErrLeaderCannotLeave):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrLeaderCannotLeave))
		case errors.Is(err, service.ErrNotTeamMember):
			response.RenderErr(ctx, response.ErrNotFound("membership", "team id", teamID))
		default:
			err = fmt.Errorf("v1.HandleLeaveTeam -> h.svc.LeaveTeam -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "left team"})
}

// HandleGetTeam godoc
// @Summary      Get a team with its member list
// @Tags         teams
// @Produce      json
// @Param        teamID  path      int  true  "team ID"
// @Success      200      {object}   domain.Team
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/{teamID} [get]
func (h *TeamHandler) HandleGetTeam(ctx *gin.Context) {
	teamID, err := strconv.ParseUint(ctx.Param("teamID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("team ID must be an integer")))

		return
	}

	team, err := h.svc.GetTeam(ctx.Request.Context(), uint(teamID))
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("team", "id", teamID))

			return
		}

		err = fmt.Errorf("v1.HandleGetTeam -> h.svc.GetTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleListForContest godoc
// @Summary      List a contest's teams
// @Tags         teams
// @Produce      json
// @Param        contestID  path      int  true  "contest ID"
// @Success      200      {object}   []domain.Team
// @Failure      500      {object}   response.Err
// @Router       /teams/contest/{contestID} [get]
func (h *TeamHandler) HandleListForContest(ctx *gin.Context) {
	contestID, err := strconv.ParseUint(ctx.Param("contestID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("contest ID must be an integer")))

		return
	}

	teams, err := h.svc.ListForContest(ctx.Request.Context(), uint(contestID))
	if err != nil {
		err = fmt.Errorf("v1.HandleListForContest -> h.svc.ListForContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, teams)
}

// HandleListMine godoc
// @Summary      List the current student's teams
// @Tags         teams
// @Produce      json
// @Success      200      {object}   []domain.Team
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /teams/my [get]
func (h *TeamHandler) HandleListMine(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	teams, err := h.svc.ListMine(ctx.Request.Context(), identity.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMine -> h.svc.ListMine -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, teams)
}
