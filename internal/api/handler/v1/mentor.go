package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kiotdev/contesthub-api/internal/api/handler/v1/request"
	"github.com/kiotdev/contesthub-api/internal/api/handler/v1/response"
	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/service"
)

type MentorService interface {
	CreateMentor(ctx context.Context, mentor domain.Mentor) (domain.Mentor, error)
	ListMentors(ctx context.Context) ([]domain.Mentor, error)
	ContestsForMentor(ctx context.Context, mentorID uint) ([]domain.Contest, error)
	TeamsForMentor(ctx context.Context, mentorID uint) ([]domain.Team, error)
	AssignToContest(ctx context.Context, contestID, mentorID uint) error
	AssignToTeam(ctx context.Context, teamID, mentorID uint) error
}

type MentorHandler struct {
	svc MentorService
}

func NewMentorHandler(svc MentorService) *MentorHandler {
	return &MentorHandler{
		svc: svc,
	}
}

// HandleCreateMentor godoc
// @Summary      Create a mentor account (coordinator only)
// @Tags         mentors
// @Produce      json
// @Param        request   body      request.CreateMentorRequest true "request body"
// @Success      201      {object}   domain.Mentor
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /mentors [post]
func (h *MentorHandler) HandleCreateMentor(ctx *gin.Context) {
	req := request.CreateMentorRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	mentor, err := h.svc.CreateMentor(ctx.Request.Context(), domain.Mentor{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
		PhoneNo:    req.PhoneNo,
	})
	if err != nil {
		if errors.Is(err, service.ErrMentorEmailExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrMentorEmailExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateMentor -> h.svc.CreateMentor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, mentor)
}

// HandleListMentors godoc
// @Summary      List all mentors (coordinator only)
// @Tags         mentors
// @Produce      json
// @Success      200      {object}   []domain.Mentor
// @Failure      500      {object}   response.Err
// @Router       /mentors [get]
func (h *MentorHandler) HandleListMentors(ctx *gin.Context) {
	mentors, err := h.svc.ListMentors(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListMentors -> h.svc.ListMentors -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, mentors)
}

// HandleMyContests godoc
// @Summary      List contests assigned to the current mentor
// @Tags         mentors
// @Produce      json
// @Success      200      {object}   []domain.Contest
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /mentors/my/contests [get]
func (h *MentorHandler) HandleMyContests(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	contests, err := h.svc.ContestsForMentor(ctx.Request.Context(), identity.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleMyContests -> h.svc.ContestsForMentor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, contests)
}

// HandleMyTeams godoc
// @Summary      List teams assigned to the current mentor
// @Tags         mentors
// @Produce      json
// @Success      200      {object}   []domain.Team
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /mentors/my/teams [get]
func (h *MentorHandler) HandleMyTeams(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	teams, err := h.svc.TeamsForMentor(ctx.Request.Context(), identity.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleMyTeams -> h.svc.TeamsForMentor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, teams)
}

// HandleAssignContest godoc
// @Summary      Assign a mentor to a contest (coordinator only)
// @Tags         mentors
// @Produce      json
// @Param        request   body      request.AssignContestMentorRequest true "request body"
// @Success      200      {object}   map[string]string
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /mentors/assign/contest [post]
func (h *MentorHandler) HandleAssignContest(ctx *gin.Context) {
	req := request.AssignContestMentorRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.AssignToContest(ctx.Request.Context(), req.ContestID, req.MentorID); err != nil {
		switch {
		case errors.Is(err, service.ErrMentorNotFound):
			response.RenderErr(ctx, response.ErrNotFound("mentor", "id", req.MentorID))
		case errors.Is(err, service.ErrContestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("contest", "id", req.ContestID))
		default:
			err = fmt.Errorf("v1.HandleAssignContest -> h.svc.AssignToContest -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "mentor assigned to contest"})
}

// HandleAssignTeam godoc
// @Summary      Assign a mentor to a team (coordinator only)
// @Tags         mentors
// @Produce      json
// @Param        request   body      request.AssignTeamMentorRequest true "request body"
// @Success      200      {object}   map[string]string
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /mentors/assign/team [post]
func (h *MentorHandler) HandleAssignTeam(ctx *gin.Context) {
	req := request.AssignTeamMentorRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.AssignToTeam(ctx.Request.Context(), req.TeamID, req.MentorID); err != nil {
		switch {
		case errors.Is(err, service.ErrMentorNotFound):
			response.RenderErr(ctx, response.ErrNotFound("mentor", "id", req.MentorID))
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "id", req.TeamID))
		default:
			err = fmt.Errorf("v1.HandleAssignTeam -> h.svc.AssignToTeam -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "mentor assigned to team"})
}
