package v1

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kiotdev/contesthub-api/internal/api/handler/v1/request"
	"github.com/kiotdev/contesthub-api/internal/api/handler/v1/response"
	"github.com/kiotdev/contesthub-api/internal/config"
	"github.com/kiotdev/contesthub-api/internal/domain"
	"github.com/kiotdev/contesthub-api/internal/service"
)

var errUnsupportedImage = errors.New("image must be a jpeg, jpg, png or webp file")

type ContestService interface {
	CreateContest(ctx context.Context, contest domain.Contest) (domain.Contest, error)
	GetContests(ctx context.Context) ([]domain.Contest, error)
	GetContest(ctx context.Context, id uint) (domain.Contest, error)
	UpdateContest(ctx context.Context, id, coordinatorID uint, update domain.ContestUpdate) error
	DeleteContest(ctx context.Context, id, coordinatorID uint) error
}

type ContestHandler struct {
	conf *config.APIConfig
	svc  ContestService
}

func NewContestHandler(conf *config.APIConfig, svc ContestService) *ContestHandler {
	return &ContestHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleListContests godoc
// @Summary      List all contests
// @Tags         contests
// @Produce      json
// @Success      200      {object}   []domain.Contest
// @Failure      500      {object}   response.Err
// @Router       /contests [get]
func (h *ContestHandler) HandleListContests(ctx *gin.Context) {
	contests, err := h.svc.GetContests(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListContests -> h.svc.GetContests -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, contests)
}

// HandleGetContest godoc
// @Summary      Get one contest with its registration count and teams
// @Tags         contests
// @Produce      json
// @Param        contestID  path      int  true  "contest ID"
// @Success      200      {object}   domain.Contest
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /contests/{contestID} [get]
func (h *ContestHandler) HandleGetContest(ctx *gin.Context) {
	contestID, err := strconv.ParseUint(ctx.Param("contestID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("contest ID must be an integer")))

		return
	}

	contest, err := h.svc.GetContest(ctx.Request.Context(), uint(contestID))
	if err != nil {
		if errors.Is(err, service.ErrContestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("contest", "id", contestID))

			return
		}

		err = fmt.Errorf("v1.HandleGetContest -> h.svc.GetContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, contest)
}

// HandleCreateContest godoc
// @Summary      Create a contest, optionally with a poster image
// @Tags         contests
// @Accept       mpfd
// @Produce      json
// @Success      201      {object}   domain.Contest
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /contests [post]
func (h *ContestHandler) HandleCreateContest(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	req := request.CreateContestRequest{}
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	contest := req.ToDomain()
	contest.CreatedBy = identity.ID

	if file, err := ctx.FormFile("image"); err == nil {
		imageURL, err := h.saveImage(ctx, file)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}
		contest.ImageURL = imageURL
	}

	created, err := h.svc.CreateContest(ctx.Request.Context(), contest)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDeadlines) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidDeadlines))

			return
		}

		err = fmt.Errorf("v1.HandleCreateContest -> h.svc.CreateContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateContest godoc
// @Summary      Update a contest (owner only, partial)
// @Tags         contests
// @Produce      json
// @Param        contestID  path      int  true  "contest ID"
// @Param        request    body      request.UpdateContestRequest true "request body"
// @Success      200      {object}   domain.Contest
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /contests/{contestID} [put]
func (h *ContestHandler) HandleUpdateContest(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	contestID, err := strconv.ParseUint(ctx.Param("contestID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("contest ID must be an integer")))

		return
	}

	req := request.UpdateContestRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	err = h.svc.UpdateContest(ctx.Request.Context(), uint(contestID), identity.ID, req.ToDomain())
	if err != nil {
		h.renderContestErr(ctx, uint(contestID), fmt.Errorf("v1.HandleUpdateContest -> %w", err))

		return
	}

	contest, err := h.svc.GetContest(ctx.Request.Context(), uint(contestID))
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateContest -> h.svc.GetContest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, contest)
}

// HandleDeleteContest godoc
// @Summary      Delete a contest and everything under it (owner only)
// @Tags         contests
// @Produce      json
// @Param        contestID  path      int  true  "contest ID"
// @Success      200      {object}   map[string]string
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /contests/{contestID} [delete]
func (h *ContestHandler) HandleDeleteContest(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	contestID, err := strconv.ParseUint(ctx.Param("contestID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("contest ID must be an integer")))

		return
	}

	if err = h.svc.DeleteContest(ctx.Request.Context(), uint(contestID), identity.ID); err != nil {
		h.renderContestErr(ctx, uint(contestID), fmt.Errorf("v1.HandleDeleteContest -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "contest deleted"})
}

func (h *ContestHandler) renderContestErr(ctx *gin.Context, contestID uint, err error) {
	switch {
	case errors.Is(err, service.ErrContestNotFound):
		response.RenderErr(ctx, response.ErrNotFound("contest", "id", contestID))
	case errors.Is(err, service.ErrNotContestOwner):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotContestOwner))
	case errors.Is(err, service.ErrInvalidDeadlines):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidDeadlines))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

// saveImage stores the uploaded poster under the configured upload
// directory with a timestamped name and returns its public path.
func (h *ContestHandler) saveImage(ctx *gin.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpeg", ".jpg", ".png", ".webp":
	default:
		return "", errUnsupportedImage
	}

	if err := os.MkdirAll(h.conf.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	name := fmt.Sprintf("contest-%d%v", time.Now().UnixNano(), ext)
	if err := ctx.SaveUploadedFile(file, filepath.Join(h.conf.UploadDir, name)); err != nil {
		return "", fmt.Errorf("ctx.SaveUploadedFile -> %w", err)
	}

	return "/uploads/" + name, nil
}
