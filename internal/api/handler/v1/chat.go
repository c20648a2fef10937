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

type ChatService interface {
	PostMessage(ctx context.Context, contestID uint, sender domain.Sender, text string) (domain.Message, error)
	ListMessages(ctx context.Context, contestID uint, limit int, before uint) (domain.ChatPage, error)
	DeleteMessage(ctx context.Context, messageID uint, sender domain.Sender) error
	MyGroups(ctx context.Context, sender domain.Sender) ([]domain.ChatGroup, error)
}

type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{
		svc: svc,
	}
}

// HandleGetMessages godoc
// @Summary      Poll a contest's chat history
// @Tags         chat
// @Produce      json
// @Param        contestID  path      int  true   "contest ID"
// @Param        limit      query     int  false  "page size, default 50"
// @Param        before     query     int  false  "only messages older than this message ID"
// @Success      200      {object}   domain.ChatPage
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /chat/{contestID} [get]
func (h *ChatHandler) HandleGetMessages(ctx *gin.Context) {
	if _, ok := identityFromContext(ctx); !ok {
		return
	}

	contestID, err := strconv.ParseUint(ctx.Param("contestID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("contest ID must be an integer")))

		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	before, _ := strconv.ParseUint(ctx.DefaultQuery("before", "0"), 10, 32)

	page, err := h.svc.ListMessages(ctx.Request.Context(), uint(contestID), limit, uint(before))
	if err != nil {
		if errors.Is(err, service.ErrContestNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("contest", "id", contestID))

			return
		}

		err = fmt.Errorf("v1.HandleGetMessages -> h.svc.ListMessages -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, page)
}

// HandlePostMessage godoc
// @Summary      Post a message to a contest's chat
// @Tags         chat
// @Produce      json
// @Param        contestID  path      int  true  "contest ID"
// @Param        request    body      request.SendMessageRequest true "request body"
// @Success      201      {object}   domain.Message
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /chat/{contestID} [post]
func (h *ChatHandler) HandlePostMessage(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	contestID, err := strconv.ParseUint(ctx.Param("contestID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("contest ID must be an integer")))

		return
	}

	req := request.SendMessageRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	sender := domain.Sender{Role: identity.Role, ID: identity.ID}
	message, err := h.svc.PostMessage(ctx.Request.Context(), uint(contestID), sender, req.MessageText)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEmptyMessage))
		case errors.Is(err, service.ErrContestNotFound):
			response.RenderErr(ctx, response.ErrNotFound("contest", "id", contestID))
		default:
			err = fmt.Errorf("v1.HandlePostMessage -> h.svc.PostMessage -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	message.SenderName = identity.Name

	ctx.JSON(http.StatusCreated, message)
}

// HandleDeleteMessage godoc
// @Summary      Delete one of your own messages
// @Tags         chat
// @Produce      json
// @Param        messageID  path      int  true  "message ID"
// @Success      200      {object}   map[string]string
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /chat/message/{messageID} [delete]
func (h *ChatHandler) HandleDeleteMessage(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	messageID, err := strconv.ParseUint(ctx.Param("messageID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("message ID must be an integer")))

		return
	}

	sender := domain.Sender{Role: identity.Role, ID: identity.ID}
	if err = h.svc.DeleteMessage(ctx.Request.Context(), uint(messageID), sender); err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			response.RenderErr(ctx, response.ErrNotFound("message", "id", messageID))
		case errors.Is(err, service.ErrNotMessageOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotMessageOwner))
		default:
			err = fmt.Errorf("v1.HandleDeleteMessage -> h.svc.DeleteMessage -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}

// HandleMyGroups godoc
// @Summary      List contests the current user has chatted in
// @Tags         chat
// @Produce      json
// @Success      200      {object}   []domain.ChatGroup
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /chat/my-groups [get]
func (h *ChatHandler) HandleMyGroups(ctx *gin.Context) {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return
	}

	sender := domain.Sender{Role: identity.Role, ID: identity.ID}
	groups, err := h.svc.MyGroups(ctx.Request.Context(), sender)
	if err != nil {
		err = fmt.Errorf("v1.HandleMyGroups -> h.svc.MyGroups -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, groups)
}
