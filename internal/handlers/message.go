package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnneAnotherThing/hivenow-app/internal/dto"
	apierrors "github.com/AnneAnotherThing/hivenow-app/internal/errors"
	"github.com/AnneAnotherThing/hivenow-app/internal/middleware"
	"github.com/AnneAnotherThing/hivenow-app/internal/services"
)

// MessageHandler coordinates project-message HTTP handlers.
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// ListMessages returns a project's messages in chronological order.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	actor, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	messages, err := h.messageService.List(actor, project.ID)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": dto.ToMessageDTOs(messages)})
}

// SendMessage stores a message on the project's conversation.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	actor, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type SendMessageRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Message content is required")
		return
	}

	message, err := h.messageService.Send(actor, project.ID, req.Content)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": dto.ToMessageDTO(*message)})
}

func respondMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectAccessDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrMessagingUnavailable):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrMessageEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
