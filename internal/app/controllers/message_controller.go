package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/services"
	"github.com/pioneer/admissions/internal/middleware"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
)

// MessageController handles announcements
type MessageController struct {
	messageService *services.MessageService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService, logger zerolog.Logger) *MessageController {
	return &MessageController{messageService: messageService, logger: logger}
}

func messageInput(ctx *gin.Context, current dto.MessageInput) dto.MessageInput {
	return dto.MessageInput{
		Title:          formOr(ctx, "title", current.Title),
		Content:        formOr(ctx, "content", current.Content),
		SentBy:         formOr(ctx, "sentBy", current.SentBy),
		TargetAudience: formOr(ctx, "targetAudience", current.TargetAudience),
	}
}

func (c *MessageController) respond(ctx *gin.Context, status int, m *models.Message, msg string) {
	ctx.JSON(status, dto.NewSuccessResponse(services.ToAnnouncementResponse(m, urlFor(ctx)), msg))
}

// List returns every announcement, newest first
// @Summary List messages
// @Tags messages
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.AnnouncementResponse}
// @Router /auth/messages [get]
// @Router /admin/messages [get]
func (c *MessageController) List(ctx *gin.Context) {
	items, err := c.messageService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	toURL := urlFor(ctx)
	out := make([]dto.AnnouncementResponse, 0, len(items))
	for _, m := range items {
		out = append(out, services.ToAnnouncementResponse(m, toURL))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(out, ""))
}

// Get returns one announcement
// @Summary Get message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse{data=dto.AnnouncementResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/messages/{id} [get]
func (c *MessageController) Get(ctx *gin.Context) {
	id, err := parseInt64Param(ctx, "id", "Message")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	m, err := c.messageService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.respond(ctx, http.StatusOK, m, "")
}

// Create posts an announcement with an optional attachment
// @Summary Create message
// @Tags messages
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param content formData string true "Body"
// @Param sentBy formData string true "Sender"
// @Param targetAudience formData string true "All, Parents, Boys, Girls or a class"
// @Param attachment formData file false "Attachment"
// @Success 201 {object} dto.APIResponse{data=dto.AnnouncementResponse}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /admin/messages [post]
func (c *MessageController) Create(ctx *gin.Context) {
	attachment, err := optionalFile(ctx, filestorage.KindMessageAttachment.FieldName())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	m, err := c.messageService.Create(ctx.Request.Context(), messageInput(ctx, dto.MessageInput{}), attachment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.respond(ctx, http.StatusCreated, m, "Message sent successfully.")
}

// Update changes the given fields and optionally replaces the attachment
// @Summary Update message
// @Tags messages
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Param title formData string false "Title"
// @Param content formData string false "Body"
// @Param sentBy formData string false "Sender"
// @Param targetAudience formData string false "Audience"
// @Param attachment formData file false "Replacement attachment"
// @Success 200 {object} dto.APIResponse{data=dto.AnnouncementResponse}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/messages/{id} [put]
func (c *MessageController) Update(ctx *gin.Context) {
	id, err := parseInt64Param(ctx, "id", "Message")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	current, err := c.messageService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	attachment, err := optionalFile(ctx, filestorage.KindMessageAttachment.FieldName())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	in := messageInput(ctx, dto.MessageInput{
		Title:          current.Title,
		Content:        current.Content,
		SentBy:         current.SentBy,
		TargetAudience: current.TargetAudience,
	})
	m, err := c.messageService.Update(ctx.Request.Context(), id, in, attachment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.respond(ctx, http.StatusOK, m, "Message updated successfully.")
}

// Delete removes an announcement and its attachment
// @Summary Delete message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/messages/{id} [delete]
func (c *MessageController) Delete(ctx *gin.Context) {
	id, err := parseInt64Param(ctx, "id", "Message")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.messageService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Message deleted successfully"))
}
