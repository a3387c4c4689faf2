package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/services"
	"github.com/pioneer/admissions/internal/middleware"
)

// ContactController handles the public contact form
type ContactController struct {
	contactService *services.ContactService
}

// NewContactController creates a new ContactController
func NewContactController(contactService *services.ContactService) *ContactController {
	return &ContactController{contactService: contactService}
}

// Submit stores a contact-form submission
// @Summary Submit contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Contact message"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /auth/contact [post]
func (c *ContactController) Submit(ctx *gin.Context) {
	var req dto.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	if _, err := c.contactService.Submit(ctx.Request.Context(), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(nil, "Contact data saved successfully."))
}

// List returns every submission, newest first
// @Summary List contact submissions
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Contact}
// @Router /admin/contact [get]
// @Router /admin/contacts [get]
func (c *ContactController) List(ctx *gin.Context) {
	items, err := c.contactService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items, ""))
}

// Delete removes a submission
// @Summary Delete contact submission
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/contact/{id} [delete]
// @Router /admin/contacts/{id} [delete]
func (c *ContactController) Delete(ctx *gin.Context) {
	id, err := parseInt64Param(ctx, "id", "Contact")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.contactService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Contact deleted successfully."))
}
