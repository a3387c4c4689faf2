package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/services"
	"github.com/pioneer/admissions/internal/middleware"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/helpers"
)

// ApplicationController exposes the administrator review of applications
type ApplicationController struct {
	applicationService *services.ApplicationService
	documentService    *services.DocumentService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService, documentService *services.DocumentService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		documentService:    documentService,
		logger:             logger,
	}
}

// filterFromQuery reads status, isRead and pagination from the query string
func filterFromQuery(ctx *gin.Context) (models.ApplicantFilter, error) {
	var filter models.ApplicantFilter
	filter.Page, filter.Size = helpers.ParsePageParams(ctx)

	if s := ctx.Query("status"); s != "" {
		status := models.ApplicationStatus(s)
		if !status.Valid() {
			return filter, apperrors.NewValidationError("status", "Invalid status value")
		}
		filter.Status = &status
	}
	if s := ctx.Query("isRead"); s != "" {
		read, err := strconv.ParseBool(s)
		if err != nil {
			return filter, apperrors.NewValidationError("isRead", "isRead must be true or false")
		}
		filter.IsRead = &read
	}
	return filter, nil
}

// List returns applications, newest first
// @Summary List applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending | approved | rejected"
// @Param isRead query bool false "Read flag"
// @Param page query int false "Page number; omit page and size to list everything"
// @Param size query int false "Page size (10 when only page is given, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /admin/admissionApplications [get]
func (c *ApplicationController) List(ctx *gin.Context) {
	filter, err := filterFromQuery(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, err := c.applicationService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(page, ""))
}

// Get returns one application
// @Summary Get application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.Applicant}
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/admissionApplication/{id} [get]
func (c *ApplicationController) Get(ctx *gin.Context) {
	a, err := c.applicationService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(a, ""))
}

// UpdateStatus moves an application through the review workflow
// @Summary Update application status
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Applicant}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/admissionApplication/{id}/status [put]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	a, err := c.applicationService.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), req.ApplicationStatus)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(a, "Application status updated successfully."))
}

// MarkAsRead flags an application as read
// @Summary Mark application as read
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.Applicant}
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/admissionApplication/{id}/markAsRead [put]
func (c *ApplicationController) MarkAsRead(ctx *gin.Context) {
	a, err := c.applicationService.MarkAsRead(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(a, "Application marked as read."))
}

// Delete removes an application and its documents
// @Summary Delete application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/admissionApplication/{id} [delete]
func (c *ApplicationController) Delete(ctx *gin.Context) {
	if err := c.applicationService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Application deleted successfully."))
}

// DownloadPDF renders the printable registration form
// @Summary Download application summary
// @Tags applications
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/admissionApplication/{id}/downloadPDF [get]
func (c *ApplicationController) DownloadPDF(ctx *gin.Context) {
	doc, err := c.documentService.Summary(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendPDF(ctx, doc)
}

// AdmitCard renders the admit card of an approved application
// @Summary Download admit card
// @Tags applications
// @Produce application/pdf
// @Security BearerAuth
// @Param id query string true "Application ID"
// @Success 200 {file} binary
// @Failure 403 {object} dto.ErrorResponse "Application not approved"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/admitCard [get]
func (c *ApplicationController) AdmitCard(ctx *gin.Context) {
	id := ctx.Query("id")
	if id == "" {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("id", "id is required"))
		return
	}

	doc, err := c.documentService.AdmitCard(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendPDF(ctx, doc)
}
