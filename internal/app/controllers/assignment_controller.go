package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/services"
	"github.com/pioneer/admissions/internal/middleware"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
)

// AssignmentController handles per-class assignments
type AssignmentController struct {
	assignmentService *services.AssignmentService
	logger            zerolog.Logger
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService *services.AssignmentService, logger zerolog.Logger) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService, logger: logger}
}

func assignmentInput(ctx *gin.Context, current dto.AssignmentInput) dto.AssignmentInput {
	return dto.AssignmentInput{
		Title:       formOr(ctx, "title", current.Title),
		Subject:     formOr(ctx, "subject", current.Subject),
		Description: formOr(ctx, "description", current.Description),
	}
}

// List returns every class with its assignments
// @Summary List assignments
// @Tags assignments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ClassAssignmentResponse}
// @Router /auth/assignments [get]
// @Router /admin/assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	groups, err := c.assignmentService.ListGrouped(ctx.Request.Context(), urlFor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(groups, ""))
}

// GetByClass returns the assignments of one class
// @Summary Assignments of a class
// @Tags assignments
// @Produce json
// @Param className path string true "Class label"
// @Success 200 {object} dto.APIResponse{data=dto.ClassAssignmentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/assignments/{className} [get]
// @Router /admin/assignments/{className} [get]
func (c *AssignmentController) GetByClass(ctx *gin.Context) {
	group, err := c.assignmentService.GetByClass(ctx.Request.Context(), ctx.Param("className"), urlFor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(group, ""))
}

// Create adds an assignment to a class
// @Summary Add assignment
// @Tags assignments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param className path string true "Class label"
// @Param title formData string true "Title"
// @Param subject formData string true "Subject"
// @Param description formData string false "Description"
// @Param pdf formData file false "Assignment PDF"
// @Success 201 {object} dto.APIResponse{data=dto.AssignmentEntry}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /admin/assignments/{className} [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	file, err := optionalFile(ctx, filestorage.KindAssignmentPDF.FieldName())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	a, err := c.assignmentService.Add(ctx.Request.Context(), ctx.Param("className"), assignmentInput(ctx, dto.AssignmentInput{}), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(services.ToAssignmentEntry(*a, urlFor(ctx)), "Assignment added successfully."))
}

// Update changes one assignment of a class
// @Summary Update assignment
// @Tags assignments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param className path string true "Class label"
// @Param assignmentId path int true "Assignment ID"
// @Param title formData string false "Title"
// @Param subject formData string false "Subject"
// @Param description formData string false "Description"
// @Param pdf formData file false "Replacement PDF"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentEntry}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assignments/{className}/{assignmentId} [put]
func (c *AssignmentController) Update(ctx *gin.Context) {
	class := ctx.Param("className")
	id, err := parseInt64Param(ctx, "assignmentId", "Assignment")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	current, err := c.assignmentService.Get(ctx.Request.Context(), class, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	file, err := optionalFile(ctx, filestorage.KindAssignmentPDF.FieldName())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	in := assignmentInput(ctx, dto.AssignmentInput{
		Title:       current.Title,
		Subject:     current.Subject,
		Description: current.Description,
	})
	a, err := c.assignmentService.Update(ctx.Request.Context(), class, id, in, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(services.ToAssignmentEntry(*a, urlFor(ctx)), "Assignment updated successfully."))
}

// Delete removes one assignment of a class
// @Summary Delete assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param className path string true "Class label"
// @Param assignmentId path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/assignments/{className}/{assignmentId} [delete]
func (c *AssignmentController) Delete(ctx *gin.Context) {
	class := ctx.Param("className")
	id, err := parseInt64Param(ctx, "assignmentId", "Assignment")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.assignmentService.Delete(ctx.Request.Context(), class, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("assignmentID", id).Str("class", class).Msg("Assignment deleted")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Assignment deleted successfully."))
}
