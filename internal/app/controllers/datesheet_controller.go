package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/services"
	"github.com/pioneer/admissions/internal/middleware"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
)

// DatesheetController handles exam datesheets
type DatesheetController struct {
	datesheetService *services.DatesheetService
	logger           zerolog.Logger
}

// NewDatesheetController creates a new DatesheetController
func NewDatesheetController(datesheetService *services.DatesheetService, logger zerolog.Logger) *DatesheetController {
	return &DatesheetController{datesheetService: datesheetService, logger: logger}
}

// formOr returns the trimmed form value, or fallback when it is empty
func formOr(ctx *gin.Context, key, fallback string) string {
	if v := strings.TrimSpace(ctx.PostForm(key)); v != "" {
		return v
	}
	return fallback
}

func datesheetInput(ctx *gin.Context, current dto.DatesheetInput) dto.DatesheetInput {
	return dto.DatesheetInput{
		ExamName: formOr(ctx, "examName", current.ExamName),
		Class:    formOr(ctx, "class", current.Class),
		Year:     formOr(ctx, "year", current.Year),
		Date:     formOr(ctx, "date", current.Date),
	}
}

// List returns datesheets grouped by class
// @Summary List datesheets
// @Tags datesheets
// @Produce json
// @Success 200 {object} dto.APIResponse{data=map[string][]dto.DatesheetEntry}
// @Router /auth/datesheet [get]
// @Router /admin/datesheet [get]
func (c *DatesheetController) List(ctx *gin.Context) {
	grouped, err := c.datesheetService.ListGrouped(ctx.Request.Context(), urlFor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grouped, ""))
}

// Get returns one datesheet
// @Summary Get datesheet
// @Tags datesheets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Datesheet ID"
// @Success 200 {object} dto.APIResponse{data=models.Datesheet}
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/datesheet/{id} [get]
func (c *DatesheetController) Get(ctx *gin.Context) {
	id, err := parseInt64Param(ctx, "id", "Datesheet")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.datesheetService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, ""))
}

// Create uploads a datesheet
// @Summary Upload datesheet
// @Tags datesheets
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param examName formData string true "Exam name"
// @Param class formData string true "Class label"
// @Param year formData string true "Academic year"
// @Param date formData string true "Exam date"
// @Param pdf formData file true "Datesheet PDF"
// @Success 201 {object} dto.APIResponse{data=models.Datesheet}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /admin/datesheet [post]
func (c *DatesheetController) Create(ctx *gin.Context) {
	file, err := optionalFile(ctx, filestorage.KindDatesheetPDF.FieldName())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.datesheetService.Create(ctx.Request.Context(), datesheetInput(ctx, dto.DatesheetInput{}), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item, "Datesheet uploaded successfully."))
}

// Update changes the given fields and optionally replaces the PDF
// @Summary Update datesheet
// @Tags datesheets
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Datesheet ID"
// @Param examName formData string false "Exam name"
// @Param class formData string false "Class label"
// @Param year formData string false "Academic year"
// @Param date formData string false "Exam date"
// @Param pdf formData file false "Replacement PDF"
// @Success 200 {object} dto.APIResponse{data=models.Datesheet}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/datesheet/{id} [put]
func (c *DatesheetController) Update(ctx *gin.Context) {
	id, err := parseInt64Param(ctx, "id", "Datesheet")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	current, err := c.datesheetService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	file, err := optionalFile(ctx, filestorage.KindDatesheetPDF.FieldName())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	in := datesheetInput(ctx, dto.DatesheetInput{
		ExamName: current.ExamName,
		Class:    current.Class,
		Year:     current.Year,
		Date:     current.ExamDate,
	})
	item, err := c.datesheetService.Update(ctx.Request.Context(), id, in, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, "Datesheet updated successfully."))
}

// Delete removes a datesheet and its PDF
// @Summary Delete datesheet
// @Tags datesheets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Datesheet ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/datesheet/{id} [delete]
func (c *DatesheetController) Delete(ctx *gin.Context) {
	id, err := parseInt64Param(ctx, "id", "Datesheet")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.datesheetService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("datesheetID", id).Msg("Datesheet deleted")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Datesheet deleted successfully."))
}
