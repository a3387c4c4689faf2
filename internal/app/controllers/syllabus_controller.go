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

// SyllabusController handles syllabus uploads and listings
type SyllabusController struct {
	syllabusService *services.SyllabusService
	logger          zerolog.Logger
}

// NewSyllabusController creates a new SyllabusController
func NewSyllabusController(syllabusService *services.SyllabusService, logger zerolog.Logger) *SyllabusController {
	return &SyllabusController{syllabusService: syllabusService, logger: logger}
}

// List returns syllabus PDFs grouped by class
// @Summary List syllabus
// @Tags syllabus
// @Produce json
// @Success 200 {object} dto.APIResponse{data=map[string][]dto.SyllabusEntry}
// @Router /auth/syllabus [get]
// @Router /admin/syllabus [get]
func (c *SyllabusController) List(ctx *gin.Context) {
	grouped, err := c.syllabusService.ListGrouped(ctx.Request.Context(), urlFor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grouped, ""))
}

// Get returns one syllabus entry
// @Summary Get syllabus
// @Tags syllabus
// @Produce json
// @Security BearerAuth
// @Param id path int true "Syllabus ID"
// @Success 200 {object} dto.APIResponse{data=models.Syllabus}
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/syllabus/{id} [get]
func (c *SyllabusController) Get(ctx *gin.Context) {
	id, err := parseInt64Param(ctx, "id", "Syllabus")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.syllabusService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, ""))
}

// Create uploads a syllabus PDF for a class
// @Summary Upload syllabus
// @Tags syllabus
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param class formData string true "Class label"
// @Param pdf formData file true "Syllabus PDF"
// @Success 201 {object} dto.APIResponse{data=models.Syllabus}
// @Failure 400 {object} dto.ErrorResponse "Invalid class, missing PDF, wrong type or too large"
// @Router /admin/syllabus [post]
func (c *SyllabusController) Create(ctx *gin.Context) {
	file, err := optionalFile(ctx, filestorage.KindSyllabusPDF.FieldName())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.syllabusService.Create(ctx.Request.Context(), ctx.PostForm("class"), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item, "Syllabus uploaded successfully."))
}

// Update changes the class and optionally replaces the PDF
// @Summary Update syllabus
// @Tags syllabus
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Syllabus ID"
// @Param class formData string false "Class label"
// @Param pdf formData file false "Replacement PDF"
// @Success 200 {object} dto.APIResponse{data=models.Syllabus}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/syllabus/{id} [put]
func (c *SyllabusController) Update(ctx *gin.Context) {
	id, err := parseInt64Param(ctx, "id", "Syllabus")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	file, err := optionalFile(ctx, filestorage.KindSyllabusPDF.FieldName())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	item, err := c.syllabusService.Update(ctx.Request.Context(), id, ctx.PostForm("class"), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, "Syllabus updated successfully."))
}

// Delete removes a syllabus entry and its PDF
// @Summary Delete syllabus
// @Tags syllabus
// @Produce json
// @Security BearerAuth
// @Param id path int true "Syllabus ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/syllabus/{id} [delete]
func (c *SyllabusController) Delete(ctx *gin.Context) {
	id, err := parseInt64Param(ctx, "id", "Syllabus")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.syllabusService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("syllabusID", id).Msg("Syllabus deleted")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Syllabus deleted successfully."))
}
