package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/services"
	"github.com/pioneer/admissions/internal/middleware"
)

// DashboardController serves record counts
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Totals returns every count in one response
// @Summary Dashboard totals
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.TotalsResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /admin/totals [get]
func (c *DashboardController) Totals(ctx *gin.Context) {
	totals, err := c.dashboardService.Totals(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(totals, ""))
}

func countHandler(fn func(context.Context) (*dto.CountResponse, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		n, err := fn(ctx.Request.Context())
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(n, ""))
	}
}

// TotalUsers returns the administrator count
// @Summary Administrator count
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse}
// @Router /admin/total-users [get]
func (c *DashboardController) TotalUsers(ctx *gin.Context) {
	countHandler(c.dashboardService.Admins)(ctx)
}

// TotalContacts returns the contact submission count
// @Summary Contact count
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse}
// @Router /admin/total-contacts [get]
func (c *DashboardController) TotalContacts(ctx *gin.Context) {
	countHandler(c.dashboardService.Contacts)(ctx)
}

// TotalDatesheets returns the datesheet count
// @Summary Datesheet count
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse}
// @Router /admin/total-datesheets [get]
func (c *DashboardController) TotalDatesheets(ctx *gin.Context) {
	countHandler(c.dashboardService.Datesheets)(ctx)
}

// TotalMessages returns the announcement count
// @Summary Message count
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse}
// @Router /admin/total-messages [get]
func (c *DashboardController) TotalMessages(ctx *gin.Context) {
	countHandler(c.dashboardService.Messages)(ctx)
}

// TotalApplications returns the application count
// @Summary Application count
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse}
// @Router /admin/total-applications [get]
func (c *DashboardController) TotalApplications(ctx *gin.Context) {
	countHandler(c.dashboardService.Applications)(ctx)
}

// TotalSyllabus returns the syllabus count
// @Summary Syllabus count
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse}
// @Router /admin/total-syllabus [get]
func (c *DashboardController) TotalSyllabus(ctx *gin.Context) {
	countHandler(c.dashboardService.Syllabus)(ctx)
}

// TotalAssignments returns the assignment count across all classes
// @Summary Assignment count
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse}
// @Router /admin/total-assignments [get]
func (c *DashboardController) TotalAssignments(ctx *gin.Context) {
	countHandler(c.dashboardService.Assignments)(ctx)
}
