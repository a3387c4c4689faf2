package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/services"
	"github.com/pioneer/admissions/internal/middleware"
)

// AdminController handles administrator accounts and sessions
type AdminController struct {
	adminService *services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{adminService: adminService, logger: logger}
}

// Register handles administrator registration
// @Summary Register an administrator
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.AdminRegisterRequest true "Administrator account"
// @Success 201 {object} dto.APIResponse{data=dto.AdminData}
// @Failure 400 {object} dto.MessageResponse "Missing fields, short password, mismatch or duplicate email"
// @Router /admin/register [post]
func (c *AdminController) Register(ctx *gin.Context) {
	var req dto.AdminRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	admin, err := c.adminService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(admin, "Admin registered successfully"))
}

// Login handles administrator login
// @Summary Administrator login
// @Description Issues a one-day administrator token
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AdminLoginResult}
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /admin/login [post]
func (c *AdminController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	result, err := c.adminService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, "Login successful"))
}

// Logout revokes the administrator token
// @Summary Administrator logout
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /admin/logout [post]
func (c *AdminController) Logout(ctx *gin.Context) {
	claims, err := currentClaims(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.adminService.Logout(ctx.Request.Context(), claims); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("adminID", claims.UserID.String()).Msg("Admin logged out")
	ctx.JSON(http.StatusOK, dto.MessageResponse{Success: true, Msg: "Logged out successfully"})
}

// ValidateToken reports whether the presented token is a live administrator token
// @Summary Validate administrator token
// @Tags admin
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {object} dto.TokenValidationResponse
// @Router /admin/validate-token [get]
func (c *AdminController) ValidateToken(ctx *gin.Context) {
	token, err := middleware.TokenFromRequest(ctx)
	if err != nil {
		ctx.JSON(http.StatusOK, dto.TokenValidationResponse{Valid: false})
		return
	}

	resp, err := c.adminService.ValidateToken(ctx.Request.Context(), token)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
