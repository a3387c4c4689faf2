package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/services"
	"github.com/pioneer/admissions/internal/middleware"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
)

// ApplicantController handles the public applicant surface
type ApplicantController struct {
	applicantService *services.ApplicantService
	documentService  *services.DocumentService
	logger           zerolog.Logger
}

// NewApplicantController creates a new ApplicantController
func NewApplicantController(applicantService *services.ApplicantService, documentService *services.DocumentService, logger zerolog.Logger) *ApplicantController {
	return &ApplicantController{
		applicantService: applicantService,
		documentService:  documentService,
		logger:           logger,
	}
}

// formValues flattens the text parts of a multipart or urlencoded body,
// keeping the first value of every field.
func formValues(ctx *gin.Context) (map[string]string, *multipart.Form, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, apperrors.NewBadRequestError("Invalid multipart form")
		}
		if err := ctx.Request.ParseForm(); err != nil {
			return nil, nil, apperrors.NewBadRequestError("Invalid form body")
		}
		raw := make(map[string]string, len(ctx.Request.PostForm))
		for k, v := range ctx.Request.PostForm {
			if len(v) > 0 {
				raw[k] = v[0]
			}
		}
		return raw, nil, nil
	}

	raw := make(map[string]string, len(form.Value))
	for k, v := range form.Value {
		if len(v) > 0 {
			raw[k] = v[0]
		}
	}
	return raw, form, nil
}

// Register handles applicant registration
// @Summary Register an applicant
// @Description Submits an admission form with its supporting documents. Returns a session token.
// @Tags applicant
// @Accept multipart/form-data
// @Produce json
// @Param email formData string true "Applicant email"
// @Param password formData string true "Password"
// @Param student_name formData string true "Student name"
// @Param studentPhoto formData file false "Student photo (JPEG/PNG)"
// @Param dobCertificate formData file false "Date of birth certificate"
// @Param bloodReport formData file false "Blood report"
// @Param aadharCard formData file false "Aadhar card"
// @Param passportPhotos formData file false "Passport photos"
// @Param marksCertificate formData file false "Marks certificate"
// @Param schoolLeavingCert formData file false "School leaving certificate"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Validation error, rejected upload or duplicate email"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *ApplicantController) Register(ctx *gin.Context) {
	raw, form, err := formValues(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	files := filestorage.FilesFromForm(form, filestorage.RegistrationKinds...)
	resp, err := c.applicantService.Register(ctx.Request.Context(), raw, files)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", raw["email"]).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// Login handles applicant login
// @Summary Applicant login
// @Description Authenticates an applicant and returns a token
// @Tags applicant
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Missing fields"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *ApplicantController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	resp, err := c.applicantService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// User returns the authenticated applicant
// @Summary Current applicant
// @Description Returns the logged-in applicant's record without the password
// @Tags applicant
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Applicant
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/user [get]
func (c *ApplicantController) User(ctx *gin.Context) {
	claims, err := currentClaims(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	applicant, err := c.applicantService.Profile(ctx.Request.Context(), claims.UserID.String())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, applicant)
}

// Logout revokes the presented token
// @Summary Applicant logout
// @Tags applicant
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (c *ApplicantController) Logout(ctx *gin.Context) {
	claims, err := currentClaims(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.applicantService.Logout(ctx.Request.Context(), claims); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Success: true, Msg: "Successfully logged out."})
}

// AdmitCard downloads the authenticated applicant's admit card
// @Summary Own admit card
// @Description Available only once the application is approved
// @Tags applicant
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 403 {object} dto.ErrorResponse "Application not approved"
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/admitCard [get]
func (c *ApplicantController) AdmitCard(ctx *gin.Context) {
	claims, err := currentClaims(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	doc, err := c.documentService.AdmitCard(ctx.Request.Context(), claims.UserID.String())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	sendPDF(ctx, doc)
}
