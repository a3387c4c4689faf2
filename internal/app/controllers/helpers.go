// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pioneer/admissions/internal/app/services"
	"github.com/pioneer/admissions/internal/middleware"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/auth"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
)

// requestScheme honours X-Forwarded-Proto set by a terminating proxy
func requestScheme(ctx *gin.Context) string {
	if proto := ctx.GetHeader("X-Forwarded-Proto"); proto != "" {
		return strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	if ctx.Request.TLS != nil {
		return "https"
	}
	return "http"
}

// urlFor builds public file URLs on the host the request came in on
func urlFor(ctx *gin.Context) services.URLFunc {
	scheme, host := requestScheme(ctx), ctx.Request.Host
	return func(storedPath string) string {
		return filestorage.PublicURL(scheme, host, storedPath)
	}
}

// parseInt64Param reads a numeric path parameter. Malformed ids are
// reported as not found.
func parseInt64Param(ctx *gin.Context, name, resource string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewResourceNotFoundError(resource + " not found")
	}
	return id, nil
}

// optionalFile returns the uploaded part or nil when the part is absent
func optionalFile(ctx *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := ctx.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperrors.NewBadRequestError("Invalid multipart form")
	}
	return fh, nil
}

// currentClaims returns the claims stored by the auth middleware
func currentClaims(ctx *gin.Context) (*auth.Claims, error) {
	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		return nil, apperrors.ErrTokenMissing
	}
	return claims, nil
}

// sendPDF writes a generated document as a download
func sendPDF(ctx *gin.Context, doc *services.RenderedDocument) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	ctx.Data(http.StatusOK, "application/pdf", doc.Content)
}
