package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cloudkitchenpro/backend/internal/middleware"
	"github.com/cloudkitchenpro/backend/internal/models"
	"github.com/cloudkitchenpro/backend/internal/service"
)

type ReportHandler struct {
	reports *service.ReportService
	auth    *service.AuthService
	limiter *middleware.RateLimiter
}

func NewReportHandler(reports *service.ReportService, auth *service.AuthService, limiter *middleware.RateLimiter) *ReportHandler {
	return &ReportHandler{reports: reports, auth: auth, limiter: limiter}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	reports.Use(middleware.AuthMiddleware(h.auth))
	reports.Use(middleware.RequireRoles(models.RoleAdmin))
	if h.limiter != nil {
		reports.Use(h.limiter.RateLimitMiddleware())
	}
	reports.GET("/analytics", h.Analytics)
}

// Analytics returns the full cross-recipe reporting payload in one response.
func (h *ReportHandler) Analytics(c *gin.Context) {
	analytics, err := h.reports.Analytics(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analytics)
}
