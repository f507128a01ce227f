package analytics

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/jobs"
	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
)

// Handler wires the dashboard read endpoints to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analytics routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analytics/jobs/:formId", h.jobTiers)
	rg.GET("/analytics/stats", h.companyStats)
}

func (h *Handler) jobTiers(c *gin.Context) {
	companyID := middleware.CompanyIDFromContext(c)

	tiers, err := h.Svc.PerJobTiers(c.Request.Context(), companyID, c.Param("formId"))
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute job analytics", nil)
		}
		return
	}
	respond.OK(c, tiers)
}

func (h *Handler) companyStats(c *gin.Context) {
	companyID := middleware.CompanyIDFromContext(c)

	stats, err := h.Svc.PerCompanyStats(c.Request.Context(), companyID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute company stats", nil)
		return
	}
	respond.OK(c, stats)
}
