package jobs

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc           *Service
	PublicBaseURL string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, publicBaseURL string) *Handler {
	return &Handler{Svc: svc, PublicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// RegisterRoutes attaches company-facing job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.create)
	rg.GET("/jobs", h.list)
	rg.DELETE("/jobs/:jobId", h.delete)
}

// RegisterPublicRoutes attaches the unauthenticated job lookup route.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs/:formId", h.publicJob)
}

type createJobRequest struct {
	JobTitle    string `json:"jobTitle"`
	Description string `json:"description"`
}

func (h *Handler) create(c *gin.Context) {
	companyID := middleware.CompanyIDFromContext(c)

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	job, err := h.Svc.Create(c.Request.Context(), companyID, req.JobTitle, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "jobTitle is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create job", nil)
		}
		return
	}

	c.Set("jobId", job.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"job":            toResponse(job),
		"publicFormLink": h.PublicBaseURL + "/apply/" + job.PublicFormID,
	})
}

func (h *Handler) list(c *gin.Context) {
	companyID := middleware.CompanyIDFromContext(c)

	list, err := h.Svc.List(c.Request.Context(), companyID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}

	resp := make([]JobResponse, 0, len(list))
	for _, job := range list {
		resp = append(resp, toResponse(job))
	}
	respond.OK(c, resp)
}

func (h *Handler) delete(c *gin.Context) {
	companyID := middleware.CompanyIDFromContext(c)
	jobID := c.Param("jobId")
	c.Set("jobId", jobID)

	if err := h.Svc.Delete(c.Request.Context(), companyID, jobID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete job", nil)
		}
		return
	}

	respond.OK(c, gin.H{"message": "Job deleted successfully"})
}

// publicJob exposes only the fields an applicant needs. The random form id
// is the sole gate here; an unknown id reads as an invalid link.
func (h *Handler) publicJob(c *gin.Context) {
	job, err := h.Svc.ResolvePublicForm(c.Request.Context(), c.Param("formId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "invalid_link", "This link is no longer valid", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch job", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"jobTitle":    job.JobTitle,
		"description": job.Description,
	})
}
