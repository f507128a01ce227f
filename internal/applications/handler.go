package applications

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches company-facing application routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications", h.list)
	rg.GET("/jobs/:jobId/applications", h.listByJob)
	rg.GET("/applications/:id", h.get)
	rg.GET("/applications/:id/resume", h.resume)
	rg.PUT("/applications/:id/status", h.overrideStatus)
}

// RegisterEvaluatorRoutes attaches the evaluator callback routes.
func (h *Handler) RegisterEvaluatorRoutes(rg *gin.RouterGroup) {
	rg.PUT("/applications/:id/evaluation", h.applyEvaluation)
	rg.PUT("/applications/:id/status", h.evaluatorStatus)
}

func (h *Handler) list(c *gin.Context) {
	companyID := middleware.CompanyIDFromContext(c)

	apps, err := h.Svc.ListForCompany(c.Request.Context(), companyID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	respond.OK(c, toResponses(apps))
}

func (h *Handler) listByJob(c *gin.Context) {
	companyID := middleware.CompanyIDFromContext(c)
	jobID := c.Param("jobId")
	c.Set("jobId", jobID)

	apps, err := h.Svc.ListForJob(c.Request.Context(), companyID, jobID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	respond.OK(c, toResponses(apps))
}

func (h *Handler) get(c *gin.Context) {
	companyID := middleware.CompanyIDFromContext(c)
	id := c.Param("id")
	c.Set("applicationId", id)

	app, err := h.Svc.GetForCompany(c.Request.Context(), companyID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch application", nil)
		}
		return
	}
	respond.OK(c, ToResponse(app))
}

func (h *Handler) resume(c *gin.Context) {
	companyID := middleware.CompanyIDFromContext(c)
	id := c.Param("id")
	c.Set("applicationId", id)

	rc, ref, err := h.Svc.OpenResume(c.Request.Context(), companyID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoResume):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open resume", nil)
		}
		return
	}
	defer rc.Close()

	contentType := ref.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", ref.Filename))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *Handler) overrideStatus(c *gin.Context) {
	companyID := middleware.CompanyIDFromContext(c)
	id := c.Param("id")
	c.Set("applicationId", id)

	newStatus, ok := bindStatus(c)
	if !ok {
		return
	}

	app, err := h.Svc.OverrideStatus(c.Request.Context(), companyID, id, newStatus)
	if err != nil {
		respondStatusErr(c, err)
		return
	}
	c.Set("statusTransition", string(app.Status))
	respond.OK(c, ToResponse(app))
}

type evaluationRequest struct {
	Scores  Scores          `json:"scores"`
	Tier    Tier            `json:"tier"`
	Payload json.RawMessage `json:"evaluatorPayload"`
}

func (h *Handler) applyEvaluation(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)

	var req evaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	app, err := h.Svc.ApplyEvaluation(c.Request.Context(), id, Evaluation{
		Scores:  req.Scores,
		Tier:    req.Tier,
		Payload: req.Payload,
	})
	if err != nil {
		respondStatusErr(c, err)
		return
	}
	c.Set("statusTransition", string(app.Status))
	respond.OK(c, ToResponse(app))
}

func (h *Handler) evaluatorStatus(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)

	newStatus, ok := bindStatus(c)
	if !ok {
		return
	}

	app, err := h.Svc.UpdateStatusFromEvaluator(c.Request.Context(), id, newStatus)
	if err != nil {
		respondStatusErr(c, err)
		return
	}
	c.Set("statusTransition", string(app.Status))
	respond.OK(c, ToResponse(app))
}

func bindStatus(c *gin.Context) (Status, bool) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return "", false
	}
	status := Status(strings.ToLower(strings.TrimSpace(req.Status)))
	if !ValidStatus(status) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown status", nil)
		return "", false
	}
	return status, true
}

func respondStatusErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_transition", "status change is not allowed from the current state", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update application", nil)
	}
}

func toResponses(apps []Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, ToResponse(app))
	}
	return out
}
