package intake

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/applications"
	"recruit-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler exposes the public submission endpoint.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public apply route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/apply/:formId", h.apply)
}

// apply maps submission failures onto distinct codes so an applicant can
// tell a bad link from bad input from a transient failure worth retrying.
func (h *Handler) apply(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	info := applications.PersonalInfo{
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
		Email:     c.PostForm("email"),
		Phone:     c.PostForm("phone"),
	}
	links := applications.Links{
		LinkedIn:  c.PostForm("linkedin"),
		GitHub:    c.PostForm("github"),
		Portfolio: c.PostForm("portfolio"),
	}

	var resume *ResumeUpload
	if fileHeader, err := c.FormFile("resume"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
			return
		}
		defer file.Close()
		resume = &ResumeUpload{Filename: fileHeader.Filename, Reader: file}
	}

	app, err := h.Svc.Submit(c.Request.Context(), c.Param("formId"), info, links, resume)
	if err != nil {
		switch {
		case errors.Is(err, ErrJobNotFound):
			respond.Error(c, http.StatusNotFound, "invalid_link", "This link is no longer valid", nil)
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrStorageUnavailable), errors.Is(err, ErrRepositoryUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, "try_again", "We could not save your application, please try again", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit application", nil)
		}
		return
	}

	c.Set("applicationId", app.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"message":       "Application submitted successfully",
		"applicationId": app.ID,
	})
}
