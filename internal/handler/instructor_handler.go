package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studiohq/studio-api/internal/service"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
	"github.com/studiohq/studio-api/pkg/response"
)

// InstructorHandler exposes instructor endpoints.
type InstructorHandler struct {
	service *service.InstructorService
}

// NewInstructorHandler constructs an instructor handler.
func NewInstructorHandler(svc *service.InstructorService) *InstructorHandler {
	return &InstructorHandler{service: svc}
}

// NextID godoc
// @Summary Next instructor identifier
// @Tags Instructors
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /instructors/next-id [get]
func (h *InstructorHandler) NextID(c *gin.Context) {
	id, err := h.service.NextID(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": id})
}

// Create godoc
// @Summary Create instructor
// @Tags Instructors
// @Accept json
// @Produce json
// @Param force query bool false "Bypass the duplicate-name check"
// @Param payload body service.CreateInstructorRequest true "Instructor payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /instructors [post]
func (h *InstructorHandler) Create(c *gin.Context) {
	var req service.CreateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	instructor, err := h.service.Create(c.Request.Context(), req, forceFlag(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, instructor)
}

// Search godoc
// @Summary Search instructors by first name
// @Tags Instructors
// @Produce json
// @Param firstname query string true "First name fragment"
// @Success 200 {object} response.Envelope
// @Router /instructors/search [get]
func (h *InstructorHandler) Search(c *gin.Context) {
	firstName := strings.TrimSpace(c.Query("firstname"))
	if firstName == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "firstname query parameter is required"))
		return
	}
	instructors, err := h.service.Search(c.Request.Context(), firstName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructors)
}

// List godoc
// @Summary List instructors
// @Tags Instructors
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /instructors [get]
func (h *InstructorHandler) List(c *gin.Context) {
	refs, err := h.service.ListRefs(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, refs)
}

// Get godoc
// @Summary Get instructor detail
// @Tags Instructors
// @Produce json
// @Param id path string true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /instructors/{id} [get]
func (h *InstructorHandler) Get(c *gin.Context) {
	instructor, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor)
}

// Delete godoc
// @Summary Delete instructor
// @Tags Instructors
// @Produce json
// @Param id path string true "Instructor ID"
// @Success 204
// @Router /instructors/{id} [delete]
func (h *InstructorHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
