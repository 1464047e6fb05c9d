package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studiohq/studio-api/internal/service"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
	"github.com/studiohq/studio-api/pkg/response"
)

// AttendanceHandler exposes the check-in workflow endpoints.
type AttendanceHandler struct {
	service *service.AttendanceService
	classes *service.ClassService
	metrics *service.MetricsService
}

// NewAttendanceHandler constructs an attendance handler.
func NewAttendanceHandler(svc *service.AttendanceService, classes *service.ClassService, metrics *service.MetricsService) *AttendanceHandler {
	return &AttendanceHandler{service: svc, classes: classes, metrics: metrics}
}

// NextID godoc
// @Summary Next attendance identifier
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance/next-id [get]
func (h *AttendanceHandler) NextID(c *gin.Context) {
	id, err := h.service.NextID(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": id})
}

// CheckIn godoc
// @Summary Check a session's attendees in
// @Description Answers 409 NEEDS_CONFIRM when the session is off-schedule
// @Description or an attendee lacks balance; resubmit with force=true to commit.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param force query bool false "Commit despite warnings"
// @Param payload body service.CheckInRequest true "Check-in payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req service.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.service.CheckIn(c.Request.Context(), req, forceFlag(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordCheckin()
	response.Created(c, record)
}

// ClassesByInstructor godoc
// @Summary List an instructor's classes with their first weekly slot
// @Tags Attendance
// @Produce json
// @Param instructorId query string true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /attendance/classes-by-instructor [get]
func (h *AttendanceHandler) ClassesByInstructor(c *gin.Context) {
	instructorID := strings.TrimSpace(c.Query("instructorId"))
	if instructorID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "instructorId query parameter is required"))
		return
	}
	classes, err := h.classes.ListByInstructor(c.Request.Context(), instructorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}
