package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studiohq/studio-api/internal/service"
	"github.com/studiohq/studio-api/pkg/response"
)

// ReportHandler exposes the read-only reporting endpoints.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Summary godoc
// @Summary Studio record counts
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// ExportSummary godoc
// @Summary Download the studio summary
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} byte
// @Router /reports/summary/export [get]
func (h *ReportHandler) ExportSummary(c *gin.Context) {
	format := c.DefaultQuery("format", service.ExportFormatCSV)
	body, contentType, err := h.service.ExportSummary(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="studio-summary.`+format+`"`)
	c.Data(http.StatusOK, contentType, body)
}

// InstructorPerformance godoc
// @Summary Check-in tally for one instructor
// @Tags Reports
// @Produce json
// @Param id path string true "Instructor ID"
// @Success 200 {object} response.Envelope
// @Router /reports/instructors/{id} [get]
func (h *ReportHandler) InstructorPerformance(c *gin.Context) {
	report, err := h.service.InstructorPerformance(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// ClassAttendance godoc
// @Summary Check-in tally for one class
// @Tags Reports
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /reports/classes/{id} [get]
func (h *ReportHandler) ClassAttendance(c *gin.Context) {
	report, err := h.service.ClassAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// CustomerAttendance godoc
// @Summary Check-in tally for one customer
// @Tags Reports
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.Envelope
// @Router /reports/customers/{id} [get]
func (h *ReportHandler) CustomerAttendance(c *gin.Context) {
	report, err := h.service.CustomerAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}
