package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studiohq/studio-api/internal/service"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
	"github.com/studiohq/studio-api/pkg/response"
)

// SaleHandler exposes sale endpoints.
type SaleHandler struct {
	service *service.SaleService
	metrics *service.MetricsService
}

// NewSaleHandler constructs a sale handler.
func NewSaleHandler(svc *service.SaleService, metrics *service.MetricsService) *SaleHandler {
	return &SaleHandler{service: svc, metrics: metrics}
}

// NextID godoc
// @Summary Next sale identifier
// @Tags Sales
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sales/next-id [get]
func (h *SaleHandler) NextID(c *gin.Context) {
	id, err := h.service.NextID(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": id})
}

// Create godoc
// @Summary Record a package sale
// @Tags Sales
// @Accept json
// @Produce json
// @Param payload body service.CreateSaleRequest true "Sale payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req service.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	sale, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordSale()
	response.Created(c, sale)
}

// Get godoc
// @Summary Get sale detail
// @Tags Sales
// @Produce json
// @Param id path string true "Sale ID"
// @Success 200 {object} response.Envelope
// @Router /sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	sale, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sale)
}
