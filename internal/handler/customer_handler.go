package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studiohq/studio-api/internal/service"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
	"github.com/studiohq/studio-api/pkg/response"
)

// CustomerHandler exposes customer endpoints.
type CustomerHandler struct {
	service *service.CustomerService
}

// NewCustomerHandler constructs a customer handler.
func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: svc}
}

// NextID godoc
// @Summary Next customer identifier
// @Tags Customers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /customers/next-id [get]
func (h *CustomerHandler) NextID(c *gin.Context) {
	id, err := h.service.NextID(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": id})
}

// Create godoc
// @Summary Create customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param force query bool false "Bypass the duplicate-name check"
// @Param payload body service.CreateCustomerRequest true "Customer payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	customer, err := h.service.Create(c.Request.Context(), req, forceFlag(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, customer)
}

// List godoc
// @Summary List customers
// @Tags Customers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	refs, err := h.service.ListRefs(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, refs)
}

// Get godoc
// @Summary Get customer detail
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.Envelope
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, customer)
}

// Delete godoc
// @Summary Delete customer
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 204
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
