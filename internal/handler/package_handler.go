package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studiohq/studio-api/internal/models"
	"github.com/studiohq/studio-api/internal/service"
	appErrors "github.com/studiohq/studio-api/pkg/errors"
	"github.com/studiohq/studio-api/pkg/response"
)

// PackageHandler exposes package catalog endpoints.
type PackageHandler struct {
	service *service.PackageService
}

// NewPackageHandler constructs a package handler.
func NewPackageHandler(svc *service.PackageService) *PackageHandler {
	return &PackageHandler{service: svc}
}

// NextID godoc
// @Summary Next package identifier for a category
// @Tags Packages
// @Produce json
// @Param category query string true "General or Senior"
// @Success 200 {object} response.Envelope
// @Router /packages/next-id [get]
func (h *PackageHandler) NextID(c *gin.Context) {
	category := c.DefaultQuery("category", models.PackageGeneral)
	if category != models.PackageGeneral && category != models.PackageSenior {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "category must be General or Senior"))
		return
	}
	id, err := h.service.NextID(c.Request.Context(), category)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": id})
}

// Create godoc
// @Summary Create package
// @Tags Packages
// @Accept json
// @Produce json
// @Param force query bool false "Bypass the duplicate check"
// @Param payload body service.CreatePackageRequest true "Package payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /packages [post]
func (h *PackageHandler) Create(c *gin.Context) {
	var req service.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	pkg, err := h.service.Create(c.Request.Context(), req, forceFlag(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pkg)
}

// List godoc
// @Summary List packages
// @Tags Packages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /packages [get]
func (h *PackageHandler) List(c *gin.Context) {
	refs, err := h.service.ListRefs(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, refs)
}

// Get godoc
// @Summary Get package detail
// @Tags Packages
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Envelope
// @Router /packages/{id} [get]
func (h *PackageHandler) Get(c *gin.Context) {
	pkg, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pkg)
}

// Delete godoc
// @Summary Delete package
// @Tags Packages
// @Produce json
// @Param id path string true "Package ID"
// @Success 204
// @Router /packages/{id} [delete]
func (h *PackageHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
