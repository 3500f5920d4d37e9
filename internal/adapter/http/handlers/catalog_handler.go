package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	response "evdealer/internal/adapter/http/dto/response"
	"evdealer/internal/domain/entities"
	"evdealer/internal/usecase"
	"evdealer/pkg"
)

// CatalogHandler serves read-only catalog views with resolved media.
type CatalogHandler struct {
	usecase usecase.ICatalogUseCase
}

func NewCatalogHandler(uc usecase.ICatalogUseCase) *CatalogHandler {
	return &CatalogHandler{usecase: uc}
}

// ListUnits godoc
// @Summary  List inventory units
// @Tags     catalog
// @Produce  json
// @Param    status      query     string  false  "Unit status"
// @Param    variant_id  query     string  false  "Variant ID"
// @Success  200         {array}   response.UnitResponse
// @Router   /units [get]
func (h *CatalogHandler) ListUnits(c *gin.Context) {
	filter := entities.InventoryFilter{
		Status:    entities.UnitStatus(strings.ToLower(strings.TrimSpace(c.Query("status")))),
		VariantID: strings.TrimSpace(c.Query("variant_id")),
	}
	views, err := h.usecase.ListInventory(c.Request.Context(), filter)
	if err != nil {
		renderError(c, err)
		return
	}
	out := make([]response.UnitResponse, 0, len(views))
	for _, v := range views {
		out = append(out, response.FromUnitView(v, false))
	}
	c.JSON(http.StatusOK, out)
}

// GetUnit godoc
// @Summary  Get an inventory unit with its gallery
// @Tags     catalog
// @Produce  json
// @Param    id   path      string  true  "Unit ID"
// @Success  200  {object}  response.UnitResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /units/{id} [get]
func (h *CatalogHandler) GetUnit(c *gin.Context) {
	view, err := h.usecase.GetUnit(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromUnitView(view, true))
}

// ListVariants godoc
// @Summary  List variants
// @Tags     catalog
// @Produce  json
// @Param    active  query     bool  false  "Only variants on sale"
// @Success  200     {array}   response.VariantResponse
// @Router   /variants [get]
func (h *CatalogHandler) ListVariants(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active", "false"))
	views, err := h.usecase.ListVariants(c.Request.Context(), activeOnly)
	if err != nil {
		renderError(c, err)
		return
	}
	out := make([]response.VariantResponse, 0, len(views))
	for _, v := range views {
		out = append(out, response.FromVariantView(v))
	}
	c.JSON(http.StatusOK, out)
}

// GetVariant godoc
// @Summary  Get a variant
// @Tags     catalog
// @Produce  json
// @Param    id   path      string  true  "Variant ID"
// @Success  200  {object}  response.VariantResponse
// @Router   /variants/{id} [get]
func (h *CatalogHandler) GetVariant(c *gin.Context) {
	view, err := h.usecase.GetVariant(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromVariantView(view))
}

// ListColors godoc
// @Summary  List colors
// @Tags     catalog
// @Produce  json
// @Success  200  {array}  response.ColorResponse
// @Router   /colors [get]
func (h *CatalogHandler) ListColors(c *gin.Context) {
	views, err := h.usecase.ListColors(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	out := make([]response.ColorResponse, 0, len(views))
	for _, v := range views {
		out = append(out, response.FromColorView(v))
	}
	c.JSON(http.StatusOK, out)
}

// GetModel godoc
// @Summary  Get a model
// @Tags     catalog
// @Produce  json
// @Param    id   path      string  true  "Model ID"
// @Success  200  {object}  response.ModelResponse
// @Router   /models/{id} [get]
func (h *CatalogHandler) GetModel(c *gin.Context) {
	view, err := h.usecase.GetModel(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromModelView(view))
}

// GetBrand godoc
// @Summary  Get a brand
// @Tags     catalog
// @Produce  json
// @Param    id   path      string  true  "Brand ID"
// @Success  200  {object}  response.BrandResponse
// @Router   /brands/{id} [get]
func (h *CatalogHandler) GetBrand(c *gin.Context) {
	view, err := h.usecase.GetBrand(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromBrandView(view))
}

func renderError(c *gin.Context, err error) {
	appErr := pkg.FromError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
