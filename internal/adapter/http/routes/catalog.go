package routes

import (
	"github.com/gin-gonic/gin"

	"evdealer/internal/adapter/http/handlers"
)

const (
	PathUnits    = "/units"
	PathVariants = "/variants"
	PathColors   = "/colors"
	PathModels   = "/models"
	PathBrands   = "/brands"
)

func addCatalogRoutes(rg *gin.RouterGroup, h *handlers.CatalogHandler) {
	units := rg.Group(PathUnits)
	{
		units.GET("", h.ListUnits)
		units.GET("/:id", h.GetUnit)
	}

	variants := rg.Group(PathVariants)
	{
		variants.GET("", h.ListVariants)
		variants.GET("/:id", h.GetVariant)
	}

	rg.GET(PathColors, h.ListColors)
	rg.GET(PathModels+"/:id", h.GetModel)
	rg.GET(PathBrands+"/:id", h.GetBrand)
}
