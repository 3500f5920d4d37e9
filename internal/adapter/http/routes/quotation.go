package routes

import (
	"github.com/gin-gonic/gin"

	"evdealer/internal/adapter/http/handlers"
)

const PathQuotations = "/quotations"

func addQuotationRoutes(rg *gin.RouterGroup, h *handlers.QuotationHandler) {
	quotations := rg.Group(PathQuotations)
	{
		quotations.GET("/:id", h.GetQuotation)
		quotations.POST("/:id/accept", h.AcceptQuotation)
		quotations.POST("/:id/reject", h.RejectQuotation)
	}
}
