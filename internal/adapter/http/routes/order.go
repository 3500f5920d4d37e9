package routes

import (
	"github.com/gin-gonic/gin"

	"evdealer/internal/adapter/http/handlers"
)

const PathOrders = "/orders"

func addOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.GET("/number/:order_number", h.GetOrderByNumber)
		orders.GET("/:id", h.GetOrder)
		orders.GET("/:id/timeline", h.GetOrderTimeline)
		orders.POST("/:id/payments", h.CreatePayment)
	}
}
