package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/storefrontlabs/storefront-api/controllers/order"
	"github.com/storefrontlabs/storefront-api/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	// websocket endpoint for real-time order status updates; registered
	// beside /orders so it does not collide with the :id route
	api.GET("/ws/orders", orderControllers.OrderWebSocketHandler)

	orders := api.Group("/orders", middleware.ValidateToken)
	{
		orders.POST("", orderControllers.PlaceOrderHandler(db))
		orders.GET("", orderControllers.ListOrdersHandler(db))
		orders.GET("/:id", orderControllers.GetOrderHandler(db))
		orders.PUT("/:id/status", orderControllers.UpdateOrderStatusHandler(db))
	}
}
