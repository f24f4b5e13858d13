package fortnite

import (
	"github.com/gin-gonic/gin"
	"github.com/perezbrayan/tienda/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup) {
	fortnite := router.Group("/fortnite")
	{
		fortnite.POST("/orders", middleware.OptionalAuthMiddleware(), CreateOrder)
		fortnite.GET("/orders", middleware.AdminAuthMiddleware(), ListOrders)
		fortnite.GET("/orders/user", middleware.AuthMiddleware(), ListMyOrders)
		fortnite.PUT("/orders/:id/status", middleware.AdminAuthMiddleware(), UpdateStatus)
	}
}
