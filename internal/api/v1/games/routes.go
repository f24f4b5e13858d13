package games

import (
	"github.com/gin-gonic/gin"
	"github.com/perezbrayan/tienda/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products/games")
	{
		products.GET("/:gameType", ListByGameType)

		products.POST("", middleware.AdminAuthMiddleware(), Create)
		products.PUT("/:id", middleware.AdminAuthMiddleware(), Update)
		products.DELETE("/:id", middleware.AdminAuthMiddleware(), Delete)
	}
}
