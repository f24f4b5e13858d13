package roblox

import (
	"github.com/gin-gonic/gin"
	"github.com/perezbrayan/tienda/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup) {
	roblox := router.Group("/roblox")
	{
		roblox.GET("/products", List)
		roblox.GET("/products/type/:type", ListByType)

		roblox.POST("/robux", middleware.AdminAuthMiddleware(), CreateRobux)
		roblox.POST("/products", middleware.AdminAuthMiddleware(), Create)
		roblox.PUT("/products/:id", middleware.AdminAuthMiddleware(), Update)
		roblox.DELETE("/products/:id", middleware.AdminAuthMiddleware(), Delete)
	}
}
