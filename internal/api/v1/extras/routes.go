package extras

import (
	"github.com/gin-gonic/gin"
	"github.com/perezbrayan/tienda/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup) {
	extras := router.Group("/extras")
	{
		extras.GET("/products", List)

		extras.POST("/products", middleware.AdminAuthMiddleware(), Create)
		extras.PUT("/products/:id", middleware.AdminAuthMiddleware(), Update)
		extras.DELETE("/products/:id", middleware.AdminAuthMiddleware(), Delete)
	}
}
