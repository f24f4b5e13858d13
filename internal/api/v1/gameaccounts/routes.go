package gameaccounts

import (
	"github.com/gin-gonic/gin"
	"github.com/perezbrayan/tienda/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup) {
	accounts := router.Group("/game-accounts")
	accounts.Use(middleware.AuthMiddleware())
	{
		accounts.POST("", Create)
		accounts.GET("/:gameType", Get)
		accounts.PUT("/:id", Update)
		accounts.DELETE("/:id", Delete)
	}
}
