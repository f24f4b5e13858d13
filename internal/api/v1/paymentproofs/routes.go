package paymentproofs

import (
	"github.com/gin-gonic/gin"
	"github.com/perezbrayan/tienda/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup) {
	proofs := router.Group("/payment-proofs")
	{
		proofs.POST("", middleware.OptionalAuthMiddleware(), Create)
		proofs.GET("", middleware.AdminAuthMiddleware(), ListAll)
		proofs.GET("/user", middleware.AuthMiddleware(), ListMine)
		proofs.PUT("/:id/status", middleware.AdminAuthMiddleware(), UpdateStatus)
	}
}
