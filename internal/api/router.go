package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/perezbrayan/tienda/config"
	_ "github.com/perezbrayan/tienda/docs"
	"github.com/perezbrayan/tienda/internal/api/v1/auth"
	"github.com/perezbrayan/tienda/internal/api/v1/extras"
	"github.com/perezbrayan/tienda/internal/api/v1/fortnite"
	"github.com/perezbrayan/tienda/internal/api/v1/gameaccounts"
	"github.com/perezbrayan/tienda/internal/api/v1/games"
	"github.com/perezbrayan/tienda/internal/api/v1/paymentproofs"
	"github.com/perezbrayan/tienda/internal/api/v1/roblox"
	"github.com/perezbrayan/tienda/internal/middleware"
	"github.com/perezbrayan/tienda/internal/utils"
)

// NewRouter assembles the gin engine. Database, redis, storage and the
// fulfillment driver are wired by the caller before requests arrive.
func NewRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Uploaded images and static assets (product placeholder lives in public/).
	router.Static("/uploads", cfg.UploadDir)
	router.Static("/public", "./public")

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", Health)

		auth.RegisterRoutes(apiGroup)
		games.RegisterRoutes(apiGroup)
		roblox.RegisterRoutes(apiGroup)
		extras.RegisterRoutes(apiGroup)
		paymentproofs.RegisterRoutes(apiGroup)
		fortnite.RegisterRoutes(apiGroup)
		gameaccounts.RegisterRoutes(apiGroup)
	}

	return router
}

// Health godoc
// @Summary Liveness check
// @Description The checkout flow pings this before submitting an order
// @Tags health
// @Produce json
// @Success 200 {object} utils.Response
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, utils.NewSuccessResponse("ok", nil))
}
