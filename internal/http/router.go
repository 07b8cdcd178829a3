package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Konaisya/build-service/internal/http/middleware"
)

// NewRouter mounts all routes. Reads on the catalog are public; writes
// require a token, and lookup/user administration requires the ADMIN role.
func NewRouter(handler *Handler, verifier middleware.TokenVerifier, allowedOrigins []string, environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/auth/register", handler.register)
	router.POST("/auth/login", handler.login)
	router.POST("/auth/refresh", handler.refresh)
	router.GET("/users/me", handler.currentUser)

	router.GET("/houses", handler.listHouses)
	router.GET("/houses/:id", handler.getHouse)
	router.GET("/attributes", handler.listAttributes)
	router.GET("/attributes/:id", handler.getAttribute)

	router.GET("/apartments", handler.listApartments)
	router.GET("/apartments/:id", handler.getApartment)
	router.GET("/categories", handler.listCategories)
	router.GET("/categories/:id", handler.getCategory)
	router.GET("/parameters", handler.listParameters)
	router.GET("/parameters/:id", handler.getParameter)

	protected := router.Group("/")
	protected.Use(middleware.Auth(verifier))

	protected.POST("/orders", handler.createOrder)
	protected.GET("/orders/me", handler.listMyOrders)
	protected.GET("/orders/:id", handler.getOrder)
	protected.GET("/orders/:id/contract", handler.orderContract)
	protected.PATCH("/users/:id", handler.updateUser)

	admin := protected.Group("/")
	admin.Use(middleware.AdminOnly())

	admin.POST("/houses", handler.createHouse)
	admin.PATCH("/houses/:id", handler.updateHouse)
	admin.DELETE("/houses/:id", handler.deleteHouse)
	admin.POST("/houses/:id/images", handler.addHouseImages)
	admin.DELETE("/houses/:id/images", handler.deleteHouseImages)
	admin.PUT("/houses/:id/main-image", handler.replaceHouseMainImage)
	admin.POST("/attributes", handler.createAttribute)
	admin.PATCH("/attributes/:id", handler.updateAttribute)
	admin.DELETE("/attributes/:id", handler.deleteAttribute)

	admin.POST("/apartments", handler.createApartment)
	admin.PATCH("/apartments/:id", handler.updateApartment)
	admin.DELETE("/apartments/:id", handler.deleteApartment)
	admin.POST("/apartments/:id/images", handler.addApartmentImages)
	admin.DELETE("/apartments/:id/images", handler.deleteApartmentImages)
	admin.POST("/categories", handler.createCategory)
	admin.PATCH("/categories/:id", handler.updateCategory)
	admin.DELETE("/categories/:id", handler.deleteCategory)
	admin.POST("/parameters", handler.createParameter)
	admin.PATCH("/parameters/:id", handler.updateParameter)
	admin.DELETE("/parameters/:id", handler.deleteParameter)

	admin.GET("/orders", handler.listOrders)
	admin.GET("/orders/export", handler.exportOrders)
	admin.PATCH("/orders/:id", handler.updateOrder)
	admin.DELETE("/orders/:id", handler.deleteOrder)

	admin.GET("/users", handler.listUsers)
	admin.GET("/users/:id", handler.getUser)
	admin.DELETE("/users/:id", handler.deleteUser)

	return router
}
