package routes

import (
	"net/http"

	"casillero-backend/internal/config"
	"casillero-backend/internal/delivery/http/handler"
	"casillero-backend/internal/infrastructure/database/postgres"
	"casillero-backend/internal/logger"
	"casillero-backend/internal/middleware"
	"casillero-backend/internal/notification"
	"casillero-backend/internal/usecase/address"
	"casillero-backend/internal/usecase/parcel"
	"casillero-backend/internal/usecase/product"
	"casillero-backend/internal/usecase/user"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: request ID, logging, security headers, CORS, request size limit, rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	// Product images are served straight from disk
	router.Static("/img_productos", cfg.Server.UploadDir)

	dispatcher := notification.NewBrevoDispatcher(&cfg.Brevo)

	userRepository := postgres.NewUserRepository(db)
	userService := user.NewService(userRepository, dispatcher, cfg)
	userHandler := handler.NewUserHandler(userService)

	parcelRepository := postgres.NewParcelRepository(db)
	parcelService := parcel.NewService(parcelRepository, userRepository, dispatcher, cfg.Brevo.OpsMailbox, cfg.Status.EnforceOrder)
	parcelHandler := handler.NewParcelHandler(parcelService)

	addressRepository := postgres.NewAddressRepository(db)
	addressService := address.NewService(addressRepository)
	addressHandler := handler.NewAddressHandler(addressService)

	productRepository := postgres.NewProductRepository(db)
	productService := product.NewService(productRepository)
	productHandler := handler.NewProductHandler(productService, cfg.Server.UploadDir)

	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterRoutes(v1)
		parcelHandler.RegisterRoutes(v1)
		productHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			userHandler.RegisterProfileRoutes(protected)
			parcelHandler.RegisterCustomerRoutes(protected)
			addressHandler.RegisterCustomerRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterAdminRoutes(admin)
				parcelHandler.RegisterAdminRoutes(admin)
				addressHandler.RegisterAdminRoutes(admin)
				productHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
