// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/virajyadav4141/fake-product-detection-backend/internal/config"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/events"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/handlers"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/middleware"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/models"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/services"
	"github.com/virajyadav4141/fake-product-detection-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Issuance events fan out to the CSV log and, when configured, AMQP.
	sinks := events.MultiSink{events.NewCSVSink(cfg.Events.CSVLogPath)}
	if cfg.Events.AMQPURL != "" {
		sinks = append(sinks, events.NewAMQPSink(cfg.Events.AMQPURL, cfg.Events.AMQPQueue))
	}

	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db)
	codeService := services.NewCodeService(db, sinks)
	verificationService := services.NewVerificationService(db)
	complaintService := services.NewComplaintService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService)
	codeHandler := handlers.NewCodeHandler(codeService, storageService, cfg.Events.CSVLogPath)
	verificationHandler := handlers.NewVerificationHandler(verificationService)
	complaintHandler := handlers.NewComplaintHandler(complaintService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Catalog routes (admin)
		products := v1.Group("/products")
		products.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/archived", productHandler.GetArchivedProducts)
			products.POST("", productHandler.CreateProduct)
			products.POST("/:id/archive", productHandler.ArchiveProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
			products.POST("/:id/codes", codeHandler.IssueCodes)
			products.GET("/:id/codes", codeHandler.GetCodes)
		}

		// Single code removal (admin)
		codes := v1.Group("/codes")
		codes.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
		{
			codes.DELETE("/:id", codeHandler.DeleteCode)
		}

		// Export routes (admin)
		exports := v1.Group("/exports")
		exports.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
		{
			exports.POST("/codes", codeHandler.ExportCodeLog)
		}

		// Verification routes: the caller role (worker or client) decides the
		// lookup semantics inside the service.
		verify := v1.Group("/verify")
		verify.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleWorker, models.RoleClient), middleware.VerifyRateLimit())
		{
			verify.GET("/:code", verificationHandler.VerifyCode)
		}

		// Complaint routes
		complaints := v1.Group("/complaints")
		complaints.Use(middleware.AuthRequired())
		{
			complaints.POST("", middleware.RoleRequired(models.RoleClient), complaintHandler.RaiseComplaint)
			complaints.GET("", middleware.RoleRequired(models.RoleAdmin), complaintHandler.GetComplaints)
		}
	}

	return r
}
