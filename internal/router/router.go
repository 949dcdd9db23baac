// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexcrm/crm-backend/internal/config"
	"github.com/nexcrm/crm-backend/internal/handlers"
	"github.com/nexcrm/crm-backend/internal/middleware"
	"github.com/nexcrm/crm-backend/internal/services"
	"github.com/nexcrm/crm-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	reportingLoc, _ := cfg.Reporting.Location()

	// Initialize services
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	leadService := services.NewLeadService(db)
	clientService := services.NewClientService(db, storageService)
	productService := services.NewProductService(db)
	purchaseService := services.NewPurchaseService(db)
	teamService := services.NewTeamService(db)
	projectService := services.NewProjectService(db)
	dashboardService := services.NewDashboardService(db, reportingLoc)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	leadHandler := handlers.NewLeadHandler(leadService)
	clientHandler := handlers.NewClientHandler(clientService, purchaseService)
	productHandler := handlers.NewProductHandler(productService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	teamHandler := handlers.NewTeamHandler(teamService)
	projectHandler := handlers.NewProjectHandler(projectService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/change-password", middleware.AuthRequired(), authHandler.ChangePassword)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Dashboard routes
		dashboard := v1.Group("/dashboard")
		dashboard.Use(middleware.AuthRequired())
		{
			dashboard.GET("", dashboardHandler.GetDashboard)
		}

		// Lead routes
		leads := v1.Group("/leads")
		leads.Use(middleware.AuthRequired())
		{
			leads.POST("", leadHandler.CreateLead)
			leads.GET("", leadHandler.ListLeads)
			leads.GET("/:id", leadHandler.GetLead)
			leads.PUT("/:id", leadHandler.UpdateLead)
			leads.PATCH("/:id/status", leadHandler.UpdateLeadStatus)
			leads.POST("/:id/convert", leadHandler.ConvertLead)
			leads.DELETE("/:id", leadHandler.DeleteLead)
		}

		// Client routes
		clients := v1.Group("/clients")
		clients.Use(middleware.AuthRequired())
		{
			clients.POST("", clientHandler.CreateClient)
			clients.GET("", clientHandler.ListClients)
			clients.GET("/:id", clientHandler.GetClient)
			clients.PUT("/:id", clientHandler.UpdateClient)
			clients.DELETE("/:id", clientHandler.DeleteClient)
			clients.POST("/:id/comments", clientHandler.AddComment)
			clients.DELETE("/:id/comments/:commentId", clientHandler.DeleteComment)
			clients.POST("/:id/files", middleware.UploadRateLimit(), clientHandler.UploadFile)
			clients.DELETE("/:id/files/:fileId", clientHandler.DeleteFile)
			clients.GET("/:id/purchases", clientHandler.ListClientPurchases)
		}

		// Product catalog routes
		products := v1.Group("/products")
		products.Use(middleware.AuthRequired())
		{
			products.GET("", productHandler.ListProducts)
			products.GET("/:id", productHandler.GetProduct)

			// Catalog changes are admin-only
			admin := products.Group("")
			admin.Use(middleware.AdminRequired())
			{
				admin.POST("", productHandler.CreateProduct)
				admin.PUT("/:id", productHandler.UpdateProduct)
				admin.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		// Purchase routes
		purchases := v1.Group("/purchases")
		purchases.Use(middleware.AuthRequired())
		{
			purchases.POST("", purchaseHandler.CreatePurchase)
			purchases.GET("", purchaseHandler.ListPurchases)
			purchases.GET("/:id", purchaseHandler.GetPurchase)
			purchases.DELETE("/:id", purchaseHandler.DeletePurchase)
		}

		// Team routes
		teams := v1.Group("/teams")
		teams.Use(middleware.AuthRequired())
		{
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("", teamHandler.ListTeams)
			teams.GET("/:id", teamHandler.GetTeam)
			teams.PUT("/:id", teamHandler.UpdateTeam)
			teams.DELETE("/:id", teamHandler.DeleteTeam)
			teams.POST("/:id/members", teamHandler.AddMember)
			teams.PATCH("/:id/members/:userId", teamHandler.UpdateMember)
			teams.DELETE("/:id/members/:userId", teamHandler.RemoveMember)
		}

		// Project routes
		projects := v1.Group("/projects")
		projects.Use(middleware.AuthRequired())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.POST("/:id/teams", projectHandler.AssignTeam)
			projects.DELETE("/:id/teams/:teamId", projectHandler.UnassignTeam)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
