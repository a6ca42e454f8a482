package cmd

import (
	"log"

	"tastebook-backend/config"
	"tastebook-backend/handlers"
	"tastebook-backend/middleware"
	"tastebook-backend/models"
	"tastebook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the TasteBook API server",
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	utils.SetJWTSecret(cfg.JWTSecret)

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto migrate tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Rating{},
		&models.Comment{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	router := newRouter(db, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}

func newRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	authHandler := handlers.NewAuthHandler(db)
	recipeHandler := handlers.NewRecipeHandler(db)
	adminHandler := handlers.NewAdminHandler(db)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir)

	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Serve uploaded files
	router.Static("/uploads", cfg.UploadDir)

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/auth/signup", authHandler.Signup)
		public.POST("/auth/login", authHandler.Login)
		public.GET("/recipes", recipeHandler.GetRecipes)
		public.GET("/recipes/search", recipeHandler.SearchRecipes)
		public.GET("/recipes/:id", middleware.OptionalAuthMiddleware(), recipeHandler.GetRecipe)
		public.GET("/recipes/:id/comments", middleware.OptionalAuthMiddleware(), recipeHandler.GetComments)
	}

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		// User routes
		protected.GET("/auth/profile", authHandler.GetProfile)
		protected.PUT("/auth/profile", authHandler.UpdateProfile)

		// Recipe routes
		protected.POST("/recipes", recipeHandler.CreateRecipe)
		protected.PUT("/recipes/:id", recipeHandler.UpdateRecipe)
		protected.DELETE("/recipes/:id", recipeHandler.DeleteRecipe)
		protected.GET("/my/recipes", recipeHandler.MyRecipes)
		protected.POST("/recipes/:id/rating", recipeHandler.AddRating)
		protected.POST("/recipes/:id/comment", recipeHandler.AddComment)
		protected.POST("/upload", uploadHandler.UploadImage)

		// Moderation routes
		protected.GET("/admin/pending", adminHandler.PendingRecipes)
		protected.GET("/admin/comments", adminHandler.RecentComments)
		protected.POST("/recipes/:id/approve", adminHandler.ApproveRecipe)
		protected.POST("/recipes/:id/reject", adminHandler.RejectRecipe)
		protected.POST("/comments/:id/remove", adminHandler.RemoveComment)
		protected.POST("/comments/:id/restore", adminHandler.RestoreComment)
	}

	return router
}
