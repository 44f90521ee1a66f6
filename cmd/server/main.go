package main

import (
	"log"
	"os"
	"time"

	"github.com/Ah-ugo/amber-hotels-menu/internal/cart"
	"github.com/Ah-ugo/amber-hotels-menu/internal/config"
	"github.com/Ah-ugo/amber-hotels-menu/internal/database"
	"github.com/Ah-ugo/amber-hotels-menu/internal/handlers"
	"github.com/Ah-ugo/amber-hotels-menu/internal/middleware"
	"github.com/Ah-ugo/amber-hotels-menu/internal/redis"
	"github.com/Ah-ugo/amber-hotels-menu/internal/repository"
	"github.com/Ah-ugo/amber-hotels-menu/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis; carts fall back to in-memory only when unavailable
	var cartArchive cart.Archive
	var deduper services.SubmissionDeduper
	redisClient, err := redis.Initialize(cfg.RedisURL, time.Duration(cfg.CartTTL)*time.Second)
	if err != nil {
		log.Printf("Redis unavailable, carts will not survive restarts: %v", err)
	} else {
		cartArchive = redisClient
		deduper = redisClient
		defer redisClient.Close()
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("Failed to create upload directory:", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("Unknown timezone %q, using local time", cfg.Timezone)
		loc = time.Local
	}

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	tableRepo := repository.NewTableRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Initialize services
	menuService := services.NewMenuService(menuRepo)
	tableService := services.NewTableService(tableRepo, cfg.BaseURL, cfg.UploadDir)
	orderService := services.NewOrderService(orderRepo, menuRepo, tableRepo, deduper, loc, cfg.RequireKnownTable)
	authService := services.NewAuthService(adminRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTL)*time.Hour)

	// The cart store is created here and passed explicitly to its consumers
	cartStore := cart.NewStore(cartArchive)

	// Initialize handlers
	menuHandler := handlers.NewMenuHandler(menuService, cfg.UploadDir)
	tableHandler := handlers.NewTableHandler(tableService)
	orderHandler := handlers.NewOrderHandler(orderService)
	cartHandler := handlers.NewCartHandler(cartStore, menuService, orderService)
	authHandler := handlers.NewAuthHandler(authService)

	// Setup routes
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-ID", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Static("/uploads", cfg.UploadDir)

	// Public customer surface
	router.GET("/menu", menuHandler.GetMenu)
	router.GET("/qr-image/:table_number", tableHandler.GetQRImage)
	router.POST("/order", orderHandler.CreateOrder)

	router.GET("/cart", cartHandler.GetCart)
	router.POST("/cart/items", cartHandler.AddItem)
	router.PATCH("/cart/items/:item_id", cartHandler.UpdateQuantity)
	router.DELETE("/cart", cartHandler.ClearCart)
	router.POST("/cart/submit", cartHandler.Submit)

	// Auth
	router.POST("/register", authHandler.Register)
	router.POST("/token", authHandler.Login)

	// Admin surface
	admin := router.Group("/")
	admin.Use(middleware.Authentication(authService))
	{
		admin.POST("/menu", menuHandler.CreateItem)
		admin.PATCH("/menu/:id", menuHandler.UpdateItem)
		admin.DELETE("/menu/:id", menuHandler.DeleteItem)

		admin.GET("/tables", tableHandler.GetTables)
		admin.POST("/table", tableHandler.CreateTable)
		admin.DELETE("/table/:table_number", tableHandler.DeleteTable)

		admin.GET("/orders", orderHandler.GetOrders)
		admin.GET("/orders/:table_number", orderHandler.GetTableOrders)
		admin.PATCH("/order/:id/status", orderHandler.UpdateStatus)
		admin.GET("/dashboard", orderHandler.Dashboard)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
