package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tooltrack/internal/database"
	"tooltrack/internal/middleware"
	"tooltrack/internal/modules/auth"
	"tooltrack/internal/modules/booking"
	"tooltrack/internal/modules/dashboard"
	"tooltrack/internal/modules/tools"
	jwtsvc "tooltrack/internal/pkg/jwt"
	"tooltrack/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "tooltrack.db"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	toolRepo := repository.NewToolRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	toolService := tools.NewService(toolRepo)
	toolHandler := tools.NewHandler(toolService)

	// Approval policy: flipping the tool to in-use on approval can be
	// disabled when tools should only leave the pool at pickup time.
	var onApprove repository.ApprovalSideEffect
	if envBool("APPROVE_MARKS_IN_USE", true) {
		onApprove = repository.MarkToolInUse
	}
	bookingService := booking.NewService(bookingRepo, onApprove)
	bookingHandler := booking.NewHandler(bookingService)

	dashboardService := dashboard.NewService(toolRepo, bookingRepo, envInt("SHIFT_HOURS", dashboard.DefaultShiftHours))
	dashboardHandler := dashboard.NewHandler(dashboardService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	api := r.Group("/api")
	{
		// public
		authHandler.RegisterPublicRoutes(api)
		toolHandler.RegisterRoutes(api)
		dashboardHandler.RegisterRoutes(api)

		// authenticated
		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)

			// admin-only
			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				toolHandler.RegisterAdminRoutes(admin)
				bookingHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
