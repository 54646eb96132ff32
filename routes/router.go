package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gaddisale/gaddisale/config"
	"github.com/gaddisale/gaddisale/controllers"
	"github.com/gaddisale/gaddisale/middleware"
	"github.com/gaddisale/gaddisale/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Route request logging into its own rolling file so access noise stays
	// out of the application log.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// The admin gate runs on every request before any handler.
	adminPolicy := middleware.NewAdminPolicy(cfg.AdminEmails)
	r.Use(middleware.AdminGate(adminPolicy))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	adminController := controllers.NewAdminController()
	carController := controllers.NewCarController(db)
	trackController := controllers.NewTrackController(db)
	analyticsController := controllers.NewAnalyticsController(db)
	statsController := controllers.NewStatsController(db)
	uploadController := controllers.NewUploadController()

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/signup", authController.Signup)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", authController.Logout)
	authGroup.GET("/me", authController.Me)

	// Visit ingestion from the client beacon.
	api.POST("/track", middleware.RateLimitMiddleware(), trackController.Track)

	// Public listing browse/detail plus the seller ad-submission form.
	carsGroup := api.Group("/cars")
	carsGroup.GET("", carController.ListCars)
	carsGroup.GET("/:id", carController.GetCar)
	carsGroup.POST("", middleware.RateLimitMiddleware(), carController.CreateCar)

	api.GET("/stats", statsController.GetStats)

	api.POST("/uploads/sign", middleware.AuthRequired(), uploadController.Sign)

	// Back-office API. The admin gate already guards everything under
	// /api/admin except the login route.
	adminGroup := api.Group("/admin")
	adminGroup.POST("/login", middleware.RateLimitMiddleware(), adminController.Login)
	adminGroup.GET("/dashboard", analyticsController.Dashboard)
	adminGroup.GET("/analytics", analyticsController.Visitors)
	adminGroup.PATCH("/cars/:id", carController.ModerateCar)
	adminGroup.DELETE("/cars/:id", carController.DeleteCar)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.Status(http.StatusNotFound)
	})

	return r
}
