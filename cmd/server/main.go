package main

import (
	"context"
	"log"
	"strings"
	"time"

	"ai-book/backend/internal/app"
	"ai-book/backend/internal/config"
	"ai-book/backend/internal/handler"
	"ai-book/backend/internal/metrics"
	"ai-book/backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[FATAL] Invalid configuration: %v", err)
	}
	log.Printf("[INFO] Starting AI Book Search env=%s storage=%s llm=%s", cfg.Env, cfg.StorageDriver, cfg.LLMProvider)

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize: %v", err)
	}
	defer a.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// Security headers (before CORS)
	r.Use(middleware.SecurityHeaders())
	r.Use(metrics.Middleware())

	allowedOrigins := []string{}
	if gin.Mode() != gin.ReleaseMode {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173", "http://localhost:3000")
	}
	allowedOrigins = append(allowedOrigins, cfg.AllowedOrigins...)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept-Language"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	h := handler.New(a.Search, a.Books, cfg.SearchTimeout)

	// Health and metrics endpoints (outside /api group, no rate limiting)
	r.GET("/health", h.HandleHealth)
	r.GET("/ready", h.HandleReadiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	if cfg.RateLimitRPS > 0 {
		ipLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
		api.Use(middleware.RateLimitMiddleware(ipLimiter))
		log.Printf("[INFO] Rate limiting enabled rps=%v burst=%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	{
		api.POST("/search", h.HandleSearch)
		api.GET("/books", h.HandleGetBooks)
		api.GET("/books/:id", h.HandleGetBook)
		api.POST("/books", h.HandleCreateBook)
	}

	if cfg.IsProduction() {
		r.Static("/assets", "/app/static/assets")

		r.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(404, gin.H{"error": "Not found"})
				return
			}
			c.File("/app/static/index.html")
		})
	}

	log.Printf("[INFO] Server ready port=%s allowed_origins=%v", cfg.Port, allowedOrigins)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
