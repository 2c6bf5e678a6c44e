package router

import (
	"net/http"
	"time"

	"github.com/bagoloot/bagoloot/db"
	"github.com/bagoloot/bagoloot/internal/auth"
	"github.com/bagoloot/bagoloot/internal/config"
	"github.com/bagoloot/bagoloot/internal/handlers"
	"github.com/bagoloot/bagoloot/internal/middleware"
	"github.com/bagoloot/bagoloot/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the HTTP pipeline: recovery, logging, metrics, CORS,
// then the API routes. db.DB must be connected before requests arrive.
func NewRouter(cfg *config.Config) *gin.Engine {
	utils.RegisterValidators()

	manager := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.ClockSkew)

	var checker auth.CredentialChecker = auth.StructuralChecker{Role: cfg.Auth.Role}
	if cfg.Auth.VerifyPasswords {
		checker = auth.StoreChecker{DB: db.DB}
	}

	tokens := handlers.NewTokenHandler(manager, checker)
	requireAuth := middleware.AuthMiddleware(manager)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Entity writes are open unless configured otherwise.
	writeGuard := func(ctx *gin.Context) { ctx.Next() }
	if cfg.Auth.RequireAuthForWrites {
		writeGuard = requireAuth
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", handlers.WebSocket(cfg.CORS.AllowedOrigins))

		token := api.Group("/token")
		{
			token.POST("", tokens.CreateToken)
			token.GET("", requireAuth, tokens.GetToken)
			token.PUT("", requireAuth, tokens.RefreshToken)
		}

		child := api.Group("/child")
		{
			child.GET("", handlers.ListChildren)
			child.GET("/:id", handlers.GetChild)
			child.POST("", writeGuard, handlers.CreateChild)
			child.POST("/create", writeGuard, handlers.CreateChildWithToy)
			child.PUT("/:id", writeGuard, handlers.ReplaceChild)
			child.DELETE("/:id", writeGuard, handlers.DeleteChild)
		}

		toy := api.Group("/toy")
		{
			toy.GET("", handlers.ListToys)
			toy.GET("/:id", handlers.GetToy)
			toy.POST("", writeGuard, handlers.CreateToy)
			toy.PUT("/:id", writeGuard, handlers.ReplaceToy)
			toy.DELETE("/:id", writeGuard, handlers.DeleteToy)
		}

		reindeer := api.Group("/reindeer")
		{
			reindeer.GET("", handlers.ListReindeer)
			reindeer.GET("/:id", handlers.GetReindeer)
			reindeer.POST("", writeGuard, handlers.CreateReindeer)
			reindeer.PUT("/:id", writeGuard, handlers.ReplaceReindeer)
			reindeer.DELETE("/:id", writeGuard, handlers.DeleteReindeer)
		}

		favorite := api.Group("/favorite")
		{
			favorite.GET("", handlers.ListFavorites)
			favorite.GET("/:id", handlers.GetFavorite)
			favorite.POST("", writeGuard, handlers.CreateFavorite)
			favorite.PUT("/:id", writeGuard, handlers.ReplaceFavorite)
			favorite.DELETE("/:id", writeGuard, handlers.DeleteFavorite)
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r
}
