package handler

import (
	"webstore/internal/adapter/http/middleware"
	redisStore "webstore/internal/adapter/storage/redis"
	"webstore/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	WalletSvc      ports.WalletService
	CatalogSvc     ports.CatalogService
	StorefrontSvc  ports.StorefrontService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	storefrontHandler := NewStorefrontHandler(deps.StorefrontSvc)
	storefront := v1.Group("/storefront")
	{
		storefront.GET("", rl("catalog"), storefrontHandler.Current)
		storefront.POST("/refresh", rl("catalog"), storefrontHandler.Refresh)
	}

	catalogHandler := NewCatalogHandler(deps.CatalogSvc)
	catalog := v1.Group("/catalog")
	{
		catalog.GET("/home", rl("catalog"), catalogHandler.Home)
		catalog.GET("/items/:id", rl("catalog"), catalogHandler.ItemDetail)
		catalog.GET("/search", rl("catalog"), catalogHandler.Search)
		catalog.GET("/currencies", rl("catalog"), catalogHandler.Currencies)
		catalog.GET("/categories", rl("catalog"), catalogHandler.Categories)
	}

	// --- JWT-authenticated routes (account) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	userHandler := NewUserHandler(deps.AuthSvc)
	users := v1.Group("/users/me", jwtAuth)
	{
		users.GET("", rl("wallet"), userHandler.GetProfile)
		users.PUT("", rl("wallet"), userHandler.UpdateProfile)
	}

	walletHandler := NewWalletHandler(deps.WalletSvc)
	wallet := v1.Group("/wallet", jwtAuth)
	{
		wallet.GET("/balances", rl("wallet"), walletHandler.Balances)
		wallet.POST("/bonus", rl("wallet"), walletHandler.ClaimBonus)
		wallet.GET("/cart", rl("wallet"), walletHandler.Cart)
		wallet.POST("/cart", rl("wallet"), walletHandler.AddToCart)
		wallet.DELETE("/cart/:item_id", rl("wallet"), walletHandler.RemoveFromCart)
		wallet.GET("/exchange", rl("wallet"), walletHandler.ExchangeBoard)
		wallet.POST("/exchange", rl("wallet"), walletHandler.Exchange)
	}

	orderHandler := NewOrderHandler(deps.WalletSvc)
	orders := v1.Group("/orders", jwtAuth)
	{
		orders.POST("", rl("orders"), orderHandler.Place)
		orders.GET("", rl("orders"), orderHandler.List)
		orders.GET("/:id", rl("orders"), orderHandler.Get)
		orders.DELETE("/:id", rl("orders"), orderHandler.Delete)
		orders.POST("/:id/refund", rl("orders"), orderHandler.Refund)
	}

	return r
}
