package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

const maxRequestBody = 1 << 20

// Params lists router dependencies.
type Params struct {
	fx.In

	Facade  handlers.StorefrontFacade
	Metrics *metrics.Metrics `optional:"true"`
	Logger  *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.Metrics(p.Metrics))
	engine.Use(middleware.DecompressRequest(maxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	authHandler := handlers.NewAuthHandler(p.Facade)
	catalogHandler := handlers.NewCatalogHandler(p.Facade)
	orderHandler := handlers.NewOrderHandler(p.Facade)

	api := engine.Group("/api")
	api.Use(middleware.Identify(p.Facade, p.Logger))

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	api.GET("/users", catalogHandler.Users)
	api.GET("/me", catalogHandler.Me)
	api.GET("/occasions", catalogHandler.Occasions)
	api.GET("/occasions/:id/bouquets", catalogHandler.Bouquets)
	api.GET("/bouquets/:id", catalogHandler.Bouquet)
	api.GET("/featured", catalogHandler.Featured)

	api.POST("/checkout", orderHandler.Checkout)
	api.POST("/orders", orderHandler.AddOrder)

	return engine
}
