package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/dbarrios89/storeapi/internal/cache"
	"github.com/dbarrios89/storeapi/internal/config"
	"github.com/dbarrios89/storeapi/internal/http/handlers"
	"github.com/dbarrios89/storeapi/internal/http/middlewares"
	"github.com/dbarrios89/storeapi/internal/observability"
	"github.com/dbarrios89/storeapi/internal/repo/postgres"
	"github.com/dbarrios89/storeapi/internal/security"
	"github.com/dbarrios89/storeapi/internal/token"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "storeapi"

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, rdb *redis.Client, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	}

	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(otelgin.Middleware(serviceName))

	// metrics

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	r.Use(prom.GinHandleMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// health

	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// wire up the auth stack: one codec and one hasher for the process,
	// secret fixed at startup

	usersRepo := postgres.NewUsersRepo(pool, prom)
	productsRepo := postgres.NewProductsRepo(pool, prom)

	hasher := security.NewHasher(cfg.BcryptCost, cfg.HashWorkers)
	codec := token.NewCodec(cfg.TokenSecret, cfg.TokenTTL)

	gate := middlewares.NewAuthMiddleware(codec)

	limiter := middlewares.NewRateLimiter(rdb, cfg.AuthRateLimit, cfg.AuthRateWindow)
	authLimit := limiter.Middleware(middlewares.ByClientIP())

	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, hasher, codec)

	r.POST("/signup", authLimit, authHandler.Signup)
	r.POST("/login", authLimit, authHandler.Login)

	// protected profile route

	usersHandler := handlers.NewUsersHandler()
	r.GET("/users/profile", gate.RequireAuth(), usersHandler.Profile)

	// catalog: reads are public, writes need a token

	listCache := cache.New[gin.H](30 * time.Second)
	productsHandler := handlers.NewProductsHandler(productsRepo, listCache)

	r.GET("/products", productsHandler.ListProducts)
	r.GET("/products/:id", productsHandler.GetProductById)

	protected := r.Group("/products", gate.RequireAuth())
	protected.POST("", productsHandler.CreateProduct)
	protected.PUT("/:id", productsHandler.UpdateProduct)
	protected.DELETE("/:id", productsHandler.DeleteProduct)

	return r
}
