package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/companieshouse/company-exemptions-api/internal/config"
	"github.com/companieshouse/company-exemptions-api/internal/http/middleware"
	"github.com/companieshouse/company-exemptions-api/internal/logger"
	"github.com/companieshouse/company-exemptions-api/internal/metrics"
	"github.com/companieshouse/company-exemptions-api/internal/notifier"
	"github.com/companieshouse/company-exemptions-api/internal/repository"
	"github.com/companieshouse/company-exemptions-api/internal/service/exemptions"
	echo "github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type Server struct{ e *echo.Echo }

func NewServer(cfg config.Config, mongoDB *mongo.Database, rds *redis.Client) *Server {
	repo := repository.NewExemptionsRepository(mongoDB)

	notifierClient := notifier.NewClient(
		cfg.Notifier.BaseURL,
		cfg.Notifier.APIKey,
		time.Duration(cfg.Notifier.TimeoutMs)*time.Millisecond,
		time.Now,
	)

	svc := exemptions.New(repo, notifierClient, time.Now, logger.Log)

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", healthzHandler(mongoDB))

	// middlewares
	authMW := middleware.IdentityMiddleware()
	privMW := middleware.KeyPrivilegeMiddleware()
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      "rl:ident:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// routes
	e.GET("/company/:company_number/exemptions", getExemptionsHandler(svc), authMW, rlMW)

	internal := e.Group("/company-exemptions", authMW, privMW, rlMW)
	internal.PUT("/:company_number/internal", upsertExemptionsHandler(svc))
	internal.DELETE("/:company_number/internal", deleteExemptionsHandler(svc))

	return &Server{e: e}
}

func healthzHandler(mongoDB *mongo.Database) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := mongoDB.Client().Ping(ctx, nil); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "down"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
