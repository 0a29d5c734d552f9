package api

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/fxpulse/internal/middleware"
)

// RequestTimeout bounds every API request, including the live feed call it may make.
const RequestTimeout = 10 * time.Second

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Bounds each request context by RequestTimeout.
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
		middleware.Timeout(RequestTimeout),
	)

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/years", handler.GetYears)
		v1.GET("/currencies", handler.GetCurrencies)
		v1.GET("/trend", handler.GetTrend)

		v1.GET("/basket/currencies", handler.GetBasketCurrencies)
		v1.POST("/basket", handler.PostBasket)

		v1.GET("/rates/current", handler.GetCurrentRates)
	}

	return router
}
