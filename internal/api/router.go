package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockpulse/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// requestTimeout bounds each request's context.
const requestTimeout = 15 * time.Second

// NewRouter creates a Gin engine with the global middlewares, swagger docs and
// the JSON API routes.
//
// Note:
//   - Health probes and the HTML pages are registered in app.InitializeApp().
//
// Parameters:
//   - handler (*Handler): The JSON API handler.
//   - ratePerMinute (int): /api/v1 requests allowed per client IP per minute (<= 0 disables).
//     The tracker pages are not limited.
func NewRouter(handler *Handler, ratePerMinute int) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1", middleware.RateLimiter(ratePerMinute))
	{
		v1.GET("/chart/:symbol", handler.GetChart)
	}

	return router
}
