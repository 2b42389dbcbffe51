package server

import (
	"context"
	"time"

	"goshorturl/controllers"
	"goshorturl/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	RedirectOrigin string
	AtomicClicks   bool
	// RequestTimeout bounds the context handed to the store; zero disables it.
	RequestTimeout time.Duration
}

func NewRouter(db repository.Repository, logger *zap.Logger, opts Options) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(requestLogger(logger), gin.Recovery())

	health := new(controllers.HealthController)
	router.GET("/health", health.Status)

	url := controllers.UrlController{
		DB:             db,
		Log:            logger,
		RedirectOrigin: opts.RedirectOrigin,
		AtomicClicks:   opts.AtomicClicks,
	}

	router.POST("/shorten", withTimeout(url.Shorten, opts.RequestTimeout))
	router.GET("/r/:short_code", withTimeout(url.Redirect, opts.RequestTimeout))
	router.GET("/stats/:short_code", withTimeout(url.Stats, opts.RequestTimeout))

	return router
}

// withTimeout puts a deadline on the request context. The handler still runs
// to completion; store calls observe the deadline and fail with a store error.
func withTimeout(handler gin.HandlerFunc, timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		return handler
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		handler(c)
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
