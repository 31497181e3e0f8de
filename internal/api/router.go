// Package api exposes the scoring engines over HTTP.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// NewRouter builds the gin engine with logging, recovery and request IDs.
func NewRouter(logger *zap.Logger, h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/healthz", h.Health)

	v1 := r.Group("/v1")
	v1.GET("/tiers", h.Tiers)
	v1.POST("/trust-score", h.TrustScore)
	v1.GET("/donors/:id/trust-score", h.DonorTrustScore)
	v1.POST("/matching/estimate", h.EstimateMatching)
	v1.POST("/matching/pending", h.PendingMatch)
	v1.GET("/projects/matching", h.ProjectMatching)

	return r
}

// requestIDMiddleware propagates X-Request-ID, generating one when absent.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
