// Package server exposes the HTTP API: stock analysis, recorded history,
// the websocket stream, health and Prometheus metrics.
package server

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"MarketLens/internal/cache"
	"MarketLens/internal/collector"
	"MarketLens/internal/metrics"
	"MarketLens/internal/recorder"
)

// Version reported by the root endpoint.
const Version = "1.0.0"

// Server wires the router, collector, cache, recorder, and stream hub.
type Server struct {
	R         *gin.Engine
	Collector *collector.Collector
	Cache     cache.Cache
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics
	Hub       *Hub
	Logger    *zap.Logger
}

// New builds the router with logging, recovery, and CORS middleware.
func New(col *collector.Collector, reportCache cache.Cache, rec recorder.Recorder, m *metrics.Metrics, hub *Hub, logger *zap.Logger, corsOrigin string) *Server {
	gin.SetMode(gin.ReleaseMode)
	g := gin.New()

	// Request logging
	g.Use(func(cn *gin.Context) {
		start := time.Now()
		cn.Next()
		logger.Info("http_request",
			zap.String("method", cn.Request.Method),
			zap.String("path", cn.Request.URL.Path),
			zap.Int("status", cn.Writer.Status()),
			zap.String("ip", cn.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	})

	g.Use(gin.Recovery())

	// CORS
	g.Use(func(cn *gin.Context) {
		origin := cn.GetHeader("Origin")
		cn.Writer.Header().Set("Vary", "Origin")
		cn.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		cn.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		cn.Writer.Header().Set("Access-Control-Max-Age", "86400")
		if corsOrigin == "*" {
			cn.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin != "" && origin == corsOrigin {
			cn.Writer.Header().Set("Access-Control-Allow-Origin", corsOrigin)
		}
		if cn.Request.Method == http.MethodOptions {
			cn.AbortWithStatus(http.StatusNoContent)
			return
		}
		cn.Next()
	})

	s := &Server{
		R:         g,
		Collector: col,
		Cache:     reportCache,
		Recorder:  rec,
		Metrics:   m,
		Hub:       hub,
		Logger:    logger,
	}

	g.GET("/", s.getRoot)
	g.GET("/healthz", func(cn *gin.Context) { cn.JSON(http.StatusOK, gin.H{"ok": true}) })
	g.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	g.GET("/api/stock/:ticker", s.getStock)
	g.GET("/api/stock/:ticker/snapshots", s.getSnapshots)
	g.GET("/api/debug/:ticker", s.getDebug)
	g.GET("/api/stream", func(cn *gin.Context) { hub.ServeWS(cn.Writer, cn.Request) })

	return s
}

// Handler returns the root http.Handler for the server.
func (s *Server) Handler() http.Handler { return s.R }
