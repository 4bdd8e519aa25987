// Package api serves the read-only catalog aggregates over HTTP for the
// design console front end: status-bar counts, per-domain table listings,
// relation queries, the topology diagram, and an explicit reload endpoint.
package api

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// Server holds the published snapshot and the domain directory reloads
// read from.
type Server struct {
	dir     string
	logger  *zap.Logger
	current atomic.Pointer[Snapshot]
}

// NewServer builds the initial snapshot from dir and returns a configured
// HTTP server. Construction fails if the initial catalog has fatal findings;
// a server never starts without a valid catalog to publish.
func NewServer(dir string, logger *zap.Logger) (*http.Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{dir: dir, logger: logger}
	snap, err := buildSnapshot(dir)
	if err != nil {
		return nil, fmt.Errorf("api: initial catalog build: %w", err)
	}
	s.current.Store(snap)
	logger.Info("catalog built",
		zap.Int("tables", snap.Console.TotalTableCount()),
		zap.Int("relations", snap.Console.RelationCount()),
		zap.Int("findings", len(snap.Console.Issues())))

	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.router(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}, nil
}

func (s *Server) router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	router.Use(cors.New(corsConfig()))
	s.registerRoutes(router)
	return router
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if origins := os.Getenv("SCHEMADESK_CORS_ORIGINS"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	return cfg
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

// snapshot returns the currently published catalog build.
func (s *Server) snapshot() *Snapshot {
	return s.current.Load()
}
