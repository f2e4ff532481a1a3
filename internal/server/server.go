// Package server exposes the tax calculator over HTTP and serves the web front end.
package server

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rgehrsitz/taxview/internal/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:embed web
var webFS embed.FS

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server wires the router, the facts store and the listener together
type Server struct {
	cfg    config.ServerConfig
	store  *FactsStore
	logger *zap.Logger
	router *gin.Engine
	assets fs.FS
}

// New builds a server around store. The gin mode is left to the caller.
func New(cfg config.ServerConfig, store *FactsStore, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	assets, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}

	s := &Server{
		cfg:    cfg,
		store:  store,
		logger: logger,
		router: gin.New(),
		assets: assets,
	}
	s.routes()
	return s
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Use(gin.Recovery())
	s.router.Use(CorrelationIDMiddleware())
	s.router.Use(RequestLoggingMiddleware(s.logger))
	if len(s.cfg.AllowedOrigins) > 0 {
		s.router.Use(configureCORS(s.cfg.AllowedOrigins))
	}

	s.router.GET("/", s.serveAsset("index.html", "text/html; charset=utf-8"))
	s.router.GET("/css/style.css", s.serveAsset("css/style.css", "text/css; charset=utf-8"))
	s.router.GET("/js/main.js", s.serveAsset("js/main.js", "text/javascript; charset=utf-8"))

	s.router.GET("/api", s.handleCalculate)
	s.router.GET("/api/chart", s.handleChart)
	s.router.GET("/healthz", s.handleHealth)

	s.router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "404 Not Found")
	})
}

func configureCORS(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", CorrelationIDHeader}
	corsConfig.ExposeHeaders = []string{CorrelationIDHeader}
	return cors.New(corsConfig)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
// With watching enabled the facts file is reloaded on change.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Server starting", zap.String("addr", srv.Addr), zap.String("env", s.cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "server forced to shutdown")
		}
		return nil
	})
	if s.cfg.Watch && s.cfg.FactsFile != "" {
		g.Go(func() error {
			return s.store.Watch(gctx, s.cfg.FactsFile)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info("Server exited")
	return nil
}
