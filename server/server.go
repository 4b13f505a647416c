// Package server exposes archived runs over HTTP: run listings, raw table
// rows and computed summaries. JSON in, JSON out.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alun/pai/config"
	"github.com/alun/pai/internal/logging"
	"github.com/alun/pai/store"
)

type Server struct {
	cfg    *config.Config
	st     *store.Store
	log    logging.Logger
	engine *gin.Engine
}

// New wires the routes. The store stays owned by the caller.
func New(cfg *config.Config, st *store.Store, l logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{cfg: cfg, st: st, log: l}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(l))

	r.GET("/healthz", s.healthz)

	api := r.Group("/api")
	{
		api.GET("/runs", s.listRuns)
		api.GET("/runs/:id", s.getRun)
		api.GET("/runs/:id/rows", s.getRows)
		api.GET("/runs/:id/summary", s.getSummary)
	}

	s.engine = r
	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until the listener fails.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout(),
		WriteTimeout: s.cfg.Server.WriteTimeout(),
	}
	s.log.Info().Str("addr", srv.Addr).Msg("http server listening")
	return srv.ListenAndServe()
}

func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http_request")
	}
}
