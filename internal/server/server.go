// Package server exposes the regime comparison over HTTP
package server

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/itrgo/internal/advisor"
	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/extract"
)

// maxUploadSize bounds multipart uploads (32 MB)
const maxUploadSize = 32 << 20

// Options configures a Server. Nil fields get defaults; a nil Advisor
// disables the advice endpoint.
type Options struct {
	Engine    *calculation.CalculationEngine
	Advisor   *advisor.Advisor
	Extractor *extract.Extractor
	CacheSize int
}

// Server holds the handlers' dependencies
type Server struct {
	engine    *calculation.CalculationEngine
	solver    *breakeven.Solver
	extractor *extract.Extractor
	advisor   *advisor.Advisor
	cache     *ResultCache
	router    *gin.Engine
}

// New builds a server and its routes
func New(opts Options) (*Server, error) {
	if opts.Engine == nil {
		opts.Engine = calculation.NewCalculationEngine()
	}
	if opts.Extractor == nil {
		opts.Extractor = extract.NewExtractor()
	}
	cache, err := NewResultCache(opts.CacheSize)
	if err != nil {
		return nil, err
	}

	s := &Server{
		engine:    opts.Engine,
		solver:    breakeven.NewDefaultSolver(opts.Engine),
		extractor: opts.Extractor,
		advisor:   opts.Advisor,
		cache:     cache,
	}
	s.router = s.routes()
	return s, nil
}

// Router returns the HTTP handler
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run listens on addr until the server fails
func (s *Server) Run(addr string) error {
	log.Printf("Starting tax regime service on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), recovery())
	router.MaxMultipartMemory = maxUploadSize

	router.GET("/health", s.health)

	api := router.Group("/api/v1")
	{
		api.POST("/compare", s.compare)
		api.POST("/breakeven", s.breakEven)
		api.POST("/deductions/extract", s.extractDeductions)
		api.POST("/report", s.report)
		api.POST("/advice", s.advice)
	}

	return router
}
