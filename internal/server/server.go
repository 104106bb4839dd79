package server

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/bore/internal/core"
	"github.com/agenthands/bore/internal/core/model"
	"github.com/agenthands/bore/internal/core/resolve"
	"github.com/agenthands/bore/internal/logger"
)

type Server struct {
	Bore   *core.Bore
	Logger *zap.Logger

	// Metrics is served on /metrics when set.
	Metrics http.Handler
}

func NewServer(b *core.Bore, log *zap.Logger, metrics http.Handler) *Server {
	return &Server{
		Bore:    b,
		Logger:  logger.OrNop(log),
		Metrics: metrics,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.Health)
	r.GET("/facts", s.Facts)
	r.POST("/triples", s.LoadTriples)
	if s.Metrics != nil {
		r.GET("/metrics", gin.WrapH(s.Metrics))
	}

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type FactsResponse struct {
	*core.Report
	Sentences []string `json:"sentences"`
}

// Facts answers GET /facts?uri=... or GET /facts?same_as=...
func (s *Server) Facts(c *gin.Context) {
	ctx := c.Request.Context()
	uri := c.Query("uri")

	if uri == "" {
		sameAs := c.Query("same_as")
		if sameAs == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "uri or same_as is required"})
			return
		}

		found, ok, err := s.Bore.ArtistURIForSameAs(ctx, sameAs)
		if err != nil {
			s.fail(c, err)
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no artist for " + sameAs})
			return
		}
		uri = found
	}

	report, err := s.Bore.Statements(ctx, uri)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, FactsResponse{Report: report, Sentences: report.Sentences()})
}

type LoadTriplesRequest struct {
	Triples []model.Triple `json:"triples"`
}

func (s *Server) LoadTriples(c *gin.Context) {
	var req LoadTriplesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	n, err := s.Bore.LoadTriples(c.Request.Context(), req.Triples)
	if err != nil {
		if errors.Is(err, resolve.ErrResolution) {
			s.Logger.Error("triple load failed", zap.Int("loaded", n), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "graph store unavailable", "loaded": n})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"loaded": n})
}

func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, resolve.ErrResolution) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "graph store unavailable"})
		return
	}
	s.Logger.Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
