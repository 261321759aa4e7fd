// Package rest exposes the journal over HTTP using gin.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/echojournal/internal/journal"
	"github.com/dmitrijs2005/echojournal/internal/logging"
	"github.com/dmitrijs2005/echojournal/internal/server/analysis"
	"github.com/dmitrijs2005/echojournal/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// EntryStore is the entry facade plus sentiment write-back.
type EntryStore interface {
	journal.Store
	UpdateSentiment(ctx context.Context, entryID, userID, summary string, score *float64) error
}

// SentimentAnalyzer annotates free text.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (analysis.Sentiment, error)
}

// Reflector builds a reflection over a user's latest entries.
type Reflector interface {
	Reflect(ctx context.Context, userID string) (analysis.Reflection, error)
}

// Exporter uploads a user's journal and returns where to fetch it.
type Exporter interface {
	Export(ctx context.Context, userID string) (services.ExportResult, error)
}

// Options configures the HTTP server.
type Options struct {
	Address        string
	RequestTimeout time.Duration
	AuthSecret     string
}

type Server struct {
	opts     Options
	logger   logging.Logger
	handlers *Handlers
	engine   *gin.Engine
}

func NewServer(opts Options, l logging.Logger, h *Handlers) *Server {
	s := &Server{
		opts:     opts,
		logger:   l.With("module", "http_server"),
		handlers: h,
	}
	s.engine = s.routes()
	return s
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.logger), timeout(s.opts.RequestTimeout))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	if s.opts.AuthSecret != "" {
		api.Use(authenticate([]byte(s.opts.AuthSecret)))
	}

	api.POST("/entries", s.handlers.CreateEntry)
	api.GET("/entries", s.handlers.GetEntries)
	api.DELETE("/entries", s.handlers.DeleteEntry)
	api.PUT("/entries/sentiment", s.handlers.UpdateSentiment)
	api.POST("/entries/export", s.handlers.Export)
	api.POST("/sentiment", s.handlers.Sentiment)
	api.POST("/weekly-reflection", s.handlers.WeeklyReflection)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.opts.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
