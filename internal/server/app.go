// Package server wires storage, analysis and transports into the journal
// service and runs them until shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/echojournal/internal/journal"
	"github.com/dmitrijs2005/echojournal/internal/logging"
	"github.com/dmitrijs2005/echojournal/internal/server/analysis"
	"github.com/dmitrijs2005/echojournal/internal/server/config"
	"github.com/dmitrijs2005/echojournal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/echojournal/internal/server/rest"
	"github.com/dmitrijs2005/echojournal/internal/server/services"

	gs "github.com/dmitrijs2005/echojournal/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	manager  repomanager.RepositoryManager
	enricher *services.Enricher
	http     *rest.Server
	grpc     *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	rm, err := repomanager.New(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	analyzer, err := analysis.New(ctx, c.Analyzer, c.GeminiAPIKey, c.GeminiModel)
	if err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("analyzer init error: %w", err)
	}

	enricher := services.NewEnricher(analyzer, rm.Entries(), logger, c.EnrichWorkers, c.EnrichQueue, c.EnrichTimeout)
	es := services.NewEntryService(rm.Entries(), journal.NewNormalizer(c.Location()), logger).WithEnricher(enricher)

	handlers := rest.NewHandlers(
		es,
		services.NewSentimentService(analyzer, logger),
		services.NewReflectionService(es, analyzer, c.ReflectionWindow, logger),
		services.NewExportService(es, c, logger),
		logger,
	)

	app := &App{
		config:   c,
		logger:   logger,
		manager:  rm,
		enricher: enricher,
		http: rest.NewServer(rest.Options{
			Address:        c.HTTPAddr,
			RequestTimeout: c.RequestTimeout,
			AuthSecret:     c.AuthSecret,
		}, logger, handlers),
	}
	if c.GRPCAddr != "" {
		app.grpc = gs.NewGRPCServer(c.GRPCAddr, logger, es, c.AgentID, c.AgentKeyHash)
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP and, when configured, gRPC and processes enrichment jobs until ctx is
// cancelled, a signal arrives or one of them fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.Store, "analyzer", app.config.Analyzer)

	app.initSignalHandler(cancelFunc)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.http.Run(ctx) })
	if app.grpc != nil {
		g.Go(func() error { return app.grpc.Run(ctx) })
	} else {
		app.logger.Info(ctx, "Agent API disabled")
	}
	g.Go(func() error { return app.enricher.Run(ctx) })

	err := g.Wait()

	if cerr := app.manager.Close(); cerr != nil {
		app.logger.Error(context.Background(), "closing storage failed", "error", cerr)
	}

	app.logger.Info(context.Background(), "App stopped")
	return err
}
