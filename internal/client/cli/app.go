package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/dmitrijs2005/echojournal/internal/client/api"
	"github.com/dmitrijs2005/echojournal/internal/client/config"
	"github.com/dmitrijs2005/echojournal/internal/client/session"
	"github.com/dmitrijs2005/echojournal/internal/journal"
	"github.com/dmitrijs2005/echojournal/internal/logging"
	"github.com/dmitrijs2005/echojournal/internal/server/analysis"
	"github.com/dmitrijs2005/echojournal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/echojournal/internal/server/services"
)

var errNoUser = errors.New("no user configured: pass --user or set JOURNAL_USER")

// assistant covers the calls beyond journal.Store.
type assistant interface {
	Analyze(ctx context.Context, text string) (api.Sentiment, error)
	Reflect(ctx context.Context, userID string) (api.Reflection, error)
	Export(ctx context.Context, userID string) (api.ExportResult, error)
}

type App struct {
	in     io.Reader
	out    io.Writer
	fs     afero.Fs
	viper  *viper.Viper
	config *config.Config

	store     journal.Store
	assistant assistant
	http      *http.Client
	closeFn   func() error

	// isTerminal reports whether confirmations can be asked interactively.
	isTerminal func() bool

	// connect opens the backend after the configuration is known.
	connect func(ctx context.Context, a *App) error
}

func NewApp(in io.Reader, out io.Writer) *App {
	return &App{
		in:         in,
		out:        out,
		fs:         afero.NewOsFs(),
		viper:      viper.New(),
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		connect:    connectBackend,
	}
}

func connectBackend(ctx context.Context, a *App) error {
	a.http = &http.Client{Timeout: a.config.Timeout}

	switch a.config.Mode {
	case config.ModeAPI:
		c := api.New(a.config.Server, a.http, a.config.Token)
		a.store = c
		a.assistant = c
		return nil
	case config.ModePostgres:
		rm, err := repomanager.NewPostgresRepositoryManager(ctx, a.config.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		es := services.NewEntryService(rm.Entries(), journal.NewNormalizer(a.config.Location()), logging.Nop())
		a.store = es
		a.assistant = newLocalAssistant(es)
		a.closeFn = rm.Close
		return nil
	default:
		return fmt.Errorf("unknown mode %q", a.config.Mode)
	}
}

func (a *App) session() (*session.Session, error) {
	if a.config.UserID == "" {
		return nil, errNoUser
	}
	return session.New(a.store, a.config.UserID, a.config.Timeout), nil
}

func (a *App) close() error {
	if a.closeFn == nil {
		return nil
	}
	fn := a.closeFn
	a.closeFn = nil
	return fn()
}

// Execute runs cmd and releases the backend connection whether or not the
// command succeeded.
func (a *App) Execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

var errNeedsAPI = errors.New("this command needs --mode api")

// localAssistant serves analysis in postgres mode with the offline heuristic.
type localAssistant struct {
	sentiment  *services.SentimentService
	reflection *services.ReflectionService
}

func newLocalAssistant(store journal.Store) *localAssistant {
	h := analysis.NewHeuristic()
	return &localAssistant{
		sentiment:  services.NewSentimentService(h, logging.Nop()),
		reflection: services.NewReflectionService(store, h, 7, logging.Nop()),
	}
}

func (l *localAssistant) Analyze(ctx context.Context, text string) (api.Sentiment, error) {
	s, err := l.sentiment.Analyze(ctx, text)
	if err != nil {
		return api.Sentiment{}, err
	}
	return api.Sentiment{Sentiment: s.Sentiment, Score: s.Score, Summary: s.Summary}, nil
}

func (l *localAssistant) Reflect(ctx context.Context, userID string) (api.Reflection, error) {
	r, err := l.reflection.Reflect(ctx, userID)
	if err != nil {
		return api.Reflection{}, err
	}
	return api.Reflection{Summary: r.Summary, Prompt: r.Prompt}, nil
}

func (l *localAssistant) Export(ctx context.Context, userID string) (api.ExportResult, error) {
	return api.ExportResult{}, errNeedsAPI
}
