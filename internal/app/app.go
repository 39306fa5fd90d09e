package app

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvcrn/hax-poster/internal/config"
	"github.com/dvcrn/hax-poster/internal/console"
	"github.com/dvcrn/hax-poster/internal/credentials"
	"github.com/dvcrn/hax-poster/internal/desktop"
	"github.com/dvcrn/hax-poster/internal/issues"
	"github.com/dvcrn/hax-poster/internal/pipeline"
	"github.com/dvcrn/hax-poster/internal/server"
)

// App wires configuration to the setup flow and the posting pipeline.
type App struct {
	cfg        *config.Config
	logger     zerolog.Logger
	console    *console.Console
	store      credentials.Store
	source     issues.Source
	clipboard  pipeline.Clipboard
	browser    pipeline.Browser
	httpClient *http.Client
	now        func() time.Time
}

// Option is a functional option for configuring the application.
type Option func(*App)

func WithConsole(c *console.Console) Option {
	return func(a *App) { a.console = c }
}

func WithStore(s credentials.Store) Option {
	return func(a *App) { a.store = s }
}

func WithIssueSource(s issues.Source) Option {
	return func(a *App) { a.source = s }
}

func WithClipboard(c pipeline.Clipboard) Option {
	return func(a *App) { a.clipboard = c }
}

func WithBrowser(b pipeline.Browser) Option {
	return func(a *App) { a.browser = b }
}

// WithHTTPClient sets the client used for LinkedIn requests.
func WithHTTPClient(c *http.Client) Option {
	return func(a *App) { a.httpClient = c }
}

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

func New(cfg *config.Config, logger zerolog.Logger, opts ...Option) *App {
	a := &App{
		cfg:        cfg,
		logger:     logger,
		clipboard:  desktop.Clipboard{},
		browser:    desktop.Browser{},
		httpClient: &http.Client{Timeout: 60 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.console == nil {
		a.console = console.New(os.Stdin, os.Stdout)
	}
	if a.store == nil {
		a.store = NewStore(cfg, logger)
	}
	if a.source == nil {
		a.source = NewIssueSource(cfg, logger)
	}
	return a
}

// NewStore selects the configured credential backend.
func NewStore(cfg *config.Config, logger zerolog.Logger) credentials.Store {
	if cfg.Credentials.Backend == config.BackendKeychain {
		logger.Debug().Str("service", cfg.Credentials.KeychainService).Msg("🔑 Using keychain credential store")
		return credentials.NewKeychainStore(cfg.Credentials.KeychainService, logger)
	}
	path := credentials.ExpandHome(cfg.Credentials.Path)
	logger.Debug().Str("path", path).Msg("📄 Using filesystem credential store")
	return credentials.NewFSStore(path)
}

// NewIssueSource selects the configured issue source.
func NewIssueSource(cfg *config.Config, logger zerolog.Logger) issues.Source {
	if cfg.Issues.Source == config.SourceGitHub {
		return issues.NewGitHubSource(cfg.Issues.Repo, cfg.Issues.Token, logger)
	}
	return issues.NewFileSource(cfg.Issues.File)
}

// NewServer creates the credential admin server over the given store
func NewServer(store credentials.Store, adminKey string, logger zerolog.Logger) *server.Server {
	return server.New(logger, store, adminKey)
}
