package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	_ "golang.org/x/crypto/x509roots/fallback"

	"github.com/dvcrn/hax-poster/internal/app"
	"github.com/dvcrn/hax-poster/internal/config"
	"github.com/dvcrn/hax-poster/internal/console"
	"github.com/dvcrn/hax-poster/internal/logger"
)

// load builds the application from the global flags.
func load(cmd *cli.Command, opts ...app.Option) (*app.App, *config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	if level := cmd.String("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if token := cmd.String("github-token"); token != "" {
		cfg.Issues.Token = token
	}

	log := logger.New(cfg.LogLevel)
	return app.New(cfg, log, opts...), cfg, log, nil
}

func runPost(ctx context.Context, cmd *cli.Command) error {
	a, _, _, err := load(cmd)
	if err != nil {
		return err
	}
	return a.PostSummary(ctx, cmd.Bool("dry-run"))
}

func runCustom(ctx context.Context, cmd *cli.Command) error {
	content := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(content) == "" {
		return errors.New("custom requires the post text as an argument")
	}

	a, _, _, err := load(cmd)
	if err != nil {
		return err
	}
	return a.PostCustom(ctx, content, cmd.Bool("dry-run"))
}

func runStdin(ctx context.Context, cmd *cli.Command) error {
	dryRun := cmd.Bool("dry-run")

	var opts []app.Option
	if !dryRun {
		// stdin holds the content, so the y/N answer comes from the terminal
		c, closeTerminal, err := console.ForPipedStdin(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		defer closeTerminal()
		opts = append(opts, app.WithConsole(c))
	}

	a, _, _, err := load(cmd, opts...)
	if err != nil {
		return err
	}
	return a.PostStdin(ctx, os.Stdin, dryRun)
}

func runSetup(ctx context.Context, cmd *cli.Command) error {
	a, _, _, err := load(cmd)
	if err != nil {
		return err
	}
	return a.Setup(ctx)
}

func runStatus(ctx context.Context, cmd *cli.Command) error {
	a, _, _, err := load(cmd)
	if err != nil {
		return err
	}
	a.Status()
	return nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	_, cfg, log, err := load(cmd)
	if err != nil {
		return err
	}

	adminKey := cmd.String("admin-key")
	if adminKey == "" {
		log.Warn().Msg("⚠️  ADMIN_API_KEY is not set, admin endpoints will refuse every request")
	}

	srv := app.NewServer(app.NewStore(cfg, log), adminKey, log)
	httpServer := &http.Server{
		Addr:              ":" + cmd.String("port"),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", httpServer.Addr).Msg("Starting server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "hax-poster",
		Usage:  "Turn issue activity into LinkedIn posts",
		Action: runPost,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.DefaultFile,
				Sources: cli.EnvVars("HAX_POSTER_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (trace, debug, info, warn, error)",
				Sources: cli.EnvVars("HAX_POSTER_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "github-token",
				Usage:   "Token for the GitHub issue source",
				Sources: cli.EnvVars("GITHUB_TOKEN"),
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show the generated posts without posting or recording them",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "setup",
				Usage:  "Authorize with LinkedIn and save credentials",
				Action: runSetup,
			},
			{
				Name:   "post",
				Usage:  "Post the weekly issue summary",
				Action: runPost,
			},
			{
				Name:      "custom",
				Usage:     "Post the given text",
				ArgsUsage: "<text>",
				Action:    runCustom,
			},
			{
				Name:   "stdin",
				Usage:  "Post text piped on standard input",
				Action: runStdin,
			},
			{
				Name:   "status",
				Usage:  "Show the stored credential state",
				Action: runStatus,
			},
			{
				Name:   "serve",
				Usage:  "Run the credential admin server",
				Action: runServe,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Value:   "9879",
						Sources: cli.EnvVars("PORT"),
					},
					&cli.StringFlag{
						Name:    "admin-key",
						Usage:   "Key required by the /admin endpoints",
						Sources: cli.EnvVars("ADMIN_API_KEY"),
					},
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log := logger.New("info")
		log.Error().Err(err).Msg("hax-poster failed")
		stop()
		os.Exit(1)
	}
}
