package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dvcrn/hax-poster/internal/compose"
	"github.com/dvcrn/hax-poster/internal/credentials"
	"github.com/dvcrn/hax-poster/internal/history"
	"github.com/dvcrn/hax-poster/internal/issues"
	"github.com/dvcrn/hax-poster/internal/linkedin"
	"github.com/dvcrn/hax-poster/internal/pipeline"
)

var (
	ErrNoContent    = errors.New("no content to post")
	ErrNoStdinInput = errors.New("no content received from stdin")
)

// PostSummary posts the weekly issue summary.
func (a *App) PostSummary(ctx context.Context, dryRun bool) error {
	a.console.Println("🎯 HAX Issue Data → LinkedIn Automation")
	a.console.Println()
	status := a.classify()

	a.console.Println("📊 Analyzing issue data...")
	all, err := a.source.List(ctx)
	if err != nil {
		return err
	}

	stats := issues.Summarize(all, a.cfg.Issues.IssueWindow(a.now()))
	a.logger.Debug().
		Int("issues", len(all)).
		Int("this_week", stats.ThisWeek.Created).
		Msg("Summarized issues")

	return a.submit(ctx, compose.Summary(stats), status, dryRun)
}

// PostCustom posts operator-supplied text.
func (a *App) PostCustom(ctx context.Context, content string, dryRun bool) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrNoContent
	}

	a.console.Println("🎯 LinkedIn Custom Content Poster")
	a.console.Println()
	status := a.classify()
	a.console.Println("📝 Using provided custom content")

	return a.submit(ctx, compose.FromContent(content), status, dryRun)
}

// PostStdin posts whatever is piped in.
func (a *App) PostStdin(ctx context.Context, r io.Reader, dryRun bool) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return ErrNoStdinInput
	}
	return a.PostCustom(ctx, string(b), dryRun)
}

// Status prints the credential classification.
func (a *App) Status() credentials.Status {
	now := a.now()
	st := credentials.Classify(a.store, now, a.logger)

	a.console.Printf("State: %s\n", st.State)
	if st.Record != nil {
		a.console.Printf("Profile: %s (%s)\n", st.Record.DisplayName, st.Record.AuthorURN())
		a.console.Printf("Expires: %s\n", st.Record.ExpiresAt().Local().Format("2006-01-02 15:04 MST"))
		a.console.Printf("Minutes until expiry: %d\n", st.MinutesUntilExpiry(now))
	}
	if st.Reason != nil {
		a.console.Printf("Reason: %v\n", st.Reason)
	}
	if !st.State.Automated() {
		a.console.Println("💡 Run: hax-poster setup")
	}
	return st
}

func (a *App) classify() credentials.Status {
	return credentials.Classify(a.store, a.now(), a.logger)
}

func (a *App) submit(ctx context.Context, draft compose.Draft, status credentials.Status, dryRun bool) error {
	a.showDraft(draft)

	if dryRun {
		a.console.Println("\n🧪 Dry run - nothing was posted or recorded.")
		return nil
	}

	p := a.newPipeline()
	outcome, confirmed, err := p.Submit(ctx, draft, status)
	if err != nil {
		return err
	}
	if confirmed {
		a.logger.Info().
			Str("method", string(outcome.Method)).
			Str("post_id", outcome.PostID).
			Msg("Post complete")
	}
	return nil
}

func (a *App) newPipeline() *pipeline.Pipeline {
	lc := a.cfg.LinkedIn
	return pipeline.New(pipeline.Deps{
		Publisher: linkedin.NewClient(lc.APIURL, a.httpClient, a.logger),
		Clipboard: a.clipboard,
		Browser:   a.browser,
		Confirmer: a.console,
		Recorder:  history.NewLog(a.cfg.History.Path),
		Out:       a.console.Out(),
	}, a.logger,
		pipeline.WithScratchPath(a.cfg.Scratch.Path),
		pipeline.WithFeedURL(lc.FeedURL),
		pipeline.WithClock(a.now),
	)
}

func (a *App) showDraft(d compose.Draft) {
	a.console.Println("📝 Generated LinkedIn Post:")
	a.console.Println(strings.Repeat("─", 50))
	a.console.Println(d.LinkedIn)
	a.console.Println(strings.Repeat("─", 50))

	a.console.Println("\n📱 Generated Twitter Post:")
	a.console.Println(strings.Repeat("─", 30))
	a.console.Println(d.Twitter)
	a.console.Println(strings.Repeat("─", 30))
}
