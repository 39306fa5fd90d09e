// Package pipeline decides between the LinkedIn API and the manual path and
// records what was done.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvcrn/hax-poster/internal/compose"
	"github.com/dvcrn/hax-poster/internal/credentials"
	"github.com/dvcrn/hax-poster/internal/history"
)

const (
	// DefaultFeedURL is opened for manual posting
	DefaultFeedURL = "https://www.linkedin.com/feed/"

	promptAPI    = "\n🚀 Post to LinkedIn? (y/N): "
	promptManual = "\n🚀 Open LinkedIn for posting? (y/N): "
)

// DefaultScratchPath is where manual content is left for the operator.
func DefaultScratchPath() string {
	return filepath.Join(os.TempDir(), "linkedin-post.txt")
}

var errUnavailable = errors.New("not available")

type Publisher interface {
	Publish(ctx context.Context, accessToken, authorURN, text string) (string, error)
}

type Clipboard interface {
	Copy(text string) error
}

type Browser interface {
	Open(url string) error
}

type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

type Recorder interface {
	Append(e history.Entry) error
}

// Deps are the pipeline's capabilities. A nil Clipboard or Browser is treated
// as unavailable and a nil Confirmer always declines. A nil Recorder fails
// every append, so a confirmed post is reported as unrecorded. A nil Out
// discards.
type Deps struct {
	Publisher Publisher
	Clipboard Clipboard
	Browser   Browser
	Confirmer Confirmer
	Recorder  Recorder
	Out       io.Writer
}

// Outcome is what actually happened to a confirmed post.
type Outcome struct {
	Posted bool
	Method history.Method
	PostID string
}

type Pipeline struct {
	publisher   Publisher
	clipboard   Clipboard
	browser     Browser
	confirmer   Confirmer
	recorder    Recorder
	out         io.Writer
	logger      zerolog.Logger
	scratchPath string
	feedURL     string
	now         func() time.Time
}

// Option is a functional option for configuring the pipeline.
type Option func(*Pipeline)

// WithScratchPath sets the file manual content is written to.
func WithScratchPath(path string) Option {
	return func(p *Pipeline) {
		p.scratchPath = path
	}
}

// WithFeedURL sets the page opened for manual posting.
func WithFeedURL(url string) Option {
	return func(p *Pipeline) {
		p.feedURL = url
	}
}

// WithClock replaces time.Now for record dates.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

func New(deps Deps, logger zerolog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		publisher:   deps.Publisher,
		clipboard:   deps.Clipboard,
		browser:     deps.Browser,
		confirmer:   deps.Confirmer,
		recorder:    deps.Recorder,
		out:         deps.Out,
		logger:      logger,
		scratchPath: DefaultScratchPath(),
		feedURL:     DefaultFeedURL,
		now:         time.Now,
	}
	if p.clipboard == nil {
		p.clipboard = unavailable{}
	}
	if p.browser == nil {
		p.browser = unavailable{}
	}
	if p.confirmer == nil {
		p.confirmer = unavailable{}
	}
	if p.recorder == nil {
		p.recorder = unavailable{}
	}
	if p.out == nil {
		p.out = io.Discard
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit asks the operator to confirm draft, posts it and appends the result
// to the post log. Declining has no side effects. The bool reports whether the
// operator confirmed.
func (p *Pipeline) Submit(ctx context.Context, draft compose.Draft, status credentials.Status) (Outcome, bool, error) {
	prompt := promptManual
	if status.State.Automated() {
		prompt = promptAPI
	}

	confirmed, err := p.confirmer.Confirm(prompt)
	if err != nil {
		return Outcome{}, false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !confirmed {
		fmt.Fprintln(p.out, "📋 Posts generated but not posted. Use --dry-run to skip confirmation.")
		return Outcome{}, false, nil
	}

	outcome := p.Post(ctx, draft.LinkedIn, status)

	entry := history.NewEntry(draft, outcome.Method, p.now())
	if err := p.recorder.Append(entry); err != nil {
		return outcome, true, fmt.Errorf("post was made but could not be recorded: %w", err)
	}

	modeText := "generated and opened for manual posting"
	if outcome.Method == history.MethodAPI {
		modeText = "posted via API"
	}
	fmt.Fprintf(p.out, "\n📊 Stats and posts %s, saved to post history\n", modeText)
	p.logger.Debug().Str("id", entry.ID).Str("method", string(outcome.Method)).Msg("Recorded post")

	return outcome, true, nil
}

// Post publishes content through the API when status allows it, with a single
// attempt. Any API failure, and any non-valid status, goes to the manual path.
func (p *Pipeline) Post(ctx context.Context, content string, status credentials.Status) Outcome {
	if status.State.Automated() && status.Record != nil && p.publisher != nil {
		fmt.Fprintln(p.out, "📤 Posting to LinkedIn...")
		rec := status.Record
		id, err := p.publisher.Publish(ctx, rec.AccessToken, rec.AuthorURN(), content)
		if err == nil {
			p.logger.Info().Str("post_id", id).Msg("✅ Successfully posted to LinkedIn")
			fmt.Fprintln(p.out, "✅ Successfully posted to LinkedIn!")
			if id != "" {
				fmt.Fprintf(p.out, "🔗 Post ID: %s\n", id)
			}
			return Outcome{Posted: true, Method: history.MethodAPI, PostID: id}
		}

		p.logger.Error().Err(err).Msg("❌ LinkedIn API error")
		fmt.Fprintln(p.out, "\n🔄 Falling back to manual mode...")
	}

	return p.Manual(content)
}

// Manual hands content to the operator. Every convenience step is best
// effort; the outcome is always a manual post.
func (p *Pipeline) Manual(content string) Outcome {
	fmt.Fprintln(p.out, "\n📋 Manual LinkedIn Posting Mode")
	fmt.Fprintln(p.out, strings.Repeat("─", 50))

	if err := os.WriteFile(p.scratchPath, []byte(content), 0600); err != nil {
		p.logger.Warn().Err(err).Str("path", p.scratchPath).Msg("Could not write post to scratch file")
	} else {
		fmt.Fprintf(p.out, "📄 Content saved to %s\n", p.scratchPath)
	}

	copied := true
	if err := p.clipboard.Copy(content); err != nil {
		copied = false
		p.logger.Debug().Err(err).Msg("Clipboard copy failed")
		fmt.Fprintln(p.out, "📋 Content ready for manual copy:")
		fmt.Fprintln(p.out, content)
	} else {
		fmt.Fprintln(p.out, "📋 Content copied to clipboard!")
	}

	fmt.Fprintln(p.out, "\n🔗 Quick Actions:")
	if copied {
		fmt.Fprintln(p.out, "1. Content is copied to your clipboard")
	} else {
		fmt.Fprintln(p.out, "1. Copy the content above")
	}
	fmt.Fprintf(p.out, "2. Click this link: %s\n", p.feedURL)
	fmt.Fprintln(p.out, `3. Click "Start a post" and paste`)
	fmt.Fprintln(p.out, `4. Click "Post" to publish`)

	if err := p.browser.Open(p.feedURL); err != nil {
		p.logger.Debug().Err(err).Msg("Browser open failed")
		fmt.Fprintf(p.out, "\n🌐 Please open: %s\n", p.feedURL)
	} else {
		fmt.Fprintln(p.out, "\n🌐 LinkedIn opened in your browser!")
	}

	return Outcome{Posted: true, Method: history.MethodManual}
}

type unavailable struct{}

func (unavailable) Copy(string) error { return errUnavailable }
func (unavailable) Open(string) error { return errUnavailable }
func (unavailable) Confirm(string) (bool, error) { return false, nil }
func (unavailable) Append(history.Entry) error { return errUnavailable }
