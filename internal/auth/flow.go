package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/dvcrn/hax-poster/internal/credentials"
	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Exchanger turns an authorization code into tokens and an identity.
type Exchanger interface {
	ExchangeCode(ctx context.Context, sess *Session, code string) (*TokenResponse, error)
	FetchProfile(ctx context.Context, accessToken string) (*Profile, error)
}

// Flow runs the local half of the authorization-code grant: a loopback
// listener that receives exactly one redirect.
type Flow struct {
	Addr      string
	exchanger Exchanger
	logger    zerolog.Logger
	now       func() time.Time
}

func NewFlow(addr string, exchanger Exchanger, logger zerolog.Logger) *Flow {
	return &Flow{
		Addr:      addr,
		exchanger: exchanger,
		logger:    logger,
		now:       time.Now,
	}
}

// Pending is the eventual result of a started flow. It resolves once, on the
// first callback, on context cancellation, or when the listener fails.
type Pending struct {
	addr    string
	done    chan struct{}
	once    sync.Once
	claimed atomic.Bool
	rec     *credentials.Record
	err     error
	group   *errgroup.Group
}

// Addr is the address the listener is bound to.
func (p *Pending) Addr() string {
	return p.addr
}

// Wait blocks until the flow resolves and the listener has shut down.
func (p *Pending) Wait() (*credentials.Record, error) {
	<-p.done
	if err := p.group.Wait(); err != nil && p.err == nil {
		return nil, err
	}
	return p.rec, p.err
}

func (p *Pending) resolve(rec *credentials.Record, err error) {
	p.once.Do(func() {
		p.rec, p.err = rec, err
		close(p.done)
	})
}

// Start binds the callback port and begins serving. It fails immediately with
// ErrPortInUse when another process holds the port.
func (f *Flow) Start(ctx context.Context, sess *Session) (*Pending, error) {
	ln, err := net.Listen("tcp", f.Addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("%w: %s", ErrPortInUse, f.Addr)
		}
		return nil, fmt.Errorf("failed to start callback listener: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	p := &Pending{
		addr:  ln.Addr().String(),
		done:  make(chan struct{}),
		group: g,
	}

	r := chi.NewRouter()
	r.Get(CallbackPath, f.callbackHandler(sess, p))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		f.logger.Warn().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Msg("Unhandled route")
		http.Error(w, "Not found", http.StatusNotFound)
	})

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("callback listener failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-p.done:
		case <-gctx.Done():
			p.resolve(nil, context.Cause(gctx))
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			f.logger.Warn().Err(err).Msg("Callback listener did not shut down cleanly")
		}
		f.logger.Debug().Str("addr", p.addr).Msg("Callback listener stopped")
		return nil
	})

	f.logger.Info().Str("addr", p.addr).Msg("🌐 Callback server started")
	return p, nil
}

func (f *Flow) callbackHandler(sess *Session, p *Pending) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !p.claimed.CompareAndSwap(false, true) {
			http.Error(w, "Authorization already handled", http.StatusGone)
			return
		}

		q := r.URL.Query()
		if providerErr := q.Get("error"); providerErr != "" {
			desc := q.Get("error_description")
			f.logger.Error().Str("error", providerErr).Str("description", desc).Msg("❌ Authorization denied")
			http.Error(w, "Error: "+providerErr, http.StatusBadRequest)
			p.resolve(nil, fmt.Errorf("%w: %s %s", ErrAuthorizationDenied, providerErr, desc))
			return
		}

		if subtle.ConstantTimeCompare([]byte(q.Get("state")), []byte(sess.State)) != 1 {
			f.logger.Error().Str("remote_addr", r.RemoteAddr).Msg("❌ Callback state does not match session")
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			p.resolve(nil, ErrCSRFMismatch)
			return
		}

		code := q.Get("code")
		if code == "" {
			http.Error(w, "Missing authorization code", http.StatusBadRequest)
			p.resolve(nil, ErrMissingCode)
			return
		}

		rec, profile, err := f.complete(r.Context(), sess, code)
		if err != nil {
			f.logger.Error().Err(err).Msg("❌ Failed to complete authorization")
			http.Error(w, "Error: "+err.Error(), http.StatusInternalServerError)
			p.resolve(nil, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, successPage(profile))
		p.resolve(rec, nil)
	}
}

func (f *Flow) complete(ctx context.Context, sess *Session, code string) (*credentials.Record, *Profile, error) {
	tok, err := f.exchanger.ExchangeCode(ctx, sess, code)
	if err != nil {
		return nil, nil, err
	}

	profile, err := f.exchanger.FetchProfile(ctx, tok.AccessToken)
	if err != nil {
		return nil, nil, err
	}

	rec := &credentials.Record{
		ClientID:     sess.ClientID,
		ClientSecret: sess.ClientSecret,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		PersonID:     profile.Sub,
		DisplayName:  profile.DisplayName(),
		ExpiresIn:    tok.ExpiresIn,
		CreatedAt:    f.now().UTC(),
	}
	if err := rec.Validate(); err != nil {
		return nil, nil, &TokenExchangeError{Err: fmt.Errorf("incomplete credentials: %w", err)}
	}

	f.logger.Info().Str("name", rec.DisplayName).Int64("expires_in", rec.ExpiresIn).Msg("✅ Authorization complete")
	return rec, profile, nil
}

var textOnly = bluemonday.StrictPolicy()

func successPage(p *Profile) string {
	return fmt.Sprintf(`<html>
  <body style="font-family: Arial, sans-serif; text-align: center; padding: 50px;">
    <h2>✅ LinkedIn Authentication Successful!</h2>
    <p>You can close this window and return to the terminal.</p>
    <div style="background: #f0f0f0; padding: 20px; border-radius: 8px; margin: 20px;">
      <h3>Profile Info:</h3>
      <p><strong>Name:</strong> %s</p>
      <p><strong>ID:</strong> %s</p>
    </div>
  </body>
</html>
`, textOnly.Sanitize(p.DisplayName()), textOnly.Sanitize(p.Sub))
}
