package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ternarybob/banner"

	"github.com/dvcrn/hax-poster/internal/auth"
)

// Setup runs the interactive authorization and saves the resulting
// credential record, replacing any previous one.
func (a *App) Setup(ctx context.Context) error {
	if err := a.setup(ctx); err != nil {
		a.console.Printf("\n❌ Setup failed: %v\n", err)
		printTroubleshooting(a.console.Out(), a.cfg.LinkedIn.RedirectURI())
		return err
	}
	return nil
}

func (a *App) setup(ctx context.Context) error {
	lc := a.cfg.LinkedIn
	printSetupInstructions(a.console.Out(), lc.RedirectURI())

	if _, err := a.console.Ask("Ready to start setup? Press Enter to continue..."); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	a.console.Println("\n🔑 LinkedIn App Credentials")
	clientID, err := a.console.Ask("Enter Client ID: ")
	if err != nil {
		return fmt.Errorf("failed to read client ID: %w", err)
	}
	clientSecret, err := a.console.Ask("Enter Client Secret: ")
	if err != nil {
		return fmt.Errorf("failed to read client secret: %w", err)
	}

	sess, err := auth.NewSession(strings.TrimSpace(clientID), strings.TrimSpace(clientSecret), lc.RedirectURI())
	if err != nil {
		return err
	}

	authURL, err := sess.AuthorizationURL(lc.AuthURL, lc.Scopes)
	if err != nil {
		return err
	}

	flow := auth.NewFlow(lc.CallbackAddr(), auth.NewClient(lc.Endpoints(), a.httpClient), a.logger)
	pending, err := flow.Start(ctx, sess)
	if err != nil {
		return err
	}

	a.console.Println("\n🔗 Authorization URL:")
	a.console.Println(authURL)
	a.console.Println("\n📋 Instructions:")
	a.console.Println("1. Open the URL above in your browser (we tried to open it for you)")
	a.console.Println("2. Grant permissions to your LinkedIn app")
	a.console.Printf("3. You'll be redirected to %s\n", lc.RedirectURI())
	a.console.Println("4. Return here - the setup will complete automatically")
	a.console.Println()

	if err := a.browser.Open(authURL); err != nil {
		a.logger.Debug().Err(err).Msg("Could not open browser")
	}

	rec, err := pending.Wait()
	if err != nil {
		return err
	}

	if err := a.store.Save(rec); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	a.console.Println("✅ Configuration saved")
	a.console.Println("\n🎉 Setup Complete!")
	a.console.Printf("📊 Profile: %s\n", rec.DisplayName)
	a.console.Printf("🔑 Access token expires in: %d seconds\n", rec.ExpiresIn)
	a.console.Println("\n▶️  Next steps:")
	a.console.Println("   1. Run: hax-poster post")
	a.console.Println("   2. Your weekly productivity posts will be automated!")
	return nil
}

func printSetupInstructions(w io.Writer, redirectURI string) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	hr := lineColor + strings.Repeat("━", 51) + banner.ColorReset

	fmt.Fprintf(w, "\n%s🎯 LinkedIn API Setup for HAX Issue Automation%s\n\n", textColor, banner.ColorReset)
	fmt.Fprintln(w, "📋 Prerequisites:")
	fmt.Fprintln(w, "1. LinkedIn Developer Account")
	fmt.Fprintln(w, "2. LinkedIn App with proper permissions")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "🔧 Setup Steps:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "1️⃣  Create LinkedIn App:")
	fmt.Fprintln(w, "   • Go to: https://www.linkedin.com/developers/apps")
	fmt.Fprintln(w, `   • Click "Create app" and fill in the app details`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "2️⃣  Configure App Permissions:")
	fmt.Fprintln(w, `   • Products tab → Request "Sign In with LinkedIn using OpenID Connect"`)
	fmt.Fprintln(w, `   • Products tab → Request "Share on LinkedIn"`)
	fmt.Fprintf(w, "   • Auth tab → Add redirect URL: %s\n", redirectURI)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "3️⃣  Get App Credentials:")
	fmt.Fprintln(w, `   • Auth tab → Copy "Client ID" and "Client Secret"`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, hr)
	fmt.Fprintln(w)
}

func printTroubleshooting(w io.Writer, redirectURI string) {
	fmt.Fprintln(w, "\n🔧 Troubleshooting:")
	fmt.Fprintln(w, "   • Verify your LinkedIn app configuration")
	fmt.Fprintf(w, "   • Check that redirect URI is set to: %s\n", redirectURI)
	fmt.Fprintln(w, `   • Ensure "Share on LinkedIn" product is added to your app`)
	fmt.Fprintln(w, `   • Ensure "Sign In with LinkedIn using OpenID Connect" product is added to your app`)
}
