// Package config holds the poster's YAML configuration.
package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dvcrn/hax-poster/internal/auth"
	"github.com/dvcrn/hax-poster/internal/credentials"
	"github.com/dvcrn/hax-poster/internal/history"
	"github.com/dvcrn/hax-poster/internal/issues"
	"github.com/dvcrn/hax-poster/internal/linkedin"
	"github.com/dvcrn/hax-poster/internal/pipeline"
)

// DefaultFile is looked up in the working directory.
const DefaultFile = "hax-poster.yaml"

// Credential backends.
const (
	BackendFile     = "file"
	BackendKeychain = "keychain"
)

// Issue sources.
const (
	SourceFile   = "file"
	SourceGitHub = "github"
)

type Config struct {
	LogLevel    string            `yaml:"log_level"`
	LinkedIn    LinkedInConfig    `yaml:"linkedin"`
	Credentials CredentialsConfig `yaml:"credentials"`
	History     HistoryConfig     `yaml:"history"`
	Scratch     ScratchConfig     `yaml:"scratch"`
	Issues      IssuesConfig      `yaml:"issues"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "warning", "error")),
	); err != nil {
		return err
	}
	if err := c.LinkedIn.Validate(); err != nil {
		return fmt.Errorf("linkedin: %w", err)
	}
	if err := c.Credentials.Validate(); err != nil {
		return fmt.Errorf("credentials: %w", err)
	}
	if err := c.History.Validate(); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	return c.Issues.Validate()
}

type LinkedInConfig struct {
	AuthURL      string `yaml:"auth_url"`
	TokenURL     string `yaml:"token_url"`
	UserInfoURL  string `yaml:"userinfo_url"`
	APIURL       string `yaml:"api_url"`
	FeedURL      string `yaml:"feed_url"`
	CallbackPort int    `yaml:"callback_port"`
	Scopes       string `yaml:"scopes"`
}

func (c *LinkedInConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AuthURL, validation.Required),
		validation.Field(&c.TokenURL, validation.Required),
		validation.Field(&c.UserInfoURL, validation.Required),
		validation.Field(&c.APIURL, validation.Required),
		validation.Field(&c.FeedURL, validation.Required),
		validation.Field(&c.CallbackPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Scopes, validation.Required),
	)
}

// Endpoints returns the authorization endpoints.
func (c *LinkedInConfig) Endpoints() auth.Endpoints {
	return auth.Endpoints{
		Authorization: c.AuthURL,
		Token:         c.TokenURL,
		UserInfo:      c.UserInfoURL,
	}
}

// RedirectURI must match the redirect URL registered on the LinkedIn app.
func (c *LinkedInConfig) RedirectURI() string {
	return auth.RedirectURI(c.CallbackPort)
}

// CallbackAddr is the loopback address the callback listener binds.
func (c *LinkedInConfig) CallbackAddr() string {
	return fmt.Sprintf("127.0.0.1:%d", c.CallbackPort)
}

type CredentialsConfig struct {
	Backend         string `yaml:"backend"`
	Path            string `yaml:"path"`
	KeychainService string `yaml:"keychain_service"`
}

func (c *CredentialsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendFile, BackendKeychain)),
		validation.Field(&c.Path, validation.When(c.Backend == BackendFile, validation.Required)),
	)
}

type HistoryConfig struct {
	Path string `yaml:"path"`
}

func (c *HistoryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

type ScratchConfig struct {
	Path string `yaml:"path"`
}

type IssuesConfig struct {
	Source    string        `yaml:"source"`
	File      string        `yaml:"file"`
	Repo      string        `yaml:"repo"`
	Token     string        `yaml:"token"`
	Window    time.Duration `yaml:"window"`
	MinNumber int           `yaml:"min_number"`
}

func (c *IssuesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Source, validation.Required, validation.In(SourceFile, SourceGitHub)),
		validation.Field(&c.File, validation.When(c.Source == SourceFile, validation.Required)),
		validation.Field(&c.Repo, validation.When(c.Source == SourceGitHub, validation.Required)),
		validation.Field(&c.Window, validation.Required, validation.Min(time.Minute)),
		validation.Field(&c.MinNumber, validation.Min(0)),
	)
}

// IssueWindow is the reporting window ending at now.
func (c *IssuesConfig) IssueWindow(now time.Time) issues.Window {
	return issues.Window{Since: now.Add(-c.Window), MinNumber: c.MinNumber}
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		LinkedIn: LinkedInConfig{
			AuthURL:      auth.AuthorizationURL,
			TokenURL:     auth.TokenURL,
			UserInfoURL:  auth.UserInfoURL,
			APIURL:       linkedin.APIURL,
			FeedURL:      linkedin.FeedURL,
			CallbackPort: auth.DefaultCallbackPort,
			Scopes:       auth.DefaultScopes,
		},
		Credentials: CredentialsConfig{
			Backend:         BackendFile,
			Path:            credentials.DefaultCredsPath(),
			KeychainService: credentials.DefaultKeychainService,
		},
		History: HistoryConfig{
			Path: history.DefaultPath,
		},
		Scratch: ScratchConfig{
			Path: pipeline.DefaultScratchPath(),
		},
		Issues: IssuesConfig{
			Source: SourceFile,
			File:   issues.DefaultFilePath,
			Window: 7 * 24 * time.Hour,
		},
	}
}
