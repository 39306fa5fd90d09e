package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// APIURL is the LinkedIn REST base
	APIURL = "https://api.linkedin.com/v2"
	// FeedURL is where a member starts a post by hand
	FeedURL = "https://www.linkedin.com/feed/"

	restliProtocolVersion = "2.0.0"
)

// HTTPClient is an interface for making HTTP requests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient creates a new HTTP client for regular environments
func NewHTTPClient() HTTPClient {
	return &http.Client{
		Timeout: 60 * time.Second,
	}
}

// APIError is a non-2xx answer from the publish endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("linkedin API error: %d %s", e.StatusCode, e.Body)
}

// Client publishes member shares through the UGC posts API.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	logger     zerolog.Logger
}

func NewClient(baseURL string, httpClient HTTPClient, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = APIURL
	}
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

type ugcPost struct {
	Author          string            `json:"author"`
	LifecycleState  string            `json:"lifecycleState"`
	SpecificContent specificContent   `json:"specificContent"`
	Visibility      map[string]string `json:"visibility"`
}

type specificContent struct {
	ShareContent shareContent `json:"com.linkedin.ugc.ShareContent"`
}

type shareContent struct {
	ShareCommentary    shareCommentary `json:"shareCommentary"`
	ShareMediaCategory string          `json:"shareMediaCategory"`
}

type shareCommentary struct {
	Text string `json:"text"`
}

func newUGCPost(authorURN, text string) ugcPost {
	return ugcPost{
		Author:         authorURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: specificContent{
			ShareContent: shareContent{
				ShareCommentary:    shareCommentary{Text: text},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
}

// Publish creates a public text share for authorURN and returns the post id.
// It makes exactly one request.
func (c *Client) Publish(ctx context.Context, accessToken, authorURN, text string) (string, error) {
	body, err := json.Marshal(newUGCPost(authorURN, text))
	if err != nil {
		return "", fmt.Errorf("failed to marshal post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ugcPosts", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create publish request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", restliProtocolVersion)

	c.logger.Debug().Str("author", authorURN).Int("length", len(text)).Msg("📤 Posting to LinkedIn")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach linkedin: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result struct {
		ID string `json:"id"`
	}
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &result); err != nil {
			c.logger.Debug().Err(err).Msg("Publish response body is not JSON")
		}
	}
	if result.ID == "" {
		result.ID = resp.Header.Get("X-RestLi-Id")
	}

	return result.ID, nil
}
