// Package github resolves GitHub usernames to public profile summaries
// through the unauthenticated REST endpoint /users/{username}.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ghfreaks/eventlocator/internal/metrics"
	"github.com/ghfreaks/eventlocator/internal/model"
)

// DefaultBaseURL is the public GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

// HTTPClient is the subset of *http.Client used by Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds client settings.
type Config struct {
	BaseURL string
}

// Client fetches GitHub user profiles. It keeps no per-request state, so
// concurrent fetches are independent.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	logger     *slog.Logger
	metrics    metrics.Recorder
}

// NewClient creates a Client. A nil httpClient uses NewHTTPClient(DefaultTimeout).
func NewClient(cfg Config, httpClient HTTPClient, logger *slog.Logger, recorder metrics.Recorder) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultTimeout)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		metrics:    recorder,
	}
}

// userPayload mirrors the consumed subset of the /users/{username} body.
// Pointers distinguish missing and null fields from empty strings.
type userPayload struct {
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
	Name      *string `json:"name"`
}

// FetchUser issues a single GET for username and decodes the profile.
// Every failure is a *FetchError; there is no retry.
func (c *Client) FetchUser(ctx context.Context, username string) (*model.GitHubUser, error) {
	start := time.Now()

	user, err := c.fetchUser(ctx, username)

	c.metrics.ObserveProfileFetchDuration(time.Since(start))
	if err != nil {
		kind := KindOf(err)
		c.metrics.IncProfileFetch(kind.String())

		var fe *FetchError
		status := 0
		if errors.As(err, &fe) {
			status = fe.Status
		}
		c.logger.Warn("github_fetch_failed",
			slog.String("username", username),
			slog.String("kind", kind.String()),
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.metrics.IncProfileFetch(metrics.OutcomeSuccess)
	c.logger.Debug("github_fetch_succeeded",
		slog.String("username", username),
		slog.Duration("duration", time.Since(start)),
	)
	return user, nil
}

func (c *Client) fetchUser(ctx context.Context, username string) (*model.GitHubUser, error) {
	endpoint, err := c.userURL(username)
	if err != nil {
		return nil, &FetchError{Kind: KindInvalidURL, Username: username, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindInvalidURL, Username: username, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindUnknown, Username: username, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused; the error body is not inspected.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{Kind: KindInvalidResponse, Username: username, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindUnknown, Username: username, Err: fmt.Errorf("read body: %w", err)}
	}

	user, err := decodeUser(body)
	if err != nil {
		return nil, &FetchError{Kind: KindInvalidData, Username: username, Err: err}
	}

	return user, nil
}

// userURL interpolates username verbatim into the /users/{username} template.
func (c *Client) userURL(username string) (string, error) {
	raw := c.baseURL + "/users/" + username

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", raw, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("parse %q: missing scheme or host", raw)
	}

	return parsed.String(), nil
}

// decodeUser strictly decodes a profile body: avatar_url, bio and name must
// all be present JSON strings.
func decodeUser(body []byte) (*model.GitHubUser, error) {
	var payload userPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	var missing []string
	if payload.AvatarURL == nil {
		missing = append(missing, "avatar_url")
	}
	if payload.Bio == nil {
		missing = append(missing, "bio")
	}
	if payload.Name == nil {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("decode body: missing or null fields: %s", strings.Join(missing, ", "))
	}

	return &model.GitHubUser{
		AvatarURL: *payload.AvatarURL,
		Bio:       *payload.Bio,
		Name:      *payload.Name,
	}, nil
}
