// Package github implements the GitHubClient port using the go-github library
// for REST calls and plain JSON POSTs for GraphQL.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/mergemetrics/internal/domain/model"
	"github.com/ericfisherdev/mergemetrics/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

// ErrUnauthorized is returned when GitHub rejects the configured token.
var ErrUnauthorized = errors.New("github: bad credentials")

const defaultGraphQLURL = "https://api.github.com/graphql"

// Client implements the driven.GitHubClient port.
type Client struct {
	gh         *gh.Client
	http       *http.Client // Shared by go-github and GraphQL requests.
	graphqlURL string       // "https://api.github.com/graphql" in production; derived from baseURL in tests.
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. request logging (debug level, network round trips only)
//  2. httpcache (ETag-based conditional request caching)
//  3. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  4. oauth2 (static token, applied to both REST and GraphQL requests)
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	cacheTransport.Transport = NewLoggingTransport(http.DefaultTransport, slog.Default())
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	httpClient := withToken(rateLimitClient.Transport, token)

	return &Client{
		gh:         gh.NewClient(httpClient),
		http:       httpClient,
		graphqlURL: defaultGraphQLURL,
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
// An empty token sends unauthenticated requests.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	if token != "" {
		httpClient = withToken(httpClient.Transport, token)
	}

	client := gh.NewClient(httpClient)
	client.BaseURL = u

	// Derive graphqlURL from baseURL so httptest servers can intercept GraphQL requests.
	graphqlU := *u
	graphqlU.Path = "/graphql"

	return &Client{
		gh:         client,
		http:       httpClient,
		graphqlURL: graphqlU.String(),
	}, nil
}

func withToken(base http.RoundTripper, token string) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   base,
		},
	}
}

// IsRepoValid reports whether the repository can be read with the current token.
// 401, 403 and 404 answers mean "not valid"; any other failure is returned.
func (c *Client) IsRepoValid(ctx context.Context, repo model.RepoRef) (bool, error) {
	_, resp, err := c.gh.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
				return false, nil
			}
		}
		return false, fmt.Errorf("fetching repository %s: %w", repo.FullName(), err)
	}

	logRateLimit(resp, repo.FullName(), 0, 1)

	return true, nil
}

// GetUser returns the authenticated user. Returns nil, nil when the token is rejected.
func (c *Client) GetUser(ctx context.Context) (*model.User, error) {
	u, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching authenticated user: %w", err)
	}

	logRateLimit(resp, "user", 0, 1)

	return &model.User{
		Login: u.GetLogin(),
		Name:  u.GetName(),
		Email: u.GetEmail(),
	}, nil
}

// logRateLimit logs the GitHub API rate limit status after each REST call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
