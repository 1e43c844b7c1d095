package application

import (
	"context"
	"sync"

	"github.com/ericfisherdev/mergemetrics/internal/domain/port/driven"
)

// ClientFactory builds a GitHub client. It may prompt for credentials.
type ClientFactory func(ctx context.Context) (driven.GitHubClient, error)

// GitHubClientProvider builds the GitHub client on first use and hands the
// same client to every later caller, so commands that never reach GitHub never
// resolve a token. It is safe for concurrent use.
type GitHubClientProvider struct {
	mu      sync.Mutex
	client  driven.GitHubClient
	factory ClientFactory
}

// NewGitHubClientProvider creates a provider that builds its client with factory.
func NewGitHubClientProvider(factory ClientFactory) *GitHubClientProvider {
	return &GitHubClientProvider{factory: factory}
}

// NewStaticClientProvider creates a provider that always returns client.
func NewStaticClientProvider(client driven.GitHubClient) *GitHubClientProvider {
	return &GitHubClientProvider{client: client}
}

// Get returns the client, building it on the first call. A failed build is
// not remembered; the next call tries again.
func (p *GitHubClientProvider) Get(ctx context.Context) (driven.GitHubClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	client, err := p.factory(ctx)
	if err != nil {
		return nil, err
	}
	p.client = client
	return client, nil
}
