package driven

import (
	"context"

	"github.com/ericfisherdev/mergemetrics/internal/domain/model"
)

// GitHubClient defines the driven port for interacting with the GitHub API.
type GitHubClient interface {
	// GraphQL executes a query document with the given variables and decodes
	// the response "data" object into out.
	GraphQL(ctx context.Context, query string, variables map[string]any, out any) error

	// IsRepoValid reports whether the repository exists and is visible to the
	// authenticated user.
	IsRepoValid(ctx context.Context, repo model.RepoRef) (bool, error)

	// GetUser returns the authenticated user, or nil if the token is rejected.
	GetUser(ctx context.Context) (*model.User, error)
}
