// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/mergemetrics/internal/domain/model"
	"github.com/ericfisherdev/mergemetrics/internal/domain/port/driven"
)

// ghostLogin replaces the author of content whose GitHub account was deleted.
const ghostLogin = "ghost"

// ErrStalledCursor is returned when a search page announces more results
// without a new cursor to reach them.
var ErrStalledCursor = errors.New("search cursor did not advance")

// FetchRequest describes which merged pull requests to collect.
type FetchRequest struct {
	Repos     []model.RepoRef
	Ranges    []model.DateRange
	Labels    []string
	Selection model.ReportSelection
}

// MetricsService fetches merged pull requests per date range through the
// GitHub search API.
type MetricsService struct {
	ghClient driven.GitHubClient
	logger   *slog.Logger
}

// NewMetricsService creates a new MetricsService.
func NewMetricsService(ghClient driven.GitHubClient) *MetricsService {
	return &MetricsService{
		ghClient: ghClient,
		logger:   slog.Default(),
	}
}

// FetchRanges fetches every range of req concurrently. The result has one
// entry per requested range, in request order. The first failing range cancels
// the others and its error is returned; no partial result is produced.
func (s *MetricsService) FetchRanges(ctx context.Context, req FetchRequest) ([]model.RangeMetrics, error) {
	start := time.Now()
	results := make([]model.RangeMetrics, len(req.Ranges))

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range req.Ranges {
		g.Go(func() error {
			prs, err := s.FetchRange(gctx, req.Repos, r, req.Labels, req.Selection)
			if err != nil {
				return fmt.Errorf("fetching range %s: %w", r, err)
			}
			results[i] = model.RangeMetrics{Range: r, PullRequests: prs}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("metrics fetched",
		"ranges", len(req.Ranges),
		"repos", len(req.Repos),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return results, nil
}

// FetchRange pages through the search results for a single range, one request
// at a time, and returns the pull requests in result order. A node returned
// twice across pages is kept once.
func (s *MetricsService) FetchRange(
	ctx context.Context,
	repos []model.RepoRef,
	r model.DateRange,
	labels []string,
	selection model.ReportSelection,
) ([]model.PullRequest, error) {
	query := BuildSearchQuery(selection)
	filter := SearchFilter(repos, r, labels)

	prs := []model.PullRequest{}
	seen := make(map[string]bool)
	var cursor string

	for page := 1; ; page++ {
		variables := map[string]any{"query": filter}
		if cursor != "" {
			variables["after"] = cursor
		}

		var resp searchResponse
		if err := s.ghClient.GraphQL(ctx, query, variables, &resp); err != nil {
			return nil, fmt.Errorf("search page %d: %w", page, err)
		}

		for _, node := range resp.Search.Nodes {
			// Non pull request results come back as empty objects.
			if node.ID == "" || seen[node.ID] {
				continue
			}
			seen[node.ID] = true
			prs = append(prs, node.toModel(selection))
		}

		s.logger.Debug("search page fetched",
			"range", r.String(),
			"page", page,
			"count", len(resp.Search.Nodes),
			"has_next_page", resp.Search.PageInfo.HasNextPage,
		)

		if !resp.Search.PageInfo.HasNextPage {
			break
		}
		next := resp.Search.PageInfo.EndCursor
		if next == "" || next == cursor {
			return nil, fmt.Errorf("search page %d: %w (cursor %q)", page, ErrStalledCursor, next)
		}
		cursor = next
	}

	return prs, nil
}

// searchResponse is the "data" object of a search query page.
type searchResponse struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool   `json:"hasNextPage"`
			EndCursor   string `json:"endCursor"`
		} `json:"pageInfo"`
		Nodes []pullRequestNode `json:"nodes"`
	} `json:"search"`
}

type actorNode struct {
	Login string `json:"login"`
}

type pullRequestNode struct {
	ID           string     `json:"id"`
	Number       int        `json:"number"`
	Title        string     `json:"title"`
	URL          string     `json:"url"`
	Author       *actorNode `json:"author"`
	Additions    int        `json:"additions"`
	Deletions    int        `json:"deletions"`
	ChangedFiles int        `json:"changedFiles"`
	CreatedAt    time.Time  `json:"createdAt"`
	MergedAt     time.Time  `json:"mergedAt"`
	Repository   *struct {
		Name string `json:"name"`
	} `json:"repository"`
	TimelineItems struct {
		Nodes []struct {
			Typename  string    `json:"__typename"`
			CreatedAt time.Time `json:"createdAt"`
		} `json:"nodes"`
	} `json:"timelineItems"`
	Reviews struct {
		Nodes []struct {
			Author   *actorNode `json:"author"`
			State    string     `json:"state"`
			Comments struct {
				TotalCount int `json:"totalCount"`
			} `json:"comments"`
		} `json:"nodes"`
	} `json:"reviews"`
}

// toModel converts a search node to a domain PullRequest. A null author is
// only reported as ghostLogin when authors were requested.
func (n pullRequestNode) toModel(selection model.ReportSelection) model.PullRequest {
	timeline := make([]model.TimelineEvent, 0, len(n.TimelineItems.Nodes))
	for _, item := range n.TimelineItems.Nodes {
		timeline = append(timeline, model.TimelineEvent{
			Kind: model.TimelineEventKind(item.Typename),
			At:   item.CreatedAt,
		})
	}

	reviews := make([]model.Review, 0, len(n.Reviews.Nodes))
	for _, r := range n.Reviews.Nodes {
		reviews = append(reviews, model.Review{
			ReviewerLogin: r.Author.login(),
			State:         model.ReviewState(r.State),
			CommentCount:  r.Comments.TotalCount,
		})
	}

	pr := model.PullRequest{
		NodeID:       n.ID,
		Number:       n.Number,
		Title:        n.Title,
		URL:          n.URL,
		Additions:    n.Additions,
		Deletions:    n.Deletions,
		ChangedFiles: n.ChangedFiles,
		CreatedAt:    n.CreatedAt,
		MergedAt:     n.MergedAt,
		Timeline:     timeline,
		Reviews:      reviews,
	}
	if selection.PullRequests || selection.Authors {
		pr.Author = n.Author.login()
	}
	if n.Repository != nil {
		pr.RepoName = n.Repository.Name
	}
	return pr
}

// login returns the actor login, or ghostLogin for a deleted account.
func (a *actorNode) login() string {
	if a == nil {
		return ghostLogin
	}
	return a.Login
}
