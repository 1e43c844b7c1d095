package model

import "time"

// PullRequest represents a merged pull request returned by the search API.
// Fields belonging to a report that was not requested stay at their zero value.
type PullRequest struct {
	NodeID       string // GraphQL node ID; always requested, used for deduplication.
	Number       int
	Title        string
	URL          string
	Author       string
	RepoName     string
	Additions    int
	Deletions    int
	ChangedFiles int
	CreatedAt    time.Time
	MergedAt     time.Time
	Timeline     []TimelineEvent // Chronological, as returned by the API.
	Reviews      []Review
}

// ReviewsBy returns the reviews submitted by the given login, in API order.
func (pr PullRequest) ReviewsBy(login string) []Review {
	var reviews []Review
	for _, r := range pr.Reviews {
		if r.ReviewerLogin == login {
			reviews = append(reviews, r)
		}
	}
	return reviews
}
