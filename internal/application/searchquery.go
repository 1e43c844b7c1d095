package application

import (
	"fmt"
	"strings"

	"github.com/ericfisherdev/mergemetrics/internal/domain/model"
)

const (
	searchPageSize   = 25
	timelinePageSize = 50
	reviewsPageSize  = 100
	commentsPageSize = 100
)

// fieldBlock is a group of pull request fields requested only when enabled
// returns true for the active report selection.
type fieldBlock struct {
	enabled func(model.ReportSelection) bool
	fields  string
}

var optionalFieldBlocks = []fieldBlock{
	{
		enabled: func(s model.ReportSelection) bool { return s.PullRequests },
		fields: `title
				url`,
	},
	{
		enabled: func(s model.ReportSelection) bool { return s.PullRequests || s.Authors },
		fields: `author {
					login
				}`,
	},
	{
		enabled: func(s model.ReportSelection) bool { return s.Projects },
		fields: `repository {
					name
				}`,
	},
	{
		enabled: func(s model.ReportSelection) bool { return s.Reviewers },
		fields: fmt.Sprintf(`reviews(first: %d) {
					nodes {
						author {
							login
						}
						state
						comments(first: %d) {
							totalCount
						}
					}
				}`, reviewsPageSize, commentsPageSize),
	},
}

const searchQueryTemplate = `query($query: String!, $after: String) {
	search(query: $query, type: ISSUE, first: %d, after: $after) {
		pageInfo {
			hasNextPage
			endCursor
		}
		nodes {
			... on PullRequest {
				id
				number
				additions
				deletions
				changedFiles
				createdAt
				mergedAt
				timelineItems(first: %d, itemTypes: [%s]) {
					nodes {
						__typename
						... on ReadyForReviewEvent {
							createdAt
						}
						... on ConvertToDraftEvent {
							createdAt
						}
						... on ClosedEvent {
							createdAt
						}
						... on MergedEvent {
							createdAt
						}
						... on ReopenedEvent {
							createdAt
						}
					}
				}
				%s
			}
		}
	}
}`

// BuildSearchQuery returns the GraphQL document for one page of merged pull
// requests. Timeline fields are always requested; the other optional fields
// only when the selection needs them. The search string and cursor are passed
// as the $query and $after variables.
func BuildSearchQuery(selection model.ReportSelection) string {
	var blocks []string
	for _, b := range optionalFieldBlocks {
		if b.enabled(selection) {
			blocks = append(blocks, b.fields)
		}
	}

	return fmt.Sprintf(searchQueryTemplate,
		searchPageSize,
		timelinePageSize,
		strings.Join(model.TimelineEventKinds, ", "),
		strings.Join(blocks, "\n\t\t\t\t"),
	)
}

// SearchFilter returns the search string matching pull requests merged within
// r in any of repos, carrying every one of labels.
func SearchFilter(repos []model.RepoRef, r model.DateRange, labels []string) string {
	terms := make([]string, 0, len(repos)+len(labels)+3)
	for _, repo := range repos {
		terms = append(terms, "repo:"+repo.FullName())
	}
	terms = append(terms, "is:pr", "is:merged", "merged:"+r.String())
	for _, label := range labels {
		if strings.ContainsAny(label, " \t") {
			label = `"` + label + `"`
		}
		terms = append(terms, "label:"+label)
	}
	return strings.Join(terms, " ")
}
