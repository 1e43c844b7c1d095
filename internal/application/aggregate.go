package application

import (
	"github.com/ericfisherdev/mergemetrics/internal/domain/model"
)

// GroupedPullRequests maps a group key to a range label to the pull requests of
// that group merged within the range. Only non-empty cells are present.
type GroupedPullRequests map[string]map[string][]model.PullRequest

// ReviewerReport maps a reviewer login to a range label to the reviewer's tallies.
type ReviewerReport map[string]map[string]model.ReviewerMetrics

// KeyFunc extracts the group key of a pull request.
type KeyFunc func(model.PullRequest) string

// ByAuthor groups pull requests by author login.
func ByAuthor(pr model.PullRequest) string { return pr.Author }

// ByProject groups pull requests by repository name.
func ByProject(pr model.PullRequest) string { return pr.RepoName }

// Ungrouped puts every pull request in a single group.
func Ungrouped(model.PullRequest) string { return "" }

// GroupBy partitions the pull requests of every range by key, then by range label.
func GroupBy(ranges []model.RangeMetrics, key KeyFunc) GroupedPullRequests {
	grouped := GroupedPullRequests{}
	for _, rm := range ranges {
		label := rm.Range.String()
		for _, pr := range rm.PullRequests {
			k := key(pr)
			if grouped[k] == nil {
				grouped[k] = map[string][]model.PullRequest{}
			}
			grouped[k][label] = append(grouped[k][label], pr)
		}
	}
	return grouped
}

// Aggregate computes the summary metrics of prs. Averages are arithmetic means
// rounded to two decimals; an empty set yields model.EmptyAggregatedMetrics.
func Aggregate(prs []model.PullRequest) model.AggregatedMetrics {
	if len(prs) == 0 {
		return model.EmptyAggregatedMetrics()
	}

	return model.AggregatedMetrics{
		MergedCount:     len(prs),
		AvgAdditions:    average(prs, func(pr model.PullRequest) float64 { return float64(pr.Additions) }),
		AvgDeletions:    average(prs, func(pr model.PullRequest) float64 { return float64(pr.Deletions) }),
		AvgChangedFiles: average(prs, func(pr model.PullRequest) float64 { return float64(pr.ChangedFiles) }),
		AvgHoursToMerge: average(prs, model.PullRequest.HoursToMerge),
	}
}

// average must only be called with a non-empty slice.
func average(prs []model.PullRequest, value func(model.PullRequest) float64) float64 {
	var sum float64
	for _, pr := range prs {
		sum += value(pr)
	}
	return model.Round(sum / float64(len(prs)))
}

// AggregateReviewers tallies, for every reviewer seen in any range and every
// range holding at least one pull request, how the reviewer took part in each
// pull request of the range. Ranges without pull requests get no entry.
func AggregateReviewers(ranges []model.RangeMetrics) ReviewerReport {
	report := ReviewerReport{}
	for _, login := range reviewerLogins(ranges) {
		byRange := map[string]model.ReviewerMetrics{}
		for _, rm := range ranges {
			if len(rm.PullRequests) == 0 {
				continue
			}
			label := rm.Range.String()
			metrics := byRange[label]
			for _, pr := range rm.PullRequests {
				metrics = metrics.Add(TallyReviews(pr.ReviewsBy(login)))
			}
			byRange[label] = metrics
		}
		report[login] = byRange
	}
	return report
}

// TallyReviews reduces one reviewer's reviews on a single pull request to
// per-pull-request counts. An approval takes precedence over a dismissal;
// the other states count independently. Comments are summed.
func TallyReviews(reviews []model.Review) model.ReviewerMetrics {
	states := make(map[model.ReviewState]bool, len(reviews))
	var m model.ReviewerMetrics
	for _, r := range reviews {
		states[r.State] = true
		m.Comments += r.CommentCount
	}

	switch {
	case states[model.ReviewStateApproved]:
		m.Approved = 1
	case states[model.ReviewStateDismissed]:
		m.Dismissed = 1
	}
	if states[model.ReviewStateChangesRequested] {
		m.ChangesRequested = 1
	}
	if states[model.ReviewStatePending] {
		m.Pending = 1
	}

	return m
}

// reviewerLogins returns every distinct reviewer login in first-seen order.
func reviewerLogins(ranges []model.RangeMetrics) []string {
	seen := map[string]bool{}
	var logins []string
	for _, rm := range ranges {
		for _, pr := range rm.PullRequests {
			for _, r := range pr.Reviews {
				if !seen[r.ReviewerLogin] {
					seen[r.ReviewerLogin] = true
					logins = append(logins, r.ReviewerLogin)
				}
			}
		}
	}
	return logins
}
