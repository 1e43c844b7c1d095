package report_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/mergemetrics/internal/adapter/driving/cli/report"
	"github.com/ericfisherdev/mergemetrics/internal/application"
	"github.com/ericfisherdev/mergemetrics/internal/domain/model"
)

var (
	august = model.DateRange{Start: "2020-08-01", End: "2020-08-31"}
	sept   = model.DateRange{Start: "2020-09-01", End: "2020-09-30"}
)

func mergedPR(number int, author, repo string, hours int) model.PullRequest {
	created := time.Date(2020, 8, 3, 9, 0, 0, 0, time.UTC)
	return model.PullRequest{
		NodeID:       repo + "#" + author,
		Number:       number,
		Title:        "Change " + author,
		URL:          "https://github.com/acme/" + repo + "/pull/1",
		Author:       author,
		RepoName:     repo,
		Additions:    10,
		Deletions:    2,
		ChangedFiles: 3,
		CreatedAt:    created,
		Timeline: []model.TimelineEvent{
			{Kind: model.EventMerged, At: created.Add(time.Duration(hours) * time.Hour)},
		},
	}
}

func render(t *testing.T, fn func(r *report.Renderer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fn(report.NewRenderer(&buf, report.NewPalette(false))))
	return buf.String()
}

func assertInOrder(t *testing.T, out string, parts ...string) {
	t.Helper()
	last := -1
	for _, p := range parts {
		idx := strings.Index(out, p)
		require.GreaterOrEqual(t, idx, 0, "missing %q in\n%s", p, out)
		assert.Greater(t, idx, last, "%q out of order in\n%s", p, out)
		last = idx
	}
}

func TestTotals_ComparesWithPreviousRange(t *testing.T) {
	ranges := []model.RangeMetrics{
		{Range: august, PullRequests: []model.PullRequest{mergedPR(1, "alice", "web", 10), mergedPR(2, "bob", "web", 10)}},
		{Range: sept, PullRequests: []model.PullRequest{mergedPR(3, "alice", "web", 5), mergedPR(4, "bob", "web", 5)}},
	}

	out := render(t, func(r *report.Renderer) error { return r.Totals(ranges) })

	assert.True(t, strings.HasPrefix(out, "\n"))
	assertInOrder(t, out, "DATE RANGE", "MERGED PRS", "AVG LEAD TIME", "AVG LINES OF CODE", "AVG CHANGED FILES")
	assertInOrder(t, out, "2020-08-01..2020-08-31", "2020-09-01..2020-09-30")
	assert.Contains(t, out, "2  =")
	assert.Contains(t, out, "5  -50%")
	assert.Contains(t, out, "+10 -2")
	assert.Contains(t, out, "3  =")
}

func TestTotals_EmptyRange(t *testing.T) {
	ranges := []model.RangeMetrics{
		{Range: august, PullRequests: []model.PullRequest{}},
		{Range: sept, PullRequests: []model.PullRequest{mergedPR(1, "alice", "web", 10)}},
	}

	out := render(t, func(r *report.Renderer) error { return r.Totals(ranges) })

	// Lead time, lines of code and changed files of the empty range.
	assert.Equal(t, 3, strings.Count(out, "n/a"))
	assert.Contains(t, out, "1  +100%")
}

func TestGroups_OrderAndContinuationRows(t *testing.T) {
	ranges := []model.RangeMetrics{
		{Range: august, PullRequests: []model.PullRequest{
			mergedPR(1, "bob", "web", 4),
			mergedPR(2, "alice", "web", 4),
			mergedPR(3, "Alice", "web", 4),
		}},
		{Range: sept, PullRequests: []model.PullRequest{mergedPR(4, "bob", "web", 2)}},
	}

	out := render(t, func(r *report.Renderer) error {
		return r.Groups("AUTHOR", ranges, application.GroupBy(ranges, application.ByAuthor))
	})

	assertInOrder(t, out, "AUTHOR", "DATE RANGE", "MERGED PRS")
	assertInOrder(t, out, " Alice ", " alice ", " bob ", " ∟ ")
	assert.Equal(t, 1, strings.Count(out, "∟"))
	assert.Contains(t, out, "2  -50%")
}

func TestGroups_RangesSortedByLabelWithinGroup(t *testing.T) {
	ranges := []model.RangeMetrics{
		{Range: sept, PullRequests: []model.PullRequest{
			mergedPR(2, "alice", "web", 4),
			mergedPR(3, "alice", "api", 4),
			mergedPR(4, "alice", "cli", 4),
		}},
		{Range: august, PullRequests: []model.PullRequest{mergedPR(1, "alice", "web", 4)}},
	}

	out := render(t, func(r *report.Renderer) error {
		return r.Groups("AUTHOR", ranges, application.GroupBy(ranges, application.ByAuthor))
	})

	assertInOrder(t, out, " alice ", "2020-08-01..2020-08-31", " ∟ ", "2020-09-01..2020-09-30")
	assert.Contains(t, out, "3  +200%")
	assert.NotContains(t, out, "-66,67%")
}

func TestReviewers_RangesSortedByLabelWithinGroup(t *testing.T) {
	late := mergedPR(2, "bob", "web", 4)
	late.Reviews = []model.Review{{ReviewerLogin: "carol", State: model.ReviewStateApproved, CommentCount: 3}}
	early := mergedPR(1, "alice", "web", 4)
	early.Reviews = []model.Review{{ReviewerLogin: "carol", State: model.ReviewStateApproved, CommentCount: 1}}
	ranges := []model.RangeMetrics{
		{Range: sept, PullRequests: []model.PullRequest{late}},
		{Range: august, PullRequests: []model.PullRequest{early}},
	}

	out := render(t, func(r *report.Renderer) error {
		return r.Reviewers(ranges, application.AggregateReviewers(ranges))
	})

	assertInOrder(t, out, " carol ", "2020-08-01..2020-08-31", " ∟ ", "2020-09-01..2020-09-30")
	assert.Contains(t, out, "3  +200%")
	assert.Contains(t, out, "1  =")
}

func TestTotals_KeepsRequestOrder(t *testing.T) {
	ranges := []model.RangeMetrics{
		{Range: sept, PullRequests: []model.PullRequest{mergedPR(2, "alice", "web", 4), mergedPR(3, "bob", "web", 4)}},
		{Range: august, PullRequests: []model.PullRequest{mergedPR(1, "alice", "web", 4)}},
	}

	out := render(t, func(r *report.Renderer) error { return r.Totals(ranges) })

	assertInOrder(t, out, "2020-09-01..2020-09-30", "2020-08-01..2020-08-31")
	assert.Contains(t, out, "1  -50%")
}

func TestGroups_SingleRangeHasNoRangeColumn(t *testing.T) {
	ranges := []model.RangeMetrics{
		{Range: august, PullRequests: []model.PullRequest{mergedPR(1, "alice", "web", 4)}},
	}

	out := render(t, func(r *report.Renderer) error {
		return r.Groups("PROJECT", ranges, application.GroupBy(ranges, application.ByProject))
	})

	assert.Contains(t, out, "PROJECT")
	assert.Contains(t, out, " web ")
	assert.NotContains(t, out, "DATE RANGE")
	assert.NotContains(t, out, "%")
}

func TestPullRequests_SortedByNumberWithinRange(t *testing.T) {
	ranges := []model.RangeMetrics{
		{Range: august, PullRequests: []model.PullRequest{mergedPR(7, "bob", "web", 3), mergedPR(2, "alice", "web", 1)}},
	}

	out := render(t, func(r *report.Renderer) error { return r.PullRequests(ranges) })

	assertInOrder(t, out, "PR", "AUTHOR", "LEAD TIME", "LINES OF CODE", "CHANGED FILES")
	assertInOrder(t, out, "Change alice", "Change bob")
	assert.Contains(t, out, "@alice")
	assert.Contains(t, out, "https://github.com/acme/web/pull/1")
	assert.NotContains(t, out, "DATE RANGE")
}

func TestReviewers(t *testing.T) {
	first := mergedPR(1, "alice", "web", 4)
	first.Reviews = []model.Review{
		{ReviewerLogin: "carol", State: model.ReviewStateChangesRequested, CommentCount: 2},
		{ReviewerLogin: "carol", State: model.ReviewStateApproved, CommentCount: 1},
		{ReviewerLogin: "dave", State: model.ReviewStatePending},
	}
	second := mergedPR(2, "bob", "web", 4)
	second.Reviews = []model.Review{
		{ReviewerLogin: "carol", State: model.ReviewStateApproved, CommentCount: 3},
	}
	ranges := []model.RangeMetrics{
		{Range: august, PullRequests: []model.PullRequest{first}},
		{Range: sept, PullRequests: []model.PullRequest{second}},
	}

	out := render(t, func(r *report.Renderer) error {
		return r.Reviewers(ranges, application.AggregateReviewers(ranges))
	})

	assertInOrder(t, out, "REVIEWER", "DATE RANGE", "REVIEWED PRS", "REQUESTED CHANGES PRS", "COMMENTS", "PENDING REVIEWS")
	assertInOrder(t, out, " carol ", " ∟ ", " dave ")
	assert.Contains(t, out, "0  -100%")
	assert.Contains(t, out, "3  =")
}

func TestRender_SelectionOrder(t *testing.T) {
	pr := mergedPR(1, "alice", "web", 4)
	pr.Reviews = []model.Review{{ReviewerLogin: "carol", State: model.ReviewStateApproved}}
	ranges := []model.RangeMetrics{{Range: august, PullRequests: []model.PullRequest{pr}}}

	out := render(t, func(r *report.Renderer) error {
		return r.Render(ranges, model.ReportSelection{PullRequests: true, Authors: true, Projects: true, Reviewers: true})
	})

	assertInOrder(t, out, "LINES OF CODE", "AVG LINES OF CODE", "PROJECT", "REVIEWER", "DATE RANGE")
}

func TestRender_TotalsOnly(t *testing.T) {
	ranges := []model.RangeMetrics{{Range: august, PullRequests: []model.PullRequest{mergedPR(1, "alice", "web", 4)}}}

	out := render(t, func(r *report.Renderer) error { return r.Render(ranges, model.ReportSelection{}) })

	assert.Equal(t, 1, strings.Count(out, "MERGED PRS"))
	assert.NotContains(t, out, "PROJECT")
	assert.NotContains(t, out, "REVIEWER")
}
