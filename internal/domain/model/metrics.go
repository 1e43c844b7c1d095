package model

import "math"

// RangeMetrics holds every pull request merged within a single date range.
type RangeMetrics struct {
	Range        DateRange
	PullRequests []PullRequest
}

// AggregatedMetrics summarizes a set of pull requests. Averages are NaN when
// the set is empty.
type AggregatedMetrics struct {
	MergedCount     int
	AvgAdditions    float64
	AvgDeletions    float64
	AvgChangedFiles float64
	AvgHoursToMerge float64
}

// HasData reports whether the metrics were computed from at least one pull request.
func (m AggregatedMetrics) HasData() bool {
	return m.MergedCount > 0
}

// EmptyAggregatedMetrics returns the metrics of an empty pull request set.
func EmptyAggregatedMetrics() AggregatedMetrics {
	return AggregatedMetrics{
		AvgAdditions:    math.NaN(),
		AvgDeletions:    math.NaN(),
		AvgChangedFiles: math.NaN(),
		AvgHoursToMerge: math.NaN(),
	}
}

// ReviewerMetrics counts, per pull request, how a reviewer took part in a range.
type ReviewerMetrics struct {
	Pending          int
	Approved         int
	Dismissed        int
	ChangesRequested int
	Comments         int
}

// Reviewed returns the number of pull requests the reviewer approved or had a
// review dismissed on.
func (m ReviewerMetrics) Reviewed() int {
	return m.Approved + m.Dismissed
}

// ReportSelection selects which optional reports are rendered. Each flag also
// controls which optional fields are requested from the API.
type ReportSelection struct {
	PullRequests bool
	Authors      bool
	Projects     bool
	Reviewers    bool
}

// Add returns the field-wise sum of m and o.
func (m ReviewerMetrics) Add(o ReviewerMetrics) ReviewerMetrics {
	return ReviewerMetrics{
		Pending:          m.Pending + o.Pending,
		Approved:         m.Approved + o.Approved,
		Dismissed:        m.Dismissed + o.Dismissed,
		ChangesRequested: m.ChangesRequested + o.ChangesRequested,
		Comments:         m.Comments + o.Comments,
	}
}
