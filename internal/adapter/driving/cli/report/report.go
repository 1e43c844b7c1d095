package report

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/ericfisherdev/mergemetrics/internal/application"
	"github.com/ericfisherdev/mergemetrics/internal/domain/model"
)

const (
	columnDateRange = "DATE RANGE"
	continuation    = " ∟"
)

var aggregatedColumns = []string{"MERGED PRS", "AVG LEAD TIME", "AVG LINES OF CODE", "AVG CHANGED FILES"}

// Renderer writes report tables to an output stream. Every table is fully
// built before anything is written.
type Renderer struct {
	out     io.Writer
	palette Palette
}

// NewRenderer creates a Renderer writing to out.
func NewRenderer(out io.Writer, palette Palette) *Renderer {
	return &Renderer{out: out, palette: palette}
}

// Render writes the tables requested by selection, in the order pull
// requests, authors, projects, reviewers, followed by the totals table.
func (r *Renderer) Render(ranges []model.RangeMetrics, selection model.ReportSelection) error {
	if selection.PullRequests {
		if err := r.PullRequests(ranges); err != nil {
			return err
		}
	}
	if selection.Authors {
		if err := r.Groups("AUTHOR", ranges, application.GroupBy(ranges, application.ByAuthor)); err != nil {
			return err
		}
	}
	if selection.Projects {
		if err := r.Groups("PROJECT", ranges, application.GroupBy(ranges, application.ByProject)); err != nil {
			return err
		}
	}
	if selection.Reviewers {
		if err := r.Reviewers(ranges, application.AggregateReviewers(ranges)); err != nil {
			return err
		}
	}
	return r.Totals(ranges)
}

// PullRequests writes one row per merged pull request, ranges in request
// order and pull requests by ascending number within a range.
func (r *Renderer) PullRequests(ranges []model.RangeMetrics) error {
	showRange := len(ranges) > 1
	header := withRange([]string{"PR", "AUTHOR", "LEAD TIME", "LINES OF CODE", "CHANGED FILES"}, columnDateRange, showRange)

	var rows [][]string
	for _, rm := range ranges {
		prs := slices.Clone(rm.PullRequests)
		sort.SliceStable(prs, func(i, j int) bool { return prs[i].Number < prs[j].Number })

		for _, pr := range prs {
			row := []string{
				r.palette.Bold(pr.Title) + "\n" + pr.URL,
				"@" + pr.Author,
				FormatNumber(pr.HoursToMerge()),
				formatLOC(float64(pr.Additions), float64(pr.Deletions)),
				FormatNumber(float64(pr.ChangedFiles)),
			}
			rows = append(rows, withRange(row, rm.Range.String(), showRange))
		}
	}

	return r.write(header, rows)
}

// Groups writes aggregated metrics per group key and range. Within a group,
// ranges are ordered by label. keyColumn names the first column.
func (r *Renderer) Groups(keyColumn string, ranges []model.RangeMetrics, grouped application.GroupedPullRequests) error {
	showRange := len(ranges) > 1
	header := withRange(append([]string{keyColumn}, aggregatedColumns...), columnDateRange, showRange)

	var rows [][]string
	for _, key := range sortedKeys(grouped) {
		labels := sortedLabels(grouped[key])
		metrics := make([]model.AggregatedMetrics, len(labels))
		for i, label := range labels {
			metrics[i] = application.Aggregate(grouped[key][label])
		}

		for i, cells := range r.aggregatedCells(metrics) {
			row := append([]string{r.groupLabel(key, i)}, cells...)
			rows = append(rows, withRange(row, labels[i], showRange))
		}
	}

	return r.write(header, rows)
}

// Reviewers writes review participation per reviewer and range, ranges
// ordered by label within a reviewer.
func (r *Renderer) Reviewers(ranges []model.RangeMetrics, report application.ReviewerReport) error {
	showRange := len(ranges) > 1
	header := withRange(
		[]string{"REVIEWER", "REVIEWED PRS", "REQUESTED CHANGES PRS", "COMMENTS", "PENDING REVIEWS"},
		columnDateRange, showRange,
	)

	var rows [][]string
	for _, login := range sortedKeys(report) {
		labels := sortedLabels(report[login])
		metrics := make([]model.ReviewerMetrics, len(labels))
		for i, label := range labels {
			metrics[i] = report[login][label]
		}

		reviewed := CompareSeries(series(metrics, func(m model.ReviewerMetrics) float64 { return float64(m.Reviewed()) }), HigherIsBetter)
		changes := CompareSeries(series(metrics, func(m model.ReviewerMetrics) float64 { return float64(m.ChangesRequested) }), HigherIsBetter)
		comments := CompareSeries(series(metrics, func(m model.ReviewerMetrics) float64 { return float64(m.Comments) }), HigherIsBetter)

		for i, m := range metrics {
			row := []string{
				r.groupLabel(login, i),
				reviewed[i].Render(r.palette),
				changes[i].Render(r.palette),
				comments[i].Render(r.palette),
				FormatNumber(float64(m.Pending)),
			}
			rows = append(rows, withRange(row, labels[i], showRange))
		}
	}

	return r.write(header, rows)
}

// Totals writes one row per range in request order, with every pull request
// of the range aggregated. A range without pull requests shows zero merged
// pull requests and no averages.
func (r *Renderer) Totals(ranges []model.RangeMetrics) error {
	header := append([]string{columnDateRange}, aggregatedColumns...)

	metrics := make([]model.AggregatedMetrics, len(ranges))
	for i, rm := range ranges {
		metrics[i] = application.Aggregate(rm.PullRequests)
	}

	rows := make([][]string, 0, len(ranges))
	for i, cells := range r.aggregatedCells(metrics) {
		rows = append(rows, append([]string{r.palette.Bold(ranges[i].Range.String())}, cells...))
	}

	return r.write(header, rows)
}

func (r *Renderer) aggregatedCells(metrics []model.AggregatedMetrics) [][]string {
	merged := CompareSeries(series(metrics, func(m model.AggregatedMetrics) float64 { return float64(m.MergedCount) }), HigherIsBetter)
	leadTime := CompareSeries(series(metrics, func(m model.AggregatedMetrics) float64 { return m.AvgHoursToMerge }), LowerIsBetter)
	changedFiles := CompareSeries(series(metrics, func(m model.AggregatedMetrics) float64 { return m.AvgChangedFiles }), LowerIsBetter)

	cells := make([][]string, len(metrics))
	for i, m := range metrics {
		cells[i] = []string{
			merged[i].Render(r.palette),
			leadTime[i].Render(r.palette),
			aggregatedLOC(m),
			changedFiles[i].Render(r.palette),
		}
	}
	return cells
}

func aggregatedLOC(m model.AggregatedMetrics) string {
	if !m.HasData() {
		return noData
	}
	return formatLOC(m.AvgAdditions, m.AvgDeletions)
}

// groupLabel shows the key on the first row of a group only.
func (r *Renderer) groupLabel(key string, row int) string {
	if row == 0 {
		return r.palette.Bold(key)
	}
	return continuation
}

func (r *Renderer) write(header []string, rows [][]string) error {
	styled := make([]string, len(header))
	for i, h := range header {
		styled[i] = r.palette.Bold(h)
	}

	if _, err := fmt.Fprint(r.out, "\n"+RenderTable(styled, rows)); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}

// withRange inserts the range column right after the first column.
func withRange(row []string, value string, show bool) []string {
	if !show {
		return row
	}
	return slices.Insert(slices.Clone(row), 1, value)
}

// sortedKeys orders group keys case-insensitively, ties broken by the raw key.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := strings.ToLower(keys[i]), strings.ToLower(keys[j])
		if li != lj {
			return li < lj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// sortedLabels returns the range labels of a group in ascending order. Each
// range is diffed against the one sorted right before it.
func sortedLabels[V any](byRange map[string]V) []string {
	labels := make([]string, 0, len(byRange))
	for label := range byRange {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func series[T any](items []T, value func(T) float64) []float64 {
	values := make([]float64, len(items))
	for i, item := range items {
		values[i] = value(item)
	}
	return values
}
