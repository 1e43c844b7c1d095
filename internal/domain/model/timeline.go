package model

import "time"

// TimelineEvent is a single lifecycle event of a pull request.
type TimelineEvent struct {
	Kind TimelineEventKind
	At   time.Time
}

// leadTime is the accumulator folded over a pull request timeline.
// activeSince is nil while the pull request is a draft or closed.
type leadTime struct {
	activeSince *time.Time
	hours       float64
}

func (lt leadTime) step(ev TimelineEvent) leadTime {
	switch ev.Kind {
	case EventClosed, EventMerged, EventConvertToDraft:
		if lt.activeSince != nil {
			lt.hours += elapsedHours(*lt.activeSince, ev.At)
		}
		lt.activeSince = nil
	case EventReadyForReview, EventReopened:
		at := ev.At
		lt.activeSince = &at
	}
	return lt
}

// elapsedHours measures whole minutes between from and to, expressed in hours.
func elapsedHours(from, to time.Time) float64 {
	minutes := int64(to.Sub(from) / time.Minute)
	return float64(minutes) / 60
}

// HoursToMerge returns the hours the pull request spent reviewable: from
// creation (or from its first ready-for-review event, for PRs opened as
// drafts) until merge, excluding draft periods and closed periods. An interval
// that is never closed by a close, merge or convert-to-draft event is not
// counted.
func (pr PullRequest) HoursToMerge() float64 {
	start := pr.CreatedAt
	if len(pr.Timeline) > 0 && pr.Timeline[0].Kind == EventReadyForReview {
		start = pr.Timeline[0].At
	}

	acc := leadTime{activeSince: &start}
	for _, ev := range pr.Timeline {
		acc = acc.step(ev)
	}

	return Round(acc.hours)
}
