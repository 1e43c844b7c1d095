package model

// ReviewState represents the state of a review. Values match the GitHub
// GraphQL PullRequestReviewState enum.
type ReviewState string

const (
	ReviewStatePending          ReviewState = "PENDING"
	ReviewStateCommented        ReviewState = "COMMENTED"
	ReviewStateApproved         ReviewState = "APPROVED"
	ReviewStateChangesRequested ReviewState = "CHANGES_REQUESTED"
	ReviewStateDismissed        ReviewState = "DISMISSED"
)

// TimelineEventKind identifies a pull request timeline event. Values match the
// GraphQL __typename of the event.
type TimelineEventKind string

const (
	EventReadyForReview TimelineEventKind = "ReadyForReviewEvent"
	EventConvertToDraft TimelineEventKind = "ConvertToDraftEvent"
	EventClosed         TimelineEventKind = "ClosedEvent"
	EventMerged         TimelineEventKind = "MergedEvent"
	EventReopened       TimelineEventKind = "ReopenedEvent"
)

// TimelineEventKinds lists every kind requested from the timeline, in the
// GraphQL item type spelling.
var TimelineEventKinds = []string{
	"READY_FOR_REVIEW_EVENT",
	"CONVERT_TO_DRAFT_EVENT",
	"CLOSED_EVENT",
	"REOPENED_EVENT",
	"MERGED_EVENT",
}
