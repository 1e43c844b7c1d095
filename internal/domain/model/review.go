package model

// Review represents a review submitted on a pull request.
type Review struct {
	ReviewerLogin string
	State         ReviewState
	CommentCount  int
}
