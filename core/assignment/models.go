package assignment

import "time"

// Submission statuses. The machine is
// NOT_STARTED -> SUBMITTED -> {APPROVED, REJECTED}; REJECTED -> SUBMITTED
// is the only back-edge and APPROVED is terminal.
const (
	StatusNotStarted = "NOT_STARTED"
	StatusSubmitted  = "SUBMITTED"
	StatusApproved   = "APPROVED"
	StatusRejected   = "REJECTED"
)

// Assignment is a fixed catalog entry set by teachers.
type Assignment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Points      int       `json:"points"`
	DueDate     time.Time `json:"due_date,omitempty"`
}

// Submission is one user's state for one assignment. Attempt increments on
// every (re)submission; a deferred auto-approval only fires for the attempt
// it was scheduled against.
type Submission struct {
	AssignmentID string    `json:"assignment_id"`
	UserID       string    `json:"-"`
	Status       string    `json:"status"`
	Content      string    `json:"content,omitempty"`
	Attempt      int       `json:"attempt"`
	SubmittedAt  time.Time `json:"submitted_at,omitempty"`
	ReviewedAt   time.Time `json:"reviewed_at,omitempty"`
}

// UserAssignment is a catalog entry decorated with one user's submission
// state; Status is NOT_STARTED when nothing was submitted yet.
type UserAssignment struct {
	Assignment
	Status      string    `json:"status"`
	Attempt     int       `json:"attempt,omitempty"`
	SubmittedAt time.Time `json:"submitted_at,omitempty"`
}

// SubmitAssignment is the payload of a submission.
type SubmitAssignment struct {
	Content string `json:"content" validate:"required"`
}

// ReviewAssignment is a teacher's explicit verdict.
type ReviewAssignment struct {
	Approve bool `json:"approve"`
}
