package learn

import "time"

// Completion records that a user finished one piece of learning content
// under a topic. Recorded once; points awarded exactly once.
type Completion struct {
	UserID      string    `json:"-"`
	TopicID     string    `json:"topic_id"`
	ContentID   string    `json:"content_id"`
	Points      int       `json:"points"`
	CompletedAt time.Time `json:"completed_at"`
}

// MaxContentPoints caps the award for a single piece of content.
const MaxContentPoints = 50

// CompleteContent is the payload of a content completion call.
type CompleteContent struct {
	Points int `json:"points" validate:"gte=0,lte=50"`
}
