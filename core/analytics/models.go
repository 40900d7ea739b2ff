package analytics

import "time"

// Visit is one qualifying page view. Derived analytics only; never
// authoritative state.
type Visit struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Bucket is one chart window: distinct users seen in [Start, Start+5m).
type Bucket struct {
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}

// Snapshot is the teacher-dashboard aggregate: today's distinct visitors,
// six trailing 5-minute windows oldest first, and the peak window count.
type Snapshot struct {
	TodayVisitors int      `json:"today_visitors"`
	Buckets       []Bucket `json:"buckets"`
	Peak          int      `json:"peak"`
}
