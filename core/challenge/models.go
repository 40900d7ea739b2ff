package challenge

import "time"

// Challenge categories
const (
	CategoryRecycling    = "recycling"
	CategoryEnergy       = "energy"
	CategoryWater        = "water"
	CategoryBiodiversity = "biodiversity"
	CategoryTransport    = "transport"
)

// Challenge is a fixed catalog entry. The catalog is seeded at startup and
// never mutated; per-user completion lives in its own table.
type Challenge struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Points      int    `json:"points"`
}

// UserChallenge is a catalog entry decorated with one user's completion flag.
type UserChallenge struct {
	Challenge
	Completed bool `json:"completed"`
}

// EcoItem is a cosmetic unlock bound to a specific challenge; unlocked at
// most once per user when that challenge is first completed.
type EcoItem struct {
	ID          string `json:"id"`
	ChallengeID string `json:"challenge_id"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
}

// UserEcoItem is an unlocked eco-item, optionally placed in the user's
// virtual space.
type UserEcoItem struct {
	EcoItem
	UnlockedAt time.Time `json:"unlocked_at"`
	Placed     bool      `json:"placed"`
	X          int       `json:"x"`
	Y          int       `json:"y"`
}

// CompleteResult reports what a completion attempt actually did.
// A repeated or unknown-id call yields the zero value: nothing happened.
type CompleteResult struct {
	Completed     bool     `json:"completed"`
	PointsAwarded int      `json:"points_awarded"`
	UnlockedItem  *EcoItem `json:"unlocked_item,omitempty"`
}

// PlaceEcoItem carries placement coordinates; re-placing is idempotent.
type PlaceEcoItem struct {
	X int `json:"x"`
	Y int `json:"y"`
}
