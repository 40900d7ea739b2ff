package game

import "time"

// Difficulties
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var AllDifficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// HighScore is the best score one user reached in one game at one
// difficulty. Scores only ever go up.
type HighScore struct {
	UserID     string    `json:"-"`
	GameID     string    `json:"game_id"`
	Difficulty string    `json:"difficulty"`
	Score      int       `json:"score"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ScoreUpdate is the payload of a high-score submission.
type ScoreUpdate struct {
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Score      int    `json:"score" validate:"gte=0"`
}
