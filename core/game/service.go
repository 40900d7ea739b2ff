package game

import (
	"errors"
	"time"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

type (
	Repository interface {
		GetHighScore(userID, gameID, difficulty string) (HighScore, bool, error)
		SaveHighScore(hs HighScore) error
		QueryUserHighScores(userID string) ([]HighScore, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpdateHighScore stores the score only when it strictly beats the current
// record for the (gameID, difficulty) pair. The stored value never
// decreases. improved reports whether the record changed.
func (svc *Service) UpdateHighScore(userID, gameID, difficulty string, score int) (HighScore, bool, error) {
	if !validDifficulty(difficulty) {
		return HighScore{}, false, ErrUnknownDifficulty
	}

	curr, ok, err := svc.repo.GetHighScore(userID, gameID, difficulty)
	if err != nil {
		return HighScore{}, false, err
	}
	if ok && score <= curr.Score {
		return curr, false, nil
	}

	hs := HighScore{
		UserID:     userID,
		GameID:     gameID,
		Difficulty: difficulty,
		Score:      score,
		UpdatedAt:  time.Now().UTC(),
	}
	if err = svc.repo.SaveHighScore(hs); err != nil {
		return HighScore{}, false, err
	}
	return hs, true, nil
}

// Scores returns every high score the user holds.
func (svc *Service) Scores(userID string) ([]HighScore, error) {
	return svc.repo.QueryUserHighScores(userID)
}

func validDifficulty(d string) bool {
	for _, known := range AllDifficulties {
		if d == known {
			return true
		}
	}
	return false
}
