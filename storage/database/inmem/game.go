package inmemdb

import (
	"sort"

	"github.com/VarunPasupunuri/mind-sprouts/core/game"
)

type gameRepository struct {
	db *gameTable
}

var _ game.Repository = (*gameRepository)(nil) // interface compliance check

func NewGameRepository(db *DB) game.Repository {
	return &gameRepository{db: db.game}
}

func scoreKey(userID, gameID, difficulty string) string {
	return userID + "/" + gameID + "/" + difficulty
}

func (repo *gameRepository) GetHighScore(userID, gameID, difficulty string) (game.HighScore, bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if hs, ok := repo.db.table[scoreKey(userID, gameID, difficulty)]; ok {
		return *hs, true, nil
	}
	return game.HighScore{}, false, nil
}

func (repo *gameRepository) SaveHighScore(hs game.HighScore) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[scoreKey(hs.UserID, hs.GameID, hs.Difficulty)] = &hs
	return nil
}

func (repo *gameRepository) QueryUserHighScores(userID string) ([]game.HighScore, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var scores []game.HighScore
	for _, hs := range repo.db.table {
		if hs.UserID == userID {
			scores = append(scores, *hs)
		}
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].GameID != scores[j].GameID {
			return scores[i].GameID < scores[j].GameID
		}
		return scores[i].Difficulty < scores[j].Difficulty
	})
	return scores, nil
}
