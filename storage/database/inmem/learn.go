package inmemdb

import "github.com/VarunPasupunuri/mind-sprouts/core/learn"

type learnRepository struct {
	db *learnTable
}

var _ learn.Repository = (*learnRepository)(nil) // interface compliance check

func NewLearnRepository(db *DB) learn.Repository {
	return &learnRepository{db: db.learn}
}

func (repo *learnRepository) IsContentCompleted(userID, topicID, contentID string) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, c := range repo.db.table[userID] {
		if c.TopicID == topicID && c.ContentID == contentID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *learnRepository) SaveCompletion(c learn.Completion) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[c.UserID] = append(repo.db.table[c.UserID], c)
	return nil
}

func (repo *learnRepository) QueryUserCompletions(userID string) ([]learn.Completion, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	completions := make([]learn.Completion, len(repo.db.table[userID]))
	copy(completions, repo.db.table[userID])
	return completions, nil
}
