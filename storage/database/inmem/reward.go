package inmemdb

import "github.com/VarunPasupunuri/mind-sprouts/core/reward"

type rewardRepository struct {
	db *rewardTable
}

var _ reward.Repository = (*rewardRepository)(nil) // interface compliance check

func NewRewardRepository(db *DB) reward.Repository {
	return &rewardRepository{db: db.reward}
}

// SetRewardCatalog seeds the fixed store catalog.
func (db *DB) SetRewardCatalog(catalog []reward.StoreItem) {
	db.reward.Lock()
	defer db.reward.Unlock()
	db.reward.catalog = catalog
}

func (repo *rewardRepository) QueryAllItems() ([]reward.StoreItem, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	catalog := make([]reward.StoreItem, len(repo.db.catalog))
	copy(catalog, repo.db.catalog)
	return catalog, nil
}

func (repo *rewardRepository) GetItemByID(id string) (reward.StoreItem, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, item := range repo.db.catalog {
		if item.ID == id {
			return item, nil
		}
	}
	return reward.StoreItem{}, reward.ErrNotFound
}

func (repo *rewardRepository) SaveRedemption(r reward.Redemption) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.redemptions[r.UserID] = append(repo.db.redemptions[r.UserID], r)
	return nil
}

func (repo *rewardRepository) QueryUserRedemptions(userID string) ([]reward.Redemption, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	redemptions := make([]reward.Redemption, len(repo.db.redemptions[userID]))
	copy(redemptions, repo.db.redemptions[userID])
	return redemptions, nil
}
