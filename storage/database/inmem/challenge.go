package inmemdb

import (
	"time"

	"github.com/VarunPasupunuri/mind-sprouts/core/challenge"
)

// ecoItemRow stores one user's unlock + placement state.
type ecoItemRow struct {
	unlockedAt time.Time
	placed     bool
	x, y       int
}

type challengeRepository struct {
	db *challengeTable
}

var _ challenge.Repository = (*challengeRepository)(nil) // interface compliance check

func NewChallengeRepository(db *DB) challenge.Repository {
	return &challengeRepository{db: db.challenge}
}

// SetCatalog seeds the fixed challenge and eco-item catalogs.
func (db *DB) SetChallengeCatalog(catalog []challenge.Challenge, items []challenge.EcoItem) {
	db.challenge.Lock()
	defer db.challenge.Unlock()
	db.challenge.catalog = catalog
	db.challenge.items = items
}

func (repo *challengeRepository) QueryAllChallenges() ([]challenge.Challenge, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	catalog := make([]challenge.Challenge, len(repo.db.catalog))
	copy(catalog, repo.db.catalog)
	return catalog, nil
}

func (repo *challengeRepository) GetChallengeByID(id string) (challenge.Challenge, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, ch := range repo.db.catalog {
		if ch.ID == id {
			return ch, nil
		}
	}
	return challenge.Challenge{}, challenge.ErrNotFound
}

func (repo *challengeRepository) IsChallengeCompleted(userID, challengeID string) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.completed[userID][challengeID], nil
}

func (repo *challengeRepository) MarkChallengeCompleted(userID, challengeID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if repo.db.completed[userID] == nil {
		repo.db.completed[userID] = make(map[string]bool)
	}
	repo.db.completed[userID][challengeID] = true
	return nil
}

func (repo *challengeRepository) QueryCompletedChallengeIDs(userID string) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	// preserve catalog order
	var ids []string
	for _, ch := range repo.db.catalog {
		if repo.db.completed[userID][ch.ID] {
			ids = append(ids, ch.ID)
		}
	}
	return ids, nil
}

func (repo *challengeRepository) GetEcoItemByChallenge(challengeID string) (challenge.EcoItem, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, item := range repo.db.items {
		if item.ChallengeID == challengeID {
			return item, nil
		}
	}
	return challenge.EcoItem{}, challenge.ErrItemNotFound
}

func (repo *challengeRepository) getEcoItem(itemID string) (challenge.EcoItem, bool) {
	for _, item := range repo.db.items {
		if item.ID == itemID {
			return item, true
		}
	}
	return challenge.EcoItem{}, false
}

func (repo *challengeRepository) IsEcoItemUnlocked(userID, itemID string) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	_, ok := repo.db.unlocked[userID][itemID]
	return ok, nil
}

func (repo *challengeRepository) UnlockEcoItem(userID, itemID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.getEcoItem(itemID); !ok {
		return challenge.ErrItemNotFound
	}
	if repo.db.unlocked[userID] == nil {
		repo.db.unlocked[userID] = make(map[string]*ecoItemRow)
	}
	if _, ok := repo.db.unlocked[userID][itemID]; !ok {
		repo.db.unlocked[userID][itemID] = &ecoItemRow{unlockedAt: time.Now().UTC()}
	}
	return nil
}

func (repo *challengeRepository) QueryUserEcoItems(userID string) ([]challenge.UserEcoItem, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var items []challenge.UserEcoItem
	for _, item := range repo.db.items {
		row, ok := repo.db.unlocked[userID][item.ID]
		if !ok {
			continue
		}
		items = append(items, challenge.UserEcoItem{
			EcoItem:    item,
			UnlockedAt: row.unlockedAt,
			Placed:     row.placed,
			X:          row.x,
			Y:          row.y,
		})
	}
	return items, nil
}

func (repo *challengeRepository) PlaceEcoItem(userID, itemID string, x, y int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	row, ok := repo.db.unlocked[userID][itemID]
	if !ok {
		return challenge.ErrItemLocked
	}
	row.placed = true
	row.x, row.y = x, y
	return nil
}
