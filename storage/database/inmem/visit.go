package inmemdb

import (
	"time"

	"github.com/VarunPasupunuri/mind-sprouts/core/analytics"
)

type visitRepository struct {
	db *visitTable
}

var _ analytics.Repository = (*visitRepository)(nil) // interface compliance check

func NewVisitRepository(db *DB) analytics.Repository {
	return &visitRepository{db: db.visit}
}

func (repo *visitRepository) AppendVisit(v analytics.Visit, pruneBefore time.Time) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	kept := repo.db.log[:0]
	for _, old := range repo.db.log {
		if !old.Timestamp.Before(pruneBefore) {
			kept = append(kept, old)
		}
	}
	repo.db.log = append(kept, v)
	return nil
}

func (repo *visitRepository) LastVisit(userID string) (time.Time, bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var last time.Time
	var found bool
	for _, v := range repo.db.log {
		if v.UserID == userID && v.Timestamp.After(last) {
			last, found = v.Timestamp, true
		}
	}
	return last, found, nil
}

func (repo *visitRepository) QueryVisitsSince(t time.Time) ([]analytics.Visit, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var visits []analytics.Visit
	for _, v := range repo.db.log {
		if !v.Timestamp.Before(t) {
			visits = append(visits, v)
		}
	}
	return visits, nil
}
