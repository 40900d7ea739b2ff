package inmemdb

import (
	"sort"

	"github.com/VarunPasupunuri/mind-sprouts/core/notification"
)

type notificationRepository struct {
	db *notificationTable
}

var _ notification.Repository = (*notificationRepository)(nil) // interface compliance check

func NewNotificationRepository(db *DB) notification.Repository {
	return &notificationRepository{db: db.notification}
}

func (repo *notificationRepository) QueryUserNotifications(userID string) ([]notification.Notification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	notifs := make([]notification.Notification, 0, len(repo.db.table[userID]))
	for _, n := range repo.db.table[userID] {
		notifs = append(notifs, *n)
	}
	// newest first
	sort.SliceStable(notifs, func(i, j int) bool { return notifs[i].Timestamp.After(notifs[j].Timestamp) })
	return notifs, nil
}

func (repo *notificationRepository) GetNotification(userID, id string) (notification.Notification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, n := range repo.db.table[userID] {
		if n.ID == id {
			return *n, nil
		}
	}
	return notification.Notification{}, notification.ErrNotFound
}

func (repo *notificationRepository) SaveNotification(n notification.Notification) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for i, existing := range repo.db.table[n.UserID] {
		if existing.ID == n.ID {
			repo.db.table[n.UserID][i] = &n
			return nil
		}
	}
	repo.db.table[n.UserID] = append(repo.db.table[n.UserID], &n)
	return nil
}

func (repo *notificationRepository) DeleteNotifications(userID string, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := repo.db.table[userID][:0]
	for _, n := range repo.db.table[userID] {
		if !drop[n.ID] {
			kept = append(kept, n)
		}
	}
	repo.db.table[userID] = kept
	return nil
}

func (repo *notificationRepository) GetPrefs(userID string) (notification.Prefs, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.prefs[userID], nil
}

func (repo *notificationRepository) SavePrefs(userID string, p notification.Prefs) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.prefs[userID] = p
	return nil
}
