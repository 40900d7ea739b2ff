package notification

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/VarunPasupunuri/mind-sprouts/core/challenge"
)

var ErrNotFound = errors.New("notification not found")

type (
	Repository interface {
		QueryUserNotifications(userID string) ([]Notification, error)
		GetNotification(userID, id string) (Notification, error)
		SaveNotification(n Notification) error
		DeleteNotifications(userID string, ids ...string) error

		GetPrefs(userID string) (Prefs, error)
		SavePrefs(userID string, p Prefs) error
	}

	Service struct {
		repo Repository
		chls *challenge.Service
	}
)

func NewService(repo Repository, chlSvc *challenge.Service) *Service {
	return &Service{repo: repo, chls: chlSvc}
}

// Feed refreshes the synthetic challenge reminder and returns the user's
// notifications, newest first.
func (svc *Service) Feed(userID string) ([]Notification, error) {
	if err := svc.SyncChallengeReminder(userID); err != nil {
		return nil, err
	}
	return svc.repo.QueryUserNotifications(userID)
}

// SyncChallengeReminder derives the single "new challenge" notification
// pointing at the first incomplete challenge. An existing reminder with the
// same RelatedID suppresses the insert; reminders for other challenges
// (already completed ones) are dropped so exactly one exists at a time.
func (svc *Service) SyncChallengeReminder(userID string) error {
	next, ok, err := svc.chls.FirstIncomplete(userID)
	if err != nil {
		return err
	}

	existing, err := svc.repo.QueryUserNotifications(userID)
	if err != nil {
		return err
	}

	var stale []string
	var current bool
	for _, n := range existing {
		if n.Type != TypeChallenge {
			continue
		}
		if ok && n.RelatedID == next.ID {
			current = true
			continue
		}
		stale = append(stale, n.ID)
	}
	if len(stale) > 0 {
		if err = svc.repo.DeleteNotifications(userID, stale...); err != nil {
			return err
		}
	}
	if !ok || current {
		return nil
	}

	return svc.repo.SaveNotification(Notification{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       TypeChallenge,
		TitleKey:   "notifications.new_challenge.title",
		MessageKey: "notifications.new_challenge.message",
		Timestamp:  time.Now().UTC(),
		RelatedID:  next.ID,
	})
}

// MarkRead flips a single notification to read; already-read is a no-op.
func (svc *Service) MarkRead(userID, id string) error {
	n, err := svc.repo.GetNotification(userID, id)
	if err != nil {
		return err
	}
	if n.Read {
		return nil
	}
	n.Read = true
	return svc.repo.SaveNotification(n)
}

// MarkAllRead flips every unread notification to read.
func (svc *Service) MarkAllRead(userID string) error {
	all, err := svc.repo.QueryUserNotifications(userID)
	if err != nil {
		return err
	}
	for _, n := range all {
		if n.Read {
			continue
		}
		n.Read = true
		if err = svc.repo.SaveNotification(n); err != nil {
			return err
		}
	}
	return nil
}

// ClearRead removes only already-read entries.
func (svc *Service) ClearRead(userID string) error {
	all, err := svc.repo.QueryUserNotifications(userID)
	if err != nil {
		return err
	}
	var read []string
	for _, n := range all {
		if n.Read {
			read = append(read, n.ID)
		}
	}
	if len(read) == 0 {
		return nil
	}
	return svc.repo.DeleteNotifications(userID, read...)
}

func (svc *Service) GetPrefs(userID string) (Prefs, error) {
	return svc.repo.GetPrefs(userID)
}

// SavePrefs overwrites the preference blob wholesale.
func (svc *Service) SavePrefs(userID string, p Prefs) error {
	return svc.repo.SavePrefs(userID, p)
}
