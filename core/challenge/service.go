package challenge

import (
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/VarunPasupunuri/mind-sprouts/core/user"
)

var (
	// errors
	ErrNotFound     = errors.New("challenge not found")
	ErrItemNotFound = errors.New("eco item not found")
	ErrItemLocked   = errors.New("eco item not unlocked")
)

type (
	Repository interface {
		QueryAllChallenges() ([]Challenge, error)
		GetChallengeByID(id string) (Challenge, error)
		IsChallengeCompleted(userID, challengeID string) (bool, error)
		MarkChallengeCompleted(userID, challengeID string) error
		QueryCompletedChallengeIDs(userID string) ([]string, error)

		GetEcoItemByChallenge(challengeID string) (EcoItem, error)
		IsEcoItemUnlocked(userID, itemID string) (bool, error)
		UnlockEcoItem(userID, itemID string) error
		QueryUserEcoItems(userID string) ([]UserEcoItem, error)
		PlaceEcoItem(userID, itemID string, x, y int) error
	}

	Service struct {
		repo Repository
		usrs *user.Service
	}
)

func NewService(repo Repository, usrSvc *user.Service) *Service {
	return &Service{repo: repo, usrs: usrSvc}
}

// QueryAll returns the catalog decorated with the user's completion flags,
// in seeded catalog order.
func (svc *Service) QueryAll(userID string) ([]UserChallenge, error) {
	catalog, err := svc.repo.QueryAllChallenges()
	if err != nil {
		return nil, err
	}
	doneIDs, err := svc.repo.QueryCompletedChallengeIDs(userID)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(doneIDs))
	for _, id := range doneIDs {
		done[id] = true
	}

	all := make([]UserChallenge, 0, len(catalog))
	for _, ch := range catalog {
		all = append(all, UserChallenge{Challenge: ch, Completed: done[ch.ID]})
	}
	return all, nil
}

// Complete marks the challenge done for the user, awards its points and
// unlocks any bound eco-item. It is idempotent: an unknown id or an
// already-completed challenge yields a zero result and no state change.
func (svc *Service) Complete(userID, challengeID string) (CompleteResult, error) {
	ch, err := svc.repo.GetChallengeByID(challengeID)
	if err != nil {
		if err == ErrNotFound {
			return CompleteResult{}, nil
		}
		return CompleteResult{}, err
	}

	done, err := svc.repo.IsChallengeCompleted(userID, challengeID)
	if err != nil {
		return CompleteResult{}, err
	}
	if done {
		return CompleteResult{}, nil
	}

	if err = svc.repo.MarkChallengeCompleted(userID, challengeID); err != nil {
		return CompleteResult{}, err
	}
	if _, err = svc.usrs.AwardChallengePoints(userID, ch.Points); err != nil {
		return CompleteResult{}, pkgerrors.Wrap(err, "awarding challenge points")
	}

	res := CompleteResult{Completed: true, PointsAwarded: ch.Points}

	// at most one unlock per challenge
	item, err := svc.repo.GetEcoItemByChallenge(challengeID)
	if err != nil {
		if err == ErrItemNotFound {
			return res, nil
		}
		return res, err
	}
	unlocked, err := svc.repo.IsEcoItemUnlocked(userID, item.ID)
	if err != nil {
		return res, err
	}
	if !unlocked {
		if err = svc.repo.UnlockEcoItem(userID, item.ID); err != nil {
			return res, err
		}
		res.UnlockedItem = &item
	}
	return res, nil
}

// FirstIncomplete returns the first catalog challenge the user has not
// completed yet; ok is false when everything is done.
func (svc *Service) FirstIncomplete(userID string) (Challenge, bool, error) {
	all, err := svc.QueryAll(userID)
	if err != nil {
		return Challenge{}, false, err
	}
	for _, ch := range all {
		if !ch.Completed {
			return ch.Challenge, true, nil
		}
	}
	return Challenge{}, false, nil
}

// EcoItems returns the user's unlocked items with their placements.
func (svc *Service) EcoItems(userID string) ([]UserEcoItem, error) {
	return svc.repo.QueryUserEcoItems(userID)
}

// Place records coordinates for an unlocked item; calling it again simply
// moves the item.
func (svc *Service) Place(userID, itemID string, p PlaceEcoItem) error {
	unlocked, err := svc.repo.IsEcoItemUnlocked(userID, itemID)
	if err != nil {
		return err
	}
	if !unlocked {
		return ErrItemLocked
	}
	return svc.repo.PlaceEcoItem(userID, itemID, p.X, p.Y)
}
