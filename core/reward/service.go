package reward

import (
	"errors"
	"time"

	"github.com/VarunPasupunuri/mind-sprouts/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("reward item not found")
	// ErrInsufficientPoints re-exports the user service sentinel so callers
	// only need this package's errors.
	ErrInsufficientPoints = user.ErrInsufficientPoints
)

type (
	Repository interface {
		QueryAllItems() ([]StoreItem, error)
		GetItemByID(id string) (StoreItem, error)
		SaveRedemption(r Redemption) error
		QueryUserRedemptions(userID string) ([]Redemption, error)
	}

	Service struct {
		repo Repository
		usrs *user.Service
	}
)

func NewService(repo Repository, usrSvc *user.Service) *Service {
	return &Service{repo: repo, usrs: usrSvc}
}

func (svc *Service) QueryAll() ([]StoreItem, error) {
	return svc.repo.QueryAllItems()
}

// Redeem deducts the item's cost and records the redemption. It fails with
// ErrInsufficientPoints — and touches nothing — when the cost exceeds the
// user's balance; the balance can reach exactly zero but never less.
func (svc *Service) Redeem(userID, itemID string) (Redemption, error) {
	item, err := svc.repo.GetItemByID(itemID)
	if err != nil {
		return Redemption{}, err
	}

	if _, err = svc.usrs.SpendPoints(userID, item.Cost); err != nil {
		return Redemption{}, err
	}

	r := Redemption{
		UserID:     userID,
		ItemID:     item.ID,
		Cost:       item.Cost,
		RedeemedAt: time.Now().UTC(),
	}
	if err = svc.repo.SaveRedemption(r); err != nil {
		return Redemption{}, err
	}
	return r, nil
}

// Redemptions lists everything the user has bought.
func (svc *Service) Redemptions(userID string) ([]Redemption, error) {
	return svc.repo.QueryUserRedemptions(userID)
}
