package reward

import "time"

// StoreItem is a fixed catalog entry of the rewards shop.
type StoreItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Cost     int    `json:"cost"`
}

// Redemption records one item bought with points.
type Redemption struct {
	UserID     string    `json:"-"`
	ItemID     string    `json:"item_id"`
	Cost       int       `json:"cost"`
	RedeemedAt time.Time `json:"redeemed_at"`
}
