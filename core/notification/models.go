package notification

import (
	"encoding/json"
	"time"
)

// Notification types
const (
	TypeChallenge = "challenge"
	TypeReward    = "reward"
	TypeSystem    = "system"
)

// Notification is one feed entry. Title and message are i18n keys resolved
// client-side. Read is monotonic false->true except through ClearRead.
type Notification struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	Type       string    `json:"type"`
	TitleKey   string    `json:"title_key"`
	MessageKey string    `json:"message_key"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
	RelatedID  string    `json:"related_id,omitempty"`
}

// Prefs is the per-user notification preference blob; stored opaque and
// overwritten wholesale, never merged.
type Prefs json.RawMessage

func (p Prefs) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("{}"), nil
	}
	return json.RawMessage(p).MarshalJSON()
}

func (p *Prefs) UnmarshalJSON(data []byte) error {
	*p = append((*p)[:0], data...)
	return nil
}
