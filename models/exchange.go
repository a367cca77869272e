package models

import "time"

const ExchangeTable = "rw_exchanges"

// Exchange statuses. rejected and completed are terminal.
const (
	ExchangePending   = "pending"
	ExchangeAccepted  = "accepted"
	ExchangeRejected  = "rejected"
	ExchangeCompleted = "completed"
)

// DefaultPointsAwarded is credited to the offerer when no override is given.
const DefaultPointsAwarded = 10

type Exchange struct {
	ID              string `gorm:"primaryKey;type:uuid" json:"id"`
	OffererID       string `gorm:"type:uuid;index;not null" json:"offererId"`
	ReceiverID      string `gorm:"type:uuid;index;not null" json:"receiverId"`
	OfferedItemID   string `gorm:"type:uuid;index;not null" json:"offeredItemId"`
	RequestedItemID string `gorm:"type:uuid;index;not null" json:"requestedItemId"`

	Status        string `gorm:"size:20;not null;default:'pending'" json:"status"`
	PointsAwarded int    `gorm:"not null;default:10" json:"pointsAwarded"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Exchange) TableName() string { return ExchangeTable }

func ValidExchangeStatus(s string) bool {
	switch s {
	case ExchangePending, ExchangeAccepted, ExchangeRejected, ExchangeCompleted:
		return true
	}
	return false
}

// TerminalExchangeStatus reports whether no further transition is permitted.
func TerminalExchangeStatus(s string) bool {
	return s == ExchangeRejected || s == ExchangeCompleted
}

// CanTransition encodes the lifecycle:
//
//	pending  -> accepted | rejected | completed (admin shortcut)
//	accepted -> completed | rejected (admin override)
//
// The pending -> completed shortcut is a composite transition: callers must
// still reserve both items and pay out points, never skip those side effects.
func CanTransition(from, to string) bool {
	switch from {
	case ExchangePending:
		return to == ExchangeAccepted || to == ExchangeRejected || to == ExchangeCompleted
	case ExchangeAccepted:
		return to == ExchangeCompleted || to == ExchangeRejected
	}
	return false
}
