package payment

import "time"

const StatusSucceeded = "succeeded"

// Payment is the confirmation record reported back by the client after
// the external processor settles an intent. payment_intent_id is the
// idempotency key: the unique index makes replays harmless.
type Payment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Email           string    `gorm:"size:100;index" json:"email"`
	Amount          int64     `json:"amount"`
	Currency        string    `gorm:"size:8;default:usd" json:"currency"`
	Status          string    `gorm:"size:24" json:"status"`
	PaymentIntentID string    `gorm:"uniqueIndex;size:64" json:"payment_intent_id"`
	MembershipType  string    `gorm:"size:16" json:"membership_type"`
	CreatedAt       time.Time `json:"created_at"`
}
