package membership

import "time"

const (
	TierFree    = "free"
	TierPremium = "premium"
)

// Membership is keyed by the verified account email. It is written only
// by payment settlement and the lazy free-tier create on first profile
// access; the quota gate holds a read-only view.
type Membership struct {
	Email      string     `gorm:"primaryKey;size:100" json:"email"`
	Tier       string     `gorm:"size:16;default:free" json:"tier"`
	UpgradedAt *time.Time `json:"upgraded_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"-"`
}
