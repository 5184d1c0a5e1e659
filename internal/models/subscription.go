package models

import "time"

type SubscriptionTier string

const (
	TierBasic      SubscriptionTier = "basic"
	TierPro        SubscriptionTier = "pro"
	TierEnterprise SubscriptionTier = "enterprise"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionUnpaid   SubscriptionStatus = "unpaid"
	SubscriptionTrial    SubscriptionStatus = "trial"
)

// ValidTier reports whether t is one of the known subscription tiers.
func ValidTier(t SubscriptionTier) bool {
	switch t {
	case TierBasic, TierPro, TierEnterprise:
		return true
	}
	return false
}

// Subscription is one billing record for a user. Users accumulate rows over
// time; the most recently created row is the current subscription.
type Subscription struct {
	ID                 uint64             `gorm:"primarykey" json:"id"`
	UserID             uint64             `gorm:"index;not null" json:"user_id"`
	Tier               SubscriptionTier   `gorm:"type:varchar(20);not null" json:"tier"`
	Status             SubscriptionStatus `gorm:"type:varchar(20);not null" json:"status"`
	CurrentPeriodStart time.Time          `gorm:"not null" json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `gorm:"not null" json:"current_period_end"`
	CancelAtPeriodEnd  bool               `gorm:"not null;default:false" json:"cancel_at_period_end"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
