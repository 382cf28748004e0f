package billing

import (
	"time"

	"teranga-pro/internal/domain/users"
)

const (
	SubscriptionActive   = "ACTIVE"
	SubscriptionExpired  = "EXPIRED"
	SubscriptionCanceled = "CANCELED"
)

// Subscription is the entitlement window granting public visibility.
// One row per user is logically current; renewals mutate it in place.
type Subscription struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;index:idx_subscriptions_user_status"`
	User   users.User

	Status string `gorm:"size:20;not null;default:'EXPIRED';index:idx_subscriptions_user_status"`

	StartAt *time.Time
	// EndAt nil on an ACTIVE row means the subscription never expires
	// (manually granted by an admin). The expiry sweep skips those rows.
	EndAt *time.Time `gorm:"index"`

	LastPaymentID *uint
	LastPayment   *Payment `gorm:"foreignKey:LastPaymentID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the subscription entitles its user at instant now.
func (s *Subscription) IsActive(now time.Time) bool {
	if s.Status != SubscriptionActive {
		return false
	}
	if s.EndAt == nil {
		return true
	}
	return now.Before(*s.EndAt)
}
