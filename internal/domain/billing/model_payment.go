package billing

import (
	"time"

	"teranga-pro/internal/domain/users"
)

const (
	ProviderBictorys = "BICTORYS"

	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentFailed   = "FAILED"
	PaymentCanceled = "CANCELED"
)

// Payment is one row per checkout attempt. It reaches a terminal status
// exactly once (webhook) and is immutable afterwards.
type Payment struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;index"`
	User   users.User

	Provider string `gorm:"size:20;not null;default:'BICTORYS'"`

	// ProviderRef correlates webhook callbacks with this row.
	ProviderRef string `gorm:"size:120;not null;uniqueIndex:idx_payments_provider_ref"`

	Amount   int    `gorm:"not null"`
	Currency string `gorm:"size:8;not null;default:'XOF'"`

	Status string `gorm:"size:20;not null;default:'PENDING';index"`

	// Raw provider JSON kept for audit.
	Payload []byte `gorm:"type:jsonb"`

	CreatedAt time.Time
	PaidAt    *time.Time
}

func (p *Payment) IsTerminal() bool {
	return p.Status != PaymentPending
}
