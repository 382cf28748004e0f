package users

import (
	"strings"
	"time"
)

const (
	RoleClient = "CLIENT"
	RolePro    = "PRO"
	RoleAdmin  = "ADMIN"
)

type User struct {
	ID    uint    `gorm:"primaryKey"`
	Phone string  `gorm:"size:32;not null;uniqueIndex:idx_users_phone"`
	Email *string `gorm:"size:160"`

	Password *string

	Role             string `gorm:"size:10;not null;default:'CLIENT'"`
	WhatsappVerified bool
	IsActive         bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizePhone strips spaces so "+221 77 123 45 67" and "+221771234567"
// resolve to the same account.
func NormalizePhone(phone string) string {
	return strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
}
