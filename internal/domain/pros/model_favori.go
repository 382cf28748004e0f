package pros

import (
	"time"

	"teranga-pro/internal/domain/users"
)

// ContactFavori is a client's saved professional ("Mes Contacts" tab).
type ContactFavori struct {
	ID      uint       `gorm:"primaryKey"`
	OwnerID uint       `gorm:"not null;index;uniqueIndex:idx_favori_owner_pro"`
	Owner   users.User `gorm:"foreignKey:OwnerID"`

	ProfileID uint       `gorm:"not null;index;uniqueIndex:idx_favori_owner_pro"`
	Profile   ProProfile `gorm:"foreignKey:ProfileID"`

	CreatedAt time.Time
}
