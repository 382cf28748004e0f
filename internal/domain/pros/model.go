package pros

import (
	"fmt"
	"time"

	"teranga-pro/internal/domain/catalog"
	"teranga-pro/internal/domain/users"

	"gorm.io/gorm"
)

const (
	StatusOnline  = "ONLINE"
	StatusOffline = "OFFLINE"
)

// ProProfile is the public face of a PRO user. IsPublished is the visibility
// flag; every mutation of it goes through visibility.go.
type ProProfile struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;uniqueIndex:idx_pro_profiles_user"`
	User   users.User

	BusinessName string `gorm:"size:160;not null"`

	JobID uint        `gorm:"index;not null"`
	Job   catalog.Job `gorm:"foreignKey:JobID"`

	LocationID uint             `gorm:"index;not null"`
	Location   catalog.Location `gorm:"foreignKey:LocationID"`

	InterventionAreas []catalog.Location `gorm:"many2many:pro_intervention_areas"`

	Slug        string `gorm:"size:200;uniqueIndex:idx_pro_profiles_slug"`
	Description string `gorm:"type:text"`

	CallPhone     string `gorm:"size:32;not null"`
	WhatsappPhone string `gorm:"size:32;not null"`

	Avatar *string `gorm:"size:255"`

	Media []MediaPro `gorm:"foreignKey:ProfileID"`

	OnlineStatus string `gorm:"size:10;not null;default:'ONLINE'"`

	IsPublished bool `gorm:"default:false"`

	Latitude  *float64
	Longitude *float64

	AvgRating   float64 `gorm:"default:0"`
	RatingCount uint    `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsComplete reports whether the profile satisfies the publish completeness
// guard: business name, both phone numbers, job and base location.
func (p *ProProfile) IsComplete() bool {
	return p.BusinessName != "" &&
		p.CallPhone != "" &&
		p.WhatsappPhone != "" &&
		p.JobID != 0 &&
		p.LocationID != 0
}

// HasCoordinates reports whether the profile can be ranked by distance.
func (p *ProProfile) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// EnsureSlug generates and persists the profile slug
// ("plombier-dakar-ndiaye-services-42") once. Call after Create, with Job and
// Location preloaded.
func EnsureSlug(db *gorm.DB, p *ProProfile) (string, error) {
	if p.Slug != "" {
		return p.Slug, nil
	}
	if p.ID == 0 {
		return "", fmt.Errorf("profile ID missing (call EnsureSlug after Create)")
	}

	base := catalog.Slugify(fmt.Sprintf("%s %s %s", p.Job.Name, p.Location.Name, p.BusinessName))
	if len(base) > 180 {
		base = base[:180]
	}
	slug := fmt.Sprintf("%s-%d", base, p.UserID)

	p.Slug = slug
	if err := db.Model(&ProProfile{}).
		Where("id = ?", p.ID).
		Update("slug", slug).Error; err != nil {
		return "", err
	}
	return slug, nil
}
