package annonces

import (
	"regexp"
	"strings"
	"time"

	"teranga-pro/internal/domain/catalog"
	"teranga-pro/internal/domain/users"
)

const (
	TypeDemande = "DEMANDE" // asking for a service, free to post
	TypeOffre   = "OFFRE"   // offering a service, requires an active subscription

	StatusBrouillon = "BROUILLON"
	StatusEnAttente = "EN_ATTENTE"
	StatusPubliee   = "PUBLIEE"
	StatusRejetee   = "REJETEE"
	StatusArchivee  = "ARCHIVEE"
)

var phonePattern = regexp.MustCompile(`^\+?\d{8,15}$`)

// Annonce is a classified ad. Ads enter moderation as EN_ATTENTE and only
// PUBLIEE ads appear publicly.
type Annonce struct {
	ID       uint       `gorm:"primaryKey"`
	AuthorID uint       `gorm:"not null;index"`
	Author   users.User `gorm:"foreignKey:AuthorID"`

	Type string `gorm:"size:10;not null;index"`

	Title       string `gorm:"size:200;not null;index"`
	Slug        string `gorm:"size:255;uniqueIndex:idx_annonces_slug"`
	Description string `gorm:"type:text;not null"`

	LocationID *uint             `gorm:"index"`
	Location   *catalog.Location `gorm:"foreignKey:LocationID"`

	Address string `gorm:"size:255"`
	Phone   string `gorm:"size:32;not null"`

	CategoryID uint                `gorm:"not null;index"`
	Category   catalog.JobCategory `gorm:"foreignKey:CategoryID"`

	Status string `gorm:"size:15;not null;default:'EN_ATTENTE';index"`

	// Kept in sync with Status; indexed for the public listing query.
	IsApproved bool `gorm:"default:false;index"`

	ApprovedByID *uint
	ApprovedAt   *time.Time
	RejectReason string `gorm:"type:text"`

	ViewCount uint `gorm:"default:0"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// SyncApproval keeps the denormalized IsApproved flag consistent with Status.
// Call before every save that can change Status.
func (a *Annonce) SyncApproval() {
	a.IsApproved = a.Status == StatusPubliee
}

// Validate checks the fields a client controls.
func (a *Annonce) Validate() error {
	if a.Type != TypeDemande && a.Type != TypeOffre {
		return &ValidationError{Field: "type", Detail: "type must be DEMANDE or OFFRE"}
	}
	if len(strings.TrimSpace(a.Title)) < 5 {
		return &ValidationError{Field: "title", Detail: "title must be at least 5 characters"}
	}
	if len(strings.TrimSpace(a.Description)) < 30 {
		return &ValidationError{Field: "description", Detail: "description must be at least 30 characters"}
	}
	phone := users.NormalizePhone(a.Phone)
	if !phonePattern.MatchString(phone) {
		return &ValidationError{Field: "phone", Detail: "expected +221771234567 or 771234567 (8 to 15 digits)"}
	}
	a.Phone = phone
	if a.CategoryID == 0 {
		return &ValidationError{Field: "category_id", Detail: "category is required"}
	}
	return nil
}

type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Detail }
