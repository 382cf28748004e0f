package moderation

import (
	"time"

	"teranga-pro/internal/domain/pros"
	"teranga-pro/internal/domain/users"
)

const (
	ReportOpen     = "OPEN"
	ReportResolved = "RESOLVED"
	ReportRejected = "REJECTED"

	ReasonSpam          = "SPAM"
	ReasonFake          = "FAKE"
	ReasonInappropriate = "INAPPROPRIATE"
	ReasonOther         = "OTHER"
)

// Report is a client's abuse report against a professional. Resolving a
// report sanctions the professional: the profile is force-unpublished and an
// audit note is appended here.
type Report struct {
	ID         uint       `gorm:"primaryKey"`
	ReporterID uint       `gorm:"not null;index"`
	Reporter   users.User `gorm:"foreignKey:ReporterID"`

	ProfileID uint            `gorm:"not null;index"`
	Profile   pros.ProProfile `gorm:"foreignKey:ProfileID"`

	Reason  string `gorm:"size:20;not null"`
	Message string `gorm:"type:text"`

	Status string `gorm:"size:20;not null;default:'OPEN';index"`

	ProcessedByID *uint
	ProcessedBy   *users.User `gorm:"foreignKey:ProcessedByID"`

	AdminNote string `gorm:"type:text"`

	CreatedAt   time.Time `gorm:"index"`
	ProcessedAt *time.Time
}

func ValidReason(reason string) bool {
	switch reason {
	case ReasonSpam, ReasonFake, ReasonInappropriate, ReasonOther:
		return true
	}
	return false
}

func ValidStatus(status string) bool {
	switch status {
	case ReportOpen, ReportResolved, ReportRejected:
		return true
	}
	return false
}
