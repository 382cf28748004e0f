package annonces

import (
	"time"

	annoncesdomain "teranga-pro/internal/domain/annonces"
)

type AnnonceDTO struct {
	ID          uint   `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Address     string `json:"address,omitempty"`

	Category *RefDTO `json:"category,omitempty"`
	Location *RefDTO `json:"location,omitempty"`

	ViewCount uint      `json:"view_count"`
	CreatedAt time.Time `json:"created_at"`

	// Author-only fields
	Status       string `json:"status,omitempty"`
	RejectReason string `json:"reject_reason,omitempty"`
}

type RefDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

func toDTO(a *annoncesdomain.Annonce, ownerView bool) AnnonceDTO {
	dto := AnnonceDTO{
		ID:          a.ID,
		Type:        a.Type,
		Title:       a.Title,
		Slug:        a.Slug,
		Description: a.Description,
		Phone:       a.Phone,
		Address:     a.Address,
		ViewCount:   a.ViewCount,
		CreatedAt:   a.CreatedAt,
	}
	if a.Category.ID != 0 {
		dto.Category = &RefDTO{ID: a.Category.ID, Name: a.Category.Name, Slug: a.Category.Slug}
	}
	if a.Location != nil && a.Location.ID != 0 {
		dto.Location = &RefDTO{ID: a.Location.ID, Name: a.Location.Name, Slug: a.Location.Slug}
	}
	if ownerView {
		dto.Status = a.Status
		dto.RejectReason = a.RejectReason
	}
	return dto
}
