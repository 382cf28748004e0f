package pros

import (
	"math"
	"time"

	prosdomain "teranga-pro/internal/domain/pros"
)

type JobDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type LocationDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Slug string `json:"slug"`
}

type MediaDTO struct {
	ID      uint   `json:"id"`
	Type    string `json:"type"`
	File    string `json:"file"`
	IsCover bool   `json:"is_cover"`
}

type ProPublicDTO struct {
	ID           uint          `json:"id"`
	Slug         string        `json:"slug"`
	BusinessName string        `json:"business_name"`
	Description  string        `json:"description,omitempty"`
	Job          *JobDTO       `json:"job,omitempty"`
	Location     *LocationDTO  `json:"location,omitempty"`
	Areas        []LocationDTO `json:"intervention_areas,omitempty"`
	Avatar       *string       `json:"avatar,omitempty"`
	CoverPhoto   *string       `json:"cover_photo,omitempty"`
	OnlineStatus string        `json:"online_status"`
	AvgRating    float64       `json:"avg_rating"`
	RatingCount  uint          `json:"rating_count"`

	CallPhone     *string `json:"call_phone"`
	WhatsappPhone *string `json:"whatsapp_phone"`
	IsContactable bool    `json:"is_contactable"`

	// Null when the caller supplied no coordinate.
	DistanceKm *float64 `json:"distance_km"`

	UpdatedAt time.Time `json:"updated_at"`
}

func toJobDTO(j prosdomain.ProProfile) *JobDTO {
	if j.Job.ID == 0 {
		return nil
	}
	return &JobDTO{ID: j.Job.ID, Name: j.Job.Name, Slug: j.Job.Slug}
}

func toLocationDTO(p prosdomain.ProProfile) *LocationDTO {
	if p.Location.ID == 0 {
		return nil
	}
	return &LocationDTO{ID: p.Location.ID, Name: p.Location.Name, Type: p.Location.Type, Slug: p.Location.Slug}
}

// buildPublicDTO assembles the public card for one profile. Contact fields
// go through the disclosure policy, never straight from the model.
func buildPublicDTO(p *prosdomain.ProProfile, viewer prosdomain.Viewer, entitled bool, distanceKm *float64) ProPublicDTO {
	disclosure := prosdomain.DiscloseContact(viewer, p, entitled)

	dto := ProPublicDTO{
		ID:            p.ID,
		Slug:          p.Slug,
		BusinessName:  p.BusinessName,
		Description:   p.Description,
		Job:           toJobDTO(*p),
		Location:      toLocationDTO(*p),
		Avatar:        p.Avatar,
		OnlineStatus:  p.OnlineStatus,
		AvgRating:     p.AvgRating,
		RatingCount:   p.RatingCount,
		CallPhone:     disclosure.CallPhone,
		WhatsappPhone: disclosure.WhatsappPhone,
		IsContactable: disclosure.IsContactable,
		UpdatedAt:     p.UpdatedAt,
	}

	for _, area := range p.InterventionAreas {
		dto.Areas = append(dto.Areas, LocationDTO{ID: area.ID, Name: area.Name, Type: area.Type, Slug: area.Slug})
	}
	if cover := prosdomain.CoverPhoto(p.Media); cover != nil {
		dto.CoverPhoto = &cover.File
	}
	if distanceKm != nil {
		rounded := math.Round(*distanceKm*10) / 10
		dto.DistanceKm = &rounded
	}
	return dto
}
