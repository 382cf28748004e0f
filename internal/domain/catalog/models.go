package catalog

import (
	"fmt"
	"time"
)

// Location hierarchy: COUNTRY > REGION > CITY > DISTRICT.
const (
	LocationCountry  = "COUNTRY"
	LocationRegion   = "REGION"
	LocationCity     = "CITY"
	LocationDistrict = "DISTRICT"
)

type Location struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:120;not null"`
	Type string `gorm:"size:10;not null;index"`

	ParentID *uint     `gorm:"index"`
	Parent   *Location `gorm:"foreignKey:ParentID"`

	Slug     string `gorm:"size:160;uniqueIndex:idx_locations_slug"`
	IsActive bool   `gorm:"default:true;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// requiredParentType maps each location type to the type its parent must have.
var requiredParentType = map[string]string{
	LocationRegion:   LocationCountry,
	LocationCity:     LocationRegion,
	LocationDistrict: LocationCity,
}

// ValidateParent enforces the hierarchy rules before insert/update.
func (l *Location) ValidateParent(parent *Location) error {
	if l.Type == LocationCountry {
		if parent != nil {
			return fmt.Errorf("a country must not have a parent")
		}
		return nil
	}

	want, ok := requiredParentType[l.Type]
	if !ok {
		return fmt.Errorf("unknown location type %q", l.Type)
	}
	if parent == nil || parent.Type != want {
		return fmt.Errorf("a %s must have a %s as parent", l.Type, want)
	}
	if l.ID != 0 && parent.ID == l.ID {
		return fmt.Errorf("a location cannot be its own parent")
	}
	return nil
}

type JobCategory struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:120;not null"`
	Slug string `gorm:"size:160;uniqueIndex:idx_job_categories_slug"`

	ParentID *uint        `gorm:"index"`
	Parent   *JobCategory `gorm:"foreignKey:ParentID"`

	IsActive bool `gorm:"default:true;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *JobCategory) FullName() string {
	if c.Parent != nil {
		return c.Parent.Name + " > " + c.Name
	}
	return c.Name
}

type Job struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:120;not null"`
	Slug string `gorm:"size:160;uniqueIndex:idx_jobs_slug"`

	CategoryID uint        `gorm:"index;not null"`
	Category   JobCategory `gorm:"foreignKey:CategoryID"`

	IsFeatured bool `gorm:"default:false;index"`
	IsActive   bool `gorm:"default:true;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
