package pros

import (
	"strconv"
	"time"

	"teranga-pro/internal/domain/billing"
	"teranga-pro/internal/domain/catalog"
	prosdomain "teranga-pro/internal/domain/pros"

	"gorm.io/gorm"
)

// visibleProsQuery returns only profiles the public may see: published, with
// a currently entitled owner. The entitlement check runs inside the query so
// listing a page of pros costs a single statement.
func visibleProsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&prosdomain.ProProfile{}).
		Where("pro_profiles.is_published = ?", true).
		Where(billing.EntitledCondition, billing.SubscriptionActive, time.Now())
}

// applyJobFilter accepts a numeric id or a slug.
func applyJobFilter(db *gorm.DB, job string) *gorm.DB {
	if job == "" {
		return db
	}
	if id, err := strconv.ParseUint(job, 10, 64); err == nil {
		return db.Where("pro_profiles.job_id = ?", uint(id))
	}
	return db.Where("pro_profiles.job_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).
			Model(&catalog.Job{}).Select("id").Where("slug = ?", job))
}

// applyLocationFilter matches the home base or any declared intervention area.
func applyLocationFilter(db *gorm.DB, location string) *gorm.DB {
	if location == "" {
		return db
	}
	var locationID uint
	if id, err := strconv.ParseUint(location, 10, 64); err == nil {
		locationID = uint(id)
	} else {
		var loc catalog.Location
		if err := db.Session(&gorm.Session{NewDB: true}).
			Select("id").Where("slug = ?", location).First(&loc).Error; err != nil {
			// Unknown location slug matches nothing
			return db.Where("1 = 0")
		}
		locationID = loc.ID
	}
	return db.Where(
		"pro_profiles.location_id = ? OR EXISTS (SELECT 1 FROM pro_intervention_areas pia WHERE pia.pro_profile_id = pro_profiles.id AND pia.location_id = ?)",
		locationID, locationID,
	)
}

func applyTextFilter(db *gorm.DB, q string) *gorm.DB {
	if q == "" {
		return db
	}
	pattern := "%" + q + "%"
	return db.Where("pro_profiles.business_name ILIKE ? OR pro_profiles.description ILIKE ?", pattern, pattern)
}

func applyStatusFilter(db *gorm.DB, status string) *gorm.DB {
	switch status {
	case prosdomain.StatusOnline, prosdomain.StatusOffline:
		return db.Where("pro_profiles.online_status = ?", status)
	}
	return db
}
