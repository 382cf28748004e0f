package pros

import (
	"net/http"
	"strconv"
	"time"

	"teranga-pro/database"
	"teranga-pro/internal/domain/billing"
	"teranga-pro/internal/domain/geo"
	prosdomain "teranga-pro/internal/domain/pros"

	"github.com/gin-gonic/gin"
)

func viewerFromContext(c *gin.Context) prosdomain.Viewer {
	userID := c.GetUint("user_id")
	return prosdomain.Viewer{
		UserID:        userID,
		Role:          c.GetString("role"),
		Authenticated: userID != 0,
	}
}

// callerPoint reads lat/lng from the query. Both must be present and valid;
// anything else silently degrades to a search without distance.
func callerPoint(c *gin.Context) *geo.Point {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")
	if latStr == "" || lngStr == "" {
		return nil
	}
	lat, err1 := strconv.ParseFloat(latStr, 64)
	lng, err2 := strconv.ParseFloat(lngStr, 64)
	if err1 != nil || err2 != nil || !geo.ValidCoordinate(lat, lng) {
		return nil
	}
	return &geo.Point{Lat: lat, Lng: lng}
}

// SearchPros is the public directory search. Eligibility (published and
// entitled) is enforced in SQL; distance, radius and ranking happen on the
// filtered rows.
func SearchPros(c *gin.Context) {
	caller := callerPoint(c)

	var radiusKm *float64
	if caller != nil {
		if r, err := strconv.ParseFloat(c.Query("radius_km"), 64); err == nil && r > 0 {
			radiusKm = &r
		}
	}

	sortMode := c.Query("sort")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	query := visibleProsQuery(database.DB)
	query = applyJobFilter(query, c.Query("job"))
	query = applyLocationFilter(query, c.Query("location"))
	query = applyStatusFilter(query, c.Query("status"))
	query = applyTextFilter(query, c.Query("q"))

	var profiles []prosdomain.ProProfile
	err := query.
		Preload("Job").
		Preload("Location").
		Preload("Media").
		Order("pro_profiles.updated_at DESC").
		Find(&profiles).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recherche indisponible"})
		return
	}

	ranked := prosdomain.RankProfiles(profiles, caller, radiusKm, sortMode)
	pageItems, total := prosdomain.Paginate(ranked, page, pageSize)

	viewer := viewerFromContext(c)
	results := make([]ProPublicDTO, 0, len(pageItems))
	for i := range pageItems {
		// Rows already passed the SQL entitlement filter
		results = append(results, buildPublicDTO(&pageItems[i].Profile, viewer, true, pageItems[i].DistanceKm))
	}

	c.JSON(http.StatusOK, gin.H{
		"results":   results,
		"total":     total,
		"page":      page,
		"page_size": len(pageItems),
	})
}

// GetProBySlug is the public profile page. The owner always reaches their own
// page; everyone else gets 404 when the profile is hidden or unentitled, so a
// hidden profile is indistinguishable from a missing one.
func GetProBySlug(c *gin.Context) {
	slug := c.Param("slug")
	viewer := viewerFromContext(c)

	var profile prosdomain.ProProfile
	err := database.DB.
		Preload("Job").
		Preload("Location").
		Preload("InterventionAreas").
		Preload("Media").
		Where("slug = ?", slug).
		First(&profile).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
		return
	}

	entitled, err := billing.UserEntitled(database.DB, profile.UserID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profil indisponible"})
		return
	}
	isOwner := viewer.Authenticated && viewer.UserID == profile.UserID

	if !isOwner && !(profile.IsPublished && entitled) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
		return
	}

	dto := buildPublicDTO(&profile, viewer, entitled, nil)
	c.JSON(http.StatusOK, gin.H{
		"profile":      dto,
		"is_published": profile.IsPublished,
		"media":        toMediaDTOs(profile.Media),
	})
}

func toMediaDTOs(media []prosdomain.MediaPro) []MediaDTO {
	out := make([]MediaDTO, 0, len(media))
	for _, m := range media {
		out = append(out, MediaDTO{ID: m.ID, Type: m.Type, File: m.File, IsCover: m.IsCover})
	}
	return out
}
