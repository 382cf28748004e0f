package pros

import (
	"net/http"
	"strconv"
	"time"

	"teranga-pro/database"
	"teranga-pro/internal/domain/billing"
	"teranga-pro/internal/domain/catalog"
	"teranga-pro/internal/domain/geo"
	prosdomain "teranga-pro/internal/domain/pros"
	"teranga-pro/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func myProfile(c *gin.Context, preload bool) (*prosdomain.ProProfile, bool) {
	userID := c.GetUint("user_id")

	q := database.DB.Where("user_id = ?", userID)
	if preload {
		q = q.Preload("Job").Preload("Location").Preload("InterventionAreas").Preload("Media")
	}

	var profile prosdomain.ProProfile
	if err := q.First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profil professionnel introuvable"})
		return nil, false
	}
	return &profile, true
}

func GetMyProfile(c *gin.Context) {
	profile, ok := myProfile(c, true)
	if !ok {
		return
	}

	entitled, _ := billing.UserEntitled(database.DB, profile.UserID, time.Now())
	viewer := prosdomain.Viewer{UserID: profile.UserID, Authenticated: true}

	c.JSON(http.StatusOK, gin.H{
		"profile":      buildPublicDTO(profile, viewer, entitled, nil),
		"is_published": profile.IsPublished,
		"is_complete":  profile.IsComplete(),
		"entitled":     entitled,
		"media":        toMediaDTOs(profile.Media),
	})
}

// UpdateMyProfile edits the editable fields. It never touches is_published:
// publication has its own endpoint and guard.
func UpdateMyProfile(c *gin.Context) {
	profile, ok := myProfile(c, false)
	if !ok {
		return
	}

	var input struct {
		BusinessName      *string  `json:"business_name"`
		Description       *string  `json:"description"`
		JobID             *uint    `json:"job_id"`
		LocationID        *uint    `json:"location_id"`
		InterventionAreas []uint   `json:"intervention_area_ids"`
		CallPhone         *string  `json:"call_phone"`
		WhatsappPhone     *string  `json:"whatsapp_phone"`
		Avatar            *string  `json:"avatar"`
		OnlineStatus      *string  `json:"online_status"`
		Latitude          *float64 `json:"latitude"`
		Longitude         *float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.BusinessName != nil {
		updates["business_name"] = *input.BusinessName
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.JobID != nil {
		updates["job_id"] = *input.JobID
	}
	if input.LocationID != nil {
		updates["location_id"] = *input.LocationID
	}
	if input.CallPhone != nil {
		updates["call_phone"] = *input.CallPhone
	}
	if input.WhatsappPhone != nil {
		updates["whatsapp_phone"] = *input.WhatsappPhone
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}
	if input.OnlineStatus != nil {
		if *input.OnlineStatus != prosdomain.StatusOnline && *input.OnlineStatus != prosdomain.StatusOffline {
			c.JSON(http.StatusBadRequest, gin.H{"error": "online_status doit être ONLINE ou OFFLINE"})
			return
		}
		updates["online_status"] = *input.OnlineStatus
	}
	if input.Latitude != nil || input.Longitude != nil {
		if input.Latitude == nil || input.Longitude == nil || !geo.ValidCoordinate(*input.Latitude, *input.Longitude) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Coordonnées invalides (latitude et longitude requises ensemble)"})
			return
		}
		updates["latitude"] = *input.Latitude
		updates["longitude"] = *input.Longitude
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(profile).Updates(updates).Error; err != nil {
				return err
			}
		}
		if input.InterventionAreas != nil {
			var areas []catalog.Location
			if len(input.InterventionAreas) > 0 {
				if err := tx.Where("id IN ?", input.InterventionAreas).Find(&areas).Error; err != nil {
					return err
				}
			}
			if err := tx.Model(profile).Association("InterventionAreas").Replace(areas); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour du profil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profil mis à jour"})
}

// Publish runs the three-gate guard and flips the profile visible. The error
// kind tells the frontend which screen to show (verification, payment or
// profile completion).
func Publish(c *gin.Context) {
	profile, ok := myProfile(c, false)
	if !ok {
		return
	}

	var owner users.User
	if err := database.DB.Select("whatsapp_verified").First(&owner, profile.UserID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Vérification du compte impossible"})
		return
	}

	entitled, err := billing.UserEntitled(database.DB, profile.UserID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Vérification de l'abonnement impossible"})
		return
	}

	if guardErr := prosdomain.PublishGuard(owner.WhatsappVerified, profile, entitled); guardErr != nil {
		status := http.StatusBadRequest
		if guardErr.Kind == prosdomain.KindSubscriptionInactive {
			status = http.StatusPaymentRequired
		}
		c.JSON(status, gin.H{"error": guardErr.Detail, "error_kind": guardErr.Kind})
		return
	}

	if err := prosdomain.SetPublished(database.DB, profile.ID, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la publication"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profil publié", "is_published": true, "slug": profile.Slug})
}

func Unpublish(c *gin.Context) {
	profile, ok := myProfile(c, false)
	if !ok {
		return
	}

	if err := prosdomain.SetPublished(database.DB, profile.ID, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la dépublication"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profil masqué", "is_published": false})
}

// AdminSetPublished bypasses the guard. Admin publication of a profile whose
// owner has no active subscription still won't surface it publicly: the
// entitlement filter runs in every public query.
func AdminSetPublished(c *gin.Context) {
	profileID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile id"})
		return
	}

	var input struct {
		Published *bool `json:"published" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile prosdomain.ProProfile
	if err := database.DB.First(&profile, uint(profileID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
		return
	}

	if err := prosdomain.SetPublished(database.DB, profile.ID, *input.Published); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Visibilité mise à jour", "is_published": *input.Published})
}
