package pros

import (
	"net/http"
	"strconv"
	"time"

	"teranga-pro/database"
	"teranga-pro/internal/domain/billing"
	prosdomain "teranga-pro/internal/domain/pros"

	"github.com/gin-gonic/gin"
)

// AddFavorite bookmarks a professional. Only visible pros can be added, so a
// favorites list never becomes a backdoor around the entitlement filter.
func AddFavorite(c *gin.Context) {
	userID := c.GetUint("user_id")

	profileID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile id"})
		return
	}

	var count int64
	visibleProsQuery(database.DB).
		Where("pro_profiles.id = ?", uint(profileID)).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
		return
	}

	favori := prosdomain.ContactFavori{OwnerID: userID, ProfileID: uint(profileID)}
	if err := database.DB.Create(&favori).Error; err != nil {
		// Unique index: already a favorite
		c.JSON(http.StatusOK, gin.H{"message": "Déjà dans vos favoris"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ajouté aux favoris"})
}

func RemoveFavorite(c *gin.Context) {
	userID := c.GetUint("user_id")

	profileID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile id"})
		return
	}

	res := database.DB.
		Where("owner_id = ? AND profile_id = ?", userID, uint(profileID)).
		Delete(&prosdomain.ContactFavori{})
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Favori introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Retiré des favoris"})
}

// ListFavorites returns the caller's bookmarks. Pros that have since lost
// visibility are kept in the list but rendered with contacts redacted.
func ListFavorites(c *gin.Context) {
	userID := c.GetUint("user_id")

	var favoris []prosdomain.ContactFavori
	if err := database.DB.Where("owner_id = ?", userID).Find(&favoris).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Favoris indisponibles"})
		return
	}

	profileIDs := make([]uint, 0, len(favoris))
	for _, f := range favoris {
		profileIDs = append(profileIDs, f.ProfileID)
	}

	results := make([]ProPublicDTO, 0, len(profileIDs))
	if len(profileIDs) > 0 {
		var profiles []prosdomain.ProProfile
		err := database.DB.
			Preload("Job").
			Preload("Location").
			Preload("Media").
			Where("id IN ?", profileIDs).
			Find(&profiles).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Favoris indisponibles"})
			return
		}

		ownerIDs := make([]uint, 0, len(profiles))
		for i := range profiles {
			ownerIDs = append(ownerIDs, profiles[i].UserID)
		}
		entitled, err := billing.EntitledSet(database.DB, ownerIDs, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Favoris indisponibles"})
			return
		}

		viewer := viewerFromContext(c)
		for i := range profiles {
			results = append(results, buildPublicDTO(&profiles[i], viewer, entitled[profiles[i].UserID], nil))
		}
	}

	c.JSON(http.StatusOK, gin.H{"favorites": results, "total": len(results)})
}
