package pros

import (
	"net/http"
	"strconv"

	"teranga-pro/database"
	prosdomain "teranga-pro/internal/domain/pros"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddMedia registers an uploaded file on the owner's gallery. The file itself
// is stored by the upload service; this endpoint records its URL and type.
func AddMedia(c *gin.Context) {
	profile, ok := myProfile(c, false)
	if !ok {
		return
	}

	var input struct {
		Type      string `json:"type" binding:"required"`
		File      string `json:"file" binding:"required"`
		SizeBytes int64  `json:"size_bytes"`
		IsCover   bool   `json:"is_cover"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Stored type must be the normalized form or the cover lookup and the
	// per-type rules never match it again.
	mediaType := prosdomain.NormalizeMediaType(input.Type)
	if err := prosdomain.ValidateMedia(mediaType, input.File, input.SizeBytes, input.IsCover); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	media := prosdomain.MediaPro{
		ProfileID: profile.ID,
		Type:      mediaType,
		File:      input.File,
		IsCover:   input.IsCover,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if input.IsCover {
			// A single cover per gallery
			if err := tx.Model(&prosdomain.MediaPro{}).
				Where("profile_id = ? AND is_cover = ?", profile.ID, true).
				Update("is_cover", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&media).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de l'ajout du média"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Média ajouté",
		"media":   MediaDTO{ID: media.ID, Type: media.Type, File: media.File, IsCover: media.IsCover},
	})
}

func DeleteMedia(c *gin.Context) {
	profile, ok := myProfile(c, false)
	if !ok {
		return
	}

	mediaID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid media id"})
		return
	}

	res := database.DB.
		Where("id = ? AND profile_id = ?", uint(mediaID), profile.ID).
		Delete(&prosdomain.MediaPro{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la suppression"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Média introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Média supprimé"})
}
