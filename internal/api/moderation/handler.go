package moderation

import (
	"net/http"
	"strconv"
	"time"

	"teranga-pro/database"
	moderationdomain "teranga-pro/internal/domain/moderation"
	"teranga-pro/internal/domain/pros"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateReport files an abuse report against a professional.
func CreateReport(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input struct {
		ProfileID uint   `json:"profile_id" binding:"required"`
		Reason    string `json:"reason" binding:"required"`
		Message   string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !moderationdomain.ValidReason(input.Reason) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason must be SPAM, FAKE, INAPPROPRIATE or OTHER"})
		return
	}

	var profile pros.ProProfile
	if err := database.DB.First(&profile, input.ProfileID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profil introuvable"})
		return
	}
	if profile.UserID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vous ne pouvez pas signaler votre propre profil"})
		return
	}

	// One open report per reporter and profile
	var existing int64
	database.DB.Model(&moderationdomain.Report{}).
		Where("reporter_id = ? AND profile_id = ? AND status = ?", userID, input.ProfileID, moderationdomain.ReportOpen).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Signalement déjà enregistré"})
		return
	}

	report := moderationdomain.Report{
		ReporterID: userID,
		ProfileID:  input.ProfileID,
		Reason:     input.Reason,
		Message:    input.Message,
		Status:     moderationdomain.ReportOpen,
	}
	if err := database.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec du signalement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signalement enregistré", "report_id": report.ID})
}

func MyReports(c *gin.Context) {
	userID := c.GetUint("user_id")

	var reports []moderationdomain.Report
	if err := database.DB.
		Where("reporter_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signalements indisponibles"})
		return
	}

	out := make([]gin.H, 0, len(reports))
	for _, r := range reports {
		out = append(out, gin.H{
			"id":         r.ID,
			"profile_id": r.ProfileID,
			"reason":     r.Reason,
			"status":     r.Status,
			"created_at": r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"reports": out})
}

func AdminListReports(c *gin.Context) {
	query := database.DB.Model(&moderationdomain.Report{}).
		Preload("Reporter").
		Preload("Profile")

	status := c.DefaultQuery("status", moderationdomain.ReportOpen)
	if status != "all" {
		query = query.Where("status = ?", status)
	}

	var reports []moderationdomain.Report
	if err := query.Order("created_at ASC").Limit(200).Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signalements indisponibles"})
		return
	}

	out := make([]gin.H, 0, len(reports))
	for _, r := range reports {
		out = append(out, gin.H{
			"id":             r.ID,
			"reason":         r.Reason,
			"message":        r.Message,
			"status":         r.Status,
			"created_at":     r.CreatedAt,
			"reporter_phone": r.Reporter.Phone,
			"profile": gin.H{
				"id":            r.Profile.ID,
				"business_name": r.Profile.BusinessName,
				"slug":          r.Profile.Slug,
				"is_published":  r.Profile.IsPublished,
			},
		})
	}
	c.JSON(http.StatusOK, gin.H{"reports": out})
}

// AdminProcessReport closes a report. Resolving it sanctions the pro: the
// profile is force-unpublished and the takedown note lands in the audit trail.
func AdminProcessReport(c *gin.Context) {
	adminID := c.GetUint("user_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	var input struct {
		Status    string `json:"status" binding:"required"`
		AdminNote string `json:"admin_note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Status != moderationdomain.ReportResolved && input.Status != moderationdomain.ReportRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be RESOLVED or REJECTED"})
		return
	}

	var report moderationdomain.Report
	if err := database.DB.First(&report, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Signalement introuvable"})
		return
	}
	if report.Status != moderationdomain.ReportOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signalement déjà traité"})
		return
	}

	now := time.Now()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		note := input.AdminNote
		if input.Status == moderationdomain.ReportResolved {
			takedownNote, err := pros.ModerationTakedown(tx, report.ProfileID, now)
			if err != nil {
				return err
			}
			if note != "" {
				note += "\n"
			}
			note += takedownNote
		}

		return tx.Model(&report).Updates(map[string]interface{}{
			"status":          input.Status,
			"processed_by_id": adminID,
			"processed_at":    now,
			"admin_note":      note,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec du traitement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signalement traité", "status": input.Status})
}
