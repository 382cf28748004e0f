package admin

import (
	"net/http"
	"strconv"
	"time"

	"teranga-pro/database"
	annoncesdomain "teranga-pro/internal/domain/annonces"
	billingdomain "teranga-pro/internal/domain/billing"
	moderationdomain "teranga-pro/internal/domain/moderation"
	prosdomain "teranga-pro/internal/domain/pros"
	"teranga-pro/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// Dashboard returns the operational counters shown on the admin home.
func Dashboard(c *gin.Context) {
	now := time.Now()

	var totalUsers, totalPros, publishedPros int64
	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&prosdomain.ProProfile{}).Count(&totalPros)
	database.DB.Model(&prosdomain.ProProfile{}).Where("is_published = ?", true).Count(&publishedPros)

	var activeSubscriptions int64
	database.DB.Model(&billingdomain.Subscription{}).
		Where("status = ?", billingdomain.SubscriptionActive).
		Where("end_at IS NULL OR end_at > ?", now).
		Count(&activeSubscriptions)

	var pendingAnnonces, openReports int64
	database.DB.Model(&annoncesdomain.Annonce{}).
		Where("status = ?", annoncesdomain.StatusEnAttente).Count(&pendingAnnonces)
	database.DB.Model(&moderationdomain.Report{}).
		Where("status = ?", moderationdomain.ReportOpen).Count(&openReports)

	var paidThisMonth int64
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	database.DB.Model(&billingdomain.Payment{}).
		Where("status = ? AND paid_at >= ?", billingdomain.PaymentPaid, monthStart).
		Count(&paidThisMonth)

	c.JSON(http.StatusOK, gin.H{
		"users":                totalUsers,
		"pros":                 totalPros,
		"published_pros":       publishedPros,
		"active_subscriptions": activeSubscriptions,
		"pending_annonces":     pendingAnnonces,
		"open_reports":         openReports,
		"payments_this_month":  paidThisMonth,
	})
}

func ListUsers(c *gin.Context) {
	query := database.DB.Model(&users.User{})

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if q := c.Query("q"); q != "" {
		query = query.Where("phone ILIKE ?", "%"+q+"%")
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize := 50

	var total int64
	query.Count(&total)

	var list []users.User
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Utilisateurs indisponibles"})
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, u := range list {
		out = append(out, gin.H{
			"id":                u.ID,
			"phone":             u.Phone,
			"role":              u.Role,
			"whatsapp_verified": u.WhatsappVerified,
			"is_active":         u.IsActive,
			"created_at":        u.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": out, "total": total, "page": page})
}

// SetUserActive blocks or unblocks an account. Blocking a pro also hides
// their profile.
func SetUserActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var input struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	if err := database.DB.First(&user, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	if err := database.DB.Model(&user).Update("is_active", *input.Active).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour"})
		return
	}
	if !*input.Active {
		if err := prosdomain.SetPublishedForUser(database.DB, user.ID, false); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la mise à jour"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Compte mis à jour", "is_active": *input.Active})
}

func ListPayments(c *gin.Context) {
	query := database.DB.Model(&billingdomain.Payment{}).Preload("User")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize := 50

	var total int64
	query.Count(&total)

	var payments []billingdomain.Payment
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Paiements indisponibles"})
		return
	}

	out := make([]gin.H, 0, len(payments))
	for _, p := range payments {
		out = append(out, gin.H{
			"id":         p.ID,
			"user_phone": p.User.Phone,
			"reference":  p.ProviderRef,
			"amount":     p.Amount,
			"currency":   p.Currency,
			"status":     p.Status,
			"created_at": p.CreatedAt,
			"paid_at":    p.PaidAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"payments": out, "total": total, "page": page})
}
