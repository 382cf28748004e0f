package billing

import (
	"net/http"
	"time"

	"teranga-pro/database"
	billingdomain "teranga-pro/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MySubscription reports the caller's subscription window. A user who never
// paid gets an empty EXPIRED shell rather than a 404, the frontend treats
// both the same.
func MySubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	now := time.Now()

	var sub billingdomain.Subscription
	err := database.DB.Where("user_id = ?", userID).First(&sub).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusOK, gin.H{
			"status":    billingdomain.SubscriptionExpired,
			"is_active": false,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Abonnement indisponible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    sub.Status,
		"is_active": sub.IsActive(now),
		"start_at":  sub.StartAt,
		"end_at":    sub.EndAt,
	})
}

// MyPayments lists the caller's payment history, newest first.
func MyPayments(c *gin.Context) {
	userID := c.GetUint("user_id")

	var payments []billingdomain.Payment
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Historique indisponible"})
		return
	}

	out := make([]gin.H, 0, len(payments))
	for _, p := range payments {
		out = append(out, gin.H{
			"id":         p.ID,
			"reference":  p.ProviderRef,
			"amount":     p.Amount,
			"currency":   p.Currency,
			"status":     p.Status,
			"created_at": p.CreatedAt,
			"paid_at":    p.PaidAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"payments": out})
}
