package billing

import (
	"net/http"

	"teranga-pro/config"
	"teranga-pro/database"
	billingdomain "teranga-pro/internal/domain/billing"
	"teranga-pro/internal/domain/users"
	"teranga-pro/internal/infra/bictorys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCheckout opens a Bictorys payment session for the monthly
// subscription. The PENDING payment row is written before the redirect so the
// webhook always finds its reference.
func CreateCheckout(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	if role != users.RolePro {
		c.JSON(http.StatusForbidden, gin.H{"error": "Seuls les professionnels peuvent souscrire un abonnement"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	providerRef := uuid.NewString()

	var session *bictorys.CheckoutSession
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		payment := billingdomain.Payment{
			UserID:      userID,
			Provider:    billingdomain.ProviderBictorys,
			ProviderRef: providerRef,
			Amount:      config.SUBSCRIPTION_AMOUNT,
			Currency:    config.SUBSCRIPTION_CURRENCY,
			Status:      billingdomain.PaymentPending,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		var err error
		session, err = bictorys.CreateCheckout(payment.Amount, payment.Currency, providerRef, user.Phone)
		return err
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Paiement indisponible. Réessayez dans quelques instants."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkout_url": session.CheckoutURL,
		"reference":    session.Reference,
		"amount":       config.SUBSCRIPTION_AMOUNT,
		"currency":     config.SUBSCRIPTION_CURRENCY,
	})
}
