package bictoryswebhook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"teranga-pro/config"
	"teranga-pro/database"
	billingdomain "teranga-pro/internal/domain/billing"
	"teranga-pro/internal/infra/bictorys"

	"github.com/gin-gonic/gin"
)

type webhookEvent struct {
	Reference string `json:"merchantReference"`
	Status    string `json:"status"`
	Amount    int    `json:"amount"`
	Currency  string `json:"currency"`
}

// mapStatus folds the provider's status vocabulary onto ours. Unknown values
// map to empty and the event is acknowledged without side effects.
func mapStatus(providerStatus string) string {
	switch strings.ToLower(providerStatus) {
	case "succeeded", "success", "paid", "authorized":
		return billingdomain.PaymentPaid
	case "failed", "error", "declined":
		return billingdomain.PaymentFailed
	case "cancelled", "canceled", "expired":
		return billingdomain.PaymentCanceled
	}
	return ""
}

// BictorysWebhook settles a payment from a provider callback. The whole
// settlement (payment row, subscription window, profile republication) is one
// transaction; a retry of the same event is a no-op.
func BictorysWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 65536)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	if !bictorys.VerifySignature(payload, c.GetHeader("X-Signature")) {
		fmt.Println("❌ Bictorys signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event"})
		return
	}
	if event.Reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing merchantReference"})
		return
	}

	status := mapStatus(event.Status)
	if status == "" {
		// Unknown status, acknowledge to stop retries
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	payment, err := billingdomain.SettlePayment(
		database.DB,
		event.Reference,
		status,
		payload,
		config.SUBSCRIPTION_DAYS,
		time.Now(),
	)
	if errors.Is(err, billingdomain.ErrPaymentNotFound) {
		// Not ours. Acknowledge with no side effects so the provider stops
		// retrying an event we can never settle.
		fmt.Println("⚠️ Webhook for unknown payment reference:", event.Reference)
		c.JSON(http.StatusOK, gin.H{"status": "ignored", "reason": "unknown reference"})
		return
	}
	if err != nil {
		// Retryable: the provider will redeliver
		fmt.Println("❌ Payment settlement failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Settlement failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "received", "payment_status": payment.Status})
}
