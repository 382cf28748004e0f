package billing

import (
	"log"
	"net/http"
	"time"

	"teranga-pro/database"
	billingdomain "teranga-pro/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// AdminExpireSweep runs the expiry sweep on demand. The scheduler calls the
// same routine daily; this endpoint exists for operations and tests.
func AdminExpireSweep(c *gin.Context) {
	expired, err := billingdomain.ExpireSweep(database.DB, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sweep failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": expired})
}

// StartExpiryScheduler runs the sweep once at startup then every 24 hours.
func StartExpiryScheduler() {
	run := func() {
		expired, err := billingdomain.ExpireSweep(database.DB, time.Now())
		if err != nil {
			log.Println("❌ Expiry sweep error:", err)
			return
		}
		if expired > 0 {
			log.Printf("🧹 Expiry sweep: %d abonnement(s) expiré(s)", expired)
		}
	}

	go func() {
		run()
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			run()
		}
	}()
}
