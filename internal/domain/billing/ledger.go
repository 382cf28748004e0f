package billing

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrPaymentNotFound means a webhook referenced a provider_ref we never issued.
var ErrPaymentNotFound = errors.New("payment not found")

// lockForUpdate takes a FOR UPDATE row lock on postgres. SQLite has no FOR
// UPDATE syntax; its single-writer transactions give the same guarantee.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// NextWindow computes the entitlement window a successful payment buys.
// Renewing an active subscription stacks onto the remaining balance; anything
// else (new, expired, canceled, perpetual) restarts the clock from now.
// A perpetual subscription (nil EndAt) stays perpetual.
func NextWindow(sub *Subscription, now time.Time, durationDays int) (start time.Time, end *time.Time) {
	duration := time.Duration(durationDays) * 24 * time.Hour

	if sub != nil && sub.IsActive(now) {
		if sub.EndAt == nil {
			return *sub.StartAt, nil
		}
		e := sub.EndAt.Add(duration)
		return *sub.StartAt, &e
	}

	e := now.Add(duration)
	return now, &e
}

// ActivateOrRenew upserts the user's subscription row after a PAID payment.
// Must run inside the same transaction that flips the payment status, so a
// reader never observes "payment PAID, subscription still EXPIRED".
// Activation also re-enables the profile's public visibility.
func ActivateOrRenew(tx *gorm.DB, userID uint, payment *Payment, durationDays int, now time.Time) (*Subscription, error) {
	var sub Subscription
	err := lockForUpdate(tx).
		Where("user_id = ?", userID).
		Order("id").
		First(&sub).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub = Subscription{UserID: userID}
	case err != nil:
		return nil, fmt.Errorf("load subscription for user %d: %w", userID, err)
	}

	start, end := NextWindow(&sub, now, durationDays)
	sub.Status = SubscriptionActive
	sub.StartAt = &start
	sub.EndAt = end
	if payment != nil {
		sub.LastPaymentID = &payment.ID
	}

	if err := tx.Save(&sub).Error; err != nil {
		return nil, fmt.Errorf("save subscription for user %d: %w", userID, err)
	}

	// Paying restores visibility without a manual re-publish.
	if err := tx.Table("pro_profiles").
		Where("user_id = ?", userID).
		Update("is_published", true).Error; err != nil {
		return nil, fmt.Errorf("republish profile for user %d: %w", userID, err)
	}

	return &sub, nil
}

// SettlePayment applies a terminal webhook event to the payment row and, on
// PAID, activates the subscription atomically. Unknown provider refs return
// ErrPaymentNotFound; already-settled payments are acknowledged without side
// effects so provider retries stay idempotent.
func SettlePayment(db *gorm.DB, providerRef, status string, payload []byte, durationDays int, now time.Time) (*Payment, error) {
	var payment Payment

	err := db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			Where("provider_ref = ?", providerRef).
			First(&payment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		if err != nil {
			return err
		}

		if payment.IsTerminal() {
			return nil
		}

		payment.Status = status
		payment.Payload = payload
		if status == PaymentPaid {
			payment.PaidAt = &now
		}
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if status == PaymentPaid {
			if _, err := ActivateOrRenew(tx, payment.UserID, &payment, durationDays, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// UserEntitled answers "does this user hold an active subscription right now"
// with a single query.
func UserEntitled(db *gorm.DB, userID uint, now time.Time) (bool, error) {
	var count int64
	err := db.Model(&Subscription{}).
		Where("user_id = ? AND status = ?", userID, SubscriptionActive).
		Where("end_at IS NULL OR end_at > ?", now).
		Count(&count).Error
	return count > 0, err
}

// EntitledCondition is the SQL fragment shared by every public query that must
// enforce the entitlement firewall as a set condition rather than per-row
// lookups.
const EntitledCondition = `EXISTS (
	SELECT 1 FROM subscriptions s
	WHERE s.user_id = pro_profiles.user_id
	  AND s.status = ?
	  AND (s.end_at IS NULL OR s.end_at > ?)
)`

// ExpireSweep transitions every ACTIVE subscription whose window has passed to
// EXPIRED and hides the matching profiles. The UPDATE is conditional on
// status and end_at, so a renewal landing concurrently cannot be clobbered and
// re-running the sweep is a no-op.
func ExpireSweep(db *gorm.DB, now time.Time) (int64, error) {
	var userIDs []uint

	err := db.Transaction(func(tx *gorm.DB) error {
		// The cascade set must come from the rows this statement actually
		// transitions. A renewal committing mid-sweep re-activates its row
		// and republishes the profile; hiding from a pre-read ID snapshot
		// would clobber that renewal.
		if err := tx.Raw(
			`UPDATE subscriptions
			 SET status = ?, updated_at = ?
			 WHERE status = ? AND end_at IS NOT NULL AND end_at < ?
			 RETURNING user_id`,
			SubscriptionExpired, now, SubscriptionActive, now,
		).Scan(&userIDs).Error; err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}

		return tx.Table("pro_profiles").
			Where("user_id IN ?", userIDs).
			Update("is_published", false).Error
	})

	return int64(len(userIDs)), err
}

// EntitledSet answers entitlement for a batch of users with a single query.
// List views use it instead of calling UserEntitled per row.
func EntitledSet(db *gorm.DB, userIDs []uint, now time.Time) (map[uint]bool, error) {
	entitled := make(map[uint]bool, len(userIDs))
	if len(userIDs) == 0 {
		return entitled, nil
	}

	var active []uint
	err := db.Model(&Subscription{}).
		Where("user_id IN ? AND status = ?", userIDs, SubscriptionActive).
		Where("end_at IS NULL OR end_at > ?", now).
		Pluck("user_id", &active).Error
	if err != nil {
		return nil, err
	}

	for _, id := range active {
		entitled[id] = true
	}
	return entitled, nil
}
