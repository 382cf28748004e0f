package pros

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// The visibility flag is mutated by four actors: the owner, the payment
// webhook, the expiry sweep and admins/moderation. Owner-initiated publishing
// is the only guarded transition; force transitions bypass the guard but
// reactivation always goes back through it.

type PublishErrorKind string

const (
	KindWhatsappUnverified   PublishErrorKind = "WHATSAPP_UNVERIFIED"
	KindSubscriptionInactive PublishErrorKind = "SUBSCRIPTION_INACTIVE"
	KindIncompleteProfile    PublishErrorKind = "INCOMPLETE_PROFILE"
)

// PublishError reports which publish precondition failed, so the client can
// route the user to the right remediation (verify phone, pay, fill profile).
type PublishError struct {
	Kind   PublishErrorKind
	Detail string
}

func (e *PublishError) Error() string {
	return string(e.Kind) + ": " + e.Detail
}

// PublishGuard validates an owner-initiated publish request. It returns nil
// when the profile may go public, or the first failing precondition.
func PublishGuard(whatsappVerified bool, p *ProProfile, entitled bool) *PublishError {
	if !whatsappVerified {
		return &PublishError{
			Kind:   KindWhatsappUnverified,
			Detail: "Vérifiez votre WhatsApp avant de publier.",
		}
	}
	if !entitled {
		return &PublishError{
			Kind:   KindSubscriptionInactive,
			Detail: "Abonnement inactif. Veuillez régler 1000F/mois pour être visible.",
		}
	}
	if !p.IsComplete() {
		return &PublishError{
			Kind:   KindIncompleteProfile,
			Detail: "Profil incomplet pour publication.",
		}
	}
	return nil
}

// SetPublished is the single write path for the visibility flag.
func SetPublished(db *gorm.DB, profileID uint, published bool) error {
	return db.Model(&ProProfile{}).
		Where("id = ?", profileID).
		Update("is_published", published).Error
}

// SetPublishedForUser flips the flag keyed by owner, for callers that act on
// an account rather than a profile (account suspension). A user without a pro
// profile is a no-op, not an error.
func SetPublishedForUser(db *gorm.DB, userID uint, published bool) error {
	return db.Model(&ProProfile{}).
		Where("user_id = ?", userID).
		Update("is_published", published).Error
}

// ModerationTakedown force-unpublishes a profile following a resolved abuse
// report and returns the audit note to append to the report. The note is
// advisory bookkeeping; the flag write is the effect that matters.
func ModerationTakedown(tx *gorm.DB, profileID uint, now time.Time) (string, error) {
	if err := SetPublished(tx, profileID, false); err != nil {
		return "", err
	}
	note := fmt.Sprintf("[SYSTÈME] Profil pro désactivé automatiquement le %s.", now.Format("02/01/2006"))
	return note, nil
}
