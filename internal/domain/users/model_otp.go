package users

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	OTPTTLMinutes      = 5
	OTPMaxAttempts     = 5
	OTPLockoutMinutes = 15
)

type WhatsAppOTP struct {
	ID    uint   `gorm:"primaryKey"`
	Phone string `gorm:"size:32;index:idx_otp_phone"`
	Code  string `gorm:"size:10"`

	Attempts    uint
	MaxAttempts uint `gorm:"default:5"`

	LockedUntil *time.Time
	ExpiresAt   time.Time `gorm:"index:idx_otp_phone"`
	CreatedAt   time.Time
}

func NewOTP(phone string, now time.Time) WhatsAppOTP {
	return WhatsAppOTP{
		Phone:       NormalizePhone(phone),
		Code:        GenerateOTPCode(),
		MaxAttempts: OTPMaxAttempts,
		ExpiresAt:   now.Add(OTPTTLMinutes * time.Minute),
	}
}

func GenerateOTPCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}

func (o *WhatsAppOTP) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

func (o *WhatsAppOTP) IsLocked(now time.Time) bool {
	return o.LockedUntil != nil && now.Before(*o.LockedUntil)
}

// RegisterFailure counts a wrong code and locks the OTP once the attempt
// budget is spent. Returns true when this failure triggered the lock.
func (o *WhatsAppOTP) RegisterFailure(now time.Time) bool {
	o.Attempts++
	if o.Attempts >= o.MaxAttempts {
		until := now.Add(OTPLockoutMinutes * time.Minute)
		o.LockedUntil = &until
		return true
	}
	return false
}
