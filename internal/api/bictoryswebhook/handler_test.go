package bictoryswebhook

import (
	"testing"

	billingdomain "teranga-pro/internal/domain/billing"

	"github.com/stretchr/testify/assert"
)

func TestMapStatus(t *testing.T) {
	cases := []struct {
		provider string
		want     string
	}{
		{"succeeded", billingdomain.PaymentPaid},
		{"SUCCESS", billingdomain.PaymentPaid},
		{"paid", billingdomain.PaymentPaid},
		{"authorized", billingdomain.PaymentPaid},
		{"failed", billingdomain.PaymentFailed},
		{"Declined", billingdomain.PaymentFailed},
		{"cancelled", billingdomain.PaymentCanceled},
		{"canceled", billingdomain.PaymentCanceled},
		{"expired", billingdomain.PaymentCanceled},
		{"pending", ""},
		{"whatever", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, mapStatus(tc.provider), "provider status %q", tc.provider)
	}
}
