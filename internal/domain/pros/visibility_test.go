package pros

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeProfile() *ProProfile {
	return &ProProfile{
		BusinessName:  "Ndiaye Services",
		JobID:         1,
		LocationID:    2,
		CallPhone:     "+221771234567",
		WhatsappPhone: "+221771234567",
	}
}

func TestPublishGuardAllows(t *testing.T) {
	err := PublishGuard(true, completeProfile(), true)
	assert.Nil(t, err)
}

func TestPublishGuardWhatsappFirst(t *testing.T) {
	// unverified phone wins over every other failure
	p := &ProProfile{}
	err := PublishGuard(false, p, false)
	require.NotNil(t, err)
	assert.Equal(t, KindWhatsappUnverified, err.Kind)
}

func TestPublishGuardSubscription(t *testing.T) {
	err := PublishGuard(true, completeProfile(), false)
	require.NotNil(t, err)
	assert.Equal(t, KindSubscriptionInactive, err.Kind)
}

func TestPublishGuardReportsIncompleteProfile(t *testing.T) {
	// verified phone + active subscription + incomplete profile must report
	// INCOMPLETE_PROFILE, never SUBSCRIPTION_INACTIVE
	cases := []struct {
		name   string
		mutate func(*ProProfile)
	}{
		{"missing business name", func(p *ProProfile) { p.BusinessName = "" }},
		{"missing call phone", func(p *ProProfile) { p.CallPhone = "" }},
		{"missing whatsapp phone", func(p *ProProfile) { p.WhatsappPhone = "" }},
		{"missing job", func(p *ProProfile) { p.JobID = 0 }},
		{"missing location", func(p *ProProfile) { p.LocationID = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := completeProfile()
			tc.mutate(p)

			err := PublishGuard(true, p, true)
			require.NotNil(t, err)
			assert.Equal(t, KindIncompleteProfile, err.Kind)
		})
	}
}
