package pros

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisclosureOwnerAlwaysSeesPhones(t *testing.T) {
	p := completeProfile()
	p.UserID = 7
	p.IsPublished = false // unpublished, not entitled

	owner := Viewer{UserID: 7, Role: "PRO", Authenticated: true}
	d := DiscloseContact(owner, p, false)

	require.NotNil(t, d.CallPhone)
	require.NotNil(t, d.WhatsappPhone)
	assert.Equal(t, p.CallPhone, *d.CallPhone)
	assert.False(t, d.IsContactable)
}

func TestDisclosureAnonymousRedactedWhenNotEligible(t *testing.T) {
	p := completeProfile()
	p.UserID = 7
	p.IsPublished = false

	d := DiscloseContact(Viewer{}, p, false)

	assert.Nil(t, d.CallPhone)
	assert.Nil(t, d.WhatsappPhone)
	assert.False(t, d.IsContactable)
}

func TestDisclosurePublicSeesPhonesWhenEligible(t *testing.T) {
	p := completeProfile()
	p.UserID = 7
	p.IsPublished = true

	d := DiscloseContact(Viewer{}, p, true)

	require.NotNil(t, d.CallPhone)
	assert.True(t, d.IsContactable)
}

func TestDisclosureRequiresBothPublishedAndEntitled(t *testing.T) {
	other := Viewer{UserID: 99, Authenticated: true}

	published := completeProfile()
	published.UserID = 7
	published.IsPublished = true

	// published but lapsed subscription
	d := DiscloseContact(other, published, false)
	assert.Nil(t, d.CallPhone)
	assert.False(t, d.IsContactable)

	// entitled but hidden
	hidden := completeProfile()
	hidden.UserID = 7
	hidden.IsPublished = false
	d = DiscloseContact(other, hidden, true)
	assert.Nil(t, d.CallPhone)
	assert.False(t, d.IsContactable)
}
