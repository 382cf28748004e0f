package annonces

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAnnonce() *Annonce {
	return &Annonce{
		Type:        TypeDemande,
		Title:       "Recherche plombier",
		Description: strings.Repeat("Fuite d'eau dans la cuisine. ", 3),
		Phone:       "+221 77 123 45 67",
		CategoryID:  1,
	}
}

func TestAnnonceValidate(t *testing.T) {
	a := validAnnonce()
	require.NoError(t, a.Validate())
	assert.Equal(t, "+221771234567", a.Phone, "phone is normalized in place")

	cases := []struct {
		name   string
		mutate func(*Annonce)
		field  string
	}{
		{"bad type", func(a *Annonce) { a.Type = "AUTRE" }, "type"},
		{"short title", func(a *Annonce) { a.Title = "abc" }, "title"},
		{"short description", func(a *Annonce) { a.Description = "trop court" }, "description"},
		{"bad phone", func(a *Annonce) { a.Phone = "77-12" }, "phone"},
		{"missing category", func(a *Annonce) { a.CategoryID = 0 }, "category_id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := validAnnonce()
			tc.mutate(a)

			err := a.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestSyncApproval(t *testing.T) {
	a := validAnnonce()

	a.Status = StatusPubliee
	a.SyncApproval()
	assert.True(t, a.IsApproved)

	for _, status := range []string{StatusBrouillon, StatusEnAttente, StatusRejetee, StatusArchivee} {
		a.Status = status
		a.SyncApproval()
		assert.False(t, a.IsApproved, "status %s must clear approval", status)
	}
}
