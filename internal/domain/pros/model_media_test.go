package pros

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMediaType(t *testing.T) {
	assert.Equal(t, MediaPhoto, NormalizeMediaType(" photo "))
	assert.Equal(t, MediaVideo, NormalizeMediaType("Video"))
	assert.Equal(t, MediaCV, NormalizeMediaType("cv"))
	assert.Equal(t, "AUDIO", NormalizeMediaType("audio"))
}

func TestValidateMedia(t *testing.T) {
	cases := []struct {
		name      string
		mediaType string
		filename  string
		sizeBytes int64
		isCover   bool
		wantErr   bool
	}{
		{"photo ok", "PHOTO", "atelier.jpg", 2 * 1024 * 1024, false, false},
		{"photo lowercase type", "photo", "atelier.webp", 1024, true, false},
		{"photo too large", "PHOTO", "atelier.png", 6 * 1024 * 1024, false, true},
		{"photo wrong ext", "PHOTO", "atelier.gif", 1024, false, true},
		{"video ok", "VIDEO", "chantier.mp4", 40 * 1024 * 1024, false, false},
		{"video too large", "VIDEO", "chantier.mp4", 51 * 1024 * 1024, false, true},
		{"video as cover", "VIDEO", "chantier.mp4", 1024, true, true},
		{"cv ok", "CV", "diplome.pdf", 1024, false, false},
		{"cv wrong ext", "CV", "diplome.docx", 1024, false, true},
		{"cv as cover", "CV", "diplome.pdf", 1024, true, true},
		{"unknown type", "AUDIO", "note.mp3", 1024, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateMedia(tc.mediaType, tc.filename, tc.sizeBytes, tc.isCover)
			if tc.wantErr {
				require.Error(t, err)
				var merr *MediaError
				assert.ErrorAs(t, err, &merr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCoverPhoto(t *testing.T) {
	media := []MediaPro{
		{ID: 1, Type: MediaVideo, IsCover: false},
		{ID: 2, Type: MediaPhoto, IsCover: false},
		{ID: 3, Type: MediaPhoto, IsCover: true},
	}

	cover := CoverPhoto(media)
	require.NotNil(t, cover)
	assert.Equal(t, uint(3), cover.ID)

	assert.Nil(t, CoverPhoto(media[:2]), "no cover flagged")
	assert.Nil(t, CoverPhoto(nil))
}
