package pros

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	prosdomain "teranga-pro/internal/domain/pros"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMediaStoresNormalizedType(t *testing.T) {
	db := newTestDB(t)
	useTestDB(t, db)

	user, profile := seedProUser(t, db, "+221770000050", true)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/pros/me/media",
		strings.NewReader(`{"type":" photo ","file":"gallery/cover.jpg","size_bytes":1024,"is_cover":true}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", user.ID)

	AddMedia(c)
	require.Equal(t, http.StatusOK, w.Code)

	var media []prosdomain.MediaPro
	require.NoError(t, db.Where("profile_id = ?", profile.ID).Find(&media).Error)
	require.Len(t, media, 1)
	assert.Equal(t, prosdomain.MediaPhoto, media[0].Type)

	// The cover lookup matches the constant, so a lowercase submission must
	// still surface as the gallery cover.
	cover := prosdomain.CoverPhoto(media)
	require.NotNil(t, cover)
	assert.Equal(t, "gallery/cover.jpg", cover.File)
}
