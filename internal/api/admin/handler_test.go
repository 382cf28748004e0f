package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"teranga-pro/database"
	"teranga-pro/internal/domain/catalog"
	prosdomain "teranga-pro/internal/domain/pros"
	"teranga-pro/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&catalog.JobCategory{},
		&catalog.Job{},
		&catalog.Location{},
		&prosdomain.ProProfile{},
		&prosdomain.MediaPro{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

func TestSetUserActiveBlockHidesProfile(t *testing.T) {
	db := newTestDB(t)

	user := users.User{Phone: "+221770000060", Role: users.RolePro, WhatsappVerified: true, IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	cat := catalog.JobCategory{Name: "Bâtiment", Slug: "batiment"}
	require.NoError(t, db.Create(&cat).Error)
	job := catalog.Job{Name: "Plombier", Slug: "plombier", CategoryID: cat.ID}
	require.NoError(t, db.Create(&job).Error)
	loc := catalog.Location{Name: "Dakar", Type: catalog.LocationCity, Slug: "dakar"}
	require.NoError(t, db.Create(&loc).Error)

	profile := prosdomain.ProProfile{
		UserID:        user.ID,
		BusinessName:  "Ndiaye Services",
		JobID:         job.ID,
		LocationID:    loc.ID,
		Slug:          "plombier-dakar-60",
		CallPhone:     user.Phone,
		WhatsappPhone: user.Phone,
		IsPublished:   true,
	}
	require.NoError(t, db.Create(&profile).Error)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/admin/users/1/active",
		strings.NewReader(`{"active":false}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	SetUserActive(c)
	require.Equal(t, http.StatusOK, w.Code)

	var gotUser users.User
	require.NoError(t, db.First(&gotUser, user.ID).Error)
	assert.False(t, gotUser.IsActive)

	var gotProfile prosdomain.ProProfile
	require.NoError(t, db.First(&gotProfile, profile.ID).Error)
	assert.False(t, gotProfile.IsPublished)
}
