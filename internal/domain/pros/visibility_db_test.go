package pros

import (
	"testing"

	"teranga-pro/internal/domain/catalog"
	"teranga-pro/internal/domain/users"

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
		&ProProfile{},
		&MediaPro{},
	))
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, phone string, published bool) ProProfile {
	t.Helper()

	user := users.User{Phone: phone, Role: users.RolePro, WhatsappVerified: true, IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	var job catalog.Job
	if err := db.First(&job).Error; err != nil {
		cat := catalog.JobCategory{Name: "Bâtiment", Slug: "batiment"}
		require.NoError(t, db.Create(&cat).Error)
		job = catalog.Job{Name: "Plombier", Slug: "plombier", CategoryID: cat.ID}
		require.NoError(t, db.Create(&job).Error)
	}
	var loc catalog.Location
	if err := db.First(&loc).Error; err != nil {
		loc = catalog.Location{Name: "Dakar", Type: catalog.LocationCity, Slug: "dakar"}
		require.NoError(t, db.Create(&loc).Error)
	}

	profile := ProProfile{
		UserID:        user.ID,
		BusinessName:  "Ndiaye Services",
		JobID:         job.ID,
		LocationID:    loc.ID,
		Slug:          "plombier-dakar-" + phone,
		CallPhone:     phone,
		WhatsappPhone: phone,
		IsPublished:   published,
	}
	require.NoError(t, db.Create(&profile).Error)
	return profile
}

func TestSetPublishedForUser(t *testing.T) {
	db := newTestDB(t)

	blocked := seedProfile(t, db, "+221770000001", true)
	other := seedProfile(t, db, "+221770000002", true)

	require.NoError(t, SetPublishedForUser(db, blocked.UserID, false))

	var got ProProfile
	require.NoError(t, db.First(&got, blocked.ID).Error)
	assert.False(t, got.IsPublished)

	// Only the targeted owner is touched. A fresh destination struct is needed
	// here: GORM treats a primary key already set on the dest as an extra
	// query condition.
	var gotOther ProProfile
	require.NoError(t, db.First(&gotOther, other.ID).Error)
	assert.True(t, gotOther.IsPublished)
}

func TestSetPublishedForUserWithoutProfile(t *testing.T) {
	db := newTestDB(t)

	user := users.User{Phone: "+221770000003", Role: users.RoleClient, IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	// A client account has no profile row to hide.
	assert.NoError(t, SetPublishedForUser(db, user.ID, false))
}
