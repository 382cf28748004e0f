package billing

import (
	"testing"
	"time"

	"teranga-pro/internal/domain/catalog"
	"teranga-pro/internal/domain/pros"
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

	// A plain :memory: DSN gives every pooled connection its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&catalog.JobCategory{},
		&catalog.Job{},
		&catalog.Location{},
		&pros.ProProfile{},
		&pros.MediaPro{},
		&Payment{},
		&Subscription{},
	))
	return db
}

// seedPro creates a verified PRO user with a published profile and returns
// the user.
func seedPro(t *testing.T, db *gorm.DB, phone string) users.User {
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

	profile := pros.ProProfile{
		UserID:        user.ID,
		BusinessName:  "Ndiaye Services",
		JobID:         job.ID,
		LocationID:    loc.ID,
		Slug:          "plombier-dakar-" + phone,
		CallPhone:     phone,
		WhatsappPhone: phone,
		IsPublished:   true,
	}
	require.NoError(t, db.Create(&profile).Error)
	return user
}

func profilePublished(t *testing.T, db *gorm.DB, userID uint) bool {
	t.Helper()
	var profile pros.ProProfile
	require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
	return profile.IsPublished
}

func TestSettlePaymentActivatesAndRepublishes(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	user := seedPro(t, db, "+221770000001")
	require.NoError(t, db.Model(&pros.ProProfile{}).
		Where("user_id = ?", user.ID).
		Update("is_published", false).Error)

	pending := Payment{UserID: user.ID, ProviderRef: "ref-001", Amount: 1000}
	require.NoError(t, db.Create(&pending).Error)

	payment, err := SettlePayment(db, "ref-001", PaymentPaid, []byte(`{"status":"succeeded"}`), 30, now)
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, payment.Status)
	require.NotNil(t, payment.PaidAt)

	var sub Subscription
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&sub).Error)
	assert.Equal(t, SubscriptionActive, sub.Status)
	require.NotNil(t, sub.EndAt)
	assert.True(t, sub.EndAt.Equal(now.Add(30*24*time.Hour)))
	require.NotNil(t, sub.LastPaymentID)
	assert.Equal(t, payment.ID, *sub.LastPaymentID)

	// Paying restores visibility without a manual re-publish.
	assert.True(t, profilePublished(t, db, user.ID))
}

func TestSettlePaymentRetryIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	user := seedPro(t, db, "+221770000002")
	pending := Payment{UserID: user.ID, ProviderRef: "ref-002", Amount: 1000}
	require.NoError(t, db.Create(&pending).Error)

	first, err := SettlePayment(db, "ref-002", PaymentPaid, nil, 30, now)
	require.NoError(t, err)

	var subBefore Subscription
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&subBefore).Error)

	// Provider retries the webhook a day later. The payment is already
	// terminal, so nothing may move, in particular the window must not stack.
	retry, err := SettlePayment(db, "ref-002", PaymentPaid, nil, 30, now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.ID, retry.ID)
	require.NotNil(t, retry.PaidAt)
	assert.True(t, retry.PaidAt.Equal(*first.PaidAt))

	var subAfter Subscription
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&subAfter).Error)
	require.NotNil(t, subAfter.EndAt)
	assert.True(t, subAfter.EndAt.Equal(*subBefore.EndAt))
}

func TestSettlePaymentUnknownReference(t *testing.T) {
	db := newTestDB(t)

	_, err := SettlePayment(db, "never-issued", PaymentPaid, nil, 30, time.Now())
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestSettlePaymentFailureDoesNotActivate(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()

	user := seedPro(t, db, "+221770000003")
	pending := Payment{UserID: user.ID, ProviderRef: "ref-003", Amount: 1000}
	require.NoError(t, db.Create(&pending).Error)

	payment, err := SettlePayment(db, "ref-003", PaymentFailed, nil, 30, now)
	require.NoError(t, err)
	assert.Equal(t, PaymentFailed, payment.Status)
	assert.Nil(t, payment.PaidAt)

	var count int64
	require.NoError(t, db.Model(&Subscription{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestExpireSweepIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()

	user := seedPro(t, db, "+221770000004")
	start := now.AddDate(0, -2, 0)
	end := now.AddDate(0, -1, 0)
	require.NoError(t, db.Create(&Subscription{
		UserID: user.ID, Status: SubscriptionActive, StartAt: &start, EndAt: &end,
	}).Error)

	n, err := ExpireSweep(db, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var sub Subscription
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&sub).Error)
	assert.Equal(t, SubscriptionExpired, sub.Status)
	assert.False(t, profilePublished(t, db, user.ID))

	// Second run finds nothing ACTIVE past its window.
	n, err = ExpireSweep(db, now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExpireSweepHidesOnlyTransitionedRows(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()

	stale := seedPro(t, db, "+221770000005")
	current := seedPro(t, db, "+221770000006")
	perpetual := seedPro(t, db, "+221770000007")

	pastStart, pastEnd := now.AddDate(0, -2, 0), now.AddDate(0, -1, 0)
	futureEnd := now.AddDate(0, 1, 0)
	require.NoError(t, db.Create(&Subscription{
		UserID: stale.ID, Status: SubscriptionActive, StartAt: &pastStart, EndAt: &pastEnd,
	}).Error)
	require.NoError(t, db.Create(&Subscription{
		UserID: current.ID, Status: SubscriptionActive, StartAt: &pastStart, EndAt: &futureEnd,
	}).Error)
	require.NoError(t, db.Create(&Subscription{
		UserID: perpetual.ID, Status: SubscriptionActive, StartAt: &pastStart, EndAt: nil,
	}).Error)

	n, err := ExpireSweep(db, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.False(t, profilePublished(t, db, stale.ID))
	assert.True(t, profilePublished(t, db, current.ID))
	assert.True(t, profilePublished(t, db, perpetual.ID))

	var perpetualSub Subscription
	require.NoError(t, db.Where("user_id = ?", perpetual.ID).First(&perpetualSub).Error)
	assert.Equal(t, SubscriptionActive, perpetualSub.Status)
}

func TestEntitledSet(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()

	active := seedPro(t, db, "+221770000008")
	lapsed := seedPro(t, db, "+221770000009")
	never := seedPro(t, db, "+221770000010")

	start := now.AddDate(0, -1, 0)
	futureEnd := now.AddDate(0, 1, 0)
	pastEnd := now.AddDate(0, 0, -1)
	require.NoError(t, db.Create(&Subscription{
		UserID: active.ID, Status: SubscriptionActive, StartAt: &start, EndAt: &futureEnd,
	}).Error)
	require.NoError(t, db.Create(&Subscription{
		UserID: lapsed.ID, Status: SubscriptionActive, StartAt: &start, EndAt: &pastEnd,
	}).Error)

	got, err := EntitledSet(db, []uint{active.ID, lapsed.ID, never.ID}, now)
	require.NoError(t, err)
	assert.True(t, got[active.ID])
	assert.False(t, got[lapsed.ID])
	assert.False(t, got[never.ID])

	empty, err := EntitledSet(db, nil, now)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
