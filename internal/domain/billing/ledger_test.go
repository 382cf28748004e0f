package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSubscriptionIsActive(t *testing.T) {
	now := ts("2025-06-01T12:00:00Z")
	future := ts("2025-06-15T12:00:00Z")
	past := ts("2025-05-01T12:00:00Z")

	cases := []struct {
		name string
		sub  Subscription
		want bool
	}{
		{"active with future end", Subscription{Status: SubscriptionActive, EndAt: &future}, true},
		{"active with past end", Subscription{Status: SubscriptionActive, EndAt: &past}, false},
		{"active perpetual (nil end)", Subscription{Status: SubscriptionActive, EndAt: nil}, true},
		{"expired with future end", Subscription{Status: SubscriptionExpired, EndAt: &future}, false},
		{"canceled", Subscription{Status: SubscriptionCanceled, EndAt: &future}, false},
		{"end exactly now", Subscription{Status: SubscriptionActive, EndAt: &now}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.sub.IsActive(now))
		})
	}
}

func TestNextWindowStacking(t *testing.T) {
	now := ts("2025-06-01T12:00:00Z")
	start := ts("2025-05-12T12:00:00Z")
	end := ts("2025-06-11T12:00:00Z") // 10 days remaining

	sub := &Subscription{Status: SubscriptionActive, StartAt: &start, EndAt: &end}

	gotStart, gotEnd := NextWindow(sub, now, 30)

	// renewal before expiry stacks: old end + 30 days, not now + 30 days
	require.NotNil(t, gotEnd)
	assert.Equal(t, start, gotStart)
	assert.Equal(t, end.AddDate(0, 0, 30), *gotEnd)
}

func TestNextWindowRestart(t *testing.T) {
	now := ts("2025-06-01T12:00:00Z")
	oldStart := ts("2025-03-01T12:00:00Z")
	oldEnd := ts("2025-04-01T12:00:00Z")

	cases := []struct {
		name string
		sub  *Subscription
	}{
		{"nil subscription", nil},
		{"expired window", &Subscription{Status: SubscriptionActive, StartAt: &oldStart, EndAt: &oldEnd}},
		{"expired status", &Subscription{Status: SubscriptionExpired, StartAt: &oldStart, EndAt: &oldEnd}},
		{"canceled status", &Subscription{Status: SubscriptionCanceled, StartAt: &oldStart, EndAt: &oldEnd}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotStart, gotEnd := NextWindow(tc.sub, now, 30)
			require.NotNil(t, gotEnd)
			assert.Equal(t, now, gotStart)
			assert.Equal(t, now.AddDate(0, 0, 30), *gotEnd)
		})
	}
}

func TestNextWindowPerpetualStaysPerpetual(t *testing.T) {
	now := ts("2025-06-01T12:00:00Z")
	start := ts("2025-01-01T00:00:00Z")
	sub := &Subscription{Status: SubscriptionActive, StartAt: &start, EndAt: nil}

	gotStart, gotEnd := NextWindow(sub, now, 30)
	assert.Equal(t, start, gotStart)
	assert.Nil(t, gotEnd)
}
