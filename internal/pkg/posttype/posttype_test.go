package posttype

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"adops/internal/domain"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"One-Time Post":        domain.PostTypeOneTime,
		"one_time":             domain.PostTypeOneTime,
		"one-time":             domain.PostTypeOneTime,
		"  ONE TIME  ":         domain.PostTypeOneTime,
		"Daily Run":            domain.PostTypeDailyRun,
		"daily_run":            domain.PostTypeDailyRun,
		"daily-run post":       domain.PostTypeDailyRun,
		"Custom Schedule":      domain.PostTypeCustomSchedule,
		"custom_schedule":      domain.PostTypeCustomSchedule,
		"Custom Schedule Post": domain.PostTypeCustomSchedule,
		"multiple dates":       domain.PostTypeCustomSchedule,
		"":                     domain.PostTypeOneTime,
		"weekly blast":         domain.PostTypeOneTime,
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	for _, in := range []string{"One-Time Post", "one_time", "one-time"} {
		kind := Normalize(in)
		assert.Equal(t, domain.PostTypeOneTime, kind)
		assert.Equal(t, "One-Time Post", Label(kind))
	}
	for _, kind := range []string{domain.PostTypeOneTime, domain.PostTypeDailyRun, domain.PostTypeCustomSchedule} {
		assert.Equal(t, kind, Normalize(Label(kind)))
		assert.True(t, IsCanonical(kind))
	}
	assert.False(t, IsCanonical("Daily Run"))
}

func TestBadge(t *testing.T) {
	assert.Equal(t, "One-Time", Badge("One-Time Post"))
	assert.Equal(t, "Daily", Badge(domain.PostTypeDailyRun))
	assert.Equal(t, "Custom", Badge("custom"))
}
