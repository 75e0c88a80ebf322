package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adops/internal/domain"
	"adops/internal/pkg/apperr"
)

func TestBuildCalendar(t *testing.T) {
	ads := []domain.Ad{
		{ID: 3, AdName: "Spring run", Advertiser: "Acme", PostType: domain.PostTypeDailyRun, PostDateFrom: "2024-02-28", PostDateTo: "2024-03-02", Placement: "WhatsApp", Status: domain.AdPublished, Payment: domain.PaymentPaid},
		{ID: 2, AdName: "Launch", Advertiser: "Beta", PostType: "One-Time Post", Schedule: "2024-03-01", Placement: "Website"},
		{ID: 1, AdName: "Old", Advertiser: "Acme", PostType: domain.PostTypeOneTime, Schedule: "2024-03-01", Archived: true},
		{ID: 4, AdName: "Broken", PostType: domain.PostTypeDailyRun},
		{ID: 5, AdName: "Picks", PostType: domain.PostTypeCustomSchedule, CustomDates: []string{"2024-03-31", "2024-04-01"}},
	}

	cal, err := BuildCalendar(ads, 2024, time.March)

	require.NoError(t, err)
	assert.Len(t, cal, 3)
	require.Len(t, cal["2024-03-01"], 2)
	assert.Equal(t, int64(3), cal["2024-03-01"][0].ID)
	assert.Equal(t, int64(2), cal["2024-03-01"][1].ID)
	assert.Equal(t, "One-Time Post", cal["2024-03-01"][1].PostType)
	assert.Equal(t, "Daily Run", cal["2024-03-02"][0].PostType)
	assert.Equal(t, "Paid", cal["2024-03-02"][0].Payment)
	assert.Equal(t, int64(5), cal["2024-03-31"][0].ID)
	assert.NotContains(t, cal, "2024-02-29")
	assert.NotContains(t, cal, "2024-04-01")
}

func TestBuildCalendarValidatesMonth(t *testing.T) {
	_, err := BuildCalendar(nil, 2024, time.Month(13))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	cal, err := BuildCalendar(nil, 2024, time.December)
	require.NoError(t, err)
	assert.Empty(t, cal)
}
