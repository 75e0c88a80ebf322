package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adops/internal/domain"
	"adops/internal/pkg/apperr"
)

func TestExpandDailyRun(t *testing.T) {
	ad := domain.Ad{PostType: domain.PostTypeDailyRun, PostDateFrom: "2024-03-01", PostDateTo: "2024-03-03"}

	dates, err := Expand(ad)

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01", "2024-03-02", "2024-03-03"}, dates)
}

func TestExpandDailyRunWithoutEndIsSingleDay(t *testing.T) {
	dates, err := Expand(domain.Ad{PostType: "Daily Run", PostDateFrom: "2024-02-28"})

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-28"}, dates)
}

func TestExpandDailyRunCrossesMonthAndLeapDay(t *testing.T) {
	dates, err := Expand(domain.Ad{PostType: domain.PostTypeDailyRun, PostDateFrom: "2024-02-28", PostDateTo: "2024-03-01"})

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, dates)
}

func TestExpandDailyRunRejectsBadRanges(t *testing.T) {
	cases := []domain.Ad{
		{PostType: domain.PostTypeDailyRun, PostDateTo: "2024-03-03"},
		{PostType: domain.PostTypeDailyRun, PostDateFrom: "2024-03-05", PostDateTo: "2024-03-03"},
		{PostType: domain.PostTypeDailyRun, PostDateFrom: "2024-03-01", PostDateTo: "soon"},
		{PostType: domain.PostTypeDailyRun, PostDateFrom: "2020-01-01", PostDateTo: "2030-01-01"},
	}
	for _, ad := range cases {
		_, err := Expand(ad)
		assert.ErrorIs(t, err, apperr.ErrValidation, "ad %+v", ad)
	}
}

func TestExpandCustomSchedule(t *testing.T) {
	ad := domain.Ad{PostType: domain.PostTypeCustomSchedule, CustomDates: []string{"2024-05-01", "2024-05-01", "bad-date"}}

	dates, err := Expand(ad)

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-01"}, dates)
}

func TestExpandCustomScheduleSortsDates(t *testing.T) {
	ad := domain.Ad{PostType: "custom", CustomDates: []string{"2024-05-09", " 2024-05-02", "2024-13-01", "2024-05-02"}}

	dates, err := Expand(ad)

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-02", "2024-05-09"}, dates)
}

func TestExpandOneTime(t *testing.T) {
	dates, err := Expand(domain.Ad{PostType: "One-Time Post", Schedule: "2024-06-10"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-10"}, dates)

	dates, err = Expand(domain.Ad{PostType: domain.PostTypeOneTime, PostDateFrom: "2024-06-11"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-11"}, dates)

	_, err = Expand(domain.Ad{PostType: domain.PostTypeOneTime})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestExpandIsIdempotent(t *testing.T) {
	ads := []domain.Ad{
		{PostType: domain.PostTypeOneTime, Schedule: "2024-06-10"},
		{PostType: domain.PostTypeDailyRun, PostDateFrom: "2024-01-30", PostDateTo: "2024-02-02"},
		{PostType: domain.PostTypeCustomSchedule, CustomDates: []string{"2024-07-04", "2024-07-01", "2024-07-04"}},
	}
	for _, ad := range ads {
		first, err := Expand(ad)
		require.NoError(t, err)
		second, err := Expand(ad)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.IsIncreasing(t, first)
	}
}

func TestNormalizeDate(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	got, err := NormalizeDate("2024-03-01", ny)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", got)

	got, err = NormalizeDate("2024-03-02T02:30:00Z", ny)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", got)

	got, err = NormalizeDate("2024-03-02 02:30:00", ny)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", got)

	got, err = NormalizeDate("   ", ny)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = NormalizeDate("next tuesday", ny)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestNextOccurrenceAndOverlaps(t *testing.T) {
	run := domain.Ad{PostType: domain.PostTypeDailyRun, PostDateFrom: "2024-03-01", PostDateTo: "2024-03-10"}

	assert.Equal(t, "2024-03-05", NextOccurrence(run, "2024-03-05"))
	assert.Equal(t, "2024-03-01", NextOccurrence(run, "2024-02-01"))
	assert.Empty(t, NextOccurrence(run, "2024-03-11"))

	assert.True(t, Overlaps(run, "2024-03-10", "2024-03-31"))
	assert.False(t, Overlaps(run, "2024-03-11", "2024-03-31"))
	assert.Equal(t, "2024-03-01", StartDate(run))
	assert.Equal(t, "2024-07-01", StartDate(domain.Ad{CustomDates: []string{"2024-07-04", "2024-07-01"}}))
}
