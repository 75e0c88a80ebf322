package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adops/internal/domain"
)

func oneTime(id int64, advertiser, placement, date string) domain.Ad {
	return domain.Ad{ID: id, AdName: "ad", Advertiser: advertiser, Placement: placement, PostType: domain.PostTypeOneTime, Schedule: date, Status: domain.AdPending}
}

func TestFindDuplicateOneTime(t *testing.T) {
	existing := []domain.Ad{oneTime(7, "Acme", "WhatsApp", "2024-06-10")}

	res := FindDuplicate(oneTime(0, "acme ", "whatsapp", "2024-06-10"), existing)
	assert.True(t, res.Conflict)
	require.NotNil(t, res.Match)
	assert.Equal(t, int64(7), res.Match.ID)
	assert.Equal(t, "Pending", res.Match.Status)

	res = FindDuplicate(oneTime(0, "Acme", "WhatsApp", "2024-06-11"), existing)
	assert.False(t, res.Conflict)
	assert.Nil(t, res.Match)
}

func TestFindDuplicateIgnoresOtherAdvertisersPlacementsAndArchived(t *testing.T) {
	archived := oneTime(8, "Acme", "WhatsApp", "2024-06-10")
	archived.Archived = true
	existing := []domain.Ad{
		oneTime(1, "Beta", "WhatsApp", "2024-06-10"),
		oneTime(2, "Acme", "Website", "2024-06-10"),
		archived,
	}

	assert.False(t, FindDuplicate(oneTime(0, "Acme", "WhatsApp", "2024-06-10"), existing).Conflict)
}

func TestFindDuplicatePrefersAdvertiserID(t *testing.T) {
	id1, id2 := int64(1), int64(2)
	a := oneTime(0, "Acme", "WhatsApp", "2024-06-10")
	a.AdvertiserID = &id1
	b := oneTime(9, "Acme", "WhatsApp", "2024-06-10")
	b.AdvertiserID = &id2

	assert.False(t, FindDuplicate(a, []domain.Ad{b}).Conflict)

	b.AdvertiserID = &id1
	b.Advertiser = "Acme Renamed"
	assert.True(t, FindDuplicate(a, []domain.Ad{b}).Conflict)
}

func TestFindDuplicateDailyRunComparesStartOnly(t *testing.T) {
	existing := []domain.Ad{{ID: 4, Advertiser: "Acme", Placement: "WhatsApp", PostType: "Daily Run", PostDateFrom: "2024-06-01", PostDateTo: "2024-06-30"}}

	same := domain.Ad{Advertiser: "Acme", Placement: "WhatsApp", PostType: domain.PostTypeDailyRun, PostDateFrom: "2024-06-01", PostDateTo: "2024-06-02"}
	assert.True(t, FindDuplicate(same, existing).Conflict)

	overlapping := domain.Ad{Advertiser: "Acme", Placement: "WhatsApp", PostType: domain.PostTypeDailyRun, PostDateFrom: "2024-06-05", PostDateTo: "2024-06-06"}
	assert.False(t, FindDuplicate(overlapping, existing).Conflict)
}

func TestFindDuplicateNeverFlagsCustomSchedules(t *testing.T) {
	custom := domain.Ad{Advertiser: "Acme", Placement: "WhatsApp", PostType: domain.PostTypeCustomSchedule, CustomDates: []string{"2024-06-10"}}
	existing := []domain.Ad{
		oneTime(1, "Acme", "WhatsApp", "2024-06-10"),
		{ID: 2, Advertiser: "Acme", Placement: "WhatsApp", PostType: domain.PostTypeCustomSchedule, CustomDates: []string{"2024-06-10"}},
	}

	assert.False(t, FindDuplicate(custom, existing).Conflict)
	assert.False(t, FindDuplicate(oneTime(0, "Acme", "WhatsApp", "2024-06-10"), existing[1:]).Conflict)
}

func TestFindDuplicateKindsMustMatch(t *testing.T) {
	existing := []domain.Ad{{ID: 3, Advertiser: "Acme", Placement: "WhatsApp", PostType: domain.PostTypeDailyRun, PostDateFrom: "2024-06-10"}}

	assert.False(t, FindDuplicate(oneTime(0, "Acme", "WhatsApp", "2024-06-10"), existing).Conflict)
}
