package advertiser

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adops/internal/domain"
	"adops/internal/repository"
	"adops/internal/testutil"
)

func TestRefresh_MovedAdLeavesOldOwner(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	log, _ := test.NewNullLogger()
	advertisers := repository.NewAdvertiserRepository(db)
	ads := repository.NewAdRepository(db)
	svc := NewService(advertisers, ads, repository.NewInvoiceRepository(db), repository.NewProductRepository(db), log, time.UTC).
		WithClock(func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) })

	acme := &domain.Advertiser{Name: "Acme"}
	globex := &domain.Advertiser{Name: "Globex"}
	require.NoError(t, advertisers.Create(ctx, acme))
	require.NoError(t, advertisers.Create(ctx, globex))

	ad := &domain.Ad{
		AdName: "Banner", Advertiser: "Acme", AdvertiserID: &acme.ID,
		Payment: domain.PaymentPaid, Price: testutil.Float(100),
		PostType: domain.PostTypeOneTime, Placement: "Homepage", Schedule: "2024-06-10",
	}
	require.NoError(t, ads.Create(ctx, ad))
	svc.Refresh(ctx, *ad)

	before, err := advertisers.GetByID(ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, before.TotalSpend)

	old := *ad
	require.NoError(t, ads.Update(ctx, ad.ID, map[string]any{"advertiser": "Globex", "advertiser_id": globex.ID}))
	moved, err := ads.GetByID(ctx, ad.ID)
	require.NoError(t, err)
	svc.Refresh(ctx, old, *moved)

	after, err := advertisers.GetByID(ctx, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, after.TotalSpend)
	assert.Nil(t, after.NextAdDate)

	gained, err := advertisers.GetByID(ctx, globex.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, gained.TotalSpend)
	require.NotNil(t, gained.NextAdDate)
	assert.Equal(t, "2024-06-10", *gained.NextAdDate)
}
