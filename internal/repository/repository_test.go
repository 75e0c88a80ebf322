package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adops/internal/domain"
	"adops/internal/pkg/apperr"
	"adops/internal/testutil"
)

func TestTablePrimitives(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	products := NewTable[domain.Product](db, "products")

	require.NoError(t, products.Insert(ctx, &domain.Product{ProductName: "Banner", Price: 120}))
	require.NoError(t, products.Insert(ctx, &domain.Product{ProductName: "Story", Price: 40}))

	rows, err := products.Select(ctx, Query{Filters: []Filter{GTE("price", 100)}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Banner", rows[0].ProductName)

	n, err := products.Update(ctx, []Filter{Fold("product_name", " story ")}, map[string]any{"price": 45.5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	story, err := products.First(ctx, Query{Filters: []Filter{Eq("product_name", "Story")}})
	require.NoError(t, err)
	assert.Equal(t, 45.5, story.Price)

	n, err = products.Delete(ctx, Eq("id", story.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = products.First(ctx, Query{Filters: []Filter{Eq("id", story.ID)}})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTableRefusesUnfilteredWrites(t *testing.T) {
	db := testutil.OpenDB(t)
	products := NewTable[domain.Product](db, "products")

	_, err := products.Delete(context.Background())
	assert.Error(t, err)
	_, err = products.Update(context.Background(), nil, map[string]any{"price": 0})
	assert.Error(t, err)
	_, err = products.Select(context.Background(), Query{Filters: []Filter{Eq("price; DROP TABLE products", 1)}})
	assert.Error(t, err)
}

func TestAdRepositoryJoinsAdvertiserByIDOrName(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	ads := NewAdRepository(db)

	acme := domain.Advertiser{ID: 10, Name: "Acme Corp"}
	for _, ad := range []domain.Ad{
		{AdName: "by id", Advertiser: "Old Name", AdvertiserID: testutil.Int64(10), PostType: domain.PostTypeOneTime, Placement: "WhatsApp"},
		{AdName: "by name", Advertiser: "  acme corp", PostType: domain.PostTypeOneTime, Placement: "WhatsApp"},
		{AdName: "other id", Advertiser: "Acme Corp", AdvertiserID: testutil.Int64(11), PostType: domain.PostTypeOneTime, Placement: "WhatsApp"},
		{AdName: "archived", Advertiser: "Acme Corp", PostType: domain.PostTypeOneTime, Placement: "whatsapp", Archived: true},
	} {
		require.NoError(t, ads.Create(ctx, &ad))
	}

	mine, err := ads.ListForAdvertiser(ctx, acme)
	require.NoError(t, err)
	names := make([]string, 0, len(mine))
	for _, ad := range mine {
		names = append(names, ad.AdName)
	}
	assert.ElementsMatch(t, []string{"by id", "by name", "archived"}, names)

	candidates, err := ads.ListCandidates(ctx, domain.Ad{Advertiser: "ACME CORP", Placement: " whatsapp"})
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestAdRepositoryNameJoinIgnoresInnerWhitespace(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	ads := NewAdRepository(db)
	advertisers := NewAdvertiserRepository(db)

	legacy := &domain.Advertiser{Name: "Globex   Industries"}
	require.NoError(t, advertisers.Create(ctx, legacy))
	found, err := advertisers.FindByName(ctx, "globex industries")
	require.NoError(t, err)
	assert.Equal(t, legacy.ID, found.ID)

	acme := domain.Advertiser{ID: 10, Name: "Acme Corp"}
	paid := &domain.Ad{
		AdName: "spaced", Advertiser: "Acme  Corp", Payment: domain.PaymentPaid,
		PostType: domain.PostTypeOneTime, Placement: "Homepage", Schedule: "2024-06-10",
	}
	require.NoError(t, ads.Create(ctx, paid))
	require.True(t, paid.BelongsTo(acme))

	mine, err := ads.ListForAdvertiser(ctx, acme)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, paid.ID, mine[0].ID)

	candidates, err := ads.ListCandidates(ctx, domain.Ad{Advertiser: "Acme  Corp", Placement: "homepage"})
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	withID, err := ads.ListCandidates(ctx, domain.Ad{Advertiser: "Acme Corp", AdvertiserID: testutil.Int64(10), Placement: "Homepage"})
	require.NoError(t, err)
	assert.Len(t, withID, 1)
}

func TestInvoiceRepositorySoftDeleteKeepsAuditTrail(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	invoices := NewInvoiceRepository(db)

	inv := &domain.Invoice{
		InvoiceNumber: "INV-20240101-AB12",
		Advertiser:    "Acme",
		Total:         100,
		Items:         []domain.InvoiceItem{{Description: "Banner", Quantity: 1, UnitPrice: 100, Amount: 100}},
	}
	require.NoError(t, invoices.Create(ctx, inv))
	require.NoError(t, invoices.SoftDelete(ctx, inv.ID))

	live, err := invoices.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, live)

	all, items, err := invoices.ListForAudit(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsDeleted())
	assert.Len(t, items, 1)

	numbers, err := invoices.NumbersWithPrefix(ctx, "INV-2024")
	require.NoError(t, err)
	assert.Equal(t, []string{"INV-20240101-AB12"}, numbers)

	dup := &domain.Invoice{InvoiceNumber: "INV-20240101-AB12", Advertiser: "Acme"}
	assert.True(t, IsUniqueViolation(invoices.Create(ctx, dup)))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(apperr.Store("insert invoices", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
}
