package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"adops/internal/config"
	"adops/internal/database"
	"adops/internal/domain"
	"adops/internal/logger"
	"adops/internal/modules/ads"
	"adops/internal/modules/advertiser"
	"adops/internal/modules/catalog"
	"adops/internal/modules/invoice"
	"adops/internal/server"
)

func main() {
	reset := flag.Bool("reset", true, "delete existing rows before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.Logger())

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("DB connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("AutoMigrate failed")
	}

	if *reset {
		log.Info("cleaning old data")
		// Children first.
		for _, table := range []string{"invoice_items", "invoices", "ads", "advertisers", "products"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				log.WithError(err).WithField("table", table).Fatal("cleanup failed")
			}
		}
	}

	ctx := context.Background()
	svc := server.NewServices(db, log, cfg.Location())
	today := time.Now().In(cfg.Location())
	day := func(offset int) string { return today.AddDate(0, 0, offset).Format("2006-01-02") }

	log.Info("creating products")
	banner := mustProduct(ctx, log, svc.Catalog, catalog.CreateProductRequest{
		ProductName: "Homepage banner", PlacementType: "banner", Price: 150,
	})
	mustProduct(ctx, log, svc.Catalog, catalog.CreateProductRequest{
		ProductName: "Newsletter slot", PlacementType: "newsletter", Price: 90,
	})

	log.Info("creating advertisers")
	for _, req := range []advertiser.CreateAdvertiserRequest{
		{Name: "Acme Corp", ContactName: "Dana Lee", Email: "dana@acme.example", Status: "active"},
		{Name: "Bluebird Cafe", Email: "hello@bluebird.example", Status: "active"},
		{Name: "Northwind", Status: "inactive"},
	} {
		if _, err := svc.Advertisers.Create(ctx, req); err != nil {
			log.WithError(err).WithField("advertiser", req.Name).Fatal("create advertiser")
		}
	}

	log.Info("creating ads")
	bannerID := banner.ID
	price := 200.0
	seeded := []ads.CreateAdRequest{
		{AdName: "Spring launch", Advertiser: "Acme Corp", Placement: "Homepage", PostType: "one_time", Schedule: day(3), ProductID: &bannerID, Payment: "Paid"},
		{AdName: "Weekly promo", Advertiser: "Acme Corp", Placement: "Sidebar", PostType: "daily_run", PostDateFrom: day(1), PostDateTo: day(7), Price: &price},
		{AdName: "Brunch specials", Advertiser: "Bluebird Cafe", Placement: "Newsletter", PostType: "custom", CustomDates: []string{day(2), day(9), day(16)}, Price: &price},
		{AdName: "Archive sale", Advertiser: "Northwind", Placement: "Homepage", PostType: "one_time", Schedule: day(-20), ProductID: &bannerID, Payment: "Paid"},
	}
	created := make([]*domain.Ad, 0, len(seeded))
	for _, req := range seeded {
		req.Force = true
		res, err := svc.Ads.Create(ctx, req)
		if err != nil {
			log.WithError(err).WithField("ad", req.AdName).Fatal("create ad")
		}
		created = append(created, res.Ad)
	}

	log.Info("creating invoices")
	weekly := created[1].ID
	if _, err := svc.Invoices.Create(ctx, invoice.CreateInvoiceRequest{
		Advertiser: "Acme Corp",
		Status:     "Pending",
		Tax:        20,
		Items:      []invoice.ItemRequest{{AdID: &weekly, Description: "Weekly promo", Quantity: 1, UnitPrice: price}},
	}); err != nil {
		log.WithError(err).Fatal("create invoice")
	}
	if _, err := svc.Invoices.GenerateRecurring(ctx, invoice.RecurringRequest{
		Advertiser: "Bluebird Cafe",
		Period:     "monthly",
		StartDate:  day(0),
		EndDate:    day(30),
	}); err != nil {
		log.WithError(err).Warn("recurring invoice skipped")
	}

	n, err := svc.Advertisers.RecalculateAll(ctx)
	if err != nil {
		log.WithError(err).Fatal("recalculate advertisers")
	}
	log.WithField("advertisers", n).Info("seed completed")
}

func mustProduct(ctx context.Context, log logrus.FieldLogger, svc *catalog.Service, req catalog.CreateProductRequest) *domain.Product {
	p, err := svc.Create(ctx, req)
	if err != nil {
		log.WithError(err).WithField("product", req.ProductName).Fatal("create product")
	}
	return p
}
