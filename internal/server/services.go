package server

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"adops/internal/modules/ads"
	"adops/internal/modules/advertiser"
	"adops/internal/modules/catalog"
	"adops/internal/modules/invoice"
	"adops/internal/modules/reconciliation"
	"adops/internal/modules/settings"
	"adops/internal/repository"
)

// Services holds every module service wired against one database.
type Services struct {
	Ads            *ads.Service
	Advertisers    *advertiser.Service
	Invoices       *invoice.Service
	Reconciliation *reconciliation.Service
	Settings       *settings.Service
	Catalog        *catalog.Service
}

func NewServices(db *gorm.DB, log logrus.FieldLogger, loc *time.Location) *Services {
	adRepo := repository.NewAdRepository(db)
	advertiserRepo := repository.NewAdvertiserRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	productRepo := repository.NewProductRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	settingsService := settings.NewService(settingsRepo)
	advertiserService := advertiser.NewService(
		advertiserRepo,
		adRepo,
		invoiceRepo,
		productRepo,
		log.WithField("module", "advertiser"),
		loc,
	)

	return &Services{
		Ads: ads.NewService(
			adRepo,
			advertiserRepo,
			productRepo,
			settingsService,
			advertiserService,
			log.WithField("module", "ads"),
			loc,
		),
		Advertisers: advertiserService,
		Invoices: invoice.NewService(
			invoiceRepo,
			adRepo,
			advertiserRepo,
			productRepo,
			advertiserService,
			log.WithField("module", "invoice"),
			loc,
		),
		Reconciliation: reconciliation.NewService(
			invoiceRepo,
			adRepo,
			productRepo,
			log.WithField("module", "reconciliation"),
		),
		Settings: settingsService,
		Catalog:  catalog.NewService(productRepo),
	}
}
