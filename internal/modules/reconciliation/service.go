package reconciliation

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"adops/internal/domain"
)

type invoiceReader interface {
	ListForAudit(ctx context.Context) ([]domain.Invoice, []domain.InvoiceItem, error)
}

type adReader interface {
	ListAll(ctx context.Context) ([]domain.Ad, error)
}

type priceReader interface {
	PriceIndex(ctx context.Context, ids []int64) (map[int64]float64, error)
}

type Service struct {
	invoices invoiceReader
	ads      adReader
	products priceReader
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewService(invoices invoiceReader, ads adReader, products priceReader, log logrus.FieldLogger) *Service {
	return &Service{
		invoices: invoices,
		ads:      ads,
		products: products,
		log:      log,
		now:      time.Now,
	}
}

// Run loads every invoice, item and ad and audits them.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	invoices, items, err := s.invoices.ListForAudit(ctx)
	if err != nil {
		return nil, err
	}
	ads, err := s.ads.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	prices, err := s.products.PriceIndex(ctx, domain.ProductIDs(ads))
	if err != nil {
		return nil, err
	}

	report := Audit(invoices, items, ads, prices)
	report.GeneratedAt = s.now().UTC()

	s.log.WithFields(logrus.Fields{
		"op":                  "reconciliation",
		"invoices":            report.InvoicesChecked,
		"discrepancies":       len(report.Discrepancies),
		"orphaned_paid_ads":   len(report.OrphanedPaidAds),
		"deleted_invoice_ads": len(report.DeletedInvoiceAds),
	}).Info("reconciliation report built")
	return &report, nil
}
