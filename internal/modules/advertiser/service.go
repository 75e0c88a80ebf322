package advertiser

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"adops/internal/domain"
	"adops/internal/modules/schedule"
	"adops/internal/pkg/apperr"
	"adops/internal/pkg/validator"
)

type Service struct {
	advertisers AdvertiserRepository
	ads         adReader
	invoices    invoiceReader
	products    priceReader
	log         logrus.FieldLogger
	loc         *time.Location
	now         func() time.Time
}

func NewService(
	advertisers AdvertiserRepository,
	ads adReader,
	invoices invoiceReader,
	products priceReader,
	log logrus.FieldLogger,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		advertisers: advertisers,
		ads:         ads,
		invoices:    invoices,
		products:    products,
		log:         log,
		loc:         loc,
		now:         time.Now,
	}
}

// WithClock replaces the wall clock used to decide what today is.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Create(ctx context.Context, req CreateAdvertiserRequest) (*domain.Advertiser, error) {
	req.Name = domain.CleanName(req.Name)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	existing, err := s.advertisers.FindByName(ctx, req.Name)
	if err == nil {
		return nil, apperr.Validation("advertiser_name", "advertiser %q already exists (id %d)", existing.Name, existing.ID)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	status := domain.AdvertiserActive
	if req.Status != "" {
		status = domain.AdvertiserStatus(req.Status)
	}
	adv := &domain.Advertiser{
		Name:        req.Name,
		ContactName: strings.TrimSpace(req.ContactName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Status:      status,
	}
	if err := s.advertisers.Create(ctx, adv); err != nil {
		return nil, err
	}
	return adv, nil
}

// Get accepts a numeric id or a display name.
func (s *Service) Get(ctx context.Context, key string) (*domain.Advertiser, error) {
	if strings.TrimSpace(key) == "" {
		return nil, apperr.Validation("advertiser", "advertiser is required")
	}
	return s.advertisers.Resolve(ctx, key)
}

func (s *Service) List(ctx context.Context, status string) ([]domain.Advertiser, error) {
	return s.advertisers.List(ctx, status)
}

// Recalculate rebuilds and stores the cached aggregates of one advertiser.
func (s *Service) Recalculate(ctx context.Context, key string) (*Aggregates, error) {
	adv, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.recalculate(ctx, *adv)
}

// RecalculateAll walks every advertiser. A failure on one does not stop the
// others; the failures are joined into the returned error.
func (s *Service) RecalculateAll(ctx context.Context) (int, error) {
	all, err := s.advertisers.List(ctx, "")
	if err != nil {
		return 0, err
	}

	var errs []error
	done := 0
	for _, adv := range all {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := s.recalculate(ctx, adv); err != nil {
			s.log.WithFields(logrus.Fields{"op": "recalculate_all", "advertiser": adv.Name}).WithError(err).Warn("recalculation failed")
			errs = append(errs, err)
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}

// Refresh recalculates the advertisers behind ads after a mutation. It never
// fails: the mutation has already committed and a stale cache is repaired by
// the next recalculation.
func (s *Service) Refresh(ctx context.Context, ads ...domain.Ad) {
	seen := make(map[int64]struct{})
	for _, ad := range ads {
		adv, err := s.owner(ctx, ad)
		if err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				s.log.WithFields(logrus.Fields{"op": "refresh", "ad_id": ad.ID, "advertiser": ad.Advertiser}).WithError(err).Warn("advertiser lookup failed")
			}
			continue
		}
		if _, dup := seen[adv.ID]; dup {
			continue
		}
		seen[adv.ID] = struct{}{}

		if _, err := s.recalculate(ctx, *adv); err != nil {
			s.log.WithFields(logrus.Fields{"op": "refresh", "advertiser": adv.Name}).WithError(err).Warn("recalculation failed")
		}
	}
}

func (s *Service) owner(ctx context.Context, ad domain.Ad) (*domain.Advertiser, error) {
	if ad.AdvertiserID != nil {
		return s.advertisers.GetByID(ctx, *ad.AdvertiserID)
	}
	if strings.TrimSpace(ad.Advertiser) == "" {
		return nil, apperr.NotFound("advertiser", "")
	}
	return s.advertisers.FindByName(ctx, ad.Advertiser)
}

func (s *Service) recalculate(ctx context.Context, adv domain.Advertiser) (*Aggregates, error) {
	ads, err := s.ads.ListForAdvertiser(ctx, adv)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoices.GetByIDs(ctx, invoiceIDs(ads))
	if err != nil {
		return nil, err
	}
	paid := make(map[int64]bool, len(invoices))
	for _, inv := range invoices {
		if inv.IsPaid() && !inv.IsDeleted() {
			paid[inv.ID] = true
		}
	}

	prices, err := s.products.PriceIndex(ctx, domain.ProductIDs(ads))
	if err != nil {
		return nil, err
	}

	agg := Compute(ads, paid, prices, schedule.DateOnly(s.now(), s.loc))
	if err := s.advertisers.UpdateCaches(ctx, adv.ID, agg.TotalSpend, agg.NextAdDate); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"op":          "recalculate",
		"advertiser":  adv.Name,
		"total_spend": agg.TotalSpend,
	}).Debug("advertiser aggregates updated")
	return &agg, nil
}
