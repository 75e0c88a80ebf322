package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"adops/internal/domain"
	"adops/internal/modules/schedule"
	"adops/internal/pkg/apperr"
	"adops/internal/pkg/validator"
	"adops/internal/repository"
)

// numberAttempts bounds retries when a generated invoice number is taken.
const numberAttempts = 3

type Service struct {
	invoices    InvoiceRepository
	ads         adRepository
	advertisers advertiserLookup
	products    priceReader
	refresher   Refresher
	adhoc       *Composer
	recurring   *Composer
	log         logrus.FieldLogger
	loc         *time.Location
	now         func() time.Time
}

func NewService(
	invoices InvoiceRepository,
	ads adRepository,
	advertisers advertiserLookup,
	products priceReader,
	refresher Refresher,
	log logrus.FieldLogger,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	s := &Service{
		invoices:    invoices,
		ads:         ads,
		advertisers: advertisers,
		products:    products,
		refresher:   refresher,
		log:         log,
		loc:         loc,
		now:         time.Now,
	}
	s.adhoc = NewComposer(NewRandomNumberer(loc, func() time.Time { return s.now() }, nil))
	s.recurring = NewComposer(NewSequentialNumberer(invoices))
	return s
}

// WithClock replaces the wall clock used for issue dates and invoice numbers.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithNumbers replaces the ad-hoc numbering strategy.
func (s *Service) WithNumbers(numbers NumberStrategy) *Service {
	s.adhoc = NewComposer(numbers)
	return s
}

func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (*domain.Invoice, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	status := domain.InvoicePending
	if req.Status != "" {
		st, ok := domain.ParseInvoiceStatus(req.Status)
		if !ok {
			return nil, apperr.Validation("status", "unknown invoice status %q", req.Status)
		}
		status = st
	}

	name, advID, err := s.advertiserRef(ctx, req.Advertiser, req.AdvertiserID)
	if err != nil {
		return nil, err
	}

	issue := s.today()
	if req.IssueDate != "" {
		if issue, err = s.date("issue_date", req.IssueDate); err != nil {
			return nil, err
		}
	}
	due, err := s.date("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}

	lines, err := s.lines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	inv, err := s.persist(ctx, s.adhoc, lines, req.Discount, req.Tax, status, func(c *Composition) *domain.Invoice {
		return &domain.Invoice{
			InvoiceNumber: c.InvoiceNumber,
			Advertiser:    name,
			AdvertiserID:  advID,
			Status:        status,
			Subtotal:      c.Subtotal,
			Discount:      c.Discount,
			Tax:           c.Tax,
			Total:         c.Total,
			AmountPaid:    c.AmountPaid,
			IssueDate:     issue,
			DueDate:       due,
			Notes:         req.Notes,
			Items:         c.Items,
		}
	})
	if err != nil {
		return nil, err
	}

	if inv.IsPaid() {
		s.settle(ctx, inv)
	}
	return inv, nil
}

// GenerateRecurring bills an advertiser for the ads starting inside a period.
// Nothing is written when no ad qualifies.
func (s *Service) GenerateRecurring(ctx context.Context, req RecurringRequest) (*domain.Invoice, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if !domain.RecurringPeriod(strings.ToLower(strings.TrimSpace(req.Period))).Valid() {
		return nil, apperr.Validation("period", "period must be weekly, monthly or quarterly, got %q", req.Period)
	}
	start, err := s.date("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := s.date("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	due, err := s.date("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}

	adv, err := s.advertisers.Resolve(ctx, req.Advertiser)
	if err != nil {
		return nil, err
	}
	ads, err := s.ads.ListForAdvertiser(ctx, *adv)
	if err != nil {
		return nil, err
	}
	prices, err := s.products.PriceIndex(ctx, domain.ProductIDs(ads))
	if err != nil {
		return nil, err
	}

	draft, err := DraftRecurring(*adv, req.Period, start, end, ads, prices)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now()
	inv, err := s.persist(ctx, s.recurring, draft.Lines, req.Discount, req.Tax, domain.InvoicePending, func(c *Composition) *domain.Invoice {
		return &domain.Invoice{
			InvoiceNumber:   c.InvoiceNumber,
			Advertiser:      adv.Name,
			AdvertiserID:    &adv.ID,
			Status:          domain.InvoicePending,
			Subtotal:        c.Subtotal,
			Discount:        c.Discount,
			Tax:             c.Tax,
			Total:           c.Total,
			IssueDate:       s.today(),
			DueDate:         due,
			Notes:           req.Notes,
			IsRecurring:     true,
			RecurringPeriod: draft.Period,
			PeriodStart:     draft.Start,
			PeriodEnd:       draft.End,
			LastGeneratedAt: &generatedAt,
			Items:           c.Items,
		}
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"op":         "generate_recurring",
		"invoice_id": inv.ID,
		"advertiser": adv.Name,
		"lines":      len(inv.Items),
	}).Info("recurring invoice generated")
	return inv, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, includeDeleted bool) ([]domain.Invoice, error) {
	return s.invoices.List(ctx, includeDeleted)
}

// MarkPaid settles an invoice in full. Paying a paid invoice is a no-op.
func (s *Service) MarkPaid(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.IsPaid() && inv.AmountPaid == inv.Total {
		return inv, nil
	}

	if err := s.invoices.Update(ctx, id, map[string]any{
		"status":      domain.InvoicePaid,
		"amount_paid": inv.Total,
	}); err != nil {
		return nil, err
	}
	inv.Status = domain.InvoicePaid
	inv.AmountPaid = inv.Total

	s.settle(ctx, inv)
	return inv, nil
}

// Delete soft-deletes the invoice. Items and ad links stay for audits.
func (s *Service) Delete(ctx context.Context, id int64) error {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.invoices.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"op": "delete_invoice", "invoice_id": id}).Info("invoice deleted")

	affected := []domain.Ad{ownerRef(*inv)}
	if ids := itemAdIDs(inv.Items); len(ids) > 0 {
		linked, err := s.ads.GetByIDs(ctx, ids)
		if err != nil {
			s.log.WithFields(logrus.Fields{"op": "delete_invoice", "invoice_id": id}).WithError(err).Warn("loading linked ads failed")
		}
		affected = append(affected, linked...)
	}
	s.refresher.Refresh(ctx, affected...)
	return nil
}

// persist composes and stores an invoice, drawing a new number when the
// previous one turns out to be taken.
func (s *Service) persist(
	ctx context.Context,
	composer *Composer,
	lines []Line,
	discount, tax float64,
	status domain.InvoiceStatus,
	build func(*Composition) *domain.Invoice,
) (*domain.Invoice, error) {
	for attempt := 1; ; attempt++ {
		comp, err := composer.Compose(ctx, lines, discount, tax, status)
		if err != nil {
			return nil, err
		}
		inv := build(comp)
		err = s.invoices.Create(ctx, inv)
		if err == nil {
			return inv, nil
		}
		if !repository.IsUniqueViolation(err) || attempt >= numberAttempts {
			return nil, err
		}
		s.log.WithFields(logrus.Fields{"op": "create_invoice", "invoice_number": comp.InvoiceNumber}).Warn("invoice number taken, retrying")
	}
}

// settle links a paid invoice's ads to it and refreshes the advertisers.
// The invoice is already stored, so failures are logged rather than returned.
func (s *Service) settle(ctx context.Context, inv *domain.Invoice) {
	affected := []domain.Ad{ownerRef(*inv)}

	if ids := itemAdIDs(inv.Items); len(ids) > 0 {
		_, err := s.ads.UpdateMany(ctx, ids, map[string]any{
			"paid_via_invoice_id": inv.ID,
			"payment":             domain.PaymentPaid,
		})
		if err != nil {
			s.log.WithFields(logrus.Fields{"op": "settle_invoice", "invoice_id": inv.ID}).WithError(err).Warn("linking paid ads failed")
		}
		linked, err := s.ads.GetByIDs(ctx, ids)
		if err == nil {
			affected = append(affected, linked...)
		}
	}

	s.refresher.Refresh(ctx, affected...)
}

func (s *Service) advertiserRef(ctx context.Context, name string, id *int64) (string, *int64, error) {
	if id != nil {
		adv, err := s.advertisers.GetByID(ctx, *id)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return "", nil, apperr.Validation("advertiser_id", "advertiser %d does not exist", *id)
			}
			return "", nil, err
		}
		return adv.Name, &adv.ID, nil
	}

	name = domain.CleanName(name)
	if name == "" {
		return "", nil, apperr.Validation("advertiser_name", "advertiser is required")
	}
	adv, err := s.advertisers.FindByName(ctx, name)
	switch {
	case err == nil:
		return adv.Name, &adv.ID, nil
	case errors.Is(err, apperr.ErrNotFound):
		return name, nil, nil
	default:
		return "", nil, err
	}
}

func (s *Service) lines(ctx context.Context, items []ItemRequest) ([]Line, error) {
	var adIDs []int64
	for _, it := range items {
		if it.AdID != nil {
			adIDs = append(adIDs, *it.AdID)
		}
	}
	known := make(map[int64]domain.Ad, len(adIDs))
	if len(adIDs) > 0 {
		ads, err := s.ads.GetByIDs(ctx, adIDs)
		if err != nil {
			return nil, err
		}
		for _, ad := range ads {
			known[ad.ID] = ad
		}
	}

	lines := make([]Line, 0, len(items))
	for i, it := range items {
		desc := strings.TrimSpace(it.Description)
		if it.AdID != nil {
			ad, ok := known[*it.AdID]
			if !ok {
				return nil, apperr.Validation("items", "ad %d does not exist", *it.AdID)
			}
			if desc == "" {
				desc = ad.AdName
			}
		}
		if desc == "" {
			desc = fmt.Sprintf("Line %d", i+1)
		}
		lines = append(lines, Line{
			AdID:        it.AdID,
			ProductID:   it.ProductID,
			Description: desc,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount,
		})
	}
	return lines, nil
}

func (s *Service) today() string {
	return schedule.DateOnly(s.now(), s.loc)
}

func (s *Service) date(field, raw string) (string, error) {
	d, err := schedule.NormalizeDate(raw, s.loc)
	if err != nil {
		return "", apperr.Validation(field, "%q is not a valid date", raw)
	}
	return d, nil
}

// ownerRef stands in for the invoice's advertiser when refreshing aggregates.
func ownerRef(inv domain.Invoice) domain.Ad {
	return domain.Ad{Advertiser: inv.Advertiser, AdvertiserID: inv.AdvertiserID}
}

func itemAdIDs(items []domain.InvoiceItem) []int64 {
	seen := make(map[int64]struct{})
	var out []int64
	for _, it := range items {
		if it.AdID == nil {
			continue
		}
		if _, ok := seen[*it.AdID]; !ok {
			seen[*it.AdID] = struct{}{}
			out = append(out, *it.AdID)
		}
	}
	return out
}
