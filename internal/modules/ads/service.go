package ads

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"adops/internal/domain"
	"adops/internal/modules/schedule"
	"adops/internal/pkg/apperr"
	"adops/internal/pkg/posttype"
	"adops/internal/pkg/validator"
	"adops/internal/repository"
)

type Service struct {
	ads         AdRepository
	advertisers advertiserLookup
	products    productLookup
	settings    settingsReader
	refresher   Refresher
	log         logrus.FieldLogger
	loc         *time.Location
}

func NewService(
	ads AdRepository,
	advertisers advertiserLookup,
	products productLookup,
	settings settingsReader,
	refresher Refresher,
	log logrus.FieldLogger,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		ads:         ads,
		advertisers: advertisers,
		products:    products,
		settings:    settings,
		refresher:   refresher,
		log:         log,
		loc:         loc,
	}
}

// Create stores a new ad. A likely duplicate is reported through
// CreateResult.Warning and nothing is written unless req.Force is set.
func (s *Service) Create(ctx context.Context, req CreateAdRequest) (*CreateResult, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	ad := domain.Ad{
		AdName:       strings.TrimSpace(req.AdName),
		Advertiser:   strings.TrimSpace(req.Advertiser),
		AdvertiserID: req.AdvertiserID,
		Status:       domain.AdDraft,
		Payment:      domain.PaymentUnpaid,
		PostType:     req.PostType,
		Placement:    strings.TrimSpace(req.Placement),
		Schedule:     req.Schedule,
		PostDateFrom: req.PostDateFrom,
		PostDateTo:   req.PostDateTo,
		CustomDates:  req.CustomDates,
		PostTime:     strings.TrimSpace(req.PostTime),
		Price:        req.Price,
		ProductID:    req.ProductID,
		Notes:        req.Notes,
	}
	if req.Status != "" {
		st, ok := domain.ParseAdStatus(req.Status)
		if !ok {
			return nil, apperr.Validation("status", "unknown status %q", req.Status)
		}
		ad.Status = st
	}
	if req.Payment != "" {
		p, ok := domain.ParsePaymentStatus(req.Payment)
		if !ok {
			return nil, apperr.Validation("payment", "unknown payment status %q", req.Payment)
		}
		ad.Payment = p
	}

	if err := s.prepare(ctx, &ad); err != nil {
		return nil, err
	}

	if !req.Force {
		candidates, err := s.ads.ListCandidates(ctx, ad)
		if err != nil {
			return nil, err
		}
		if dup := schedule.FindDuplicate(ad, candidates); dup.Conflict {
			return &CreateResult{Warning: &DuplicateWarning{
				Message: fmt.Sprintf("%q is already booked for %s on this date", dup.Match.AdName, ad.Placement),
				Match:   dup.Match,
			}}, nil
		}
	}

	if err := s.checkCapacity(ctx, ad); err != nil {
		return nil, err
	}

	if err := s.ads.Create(ctx, &ad); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"op":         "create_ad",
		"ad_id":      ad.ID,
		"advertiser": ad.Advertiser,
		"forced":     req.Force,
	}).Info("ad created")

	s.refresher.Refresh(ctx, ad)
	return &CreateResult{Ad: &ad}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Ad, error) {
	return s.ads.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f repository.AdFilter) ([]domain.Ad, error) {
	if f.From == "" && f.To == "" {
		return s.ads.List(ctx, f)
	}

	from, to := f.From, f.To
	var err error
	if from != "" {
		if from, err = s.date("from", from); err != nil {
			return nil, err
		}
	}
	if to != "" {
		if to, err = s.date("to", to); err != nil {
			return nil, err
		}
	}
	if from == "" {
		from = "0001-01-01"
	}
	if to == "" {
		to = "9999-12-31"
	}
	if from > to {
		return nil, apperr.Validation("from", "window starts after it ends")
	}

	limit, offset := f.Limit, f.Offset
	f.Limit, f.Offset = 0, 0
	all, err := s.ads.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Ad, 0, len(all))
	for _, ad := range all {
		if schedule.Overlaps(ad, from, to) {
			out = append(out, ad)
		}
	}
	if offset > 0 {
		if offset >= len(out) {
			return []domain.Ad{}, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateAdRequest) (*domain.Ad, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	old, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ad := *old

	if req.AdName != nil {
		ad.AdName = strings.TrimSpace(*req.AdName)
	}
	switch {
	case req.AdvertiserID != nil:
		ad.AdvertiserID = req.AdvertiserID
	case req.Advertiser != nil:
		ad.Advertiser = strings.TrimSpace(*req.Advertiser)
		ad.AdvertiserID = nil
	}
	if req.Status != nil {
		st, ok := domain.ParseAdStatus(*req.Status)
		if !ok {
			return nil, apperr.Validation("status", "unknown status %q", *req.Status)
		}
		ad.Status = st
	}
	if req.Payment != nil {
		p, ok := domain.ParsePaymentStatus(*req.Payment)
		if !ok {
			return nil, apperr.Validation("payment", "unknown payment status %q", *req.Payment)
		}
		ad.Payment = p
	}
	if req.PostType != nil {
		ad.PostType = *req.PostType
	}
	if req.Placement != nil {
		ad.Placement = strings.TrimSpace(*req.Placement)
	}
	if req.Schedule != nil {
		ad.Schedule = *req.Schedule
	}
	if req.PostDateFrom != nil {
		ad.PostDateFrom = *req.PostDateFrom
	}
	if req.PostDateTo != nil {
		ad.PostDateTo = *req.PostDateTo
	}
	if req.CustomDates != nil {
		ad.CustomDates = *req.CustomDates
	}
	if req.PostTime != nil {
		ad.PostTime = strings.TrimSpace(*req.PostTime)
	}
	if req.Price != nil {
		ad.Price = req.Price
	}
	if req.ProductID != nil {
		ad.ProductID = req.ProductID
	}
	if req.Notes != nil {
		ad.Notes = *req.Notes
	}
	if req.Archived != nil {
		ad.Archived = *req.Archived
	}

	if err := s.prepare(ctx, &ad); err != nil {
		return nil, err
	}

	patch := map[string]any{
		"ad_name":        ad.AdName,
		"advertiser":     ad.Advertiser,
		"advertiser_id":  ad.AdvertiserID,
		"status":         ad.Status,
		"payment":        ad.Payment,
		"post_type":      ad.PostType,
		"placement":      ad.Placement,
		"schedule":       ad.Schedule,
		"post_date_from": ad.PostDateFrom,
		"post_date_to":   ad.PostDateTo,
		"custom_dates":   ad.CustomDates,
		"post_time":      ad.PostTime,
		"price":          ad.Price,
		"product_id":     ad.ProductID,
		"notes":          ad.Notes,
		"archived":       ad.Archived,
	}
	if err := s.ads.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	// Both owners: the advertiser may have changed.
	s.refresher.Refresh(ctx, *old, ad)
	return s.ads.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ads.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"op": "delete_ad", "ad_id": id, "advertiser": ad.Advertiser}).Info("ad deleted")

	s.refresher.Refresh(ctx, *ad)
	return nil
}

func (s *Service) MarkPublished(ctx context.Context, id int64) (*domain.Ad, error) {
	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ads.Update(ctx, id, map[string]any{"status": domain.AdPublished}); err != nil {
		return nil, err
	}
	ad.Status = domain.AdPublished

	s.refresher.Refresh(ctx, *ad)
	return ad, nil
}

// Bulk applies one action to many ads. Ids that do not exist are skipped;
// it is an error only when none of them exist.
func (s *Service) Bulk(ctx context.Context, req BulkRequest) (*BulkResult, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	var status domain.AdStatus
	if req.Action == BulkStatus {
		st, ok := domain.ParseAdStatus(req.Status)
		if !ok {
			return nil, apperr.Validation("status", "unknown status %q", req.Status)
		}
		status = st
	}

	found, err := s.ads.GetByIDs(ctx, uniqueIDs(req.IDs))
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperr.NotFound("ad", joinIDs(req.IDs))
	}
	ids := make([]int64, 0, len(found))
	for _, ad := range found {
		ids = append(ids, ad.ID)
	}

	var n int64
	switch req.Action {
	case BulkDelete:
		n, err = s.ads.DeleteMany(ctx, ids)
	case BulkPublish:
		n, err = s.ads.UpdateMany(ctx, ids, map[string]any{"status": domain.AdPublished})
	case BulkStatus:
		n, err = s.ads.UpdateMany(ctx, ids, map[string]any{"status": status})
	case BulkArchive:
		n, err = s.ads.UpdateMany(ctx, ids, map[string]any{"archived": true})
	case BulkUnarchive:
		n, err = s.ads.UpdateMany(ctx, ids, map[string]any{"archived": false})
	default:
		return nil, apperr.Validation("action", "unknown action %q", req.Action)
	}
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"op": "bulk_" + req.Action, "affected": n}).Info("bulk update applied")

	s.refresher.Refresh(ctx, found...)
	return &BulkResult{Action: req.Action, Affected: n}, nil
}

func (s *Service) Calendar(ctx context.Context, year, month int) (schedule.Calendar, error) {
	if month < 1 || month > 12 {
		return nil, apperr.Validation("month", "month %d is out of range", month)
	}
	ads, err := s.ads.List(ctx, repository.AdFilter{})
	if err != nil {
		return nil, err
	}
	return schedule.BuildCalendar(ads, year, time.Month(month))
}

func (s *Service) Occurrences(ctx context.Context, id int64) ([]string, error) {
	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return schedule.Expand(*ad)
}

// prepare links the advertiser, checks the product and puts the ad's dates
// into canonical form. It runs on every write.
func (s *Service) prepare(ctx context.Context, ad *domain.Ad) error {
	if err := s.linkAdvertiser(ctx, ad); err != nil {
		return err
	}
	if ad.ProductID != nil {
		if _, err := s.products.GetByID(ctx, *ad.ProductID); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.Validation("product_id", "product %d does not exist", *ad.ProductID)
			}
			return err
		}
	}
	if err := s.normalizeSchedule(ad); err != nil {
		return err
	}
	_, err := schedule.Expand(*ad)
	return err
}

// linkAdvertiser fills the advertiser id when the name matches a known
// advertiser. Ads for advertisers that only exist as a name are allowed.
func (s *Service) linkAdvertiser(ctx context.Context, ad *domain.Ad) error {
	if ad.AdvertiserID != nil {
		adv, err := s.advertisers.GetByID(ctx, *ad.AdvertiserID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.Validation("advertiser_id", "advertiser %d does not exist", *ad.AdvertiserID)
			}
			return err
		}
		ad.Advertiser = adv.Name
		return nil
	}

	ad.Advertiser = domain.CleanName(ad.Advertiser)
	if ad.Advertiser == "" {
		return apperr.Validation("advertiser", "advertiser is required")
	}
	adv, err := s.advertisers.FindByName(ctx, ad.Advertiser)
	switch {
	case err == nil:
		ad.AdvertiserID = &adv.ID
		ad.Advertiser = adv.Name
	case !errors.Is(err, apperr.ErrNotFound):
		return err
	}
	return nil
}

// normalizeSchedule stores the canonical post type and keeps only the date
// fields that belong to it.
func (s *Service) normalizeSchedule(ad *domain.Ad) error {
	kind := posttype.Normalize(ad.PostType)
	if ad.PostType != "" && !posttype.IsCanonical(ad.PostType) {
		s.log.WithFields(logrus.Fields{"op": "normalize", "label": ad.PostType, "post_type": kind}).Debug("post type label normalized")
	}
	ad.PostType = kind

	switch kind {
	case domain.PostTypeDailyRun:
		if strings.TrimSpace(ad.PostDateFrom) == "" {
			return apperr.Validation("post_date_from", "daily run needs a start date")
		}
		from, err := s.date("post_date_from", ad.PostDateFrom)
		if err != nil {
			return err
		}
		to := ""
		if strings.TrimSpace(ad.PostDateTo) != "" {
			if to, err = s.date("post_date_to", ad.PostDateTo); err != nil {
				return err
			}
		}
		ad.PostDateFrom, ad.PostDateTo = from, to
		ad.Schedule, ad.CustomDates = "", nil

	case domain.PostTypeCustomSchedule:
		dates := make([]string, 0, len(ad.CustomDates))
		for _, raw := range ad.CustomDates {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			d, err := s.date("custom_dates", raw)
			if err != nil {
				return err
			}
			dates = append(dates, d)
		}
		if len(dates) == 0 {
			return apperr.Validation("custom_dates", "custom schedule needs at least one date")
		}
		slices.Sort(dates)
		ad.CustomDates = datatypes.JSONSlice[string](slices.Compact(dates))
		ad.Schedule, ad.PostDateFrom, ad.PostDateTo = "", "", ""

	default:
		raw := ad.Schedule
		if strings.TrimSpace(raw) == "" {
			raw = ad.PostDateFrom
		}
		if strings.TrimSpace(raw) == "" {
			return apperr.Validation("schedule", "one-time ad needs a schedule date")
		}
		d, err := s.date("schedule", raw)
		if err != nil {
			return err
		}
		ad.Schedule = d
		ad.PostDateFrom, ad.PostDateTo, ad.CustomDates = "", "", nil
	}
	return nil
}

func (s *Service) date(field, raw string) (string, error) {
	d, err := schedule.NormalizeDate(raw, s.loc)
	if err != nil {
		return "", apperr.Validation(field, "%q is not a valid date", raw)
	}
	return d, nil
}

// checkCapacity enforces the optional per-day and per-placement limits from
// admin settings. A limit of zero means no limit.
func (s *Service) checkCapacity(ctx context.Context, ad domain.Ad) error {
	st, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if st.MaxAdsPerDay <= 0 && st.MaxAdsPerSlot <= 0 {
		return nil
	}

	dates, err := schedule.Expand(ad)
	if err != nil {
		return err
	}

	if st.MaxAdsPerDay > 0 {
		all, err := s.ads.List(ctx, repository.AdFilter{})
		if err != nil {
			return err
		}
		if day, n := busiest(all, dates); n >= st.MaxAdsPerDay {
			return apperr.Validation("schedule", "%s already has %d ads booked, the daily limit is %d", day, n, st.MaxAdsPerDay)
		}
	}
	if st.MaxAdsPerSlot > 0 {
		onSlot, err := s.ads.ListOnPlacement(ctx, ad.Placement)
		if err != nil {
			return err
		}
		if day, n := busiest(onSlot, dates); n >= st.MaxAdsPerSlot {
			return apperr.Validation("placement", "%s on %s already has %d ads, the limit is %d", ad.Placement, day, n, st.MaxAdsPerSlot)
		}
	}
	return nil
}

// busiest returns the date among dates with the most existing occurrences.
func busiest(existing []domain.Ad, dates []string) (string, int) {
	counts := make(map[string]int, len(dates))
	for _, d := range dates {
		counts[d] = 0
	}
	for _, ad := range existing {
		if ad.Archived {
			continue
		}
		occ, err := schedule.Expand(ad)
		if err != nil {
			continue
		}
		for _, d := range occ {
			if _, ok := counts[d]; ok {
				counts[d]++
			}
		}
	}

	day, most := "", -1
	for _, d := range dates {
		if counts[d] > most {
			day, most = d, counts[d]
		}
	}
	return day, most
}

func uniqueIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
