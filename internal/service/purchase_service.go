package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/benitha200/cherryapp-backend/internal/batch"
	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/model"
	"github.com/benitha200/cherryapp-backend/internal/repository"
	apperr "github.com/benitha200/cherryapp-backend/pkg/errors"
)

// ── purchase errors ──

var (
	ErrPurchaseNotFound       = apperr.New(apperr.KindNotFound, 13001, "purchase not found")
	ErrDuplicatePurchase      = apperr.New(apperr.KindBusinessRule, 13002, "a purchase for this grade and delivery already exists for this date")
	ErrBatchAlreadyProcessing = apperr.New(apperr.KindBusinessRule, 13004, "that batch is already in processing, no further purchases can be added")
	ErrSiteCollectionRequired = apperr.New(apperr.KindValidation, 13005, "siteCollectionId is required for SITE_COLLECTION purchases")
	ErrInvalidPurchaseDate    = apperr.New(apperr.KindValidation, 13006, "invalid purchase date format")
	ErrInvalidDateRange       = apperr.New(apperr.KindValidation, 13007, "invalid date range, provide startDate and endDate as YYYY-MM-DD")
	ErrInvalidDeliveryType    = apperr.New(apperr.KindValidation, 13008, "unknown delivery type")
)

// PurchaseService purchase ledger
type PurchaseService interface {
	Create(ctx context.Context, req *dto.CreatePurchaseRequest, callerID uint) (*model.Purchase, error)
	GetByID(ctx context.Context, id uint) (*model.Purchase, error)
	List(ctx context.Context) ([]model.Purchase, error)
	ListByStation(ctx context.Context, cwsID uint) ([]model.Purchase, error)
	Update(ctx context.Context, id uint, req *dto.UpdatePurchaseRequest) (*model.Purchase, error)
	Delete(ctx context.Context, id uint) error

	Grouped(ctx context.Context) ([]dto.PurchaseDayGroup, error)
	DateRange(ctx context.Context, q *dto.DateRangeQuery) (*dto.PurchaseRangeResponse, error)
	ByDate(ctx context.Context, date string) (*dto.PurchasesOnDate, error)
	StationRollupYesterday(ctx context.Context) (*dto.StationRollupResponse, error)
	StationRollupRange(ctx context.Context, q *dto.DateRangeQuery) (*dto.StationRollupResponse, error)
	StationRollupAll(ctx context.Context) (*dto.StationRollupResponse, error)
}

type purchaseService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewPurchaseService creates a PurchaseService
func NewPurchaseService(repo *repository.Repository, logger *zap.Logger) PurchaseService {
	return &purchaseService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *purchaseService) Create(ctx context.Context, req *dto.CreatePurchaseRequest, callerID uint) (*model.Purchase, error) {
	if !model.ValidDeliveryType(req.DeliveryType) {
		return nil, ErrInvalidDeliveryType
	}

	station, err := s.repo.Station.GetByID(ctx, req.CWSID)
	if err != nil {
		return nil, lookupErr(err, ErrStationNotFound)
	}

	purchaseDate, err := batch.ParseDate(req.PurchaseDate)
	if err != nil {
		return nil, ErrInvalidPurchaseDate
	}
	dayStart, dayEnd := batch.DayBounds(purchaseDate)

	var siteID *uint
	if req.DeliveryType == model.DeliverySiteCollection {
		if req.SiteCollectionID == nil {
			return nil, ErrSiteCollectionRequired
		}
		if _, err := s.repo.SiteCollection.GetByID(ctx, *req.SiteCollectionID); err != nil {
			return nil, lookupErr(err, ErrSiteCollectionNotFound)
		}
		siteID = req.SiteCollectionID
	}

	batchNo := batch.Derive(station.Code, req.Grade, purchaseDate)
	p := &model.Purchase{
		DeliveryType:     req.DeliveryType,
		TotalKgs:         req.TotalKgs,
		TotalPrice:       req.TotalPrice,
		CherryPrice:      req.CherryPrice,
		TransportFee:     req.TransportFee,
		CommissionFee:    req.CommissionFee,
		Grade:            req.Grade,
		CWSID:            station.ID,
		SiteCollectionID: siteID,
		BatchNo:          batchNo,
		PurchaseDate:     dayStart,
	}
	p.CreatedBy = &callerID

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		started, err := hasProcessingStarted(ctx, tx, station.ID, purchaseDate, req.Grade)
		if err != nil {
			return err
		}
		if started {
			return ErrProcessingAlreadyStarted
		}

		active, err := isBatchActive(ctx, tx, batchNo)
		if err != nil {
			return err
		}
		if active {
			return ErrBatchAlreadyProcessing
		}

		_, err = tx.Purchase.FindForDay(ctx, repository.PurchaseDayKey{
			CWSID:            station.ID,
			Grade:            req.Grade,
			DayStart:         dayStart,
			DayEnd:           dayEnd,
			DeliveryType:     req.DeliveryType,
			SiteCollectionID: siteID,
		})
		if err == nil {
			return ErrDuplicatePurchase
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Persistence(err)
		}

		return tx.Purchase.Create(ctx, p)
	})
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrDuplicatePurchase
		}
		if apperr.KindOf(err) == apperr.KindPersistence {
			s.logger.Error("failed to create purchase", zap.String("batch_no", batchNo), zap.Error(err))
		}
		return nil, passThrough(err)
	}

	s.logger.Info("purchase recorded",
		zap.Uint("purchase_id", p.ID),
		zap.String("batch_no", batchNo),
		zap.String("delivery_type", p.DeliveryType))
	return s.GetByID(ctx, p.ID)
}

// ────────────────────── Reads ──────────────────────

func (s *purchaseService) GetByID(ctx context.Context, id uint) (*model.Purchase, error) {
	p, err := s.repo.Purchase.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrPurchaseNotFound)
	}
	return p, nil
}

func (s *purchaseService) List(ctx context.Context) ([]model.Purchase, error) {
	list, err := s.repo.Purchase.List(ctx)
	if err != nil {
		s.logger.Error("failed to list purchases", zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	return list, nil
}

func (s *purchaseService) ListByStation(ctx context.Context, cwsID uint) ([]model.Purchase, error) {
	list, err := s.repo.Purchase.ListByStation(ctx, cwsID)
	if err != nil {
		s.logger.Error("failed to list purchases", zap.Uint("cws_id", cwsID), zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	return list, nil
}

// ────────────────────── Update ──────────────────────

func (s *purchaseService) Update(ctx context.Context, id uint, req *dto.UpdatePurchaseRequest) (*model.Purchase, error) {
	p, err := s.repo.Purchase.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrPurchaseNotFound)
	}

	station := p.CWS
	if req.CWSID != nil && *req.CWSID != p.CWSID {
		station, err = s.repo.Station.GetByID(ctx, *req.CWSID)
		if err != nil {
			return nil, lookupErr(err, ErrStationNotFound)
		}
		p.CWSID = station.ID
	}

	// a grade change moves the purchase into another batch, which must not be locked
	if req.Grade != nil && *req.Grade != p.Grade {
		if station == nil {
			if station, err = s.repo.Station.GetByID(ctx, p.CWSID); err != nil {
				return nil, lookupErr(err, ErrStationNotFound)
			}
		}
		batchNo := batch.Derive(station.Code, *req.Grade, p.PurchaseDate)
		active, err := isBatchActive(ctx, s.repo, batchNo)
		if err != nil {
			return nil, err
		}
		if active {
			return nil, ErrBatchAlreadyProcessing
		}
		p.Grade = *req.Grade
		p.BatchNo = batchNo
	}

	if req.DeliveryType != nil {
		if !model.ValidDeliveryType(*req.DeliveryType) {
			return nil, ErrInvalidDeliveryType
		}
		p.DeliveryType = *req.DeliveryType
	}
	if req.SiteCollectionID != nil {
		p.SiteCollectionID = req.SiteCollectionID
	}
	if p.DeliveryType != model.DeliverySiteCollection {
		p.SiteCollectionID = nil
	} else if p.SiteCollectionID == nil {
		return nil, ErrSiteCollectionRequired
	}
	if req.TotalKgs != nil {
		p.TotalKgs = *req.TotalKgs
	}
	if req.TotalPrice != nil {
		p.TotalPrice = *req.TotalPrice
	}
	if req.CherryPrice != nil {
		p.CherryPrice = *req.CherryPrice
	}
	if req.TransportFee != nil {
		p.TransportFee = *req.TransportFee
	}
	if req.CommissionFee != nil {
		p.CommissionFee = *req.CommissionFee
	}

	if err := s.repo.Purchase.Update(ctx, p); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrDuplicatePurchase
		}
		s.logger.Error("failed to update purchase", zap.Uint("id", id), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *purchaseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Purchase.GetByID(ctx, id); err != nil {
		return lookupErr(err, ErrPurchaseNotFound)
	}

	// TODO: refuse deletes once the purchase's batch is active, matching Create
	if err := s.repo.Purchase.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete purchase", zap.Uint("id", id), zap.Error(err))
		return apperr.Persistence(err)
	}
	return nil
}

// ────────────────────── Grouped ──────────────────────

func (s *purchaseService) Grouped(ctx context.Context) ([]dto.PurchaseDayGroup, error) {
	purchases, err := s.repo.Purchase.ListBetween(ctx, nil, nil)
	if err != nil {
		s.logger.Error("failed to load purchases", zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	groups := make(map[string]*dto.PurchaseDayGroup)
	for _, p := range purchases {
		day := dayKey(p.PurchaseDate)
		g, ok := groups[day]
		if !ok {
			g = &dto.PurchaseDayGroup{
				Date:           day,
				TotalPrice:     decimal.Zero,
				ByDeliveryType: make(map[string]dto.DeliveryTotals),
			}
			groups[day] = g
		}
		g.TotalKgs += p.TotalKgs
		g.TotalPrice = g.TotalPrice.Add(p.TotalPrice)
		g.NumberOfPurchases++
		g.ByDeliveryType[p.DeliveryType] = addDelivery(g.ByDeliveryType[p.DeliveryType], p)
	}

	result := make([]dto.PurchaseDayGroup, 0, len(groups))
	for _, g := range groups {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date > result[j].Date })
	return result, nil
}

// ────────────────────── DateRange ──────────────────────

func (s *purchaseService) DateRange(ctx context.Context, q *dto.DateRangeQuery) (*dto.PurchaseRangeResponse, error) {
	start, end, err := parseRange(q)
	if err != nil {
		return nil, err
	}

	purchases, err := s.repo.Purchase.ListBetween(ctx, &start, &end)
	if err != nil {
		s.logger.Error("failed to load purchases", zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	totals := dto.RangeTotals{
		TotalPrice:         decimal.Zero,
		TotalTransportFee:  decimal.Zero,
		TotalCommissionFee: decimal.Zero,
	}
	for _, p := range purchases {
		kgs := decimal.NewFromFloat(p.TotalKgs)
		totals.TotalKgs += p.TotalKgs
		totals.TotalPrice = totals.TotalPrice.Add(p.TotalPrice)
		totals.TotalTransportFee = totals.TotalTransportFee.Add(kgs.Mul(p.TransportFee))
		totals.TotalCommissionFee = totals.TotalCommissionFee.Add(kgs.Mul(p.CommissionFee))
	}

	return &dto.PurchaseRangeResponse{
		StartDate:      dayKey(start),
		EndDate:        dayKey(end.AddDate(0, 0, -1)),
		TotalPurchases: len(purchases),
		Totals:         totals,
		Purchases:      purchases,
	}, nil
}

// ────────────────────── ByDate ──────────────────────

func (s *purchaseService) ByDate(ctx context.Context, date string) (*dto.PurchasesOnDate, error) {
	day, err := batch.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidPurchaseDate
	}
	start, end := batch.DayBounds(day)

	purchases, err := s.repo.Purchase.ListBetween(ctx, &start, &end)
	if err != nil {
		s.logger.Error("failed to load purchases", zap.String("date", date), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	byStation := make(map[uint]*dto.StationDayTotals)
	var order []uint
	for _, p := range purchases {
		st, ok := byStation[p.CWSID]
		if !ok {
			st = &dto.StationDayTotals{CWSID: p.CWSID}
			if p.CWS != nil {
				st.CWSName, st.CWSCode = p.CWS.Name, p.CWS.Code
			}
			byStation[p.CWSID] = st
			order = append(order, p.CWSID)
		}
		st.Purchases = append(st.Purchases, p)
		st.Total = addDelivery(st.Total, p)
		switch p.DeliveryType {
		case model.DeliveryDirect:
			st.DirectDelivery = addDelivery(st.DirectDelivery, p)
		case model.DeliverySiteCollection:
			st.SiteCollection = addDelivery(st.SiteCollection, p)
		}
	}

	resp := &dto.PurchasesOnDate{Date: dayKey(start)}
	for _, id := range order {
		st := byStation[id]
		resp.Stations = append(resp.Stations, *st)
		resp.GrandTotals.Total = sumDelivery(resp.GrandTotals.Total, st.Total)
		resp.GrandTotals.DirectDelivery = sumDelivery(resp.GrandTotals.DirectDelivery, st.DirectDelivery)
		resp.GrandTotals.SiteCollection = sumDelivery(resp.GrandTotals.SiteCollection, st.SiteCollection)
	}
	sort.Slice(resp.Stations, func(i, j int) bool { return resp.Stations[i].CWSName < resp.Stations[j].CWSName })
	return resp, nil
}

// ────────────────────── Station rollups ──────────────────────

func (s *purchaseService) StationRollupYesterday(ctx context.Context) (*dto.StationRollupResponse, error) {
	start, end := batch.DayBounds(s.now().AddDate(0, 0, -1))
	return s.stationRollup(ctx, &start, &end, true)
}

func (s *purchaseService) StationRollupRange(ctx context.Context, q *dto.DateRangeQuery) (*dto.StationRollupResponse, error) {
	start, end, err := parseRange(q)
	if err != nil {
		return nil, err
	}
	return s.stationRollup(ctx, &start, &end, true)
}

func (s *purchaseService) StationRollupAll(ctx context.Context) (*dto.StationRollupResponse, error) {
	return s.stationRollup(ctx, nil, nil, false)
}

// stationRollup aggregates purchases per station. With onlyProcessed set,
// only purchases whose batch stem matches a processing batch are counted.
func (s *purchaseService) stationRollup(ctx context.Context, start, end *time.Time, onlyProcessed bool) (*dto.StationRollupResponse, error) {
	stations, err := s.repo.Station.List(ctx)
	if err != nil {
		s.logger.Error("failed to list CWS", zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	purchases, err := s.repo.Purchase.ListBetween(ctx, start, end)
	if err != nil {
		s.logger.Error("failed to load purchases", zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	if onlyProcessed {
		batchNos, err := s.repo.Processing.ListBatchNos(ctx)
		if err != nil {
			s.logger.Error("failed to list processing batches", zap.Error(err))
			return nil, apperr.Persistence(err)
		}
		purchases = filterProcessed(purchases, batchNos)
	}

	byStation := make(map[uint][]model.Purchase, len(stations))
	for _, p := range purchases {
		byStation[p.CWSID] = append(byStation[p.CWSID], p)
	}

	resp := &dto.StationRollupResponse{Stations: []dto.StationRollup{}}
	if start != nil && end != nil {
		resp.StartDate = dayKey(*start)
		resp.EndDate = dayKey(end.AddDate(0, 0, -1))
	}
	overall := newStationTotals()

	for _, st := range stations {
		rollup := rollupStation(st, byStation[st.ID])
		if rollup.Totals.TotalKgs <= 0 {
			continue
		}
		resp.Stations = append(resp.Stations, rollup)

		overall.TotalKgs += rollup.Totals.TotalKgs
		overall.TotalPrice = overall.TotalPrice.Add(rollup.Totals.TotalPrice)
		overall.TotalCherryPrice = overall.TotalCherryPrice.Add(rollup.Totals.TotalCherryPrice)
		overall.TotalTransportFee = overall.TotalTransportFee.Add(rollup.Totals.TotalTransportFee)
		overall.TotalCommissionFee = overall.TotalCommissionFee.Add(rollup.Totals.TotalCommissionFee)
		resp.OverallTotals.NumberOfPurchases += rollup.NumberOfPurchases
	}

	resp.OverallTotals.StationTotals = overall
	resp.OverallTotals.NumberOfCWS = len(resp.Stations)
	return resp, nil
}

func rollupStation(st model.Station, purchases []model.Purchase) dto.StationRollup {
	r := dto.StationRollup{
		CWSID:                 st.ID,
		CWSName:               st.Name,
		CWSCode:               st.Code,
		Totals:                newStationTotals(),
		DeliveryTypeBreakdown: make(map[string]dto.KgsAndPrice),
		GradeBreakdown:        make(map[string]dto.KgsAndPrice),
		NumberOfPurchases:     len(purchases),
	}

	for _, p := range purchases {
		kgs := decimal.NewFromFloat(p.TotalKgs)
		r.Totals.TotalKgs += p.TotalKgs
		r.Totals.TotalPrice = r.Totals.TotalPrice.Add(p.TotalPrice)
		r.Totals.TotalCherryPrice = r.Totals.TotalCherryPrice.Add(kgs.Mul(p.CherryPrice))
		r.Totals.TotalTransportFee = r.Totals.TotalTransportFee.Add(kgs.Mul(p.TransportFee))
		r.Totals.TotalCommissionFee = r.Totals.TotalCommissionFee.Add(kgs.Mul(p.CommissionFee))

		r.DeliveryTypeBreakdown[p.DeliveryType] = addKgsAndPrice(r.DeliveryTypeBreakdown[p.DeliveryType], p)
		r.GradeBreakdown[p.Grade] = addKgsAndPrice(r.GradeBreakdown[p.Grade], p)
	}
	return r
}

// filterProcessed keeps purchases whose batch stem overlaps a processing stem
func filterProcessed(purchases []model.Purchase, processingBatches []string) []model.Purchase {
	stems := make([]string, 0, len(processingBatches))
	for _, b := range processingBatches {
		if st := batch.Stem(b); st != "" {
			stems = append(stems, st)
		} else {
			stems = append(stems, b)
		}
	}

	kept := purchases[:0:0]
	for _, p := range purchases {
		stem := batch.Stem(p.BatchNo)
		if stem == "" {
			continue
		}
		for _, ps := range stems {
			if strings.Contains(stem, ps) || strings.Contains(ps, stem) {
				kept = append(kept, p)
				break
			}
		}
	}
	return kept
}

// ────────────────────── helpers ──────────────────────

// parseRange turns an inclusive calendar range into [start 00:00, end+1 00:00)
func parseRange(q *dto.DateRangeQuery) (time.Time, time.Time, error) {
	from, err := batch.ParseDate(q.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	to, err := batch.ParseDate(q.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	start, _ := batch.DayBounds(from)
	_, end := batch.DayBounds(to)
	if !start.Before(end) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}

func dayKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

func newStationTotals() dto.StationTotals {
	return dto.StationTotals{
		TotalPrice:         decimal.Zero,
		TotalCherryPrice:   decimal.Zero,
		TotalTransportFee:  decimal.Zero,
		TotalCommissionFee: decimal.Zero,
	}
}

func addDelivery(t dto.DeliveryTotals, p model.Purchase) dto.DeliveryTotals {
	t.TotalKgs += p.TotalKgs
	t.TotalPrice = t.TotalPrice.Add(p.TotalPrice)
	return t
}

func sumDelivery(a, b dto.DeliveryTotals) dto.DeliveryTotals {
	a.TotalKgs += b.TotalKgs
	a.TotalPrice = a.TotalPrice.Add(b.TotalPrice)
	return a
}

func addKgsAndPrice(t dto.KgsAndPrice, p model.Purchase) dto.KgsAndPrice {
	t.TotalKgs += p.TotalKgs
	t.TotalPrice = t.TotalPrice.Add(p.TotalPrice)
	return t
}
