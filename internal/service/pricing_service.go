package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/model"
	"github.com/benitha200/cherryapp-backend/internal/repository"
	apperr "github.com/benitha200/cherryapp-backend/pkg/errors"
)

// ── pricing errors ──

var (
	ErrPricingNotSet   = apperr.New(apperr.KindNotFound, 18001, "no pricing recorded yet")
	ErrNegativePricing = apperr.New(apperr.KindValidation, 18002, "prices and fees cannot be negative")
)

// PricingService append-only price and fee history; the newest row wins
type PricingService interface {
	SetGlobalFees(ctx context.Context, req *dto.GlobalFeesRequest, callerID uint) (*model.GlobalFees, error)
	GlobalFees(ctx context.Context) (*model.GlobalFees, error)
	SetStationPricing(ctx context.Context, req *dto.StationPricingRequest, callerID uint) (*model.StationPricing, error)
	StationPricing(ctx context.Context, cwsID uint) (*model.StationPricing, error)
	SetSiteCollectionFees(ctx context.Context, req *dto.SiteCollectionFeesRequest, callerID uint) (*model.SiteCollectionFees, error)
	SiteCollectionFees(ctx context.Context, siteCollectionID uint) (*model.SiteCollectionFees, error)
}

type pricingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPricingService creates a PricingService
func NewPricingService(repo *repository.Repository, logger *zap.Logger) PricingService {
	return &pricingService{repo: repo, logger: logger}
}

// ────────────────────── Global ──────────────────────

func (s *pricingService) SetGlobalFees(ctx context.Context, req *dto.GlobalFeesRequest, callerID uint) (*model.GlobalFees, error) {
	if anyNegative(req.CommissionFee, req.TransportFee) {
		return nil, ErrNegativePricing
	}

	f := &model.GlobalFees{CommissionFee: req.CommissionFee, TransportFee: req.TransportFee}
	f.CreatedBy = &callerID
	if err := s.repo.Pricing.CreateGlobalFees(ctx, f); err != nil {
		s.logger.Error("failed to record global fees", zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	s.logger.Info("global fees updated",
		zap.String("commission_fee", f.CommissionFee.String()),
		zap.String("transport_fee", f.TransportFee.String()))
	return f, nil
}

func (s *pricingService) GlobalFees(ctx context.Context) (*model.GlobalFees, error) {
	f, err := s.repo.Pricing.LatestGlobalFees(ctx)
	if err != nil {
		return nil, lookupErr(err, ErrPricingNotSet)
	}
	return f, nil
}

// ────────────────────── Station ──────────────────────

func (s *pricingService) SetStationPricing(ctx context.Context, req *dto.StationPricingRequest, callerID uint) (*model.StationPricing, error) {
	if anyNegative(req.GradeAPrice, req.TransportFee) {
		return nil, ErrNegativePricing
	}
	if _, err := s.repo.Station.GetByID(ctx, req.CWSID); err != nil {
		return nil, lookupErr(err, ErrStationNotFound)
	}

	p := &model.StationPricing{CWSID: req.CWSID, GradeAPrice: req.GradeAPrice, TransportFee: req.TransportFee}
	p.CreatedBy = &callerID
	if err := s.repo.Pricing.CreateStationPricing(ctx, p); err != nil {
		s.logger.Error("failed to record CWS pricing", zap.Uint("cws_id", req.CWSID), zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	return p, nil
}

func (s *pricingService) StationPricing(ctx context.Context, cwsID uint) (*model.StationPricing, error) {
	p, err := s.repo.Pricing.LatestStationPricing(ctx, cwsID)
	if err != nil {
		return nil, lookupErr(err, ErrPricingNotSet)
	}
	return p, nil
}

// ────────────────────── Site collection ──────────────────────

func (s *pricingService) SetSiteCollectionFees(ctx context.Context, req *dto.SiteCollectionFeesRequest, callerID uint) (*model.SiteCollectionFees, error) {
	if anyNegative(req.TransportFee) {
		return nil, ErrNegativePricing
	}
	if _, err := s.repo.SiteCollection.GetByID(ctx, req.SiteCollectionID); err != nil {
		return nil, lookupErr(err, ErrSiteCollectionNotFound)
	}

	f := &model.SiteCollectionFees{SiteCollectionID: req.SiteCollectionID, TransportFee: req.TransportFee}
	f.CreatedBy = &callerID
	if err := s.repo.Pricing.CreateSiteCollectionFees(ctx, f); err != nil {
		s.logger.Error("failed to record site collection fees",
			zap.Uint("site_collection_id", req.SiteCollectionID), zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	return f, nil
}

func (s *pricingService) SiteCollectionFees(ctx context.Context, siteCollectionID uint) (*model.SiteCollectionFees, error) {
	f, err := s.repo.Pricing.LatestSiteCollectionFees(ctx, siteCollectionID)
	if err != nil {
		return nil, lookupErr(err, ErrPricingNotSet)
	}
	return f, nil
}

func anyNegative(values ...decimal.Decimal) bool {
	for _, v := range values {
		if v.IsNegative() {
			return true
		}
	}
	return false
}
