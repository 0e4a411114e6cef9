package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/benitha200/cherryapp-backend/internal/model"
)

// PricingRepository append-only fee and price tables.
// Latest* return gorm.ErrRecordNotFound when nothing was recorded yet.
type PricingRepository interface {
	CreateGlobalFees(ctx context.Context, f *model.GlobalFees) error
	LatestGlobalFees(ctx context.Context) (*model.GlobalFees, error)
	CreateStationPricing(ctx context.Context, p *model.StationPricing) error
	LatestStationPricing(ctx context.Context, cwsID uint) (*model.StationPricing, error)
	CreateSiteCollectionFees(ctx context.Context, f *model.SiteCollectionFees) error
	LatestSiteCollectionFees(ctx context.Context, siteCollectionID uint) (*model.SiteCollectionFees, error)
}

type pricingRepo struct {
	db *gorm.DB
}

// NewPricingRepo creates a PricingRepository
func NewPricingRepo(db *gorm.DB) PricingRepository {
	return &pricingRepo{db: db}
}

func (r *pricingRepo) CreateGlobalFees(ctx context.Context, f *model.GlobalFees) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *pricingRepo) LatestGlobalFees(ctx context.Context) (*model.GlobalFees, error) {
	var f model.GlobalFees
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *pricingRepo) CreateStationPricing(ctx context.Context, p *model.StationPricing) error {
	return r.db.WithContext(ctx).Omit("CWS").Create(p).Error
}

func (r *pricingRepo) LatestStationPricing(ctx context.Context, cwsID uint) (*model.StationPricing, error) {
	var p model.StationPricing
	err := r.db.WithContext(ctx).
		Preload("CWS").
		Where("cws_id = ?", cwsID).
		Order("created_at DESC, id DESC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pricingRepo) CreateSiteCollectionFees(ctx context.Context, f *model.SiteCollectionFees) error {
	return r.db.WithContext(ctx).Omit("SiteCollection").Create(f).Error
}

func (r *pricingRepo) LatestSiteCollectionFees(ctx context.Context, siteCollectionID uint) (*model.SiteCollectionFees, error) {
	var f model.SiteCollectionFees
	err := r.db.WithContext(ctx).
		Preload("SiteCollection").
		Where("site_collection_id = ?", siteCollectionID).
		Order("created_at DESC, id DESC").
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}
