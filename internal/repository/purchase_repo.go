package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/benitha200/cherryapp-backend/internal/model"
)

// PurchaseDayKey identifies the single purchase allowed per station, grade,
// day and delivery channel
type PurchaseDayKey struct {
	CWSID            uint
	Grade            string
	DayStart         time.Time
	DayEnd           time.Time
	DeliveryType     string
	SiteCollectionID *uint
}

// PurchaseRepository purchase data access
type PurchaseRepository interface {
	Create(ctx context.Context, p *model.Purchase) error
	GetByID(ctx context.Context, id uint) (*model.Purchase, error)
	Update(ctx context.Context, p *model.Purchase) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]model.Purchase, error)
	ListByStation(ctx context.Context, cwsID uint) ([]model.Purchase, error)
	// ListBetween purchases with start <= purchase_date < end, nil bounds are open
	ListBetween(ctx context.Context, start, end *time.Time) ([]model.Purchase, error)
	FindForDay(ctx context.Context, key PurchaseDayKey) (*model.Purchase, error)
	CountBySiteCollection(ctx context.Context, siteCollectionID uint) (int64, error)
	ExistsForBatch(ctx context.Context, batchNo, grade string) (bool, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

// NewPurchaseRepo creates a PurchaseRepository
func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db: db}
}

func (r *purchaseRepo) Create(ctx context.Context, p *model.Purchase) error {
	return r.db.WithContext(ctx).Omit("CWS", "SiteCollection").Create(p).Error
}

func (r *purchaseRepo) GetByID(ctx context.Context, id uint) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).
		Preload("CWS").
		Preload("SiteCollection").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *purchaseRepo) Update(ctx context.Context, p *model.Purchase) error {
	return r.db.WithContext(ctx).Omit("CWS", "SiteCollection").Save(p).Error
}

func (r *purchaseRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Purchase{}, id).Error
}

func (r *purchaseRepo) List(ctx context.Context) ([]model.Purchase, error) {
	var list []model.Purchase
	err := r.db.WithContext(ctx).
		Preload("CWS").
		Preload("SiteCollection").
		Order("purchase_date DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *purchaseRepo) ListByStation(ctx context.Context, cwsID uint) ([]model.Purchase, error) {
	var list []model.Purchase
	err := r.db.WithContext(ctx).
		Preload("CWS").
		Preload("SiteCollection").
		Where("cws_id = ?", cwsID).
		Order("purchase_date DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *purchaseRepo) ListBetween(ctx context.Context, start, end *time.Time) ([]model.Purchase, error) {
	var list []model.Purchase
	db := r.db.WithContext(ctx).
		Preload("CWS").
		Preload("SiteCollection")

	if start != nil {
		db = db.Where("purchase_date >= ?", *start)
	}
	if end != nil {
		db = db.Where("purchase_date < ?", *end)
	}

	err := db.Order("purchase_date DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *purchaseRepo) FindForDay(ctx context.Context, key PurchaseDayKey) (*model.Purchase, error) {
	db := r.db.WithContext(ctx).
		Where("cws_id = ? AND grade = ?", key.CWSID, key.Grade).
		Where("purchase_date >= ? AND purchase_date < ?", key.DayStart, key.DayEnd)

	if key.DeliveryType == model.DeliverySiteCollection {
		db = db.Where("delivery_type = ? AND site_collection_id = ?", key.DeliveryType, key.SiteCollectionID)
	} else {
		db = db.Where("delivery_type = ?", key.DeliveryType)
	}

	var p model.Purchase
	if err := db.First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *purchaseRepo) CountBySiteCollection(ctx context.Context, siteCollectionID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Purchase{}).
		Where("site_collection_id = ?", siteCollectionID).
		Count(&n).Error
	return n, err
}

func (r *purchaseRepo) ExistsForBatch(ctx context.Context, batchNo, grade string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Purchase{}).
		Where("batch_no = ? AND grade = ?", batchNo, grade).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}
