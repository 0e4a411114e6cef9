package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/benitha200/cherryapp-backend/internal/model"
)

// BaggingOffRepository bagging-off data access
type BaggingOffRepository interface {
	Create(ctx context.Context, b *model.BaggingOff) error
	GetByID(ctx context.Context, id uint) (*model.BaggingOff, error)
	// FindRow the row keyed by (batch, processing type, processing id)
	FindRow(ctx context.Context, batchNo, processingType string, processingID uint) (*model.BaggingOff, error)
	Update(ctx context.Context, b *model.BaggingOff) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]model.BaggingOff, error)
	ListByBatch(ctx context.Context, batchNo string) ([]model.BaggingOff, error)
	ListCompletedByStation(ctx context.Context, cwsID uint) ([]model.BaggingOff, error)
	CountByBatch(ctx context.Context, batchNo string) (int64, error)
}

type baggingOffRepo struct {
	db *gorm.DB
}

// NewBaggingOffRepo creates a BaggingOffRepository
func NewBaggingOffRepo(db *gorm.DB) BaggingOffRepository {
	return &baggingOffRepo{db: db}
}

func (r *baggingOffRepo) Create(ctx context.Context, b *model.BaggingOff) error {
	return r.db.WithContext(ctx).Omit("Processing", "Transfers").Create(b).Error
}

func (r *baggingOffRepo) GetByID(ctx context.Context, id uint) (*model.BaggingOff, error) {
	var b model.BaggingOff
	err := r.db.WithContext(ctx).
		Preload("Processing.CWS").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *baggingOffRepo) FindRow(ctx context.Context, batchNo, processingType string, processingID uint) (*model.BaggingOff, error) {
	var b model.BaggingOff
	err := r.db.WithContext(ctx).
		Where("batch_no = ? AND processing_type = ? AND processing_id = ?", batchNo, processingType, processingID).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *baggingOffRepo) Update(ctx context.Context, b *model.BaggingOff) error {
	return r.db.WithContext(ctx).Omit("Processing", "Transfers").Save(b).Error
}

func (r *baggingOffRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.BaggingOff{}, id).Error
}

func (r *baggingOffRepo) List(ctx context.Context) ([]model.BaggingOff, error) {
	var list []model.BaggingOff
	err := r.db.WithContext(ctx).
		Preload("Processing.CWS").
		Preload("Transfers").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *baggingOffRepo) ListByBatch(ctx context.Context, batchNo string) ([]model.BaggingOff, error) {
	var list []model.BaggingOff
	err := r.db.WithContext(ctx).
		Preload("Processing.CWS").
		Where("batch_no = ?", batchNo).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *baggingOffRepo) ListCompletedByStation(ctx context.Context, cwsID uint) ([]model.BaggingOff, error) {
	var list []model.BaggingOff
	err := r.db.WithContext(ctx).
		Preload("Processing.CWS").
		Preload("Transfers").
		Joins("JOIN processings ON processings.id = bagging_offs.processing_id").
		Where("processings.cws_id = ? AND bagging_offs.status = ?", cwsID, string(model.StatusCompleted)).
		Order("bagging_offs.created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *baggingOffRepo) CountByBatch(ctx context.Context, batchNo string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.BaggingOff{}).
		Where("batch_no = ?", batchNo).
		Count(&n).Error
	return n, err
}
