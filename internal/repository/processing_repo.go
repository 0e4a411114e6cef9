package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/benitha200/cherryapp-backend/internal/model"
)

// ProcessingFilter optional filters for processing listings
type ProcessingFilter struct {
	CWSID          *uint
	Status         string
	ProcessingType string
	EndFrom        *time.Time
	EndTo          *time.Time
}

// ProcessingStat kilograms and count per (type, status)
type ProcessingStat struct {
	ProcessingType string  `json:"processingType"`
	Status         string  `json:"status"`
	TotalKgs       float64 `json:"totalKgs"`
	Count          int64   `json:"count"`
}

// ProcessingRepository processing data access
type ProcessingRepository interface {
	Create(ctx context.Context, p *model.Processing) error
	GetByID(ctx context.Context, id uint) (*model.Processing, error)
	GetByBatchNo(ctx context.Context, batchNo string) (*model.Processing, error)
	// ExistsInStatus reports whether the batch has a processing row; with no
	// statuses given any status matches
	ExistsInStatus(ctx context.Context, batchNo string, statuses ...model.ProcessingStatus) (bool, error)
	Update(ctx context.Context, p *model.Processing) error
	UpdateStatus(ctx context.Context, id uint, status model.ProcessingStatus, endDate *time.Time) error
	List(ctx context.Context, filter ProcessingFilter) ([]model.Processing, error)
	// ListWithBaggingOffs preloads bagging-offs, used by yield reports
	ListWithBaggingOffs(ctx context.Context, filter ProcessingFilter) ([]model.Processing, error)
	ListBatchNos(ctx context.Context) ([]string, error)
	Stats(ctx context.Context, cwsID uint) ([]ProcessingStat, error)
}

type processingRepo struct {
	db *gorm.DB
}

// NewProcessingRepo creates a ProcessingRepository
func NewProcessingRepo(db *gorm.DB) ProcessingRepository {
	return &processingRepo{db: db}
}

func (r *processingRepo) Create(ctx context.Context, p *model.Processing) error {
	return r.db.WithContext(ctx).Omit("CWS", "BaggingOffs").Create(p).Error
}

func (r *processingRepo) GetByID(ctx context.Context, id uint) (*model.Processing, error) {
	var p model.Processing
	if err := r.db.WithContext(ctx).Preload("CWS").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *processingRepo) GetByBatchNo(ctx context.Context, batchNo string) (*model.Processing, error) {
	var p model.Processing
	err := r.db.WithContext(ctx).
		Preload("CWS").
		Where("batch_no = ?", batchNo).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *processingRepo) ExistsInStatus(ctx context.Context, batchNo string, statuses ...model.ProcessingStatus) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&model.Processing{}).
		Where("batch_no = ?", batchNo)
	if len(statuses) > 0 {
		db = db.Where("status IN ?", statuses)
	}

	var n int64
	err := db.Limit(1).Count(&n).Error
	return n > 0, err
}

func (r *processingRepo) Update(ctx context.Context, p *model.Processing) error {
	return r.db.WithContext(ctx).Omit("CWS", "BaggingOffs").Save(p).Error
}

func (r *processingRepo) UpdateStatus(ctx context.Context, id uint, status model.ProcessingStatus, endDate *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if endDate != nil {
		updates["end_date"] = *endDate
	}
	res := r.db.WithContext(ctx).
		Model(&model.Processing{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *processingRepo) List(ctx context.Context, filter ProcessingFilter) ([]model.Processing, error) {
	var list []model.Processing
	err := r.filtered(ctx, filter).
		Preload("CWS").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *processingRepo) ListWithBaggingOffs(ctx context.Context, filter ProcessingFilter) ([]model.Processing, error) {
	var list []model.Processing
	err := r.filtered(ctx, filter).
		Preload("CWS").
		Preload("BaggingOffs").
		Order("batch_no ASC").
		Find(&list).Error
	return list, err
}

func (r *processingRepo) ListBatchNos(ctx context.Context) ([]string, error) {
	var batchNos []string
	err := r.db.WithContext(ctx).
		Model(&model.Processing{}).
		Pluck("batch_no", &batchNos).Error
	return batchNos, err
}

func (r *processingRepo) Stats(ctx context.Context, cwsID uint) ([]ProcessingStat, error) {
	var stats []ProcessingStat
	err := r.db.WithContext(ctx).
		Model(&model.Processing{}).
		Select("processing_type, status, COALESCE(SUM(total_kgs), 0) AS total_kgs, COUNT(id) AS count").
		Where("cws_id = ?", cwsID).
		Group("processing_type, status").
		Order("processing_type, status").
		Scan(&stats).Error
	return stats, err
}

func (r *processingRepo) filtered(ctx context.Context, f ProcessingFilter) *gorm.DB {
	db := r.db.WithContext(ctx)
	if f.CWSID != nil {
		db = db.Where("cws_id = ?", *f.CWSID)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.ProcessingType != "" {
		db = db.Where("processing_type = ?", f.ProcessingType)
	}
	if f.EndFrom != nil {
		db = db.Where("end_date >= ?", *f.EndFrom)
	}
	if f.EndTo != nil {
		db = db.Where("end_date <= ?", *f.EndTo)
	}
	return db
}
