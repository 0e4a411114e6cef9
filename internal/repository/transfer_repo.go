package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/benitha200/cherryapp-backend/internal/model"
)

// ── wet transfers ──

// WetTransferRepository wet transfer data access
type WetTransferRepository interface {
	Create(ctx context.Context, w *model.WetTransfer) error
	GetByID(ctx context.Context, id uint) (*model.WetTransfer, error)
	Update(ctx context.Context, w *model.WetTransfer) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]model.WetTransfer, error)
	ListBySource(ctx context.Context, cwsID uint) ([]model.WetTransfer, error)
	ListByDestination(ctx context.Context, cwsID uint) ([]model.WetTransfer, error)
	// ListByBatchNo exact batch match
	ListByBatchNo(ctx context.Context, batchNo string) ([]model.WetTransfer, error)
	// SearchByBatch case-insensitive substring match
	SearchByBatch(ctx context.Context, fragment string) ([]model.WetTransfer, error)
	// ListByStation transfers where the station is source or destination, newest first
	ListByStation(ctx context.Context, cwsID uint, limit int) ([]model.WetTransfer, error)
}

type wetTransferRepo struct {
	db *gorm.DB
}

// NewWetTransferRepo creates a WetTransferRepository
func NewWetTransferRepo(db *gorm.DB) WetTransferRepository {
	return &wetTransferRepo{db: db}
}

var wetTransferAssociations = []string{"Processing", "SourceCWS", "DestinationCWS"}

func (r *wetTransferRepo) Create(ctx context.Context, w *model.WetTransfer) error {
	return r.db.WithContext(ctx).Omit(wetTransferAssociations...).Create(w).Error
}

func (r *wetTransferRepo) GetByID(ctx context.Context, id uint) (*model.WetTransfer, error) {
	var w model.WetTransfer
	if err := r.withStations(ctx).Preload("Processing").First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *wetTransferRepo) Update(ctx context.Context, w *model.WetTransfer) error {
	return r.db.WithContext(ctx).Omit(wetTransferAssociations...).Save(w).Error
}

func (r *wetTransferRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.WetTransfer{}, id).Error
}

func (r *wetTransferRepo) List(ctx context.Context) ([]model.WetTransfer, error) {
	var list []model.WetTransfer
	err := r.withStations(ctx).Order("date DESC").Find(&list).Error
	return list, err
}

func (r *wetTransferRepo) ListBySource(ctx context.Context, cwsID uint) ([]model.WetTransfer, error) {
	var list []model.WetTransfer
	err := r.withStations(ctx).
		Where("source_cws_id = ?", cwsID).
		Order("date DESC").
		Find(&list).Error
	return list, err
}

func (r *wetTransferRepo) ListByDestination(ctx context.Context, cwsID uint) ([]model.WetTransfer, error) {
	var list []model.WetTransfer
	err := r.withStations(ctx).
		Where("destination_cws_id = ?", cwsID).
		Order("date DESC").
		Find(&list).Error
	return list, err
}

func (r *wetTransferRepo) ListByBatchNo(ctx context.Context, batchNo string) ([]model.WetTransfer, error) {
	var list []model.WetTransfer
	err := r.db.WithContext(ctx).
		Where("batch_no = ?", batchNo).
		Find(&list).Error
	return list, err
}

func (r *wetTransferRepo) SearchByBatch(ctx context.Context, fragment string) ([]model.WetTransfer, error) {
	var list []model.WetTransfer
	err := r.withStations(ctx).
		Where("batch_no ILIKE ?", "%"+fragment+"%").
		Order("date DESC").
		Find(&list).Error
	return list, err
}

func (r *wetTransferRepo) ListByStation(ctx context.Context, cwsID uint, limit int) ([]model.WetTransfer, error) {
	var list []model.WetTransfer
	db := r.withStations(ctx).
		Where("source_cws_id = ? OR destination_cws_id = ?", cwsID, cwsID).
		Order("date DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&list).Error
	return list, err
}

func (r *wetTransferRepo) withStations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("SourceCWS").
		Preload("DestinationCWS")
}

// ── dry transfers ──

// TransferRepository dispatch transfer data access
type TransferRepository interface {
	Create(ctx context.Context, t *model.Transfer) error
	GetByID(ctx context.Context, id uint) (*model.Transfer, error)
	Update(ctx context.Context, t *model.Transfer) error
	List(ctx context.Context) ([]model.Transfer, error)
	ListByBatch(ctx context.Context, batchNo string) ([]model.Transfer, error)
	ListByStation(ctx context.Context, cwsID uint, from, to *time.Time) ([]model.Transfer, error)
	ListByBaggingOff(ctx context.Context, baggingOffID uint) ([]model.Transfer, error)
}

type transferRepo struct {
	db *gorm.DB
}

// NewTransferRepo creates a TransferRepository
func NewTransferRepo(db *gorm.DB) TransferRepository {
	return &transferRepo{db: db}
}

func (r *transferRepo) Create(ctx context.Context, t *model.Transfer) error {
	return r.db.WithContext(ctx).Omit("BaggingOff").Create(t).Error
}

func (r *transferRepo) GetByID(ctx context.Context, id uint) (*model.Transfer, error) {
	var t model.Transfer
	if err := r.withBaggingOff(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transferRepo) Update(ctx context.Context, t *model.Transfer) error {
	return r.db.WithContext(ctx).Omit("BaggingOff").Save(t).Error
}

func (r *transferRepo) List(ctx context.Context) ([]model.Transfer, error) {
	var list []model.Transfer
	err := r.withBaggingOff(ctx).Order("transfer_date DESC").Find(&list).Error
	return list, err
}

func (r *transferRepo) ListByBatch(ctx context.Context, batchNo string) ([]model.Transfer, error) {
	var list []model.Transfer
	err := r.withBaggingOff(ctx).
		Where("batch_no = ?", batchNo).
		Order("transfer_date DESC").
		Find(&list).Error
	return list, err
}

func (r *transferRepo) ListByStation(ctx context.Context, cwsID uint, from, to *time.Time) ([]model.Transfer, error) {
	var list []model.Transfer
	db := r.withBaggingOff(ctx).
		Joins("JOIN bagging_offs ON bagging_offs.id = transfers.bagging_off_id").
		Joins("JOIN processings ON processings.id = bagging_offs.processing_id").
		Where("processings.cws_id = ?", cwsID)
	if from != nil && to != nil {
		db = db.Where("transfers.transfer_date BETWEEN ? AND ?", *from, *to)
	}
	err := db.Order("transfers.transfer_date DESC").Find(&list).Error
	return list, err
}

func (r *transferRepo) ListByBaggingOff(ctx context.Context, baggingOffID uint) ([]model.Transfer, error) {
	var list []model.Transfer
	err := r.withBaggingOff(ctx).
		Where("bagging_off_id = ?", baggingOffID).
		Order("transfer_date DESC").
		Find(&list).Error
	return list, err
}

func (r *transferRepo) withBaggingOff(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("BaggingOff.Processing.CWS")
}
