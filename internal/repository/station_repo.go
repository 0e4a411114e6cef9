package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/benitha200/cherryapp-backend/internal/model"
)

// StationRepository washing station data access
type StationRepository interface {
	Create(ctx context.Context, st *model.Station) error
	GetByID(ctx context.Context, id uint) (*model.Station, error)
	List(ctx context.Context) ([]model.Station, error)
	Update(ctx context.Context, st *model.Station) error
	Delete(ctx context.Context, id uint) error
}

type stationRepo struct {
	db *gorm.DB
}

// NewStationRepo creates a StationRepository
func NewStationRepo(db *gorm.DB) StationRepository {
	return &stationRepo{db: db}
}

func (r *stationRepo) Create(ctx context.Context, st *model.Station) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *stationRepo) GetByID(ctx context.Context, id uint) (*model.Station, error) {
	var st model.Station
	if err := r.db.WithContext(ctx).First(&st, id).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *stationRepo) List(ctx context.Context) ([]model.Station, error) {
	var stations []model.Station
	err := r.db.WithContext(ctx).Order("name ASC").Find(&stations).Error
	return stations, err
}

func (r *stationRepo) Update(ctx context.Context, st *model.Station) error {
	return r.db.WithContext(ctx).Save(st).Error
}

func (r *stationRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Station{}, id).Error
}

// ── site collections ──

// SiteCollectionRepository site collection data access
type SiteCollectionRepository interface {
	Create(ctx context.Context, sc *model.SiteCollection) error
	GetByID(ctx context.Context, id uint) (*model.SiteCollection, error)
	List(ctx context.Context) ([]model.SiteCollection, error)
	ListByStation(ctx context.Context, cwsID uint) ([]model.SiteCollection, error)
	Update(ctx context.Context, sc *model.SiteCollection) error
	Delete(ctx context.Context, id uint) error
}

type siteCollectionRepo struct {
	db *gorm.DB
}

// NewSiteCollectionRepo creates a SiteCollectionRepository
func NewSiteCollectionRepo(db *gorm.DB) SiteCollectionRepository {
	return &siteCollectionRepo{db: db}
}

func (r *siteCollectionRepo) Create(ctx context.Context, sc *model.SiteCollection) error {
	return r.db.WithContext(ctx).Omit("CWS").Create(sc).Error
}

func (r *siteCollectionRepo) GetByID(ctx context.Context, id uint) (*model.SiteCollection, error) {
	var sc model.SiteCollection
	if err := r.db.WithContext(ctx).Preload("CWS").First(&sc, id).Error; err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *siteCollectionRepo) List(ctx context.Context) ([]model.SiteCollection, error) {
	var list []model.SiteCollection
	err := r.db.WithContext(ctx).Preload("CWS").Order("name ASC").Find(&list).Error
	return list, err
}

func (r *siteCollectionRepo) ListByStation(ctx context.Context, cwsID uint) ([]model.SiteCollection, error) {
	var list []model.SiteCollection
	err := r.db.WithContext(ctx).
		Preload("CWS").
		Where("cws_id = ?", cwsID).
		Order("name ASC").
		Find(&list).Error
	return list, err
}

func (r *siteCollectionRepo) Update(ctx context.Context, sc *model.SiteCollection) error {
	return r.db.WithContext(ctx).Omit("CWS").Save(sc).Error
}

func (r *siteCollectionRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.SiteCollection{}, id).Error
}
