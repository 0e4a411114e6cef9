package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/model"
	"github.com/benitha200/cherryapp-backend/internal/repository"
	"github.com/benitha200/cherryapp-backend/pkg/cache"
	apperr "github.com/benitha200/cherryapp-backend/pkg/errors"
)

// ── site collection errors ──

var (
	ErrSiteCollectionNotFound = apperr.New(apperr.KindNotFound, 12001, "site collection not found")
	ErrSiteCollectionInUse    = apperr.New(apperr.KindBusinessRule, 12002, "cannot delete site collection with associated purchases")
)

// SiteCollectionService collection points feeding stations
type SiteCollectionService interface {
	Create(ctx context.Context, req *dto.CreateSiteCollectionRequest) (*dto.SiteCollectionResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.SiteCollectionResponse, error)
	List(ctx context.Context) ([]dto.SiteCollectionResponse, error)
	ListByStation(ctx context.Context, cwsID uint) ([]dto.SiteCollectionResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateSiteCollectionRequest) (*dto.SiteCollectionResponse, error)
	Delete(ctx context.Context, id uint) error
}

type siteCollectionService struct {
	repo   *repository.Repository
	cache  *cache.Cache
	logger *zap.Logger
}

// NewSiteCollectionService creates a SiteCollectionService
func NewSiteCollectionService(repo *repository.Repository, c *cache.Cache, logger *zap.Logger) SiteCollectionService {
	return &siteCollectionService{repo: repo, cache: c, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *siteCollectionService) Create(ctx context.Context, req *dto.CreateSiteCollectionRequest) (*dto.SiteCollectionResponse, error) {
	st, err := s.repo.Station.GetByID(ctx, req.CWSID)
	if err != nil {
		return nil, lookupErr(err, ErrStationNotFound)
	}

	sc := &model.SiteCollection{Name: req.Name, CWSID: req.CWSID}
	if err := s.repo.SiteCollection.Create(ctx, sc); err != nil {
		s.logger.Error("failed to create site collection", zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	sc.CWS = st

	s.invalidate(ctx, sc.ID, sc.CWSID)
	return toSiteCollectionResponse(sc), nil
}

// ────────────────────── Reads ──────────────────────

func (s *siteCollectionService) GetByID(ctx context.Context, id uint) (*dto.SiteCollectionResponse, error) {
	key := cache.KeySiteCollection(id)
	var cached dto.SiteCollectionResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	sc, err := s.repo.SiteCollection.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrSiteCollectionNotFound)
	}

	resp := toSiteCollectionResponse(sc)
	s.cache.SetJSON(ctx, key, resp)
	return resp, nil
}

func (s *siteCollectionService) List(ctx context.Context) ([]dto.SiteCollectionResponse, error) {
	return s.cachedList(ctx, cache.KeySiteCollectionsAll, func() ([]model.SiteCollection, error) {
		return s.repo.SiteCollection.List(ctx)
	})
}

func (s *siteCollectionService) ListByStation(ctx context.Context, cwsID uint) ([]dto.SiteCollectionResponse, error) {
	return s.cachedList(ctx, cache.KeySiteCollectionsByStation(cwsID), func() ([]model.SiteCollection, error) {
		return s.repo.SiteCollection.ListByStation(ctx, cwsID)
	})
}

func (s *siteCollectionService) cachedList(ctx context.Context, key string, load func() ([]model.SiteCollection, error)) ([]dto.SiteCollectionResponse, error) {
	var cached []dto.SiteCollectionResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	list, err := load()
	if err != nil {
		s.logger.Error("failed to list site collections", zap.String("key", key), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	result := make([]dto.SiteCollectionResponse, 0, len(list))
	for i := range list {
		result = append(result, *toSiteCollectionResponse(&list[i]))
	}

	s.cache.SetJSON(ctx, key, result)
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *siteCollectionService) Update(ctx context.Context, id uint, req *dto.UpdateSiteCollectionRequest) (*dto.SiteCollectionResponse, error) {
	sc, err := s.repo.SiteCollection.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrSiteCollectionNotFound)
	}
	oldStation := sc.CWSID

	if req.Name != nil {
		sc.Name = *req.Name
	}
	if req.CWSID != nil && *req.CWSID != sc.CWSID {
		st, err := s.repo.Station.GetByID(ctx, *req.CWSID)
		if err != nil {
			return nil, lookupErr(err, ErrStationNotFound)
		}
		sc.CWSID = st.ID
		sc.CWS = st
	}

	if err := s.repo.SiteCollection.Update(ctx, sc); err != nil {
		s.logger.Error("failed to update site collection", zap.Uint("id", id), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	s.invalidate(ctx, id, oldStation, sc.CWSID)
	return toSiteCollectionResponse(sc), nil
}

// ────────────────────── Delete ──────────────────────

func (s *siteCollectionService) Delete(ctx context.Context, id uint) error {
	sc, err := s.repo.SiteCollection.GetByID(ctx, id)
	if err != nil {
		return lookupErr(err, ErrSiteCollectionNotFound)
	}

	n, err := s.repo.Purchase.CountBySiteCollection(ctx, id)
	if err != nil {
		s.logger.Error("failed to count site collection purchases", zap.Uint("id", id), zap.Error(err))
		return apperr.Persistence(err)
	}
	if n > 0 {
		return ErrSiteCollectionInUse
	}

	if err := s.repo.SiteCollection.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete site collection", zap.Uint("id", id), zap.Error(err))
		return apperr.Persistence(err)
	}

	s.invalidate(ctx, id, sc.CWSID)
	return nil
}

// ────────────────────── helpers ──────────────────────

func (s *siteCollectionService) invalidate(ctx context.Context, id uint, cwsIDs ...uint) {
	keys := []string{cache.KeySiteCollectionsAll, cache.KeySiteCollection(id)}
	for _, cwsID := range cwsIDs {
		keys = append(keys, cache.KeySiteCollectionsByStation(cwsID))
	}
	s.cache.Invalidate(ctx, keys...)
}

func toSiteCollectionResponse(sc *model.SiteCollection) *dto.SiteCollectionResponse {
	resp := &dto.SiteCollectionResponse{
		ID:    sc.ID,
		Name:  sc.Name,
		CWSID: sc.CWSID,
	}
	if sc.CWS != nil {
		resp.CWS = toStationResponse(sc.CWS)
	}
	return resp
}
