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

// ── station errors ──

var (
	ErrStationNotFound  = apperr.New(apperr.KindNotFound, 11001, "CWS not found")
	ErrStationCodeTaken = apperr.New(apperr.KindBusinessRule, 11002, "CWS code already in use")
)

// StationService washing station reference data
type StationService interface {
	Create(ctx context.Context, req *dto.CreateStationRequest) (*dto.StationResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.StationResponse, error)
	List(ctx context.Context) ([]dto.StationResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateStationRequest) (*dto.StationResponse, error)
	Delete(ctx context.Context, id uint) error
}

type stationService struct {
	repo   *repository.Repository
	cache  *cache.Cache
	logger *zap.Logger
}

// NewStationService creates a StationService
func NewStationService(repo *repository.Repository, c *cache.Cache, logger *zap.Logger) StationService {
	return &stationService{repo: repo, cache: c, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *stationService) Create(ctx context.Context, req *dto.CreateStationRequest) (*dto.StationResponse, error) {
	st := &model.Station{
		Name:                 req.Name,
		Location:             req.Location,
		Code:                 req.Code,
		IsWetParchmentSender: true,
	}
	if req.HasSpeciality != nil {
		st.HasSpeciality = *req.HasSpeciality
	}
	if req.IsWetParchmentSender != nil {
		st.IsWetParchmentSender = *req.IsWetParchmentSender
	}

	if err := s.repo.Station.Create(ctx, st); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrStationCodeTaken
		}
		s.logger.Error("failed to create CWS", zap.String("code", req.Code), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	s.cache.Invalidate(ctx, cache.KeyStationsAll)
	return toStationResponse(st), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *stationService) GetByID(ctx context.Context, id uint) (*dto.StationResponse, error) {
	key := cache.KeyStation(id)
	var cached dto.StationResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	st, err := s.repo.Station.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrStationNotFound)
	}

	resp := toStationResponse(st)
	s.cache.SetJSON(ctx, key, resp)
	return resp, nil
}

// ────────────────────── List ──────────────────────

func (s *stationService) List(ctx context.Context) ([]dto.StationResponse, error) {
	var cached []dto.StationResponse
	if s.cache.GetJSON(ctx, cache.KeyStationsAll, &cached) {
		return cached, nil
	}

	stations, err := s.repo.Station.List(ctx)
	if err != nil {
		s.logger.Error("failed to list CWS", zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	result := make([]dto.StationResponse, 0, len(stations))
	for i := range stations {
		result = append(result, *toStationResponse(&stations[i]))
	}

	s.cache.SetJSON(ctx, cache.KeyStationsAll, result)
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *stationService) Update(ctx context.Context, id uint, req *dto.UpdateStationRequest) (*dto.StationResponse, error) {
	st, err := s.repo.Station.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrStationNotFound)
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Location != nil {
		st.Location = *req.Location
	}
	if req.Code != nil {
		st.Code = *req.Code
	}
	if req.HasSpeciality != nil {
		st.HasSpeciality = *req.HasSpeciality
	}
	if req.IsWetParchmentSender != nil {
		st.IsWetParchmentSender = *req.IsWetParchmentSender
	}

	if err := s.repo.Station.Update(ctx, st); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrStationCodeTaken
		}
		s.logger.Error("failed to update CWS", zap.Uint("id", id), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	s.cache.Invalidate(ctx, cache.KeyStationsAll, cache.KeyStation(id))
	return toStationResponse(st), nil
}

// ────────────────────── Delete ──────────────────────

func (s *stationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Station.GetByID(ctx, id); err != nil {
		return lookupErr(err, ErrStationNotFound)
	}

	if err := s.repo.Station.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete CWS", zap.Uint("id", id), zap.Error(err))
		return apperr.Persistence(err)
	}

	s.cache.Invalidate(ctx, cache.KeyStationsAll, cache.KeyStation(id))
	return nil
}

// ────────────────────── helpers ──────────────────────

func toStationResponse(st *model.Station) *dto.StationResponse {
	return &dto.StationResponse{
		ID:                   st.ID,
		Name:                 st.Name,
		Location:             st.Location,
		Code:                 st.Code,
		HasSpeciality:        st.HasSpeciality,
		IsWetParchmentSender: st.IsWetParchmentSender,
	}
}
