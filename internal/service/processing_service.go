package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/benitha200/cherryapp-backend/config"
	"github.com/benitha200/cherryapp-backend/internal/batch"
	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/model"
	"github.com/benitha200/cherryapp-backend/internal/repository"
	apperr "github.com/benitha200/cherryapp-backend/pkg/errors"
)

// ── processing errors ──

var (
	ErrProcessingNotFound       = apperr.New(apperr.KindNotFound, 14001, "processing not found")
	ErrProcessingAlreadyStarted = apperr.New(apperr.KindBusinessRule, 14002, "processing has already started for this batch")
	ErrBatchNotInPurchases      = apperr.New(apperr.KindNotFound, 14003, "batch has no matching purchase for this grade")
	ErrInvalidStatusTransition  = apperr.New(apperr.KindBusinessRule, 14004, "status transition not allowed")
	ErrInvalidProcessingStatus  = apperr.New(apperr.KindValidation, 14005, "unknown processing status")
)

// ProcessingService processing lifecycle
type ProcessingService interface {
	Start(ctx context.Context, req *dto.StartProcessingRequest) (*model.Processing, error)
	HasStarted(ctx context.Context, cwsID uint, purchaseDate time.Time, grade string) (bool, error)
	IsBatchActive(ctx context.Context, batchNo string) (bool, error)
	SetStatus(ctx context.Context, id uint, req *dto.UpdateProcessingStatusRequest) (*model.Processing, error)
	OnBaggingOffCreated(ctx context.Context, batchNo string) error
	GetByBatch(ctx context.Context, batchNo string) (*model.Processing, error)
	ListByStation(ctx context.Context, cwsID uint, q *dto.ProcessingListQuery) ([]model.Processing, error)
	Stats(ctx context.Context, cwsID uint) ([]dto.ProcessingStatsResponse, error)
}

type processingService struct {
	repo   *repository.Repository
	strict bool
	logger *zap.Logger
}

// NewProcessingService creates a ProcessingService
func NewProcessingService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ProcessingService {
	return &processingService{
		repo:   repo,
		strict: cfg.Processing.StrictTransitions,
		logger: logger,
	}
}

// ────────────────────── Start ──────────────────────

func (s *processingService) Start(ctx context.Context, req *dto.StartProcessingRequest) (*model.Processing, error) {
	ptype := model.NormalizeProcessingType(req.ProcessingType)
	if ptype == "" {
		return nil, ErrUnsupportedProcessingType
	}

	station, err := s.repo.Station.GetByID(ctx, req.CWSID)
	if err != nil {
		return nil, lookupErr(err, ErrStationNotFound)
	}

	exists, err := s.repo.Processing.ExistsInStatus(ctx, req.BatchNo)
	if err != nil {
		s.logger.Error("failed to check processing", zap.String("batch_no", req.BatchNo), zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	if exists {
		return nil, ErrProcessingAlreadyStarted
	}

	if !station.HasSpeciality {
		found, err := s.repo.Purchase.ExistsForBatch(ctx, req.BatchNo, req.Grade)
		if err != nil {
			s.logger.Error("failed to look up purchases", zap.String("batch_no", req.BatchNo), zap.Error(err))
			return nil, apperr.Persistence(err)
		}
		if !found {
			return nil, ErrBatchNotInPurchases
		}
	}

	p := &model.Processing{
		BatchNo:        req.BatchNo,
		ProcessingType: ptype,
		TotalKgs:       req.TotalKgs,
		Grade:          req.Grade,
		Status:         model.StatusInProgress,
		StartDate:      time.Now().UTC(),
		Notes:          req.Notes,
		CWSID:          req.CWSID,
	}

	if err := s.repo.Processing.Create(ctx, p); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrProcessingAlreadyStarted
		}
		s.logger.Error("failed to create processing", zap.String("batch_no", req.BatchNo), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	s.logger.Info("processing started",
		zap.String("batch_no", p.BatchNo),
		zap.String("processing_type", p.ProcessingType),
		zap.Uint("cws_id", p.CWSID))
	return p, nil
}

// ────────────────────── Batch locks ──────────────────────

func (s *processingService) HasStarted(ctx context.Context, cwsID uint, purchaseDate time.Time, grade string) (bool, error) {
	return hasProcessingStarted(ctx, s.repo, cwsID, purchaseDate, grade)
}

func (s *processingService) IsBatchActive(ctx context.Context, batchNo string) (bool, error) {
	return isBatchActive(ctx, s.repo, batchNo)
}

// hasProcessingStarted derives the batch of (station, date, grade) and
// reports whether it is locked.
func hasProcessingStarted(ctx context.Context, repo *repository.Repository, cwsID uint, purchaseDate time.Time, grade string) (bool, error) {
	station, err := repo.Station.GetByID(ctx, cwsID)
	if err != nil {
		return false, lookupErr(err, ErrStationNotFound)
	}
	return isBatchActive(ctx, repo, batch.Derive(station.Code, grade, purchaseDate))
}

func isBatchActive(ctx context.Context, repo *repository.Repository, batchNo string) (bool, error) {
	ok, err := repo.Processing.ExistsInStatus(ctx, batchNo, model.StatusInProgress, model.StatusCompleted)
	if err != nil {
		return false, apperr.Persistence(err)
	}
	return ok, nil
}

// ────────────────────── Status ──────────────────────

func (s *processingService) SetStatus(ctx context.Context, id uint, req *dto.UpdateProcessingStatusRequest) (*model.Processing, error) {
	next := model.ProcessingStatus(req.Status)
	if !next.Valid() {
		return nil, ErrInvalidProcessingStatus
	}

	p, err := s.repo.Processing.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrProcessingNotFound)
	}

	if !p.Status.CanTransitionTo(next) {
		if s.strict {
			return nil, ErrInvalidStatusTransition
		}
		s.logger.Warn("processing status transition outside the lifecycle",
			zap.Uint("processing_id", id),
			zap.String("from", string(p.Status)),
			zap.String("to", string(next)))
	}

	p.Status = next
	if next == model.StatusCompleted {
		p.EndDate = ptr(time.Now().UTC())
	}
	if req.Notes != nil {
		p.Notes = req.Notes
	}

	if err := s.repo.Processing.Update(ctx, p); err != nil {
		s.logger.Error("failed to update processing status", zap.Uint("processing_id", id), zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	return p, nil
}

func (s *processingService) OnBaggingOffCreated(ctx context.Context, batchNo string) error {
	return advanceOnBaggingOff(ctx, s.repo, batchNo)
}

// advanceOnBaggingOff moves an IN_PROGRESS processing to BAGGING_STARTED once
// at least one bagging-off exists for its batch. Runs on whatever repository
// it is given so the reconciler can call it inside its transaction.
func advanceOnBaggingOff(ctx context.Context, repo *repository.Repository, batchNo string) error {
	p, err := repo.Processing.GetByBatchNo(ctx, batchNo)
	if err != nil {
		return lookupErr(err, ErrProcessingNotFound)
	}
	if p.Status != model.StatusInProgress {
		return nil
	}

	n, err := repo.BaggingOff.CountByBatch(ctx, batchNo)
	if err != nil {
		return apperr.Persistence(err)
	}
	if n == 0 {
		return nil
	}

	if err := repo.Processing.UpdateStatus(ctx, p.ID, model.StatusBaggingStarted, nil); err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

// ────────────────────── Queries ──────────────────────

func (s *processingService) GetByBatch(ctx context.Context, batchNo string) (*model.Processing, error) {
	p, err := s.repo.Processing.GetByBatchNo(ctx, batchNo)
	if err != nil {
		return nil, lookupErr(err, ErrProcessingNotFound)
	}
	return p, nil
}

func (s *processingService) ListByStation(ctx context.Context, cwsID uint, q *dto.ProcessingListQuery) ([]model.Processing, error) {
	filter := repository.ProcessingFilter{CWSID: &cwsID}
	if q != nil {
		filter.Status = q.Status
		filter.ProcessingType = model.NormalizeProcessingType(q.ProcessingType)
	}

	list, err := s.repo.Processing.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list processing", zap.Uint("cws_id", cwsID), zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	return list, nil
}

func (s *processingService) Stats(ctx context.Context, cwsID uint) ([]dto.ProcessingStatsResponse, error) {
	stats, err := s.repo.Processing.Stats(ctx, cwsID)
	if err != nil {
		s.logger.Error("failed to compute processing stats", zap.Uint("cws_id", cwsID), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	result := make([]dto.ProcessingStatsResponse, 0, len(stats))
	for _, st := range stats {
		result = append(result, dto.ProcessingStatsResponse{
			ProcessingType: st.ProcessingType,
			Status:         st.Status,
			TotalKgs:       st.TotalKgs,
			Count:          st.Count,
		})
	}
	return result, nil
}
