package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/benitha200/cherryapp-backend/internal/batch"
	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/model"
	"github.com/benitha200/cherryapp-backend/internal/repository"
	apperr "github.com/benitha200/cherryapp-backend/pkg/errors"
)

// ── wet transfer errors ──

var (
	ErrWetTransferNotFound      = apperr.New(apperr.KindNotFound, 16001, "wet transfer not found")
	ErrWetTransferNotPending    = apperr.New(apperr.KindBusinessRule, 16002, "wet transfer is no longer pending")
	ErrWetTransferMissingFields = apperr.New(apperr.KindValidation, 16003, "missing required fields")
	ErrInvalidWetTransferStatus = apperr.New(apperr.KindValidation, 16004, "unknown wet transfer status")
)

const (
	defaultRecentTransfers = 5
	defaultRejectionReason = "Rejected by receiver"

	DirectionOutbound = "OUTBOUND"
	DirectionInbound  = "INBOUND"
)

// WetTransferService wet parchment moves between stations
type WetTransferService interface {
	Create(ctx context.Context, req *dto.CreateWetTransferRequest) (*dto.WetTransferResponse, error)
	Receive(ctx context.Context, req *dto.ReceiveWetTransferRequest) (*dto.WetTransferResponse, error)
	Reject(ctx context.Context, req *dto.RejectWetTransferRequest) (*dto.WetTransferResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.WetTransferResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateWetTransferRequest) (*dto.WetTransferResponse, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]dto.WetTransferResponse, error)
	ListBySource(ctx context.Context, cwsID uint) ([]dto.WetTransferResponse, error)
	ListByDestination(ctx context.Context, cwsID uint) ([]dto.WetTransferResponse, error)
	SearchByBatch(ctx context.Context, fragment string) ([]dto.WetTransferResponse, error)
	Summary(ctx context.Context, cwsID uint) (*dto.WetTransferSummary, error)
	Recent(ctx context.Context, cwsID uint, limit int) ([]dto.WetTransferResponse, error)
}

type wetTransferService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewWetTransferService creates a WetTransferService
func NewWetTransferService(repo *repository.Repository, logger *zap.Logger) WetTransferService {
	return &wetTransferService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

// Create records a PENDING transfer and flags its processing TRANSFERRED.
func (s *wetTransferService) Create(ctx context.Context, req *dto.CreateWetTransferRequest) (*dto.WetTransferResponse, error) {
	if req.ProcessingID == 0 || req.SourceCWSID == 0 || req.DestinationCWSID == 0 ||
		req.Grade == "" || req.ProcessingType == "" {
		return nil, ErrWetTransferMissingFields
	}

	date := s.now().UTC()
	if req.Date != "" {
		d, err := batch.ParseDate(req.Date)
		if err != nil {
			return nil, apperr.Validation("invalid transfer date")
		}
		date = d
	}

	processing, err := s.repo.Processing.GetByID(ctx, req.ProcessingID)
	if err != nil {
		return nil, lookupErr(err, ErrProcessingNotFound)
	}

	batchNo := strings.TrimSpace(req.BatchNo)
	if batchNo == "" {
		batchNo = processing.BatchNo
	}

	wt := &model.WetTransfer{
		ProcessingID:     req.ProcessingID,
		BatchNo:          batchNo,
		Date:             date,
		SourceCWSID:      req.SourceCWSID,
		DestinationCWSID: req.DestinationCWSID,
		TotalKgs:         req.TotalKgs,
		OutputKgs:        req.OutputKgs,
		Grade:            req.Grade,
		Status:           model.WetTransferPending,
		ProcessingType:   req.ProcessingType,
		MoistureContent:  model.DefaultMoisture,
		Notes:            req.Notes,
	}
	if req.MoistureContent != nil {
		wt.MoistureContent = *req.MoistureContent
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.WetTransfer.Create(ctx, wt); err != nil {
			return apperr.Persistence(err)
		}
		if err := tx.Processing.UpdateStatus(ctx, req.ProcessingID, model.StatusTransferred, nil); err != nil {
			return apperr.Persistence(err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create wet transfer", zap.String("batch_no", batchNo), zap.Error(err))
		return nil, passThrough(err)
	}

	s.logger.Info("wet transfer created",
		zap.Uint("id", wt.ID),
		zap.String("batch_no", batchNo),
		zap.Uint("source_cws_id", wt.SourceCWSID),
		zap.Uint("destination_cws_id", wt.DestinationCWSID))
	return s.GetByID(ctx, wt.ID)
}

// ────────────────────── Receive / Reject ──────────────────────

func (s *wetTransferService) Receive(ctx context.Context, req *dto.ReceiveWetTransferRequest) (*dto.WetTransferResponse, error) {
	if req.TransferID == 0 || req.ReceivingCWSID == 0 {
		return nil, ErrWetTransferMissingFields
	}

	receivedAt := s.now().UTC()
	if req.ReceivedDate != "" {
		d, err := batch.ParseDate(req.ReceivedDate)
		if err != nil {
			return nil, apperr.Validation("invalid received date")
		}
		receivedAt = d
	}

	wt, err := s.pending(ctx, req.TransferID)
	if err != nil {
		return nil, err
	}

	wt.Status = model.WetTransferReceived
	wt.ReceivingCWSID = &req.ReceivingCWSID
	wt.ReceivedAt = &receivedAt
	wt.ReceivedMoisture = req.Moisture
	wt.DefectPercentage = req.DefectPercentage
	wt.CleanCupScore = req.CleanCupScore
	if req.Notes != nil {
		wt.Notes = req.Notes
	}

	return s.save(ctx, wt)
}

func (s *wetTransferService) Reject(ctx context.Context, req *dto.RejectWetTransferRequest) (*dto.WetTransferResponse, error) {
	if req.TransferID == 0 {
		return nil, ErrWetTransferMissingFields
	}

	wt, err := s.pending(ctx, req.TransferID)
	if err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(req.RejectionReason)
	if reason == "" {
		reason = defaultRejectionReason
	}
	wt.Status = model.WetTransferRejected
	wt.RejectionReason = &reason
	if req.ReceivingCWSID != 0 {
		wt.ReceivingCWSID = &req.ReceivingCWSID
	}

	return s.save(ctx, wt)
}

func (s *wetTransferService) pending(ctx context.Context, id uint) (*model.WetTransfer, error) {
	wt, err := s.repo.WetTransfer.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrWetTransferNotFound)
	}
	if wt.Status != model.WetTransferPending {
		return nil, ErrWetTransferNotPending
	}
	return wt, nil
}

func (s *wetTransferService) save(ctx context.Context, wt *model.WetTransfer) (*dto.WetTransferResponse, error) {
	if err := s.repo.WetTransfer.Update(ctx, wt); err != nil {
		s.logger.Error("failed to update wet transfer", zap.Uint("id", wt.ID), zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	return toWetTransferResponse(wt, ""), nil
}

// ────────────────────── Update ──────────────────────

func (s *wetTransferService) Update(ctx context.Context, id uint, req *dto.UpdateWetTransferRequest) (*dto.WetTransferResponse, error) {
	wt, err := s.repo.WetTransfer.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrWetTransferNotFound)
	}

	if req.Date != nil {
		d, err := batch.ParseDate(*req.Date)
		if err != nil {
			return nil, apperr.Validation("invalid transfer date")
		}
		wt.Date = d
	}
	if req.OutputKgs != nil {
		wt.OutputKgs = *req.OutputKgs
	}
	if req.MoistureContent != nil {
		wt.MoistureContent = *req.MoistureContent
	}
	if req.Status != nil {
		if !model.ValidWetTransferStatus(*req.Status) {
			return nil, ErrInvalidWetTransferStatus
		}
		wt.Status = *req.Status
	}
	if req.Notes != nil {
		wt.Notes = req.Notes
	}

	return s.save(ctx, wt)
}

// ────────────────────── Delete ──────────────────────

// Delete removes the transfer and hands the processing back to IN_PROGRESS.
func (s *wetTransferService) Delete(ctx context.Context, id uint) error {
	wt, err := s.repo.WetTransfer.GetByID(ctx, id)
	if err != nil {
		return lookupErr(err, ErrWetTransferNotFound)
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.WetTransfer.Delete(ctx, id); err != nil {
			return apperr.Persistence(err)
		}
		if err := tx.Processing.UpdateStatus(ctx, wt.ProcessingID, model.StatusInProgress, nil); err != nil {
			return apperr.Persistence(err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to delete wet transfer", zap.Uint("id", id), zap.Error(err))
		return passThrough(err)
	}
	return nil
}

// ────────────────────── Reads ──────────────────────

func (s *wetTransferService) GetByID(ctx context.Context, id uint) (*dto.WetTransferResponse, error) {
	wt, err := s.repo.WetTransfer.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrWetTransferNotFound)
	}
	return toWetTransferResponse(wt, ""), nil
}

func (s *wetTransferService) List(ctx context.Context) ([]dto.WetTransferResponse, error) {
	return s.list(ctx, "all", func() ([]model.WetTransfer, error) {
		return s.repo.WetTransfer.List(ctx)
	})
}

func (s *wetTransferService) ListBySource(ctx context.Context, cwsID uint) ([]dto.WetTransferResponse, error) {
	return s.list(ctx, "source", func() ([]model.WetTransfer, error) {
		return s.repo.WetTransfer.ListBySource(ctx, cwsID)
	})
}

func (s *wetTransferService) ListByDestination(ctx context.Context, cwsID uint) ([]dto.WetTransferResponse, error) {
	return s.list(ctx, "destination", func() ([]model.WetTransfer, error) {
		return s.repo.WetTransfer.ListByDestination(ctx, cwsID)
	})
}

func (s *wetTransferService) SearchByBatch(ctx context.Context, fragment string) ([]dto.WetTransferResponse, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return []dto.WetTransferResponse{}, nil
	}
	return s.list(ctx, "batch", func() ([]model.WetTransfer, error) {
		return s.repo.WetTransfer.SearchByBatch(ctx, fragment)
	})
}

func (s *wetTransferService) list(ctx context.Context, scope string, load func() ([]model.WetTransfer, error)) ([]dto.WetTransferResponse, error) {
	list, err := load()
	if err != nil {
		s.logger.Error("failed to list wet transfers", zap.String("scope", scope), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	result := make([]dto.WetTransferResponse, 0, len(list))
	for i := range list {
		result = append(result, *toWetTransferResponse(&list[i], ""))
	}
	return result, nil
}

// Summary counts what the station sent and received by status. TotalKgs
// sums the reported output kilograms.
func (s *wetTransferService) Summary(ctx context.Context, cwsID uint) (*dto.WetTransferSummary, error) {
	sent, err := s.repo.WetTransfer.ListBySource(ctx, cwsID)
	if err != nil {
		s.logger.Error("failed to load sent transfers", zap.Uint("cws_id", cwsID), zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	received, err := s.repo.WetTransfer.ListByDestination(ctx, cwsID)
	if err != nil {
		s.logger.Error("failed to load received transfers", zap.Uint("cws_id", cwsID), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	return &dto.WetTransferSummary{
		CWSID:    cwsID,
		Sent:     countTransfers(sent),
		Received: countTransfers(received),
	}, nil
}

func countTransfers(list []model.WetTransfer) dto.WetTransferCounts {
	c := dto.WetTransferCounts{Total: len(list)}
	for _, wt := range list {
		switch wt.Status {
		case model.WetTransferPending:
			c.Pending++
		case model.WetTransferReceived:
			c.Received++
		case model.WetTransferRejected:
			c.Rejected++
		}
		c.TotalKgs += wt.OutputKgs
	}
	return c
}

// Recent newest transfers touching the station, tagged with their direction.
func (s *wetTransferService) Recent(ctx context.Context, cwsID uint, limit int) ([]dto.WetTransferResponse, error) {
	if limit <= 0 {
		limit = defaultRecentTransfers
	}

	list, err := s.repo.WetTransfer.ListByStation(ctx, cwsID, limit)
	if err != nil {
		s.logger.Error("failed to list recent transfers", zap.Uint("cws_id", cwsID), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	result := make([]dto.WetTransferResponse, 0, len(list))
	for i := range list {
		direction := DirectionInbound
		if list[i].SourceCWSID == cwsID {
			direction = DirectionOutbound
		}
		result = append(result, *toWetTransferResponse(&list[i], direction))
	}
	return result, nil
}

func toWetTransferResponse(wt *model.WetTransfer, direction string) *dto.WetTransferResponse {
	return &dto.WetTransferResponse{
		WetTransfer:    *wt,
		QualitySummary: wt.QualitySummary(),
		Direction:      direction,
	}
}
