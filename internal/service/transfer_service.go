package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/model"
	"github.com/benitha200/cherryapp-backend/internal/repository"
	apperr "github.com/benitha200/cherryapp-backend/pkg/errors"
)

// ── transfer errors ──

var (
	ErrTransferNotFound      = apperr.New(apperr.KindNotFound, 17001, "transfer not found")
	ErrBaggingOffNotComplete = apperr.New(apperr.KindNotFound, 17002, "bagging off record not found or not completed")
	ErrNoTransfersForBatch   = apperr.New(apperr.KindNotFound, 17003, "no transfers found for this batch")
)

// TransferService dispatch of completed bagging-offs
type TransferService interface {
	Create(ctx context.Context, req *dto.CreateTransferRequest) (*model.Transfer, error)
	Update(ctx context.Context, id uint, req *dto.UpdateTransferRequest) (*model.Transfer, error)
	List(ctx context.Context) ([]model.Transfer, error)
	ListByBatch(ctx context.Context, batchNo string) ([]model.Transfer, error)
	ListByStation(ctx context.Context, cwsID uint, q *dto.TransferRangeQuery) ([]model.Transfer, error)
	ListByBaggingOff(ctx context.Context, baggingOffID uint) ([]model.Transfer, error)
}

type transferService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewTransferService creates a TransferService
func NewTransferService(repo *repository.Repository, logger *zap.Logger) TransferService {
	return &transferService{repo: repo, logger: logger, now: time.Now}
}

// Create dispatches a bagging-off, which must already be COMPLETED.
func (s *transferService) Create(ctx context.Context, req *dto.CreateTransferRequest) (*model.Transfer, error) {
	b, err := s.repo.BaggingOff.GetByID(ctx, req.BaggingOffID)
	if err != nil {
		return nil, lookupErr(err, ErrBaggingOffNotComplete)
	}
	if b.Status != string(model.StatusCompleted) {
		return nil, ErrBaggingOffNotComplete
	}

	t := &model.Transfer{
		BatchNo:      strings.TrimSpace(req.BatchNo),
		BaggingOffID: b.ID,
		Status:       model.WetTransferPending,
		Notes:        req.Notes,
		TransferDate: s.now().UTC(),
	}
	if err := s.repo.Transfer.Create(ctx, t); err != nil {
		s.logger.Error("failed to create transfer", zap.Uint("bagging_off_id", b.ID), zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	s.logger.Info("transfer created", zap.Uint("id", t.ID), zap.String("batch_no", t.BatchNo))
	return s.get(ctx, t.ID)
}

func (s *transferService) Update(ctx context.Context, id uint, req *dto.UpdateTransferRequest) (*model.Transfer, error) {
	t, err := s.repo.Transfer.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrTransferNotFound)
	}

	if req.Notes != nil {
		t.Notes = req.Notes
	}
	if req.Status != nil {
		t.Status = *req.Status
	}

	if err := s.repo.Transfer.Update(ctx, t); err != nil {
		s.logger.Error("failed to update transfer", zap.Uint("id", id), zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	return t, nil
}

func (s *transferService) get(ctx context.Context, id uint) (*model.Transfer, error) {
	t, err := s.repo.Transfer.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrTransferNotFound)
	}
	return t, nil
}

func (s *transferService) List(ctx context.Context) ([]model.Transfer, error) {
	list, err := s.repo.Transfer.List(ctx)
	if err != nil {
		s.logger.Error("failed to list transfers", zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	return list, nil
}

// ListByBatch is a 404 when the batch was never dispatched.
func (s *transferService) ListByBatch(ctx context.Context, batchNo string) ([]model.Transfer, error) {
	list, err := s.repo.Transfer.ListByBatch(ctx, strings.TrimSpace(batchNo))
	if err != nil {
		s.logger.Error("failed to list transfers", zap.String("batch_no", batchNo), zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	if len(list) == 0 {
		return nil, ErrNoTransfersForBatch
	}
	return list, nil
}

// ListByStation filters on transfer date only when both bounds are given;
// the end day is included.
func (s *transferService) ListByStation(ctx context.Context, cwsID uint, q *dto.TransferRangeQuery) ([]model.Transfer, error) {
	var from, to *time.Time
	if q != nil && q.StartDate != "" && q.EndDate != "" {
		start, end, err := parseRange(&dto.DateRangeQuery{StartDate: q.StartDate, EndDate: q.EndDate})
		if err != nil {
			return nil, err
		}
		end = end.Add(-time.Nanosecond)
		from, to = &start, &end
	}

	list, err := s.repo.Transfer.ListByStation(ctx, cwsID, from, to)
	if err != nil {
		s.logger.Error("failed to list transfers", zap.Uint("cws_id", cwsID), zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	return list, nil
}

func (s *transferService) ListByBaggingOff(ctx context.Context, baggingOffID uint) ([]model.Transfer, error) {
	list, err := s.repo.Transfer.ListByBaggingOff(ctx, baggingOffID)
	if err != nil {
		s.logger.Error("failed to list transfers", zap.Uint("bagging_off_id", baggingOffID), zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	return list, nil
}
