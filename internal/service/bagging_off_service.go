package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/benitha200/cherryapp-backend/internal/batch"
	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/model"
	"github.com/benitha200/cherryapp-backend/internal/repository"
	apperr "github.com/benitha200/cherryapp-backend/pkg/errors"
)

// ── bagging-off errors ──

var (
	ErrBaggingOffNotFound        = apperr.New(apperr.KindNotFound, 15001, "bagging off record not found")
	ErrMissingRequiredFields     = apperr.New(apperr.KindValidation, 15002, "missing required fields")
	ErrUnsupportedProcessingType = apperr.New(apperr.KindValidation, 15003, "unsupported processing type")
	ErrProcessingBatchMismatch   = apperr.New(apperr.KindValidation, 15004, "existing processing does not belong to this batch")
	ErrNegativeOutput            = apperr.New(apperr.KindValidation, 15005, "output kilograms must not be negative")
)

// BaggingOffService bagging-off reconciliation and records
type BaggingOffService interface {
	Reconcile(ctx context.Context, req *dto.ReconcileBaggingOffRequest, callerID uint) ([]model.BaggingOff, error)
	GetByID(ctx context.Context, id uint) (*model.BaggingOff, error)
	Update(ctx context.Context, id uint, req *dto.UpdateBaggingOffRequest) (*model.BaggingOff, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]model.BaggingOff, error)
	ListByBatch(ctx context.Context, batchNo string) ([]model.BaggingOff, error)
	ListCompletedByStation(ctx context.Context, cwsID uint) ([]model.BaggingOff, error)
}

type baggingOffService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewBaggingOffService creates a BaggingOffService
func NewBaggingOffService(repo *repository.Repository, logger *zap.Logger) BaggingOffService {
	return &baggingOffService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Reconcile ──────────────────────

// Reconcile turns a graded output report into bagging-off rows.
//
// Every write happens in one transaction: the bucket rows, the processing
// COMPLETED transition, the rewrite of wet transfers sharing the batch and
// the BAGGING_STARTED hook.
func (s *baggingOffService) Reconcile(ctx context.Context, req *dto.ReconcileBaggingOffRequest, callerID uint) ([]model.BaggingOff, error) {
	batchNo := strings.TrimSpace(req.BatchNo)
	if req.Date == "" || len(req.OutputKgs) == 0 || batchNo == "" || req.ProcessingType == "" || req.Status == "" {
		return nil, ErrMissingRequiredFields
	}

	date, err := batch.ParseDate(req.Date)
	if err != nil {
		return nil, apperr.Validation("invalid bagging off date")
	}
	status := model.ProcessingStatus(req.Status)
	if !status.Valid() {
		return nil, ErrInvalidProcessingStatus
	}

	if err := checkOutputKgs(req.OutputKgs); err != nil {
		return nil, err
	}
	outputs, err := batch.Split(req.ProcessingType, batchNo, req.OutputKgs)
	if err != nil {
		return nil, ErrUnsupportedProcessingType
	}

	processing, err := s.repo.Processing.GetByBatchNo(ctx, batchNo)
	if err != nil {
		return nil, lookupErr(err, ErrProcessingNotFound)
	}
	// the client may echo the processing it loaded; it has to be this batch's
	if req.ExistingProcessing != nil && req.ExistingProcessing.ID != 0 && req.ExistingProcessing.ID != processing.ID {
		existing, err := s.repo.Processing.GetByID(ctx, req.ExistingProcessing.ID)
		if err != nil {
			return nil, lookupErr(err, ErrProcessingNotFound)
		}
		if existing.BatchNo != batchNo {
			return nil, ErrProcessingBatchMismatch
		}
	}
	processingID := processing.ID

	var rows []model.BaggingOff
	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if status == model.StatusCompleted {
			now := s.now().UTC()
			if err := tx.Processing.UpdateStatus(ctx, processingID, model.StatusCompleted, &now); err != nil {
				return apperr.Persistence(err)
			}
		}

		for _, out := range outputs {
			row, err := s.writeRow(ctx, tx, writeRowInput{
				batchNo:      batchNo,
				processingID: processingID,
				date:         date,
				output:       out,
				status:       req.Status,
				notes:        req.Notes,
				progressive:  req.Progressive,
				callerID:     callerID,
			})
			if err != nil {
				return err
			}
			rows = append(rows, *row)
		}

		if err := cascadeWetTransfers(ctx, tx, batchNo, req.Status, req.OutputKgs); err != nil {
			return err
		}

		return advanceOnBaggingOff(ctx, tx, batchNo)
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindPersistence {
			s.logger.Error("bagging off reconciliation failed", zap.String("batch_no", batchNo), zap.Error(err))
		}
		return nil, passThrough(err)
	}

	s.logger.Info("bagging off reconciled",
		zap.String("batch_no", batchNo),
		zap.Int("rows", len(rows)),
		zap.Bool("progressive", req.Progressive),
		zap.String("status", req.Status))
	return rows, nil
}

type writeRowInput struct {
	batchNo      string
	processingID uint
	date         time.Time
	output       batch.Output
	status       string
	notes        *string
	progressive  bool
	callerID     uint
}

// writeRow upserts the row keyed by (batch, type, processing). Regular mode
// replaces the stored buckets, progressive mode adds onto them.
func (s *baggingOffService) writeRow(ctx context.Context, tx *repository.Repository, in writeRowInput) (*model.BaggingOff, error) {
	existing, err := tx.BaggingOff.FindRow(ctx, in.batchNo, in.output.ProcessingType, in.processingID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Persistence(err)
	}

	if existing == nil {
		row := &model.BaggingOff{
			BatchNo:        in.batchNo,
			ProcessingID:   in.processingID,
			Date:           in.date,
			ProcessingType: in.output.ProcessingType,
			Status:         in.status,
			Notes:          in.notes,
		}
		row.CreatedBy = &in.callerID
		row.SetBuckets(in.output.Buckets)
		if err := tx.BaggingOff.Create(ctx, row); err != nil {
			return nil, apperr.Persistence(err)
		}
		return row, nil
	}

	buckets := in.output.Buckets
	if in.progressive {
		buckets = batch.Merge(existing.Buckets(), in.output.Buckets)
	}
	existing.SetBuckets(buckets)
	existing.Date = in.date
	existing.Status = in.status
	if in.notes != nil {
		existing.Notes = in.notes
	}

	if err := tx.BaggingOff.Update(ctx, existing); err != nil {
		return nil, apperr.Persistence(err)
	}
	return existing, nil
}

// cascadeWetTransfers rewrites every wet transfer of the batch with the
// caller's status and the reported kilograms of its grade.
func cascadeWetTransfers(ctx context.Context, tx *repository.Repository, batchNo, status string, reported map[string]float64) error {
	transfers, err := tx.WetTransfer.ListByBatchNo(ctx, batchNo)
	if err != nil {
		return apperr.Persistence(err)
	}

	for i := range transfers {
		wt := &transfers[i]
		wt.Status = status
		wt.OutputKgs = reported[wt.Grade]
		if err := tx.WetTransfer.Update(ctx, wt); err != nil {
			return apperr.Persistence(err)
		}
	}
	return nil
}

// ────────────────────── Reads ──────────────────────

func (s *baggingOffService) GetByID(ctx context.Context, id uint) (*model.BaggingOff, error) {
	b, err := s.repo.BaggingOff.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrBaggingOffNotFound)
	}
	return b, nil
}

func (s *baggingOffService) List(ctx context.Context) ([]model.BaggingOff, error) {
	list, err := s.repo.BaggingOff.List(ctx)
	if err != nil {
		s.logger.Error("failed to list bagging offs", zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	return list, nil
}

func (s *baggingOffService) ListByBatch(ctx context.Context, batchNo string) ([]model.BaggingOff, error) {
	list, err := s.repo.BaggingOff.ListByBatch(ctx, strings.TrimSpace(batchNo))
	if err != nil {
		s.logger.Error("failed to list bagging offs", zap.String("batch_no", batchNo), zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	return list, nil
}

func (s *baggingOffService) ListCompletedByStation(ctx context.Context, cwsID uint) ([]model.BaggingOff, error) {
	list, err := s.repo.BaggingOff.ListCompletedByStation(ctx, cwsID)
	if err != nil {
		s.logger.Error("failed to list bagging offs", zap.Uint("cws_id", cwsID), zap.Error(err))
		return nil, apperr.Persistence(err)
	}
	return list, nil
}

// ────────────────────── Update ──────────────────────

func (s *baggingOffService) Update(ctx context.Context, id uint, req *dto.UpdateBaggingOffRequest) (*model.BaggingOff, error) {
	row, err := s.repo.BaggingOff.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, ErrBaggingOffNotFound)
	}

	if req.Date != nil {
		date, err := batch.ParseDate(*req.Date)
		if err != nil {
			return nil, apperr.Validation("invalid bagging off date")
		}
		row.Date = date
	}
	if req.OutputKgs != nil {
		if err := checkOutputKgs(req.OutputKgs); err != nil {
			return nil, err
		}
		buckets, err := bucketsFor(row, req.OutputKgs)
		if err != nil {
			return nil, err
		}
		row.SetBuckets(buckets)
	}
	if req.Status != nil {
		if !model.ProcessingStatus(*req.Status).Valid() {
			return nil, ErrInvalidProcessingStatus
		}
		row.Status = *req.Status
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	err = s.repo.RunInTx(ctx, func(tx *repository.Repository) error {
		if err := tx.BaggingOff.Update(ctx, row); err != nil {
			return apperr.Persistence(err)
		}
		if row.Status == string(model.StatusCompleted) {
			now := s.now().UTC()
			if err := tx.Processing.UpdateStatus(ctx, row.ProcessingID, model.StatusCompleted, &now); err != nil {
				return apperr.Persistence(err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update bagging off", zap.Uint("id", id), zap.Error(err))
		return nil, passThrough(err)
	}

	return s.GetByID(ctx, id)
}

func checkOutputKgs(reported map[string]float64) error {
	for _, kg := range reported {
		if kg < 0 {
			return ErrNegativeOutput
		}
	}
	return nil
}

// bucketsFor keeps the reported buckets that belong to the row's schema
func bucketsFor(row *model.BaggingOff, reported map[string]float64) (model.OutputBuckets, error) {
	outputs, err := batch.Split(row.ProcessingType, row.BatchNo, reported)
	if err != nil {
		return nil, ErrUnsupportedProcessingType
	}
	for _, out := range outputs {
		if out.ProcessingType == row.ProcessingType {
			return out.Buckets, nil
		}
	}
	return model.OutputBuckets{}, nil
}

// ────────────────────── Delete ──────────────────────

func (s *baggingOffService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.BaggingOff.GetByID(ctx, id); err != nil {
		return lookupErr(err, ErrBaggingOffNotFound)
	}

	if err := s.repo.BaggingOff.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete bagging off", zap.Uint("id", id), zap.Error(err))
		return apperr.Persistence(err)
	}
	return nil
}
