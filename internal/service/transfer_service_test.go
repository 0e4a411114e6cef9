package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/model"
)

var transferClock = time.Date(2024, 4, 10, 8, 30, 0, 0, time.UTC)

func newWetTransferSvc(f *fixture) *wetTransferService {
	return &wetTransferService{repo: f.repo, logger: f.logger, now: fixedClock(transferClock)}
}

func sendWet(t *testing.T, f *fixture) (*model.Processing, *dto.WetTransferResponse) {
	t.Helper()
	src := f.addStation("KY", true)
	dst := f.addStation("MU", true)
	p := f.addProcessing("24KY1503A", model.ProcessingFullyWashed, 300, model.StatusInProgress, src.ID)

	wt, err := newWetTransferSvc(f).Create(context.Background(), &dto.CreateWetTransferRequest{
		ProcessingID:     p.ID,
		SourceCWSID:      src.ID,
		DestinationCWSID: dst.ID,
		TotalKgs:         300,
		OutputKgs:        120,
		Grade:            "A0",
		ProcessingType:   model.ProcessingFullyWashed,
	})
	if err != nil {
		t.Fatalf("wet transfer Create failed: %v", err)
	}
	return p, wt
}

// ────────────────────── wet transfers ──────────────────────

func TestWetTransferCreate_FlagsProcessing(t *testing.T) {
	f := newFixture()
	p, wt := sendWet(t, f)

	if wt.Status != model.WetTransferPending {
		t.Errorf("expected PENDING, got %s", wt.Status)
	}
	if wt.BatchNo != "24KY1503A" {
		t.Errorf("batch should default to the processing batch, got %q", wt.BatchNo)
	}
	if wt.MoistureContent != model.DefaultMoisture {
		t.Errorf("expected default moisture, got %v", wt.MoistureContent)
	}
	if !wt.Date.Equal(transferClock) {
		t.Errorf("missing date should default to now, got %v", wt.Date)
	}
	if got := f.processings.processings[p.ID].Status; got != model.StatusTransferred {
		t.Errorf("expected TRANSFERRED, got %s", got)
	}
}

func TestWetTransferCreate_Validation(t *testing.T) {
	f := newFixture()
	svc := newWetTransferSvc(f)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateWetTransferRequest{ProcessingID: 1}); !errors.Is(err, ErrWetTransferMissingFields) {
		t.Errorf("expected ErrWetTransferMissingFields, got %v", err)
	}

	req := &dto.CreateWetTransferRequest{ProcessingID: 9, SourceCWSID: 1, DestinationCWSID: 2, Grade: "A0", ProcessingType: "FULLY_WASHED"}
	if _, err := svc.Create(ctx, req); !errors.Is(err, ErrProcessingNotFound) {
		t.Errorf("expected ErrProcessingNotFound, got %v", err)
	}
}

func TestWetTransferReceive_OnlyPending(t *testing.T) {
	f := newFixture()
	_, wt := sendWet(t, f)
	svc := newWetTransferSvc(f)
	ctx := context.Background()

	got, err := svc.Receive(ctx, &dto.ReceiveWetTransferRequest{
		TransferID:       wt.ID,
		ReceivingCWSID:   wt.DestinationCWSID,
		Moisture:         ptr(11.5),
		DefectPercentage: ptr(2.0),
	})
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	if got.Status != model.WetTransferReceived || got.ReceivedAt == nil {
		t.Errorf("expected RECEIVED with a timestamp, got %s %v", got.Status, got.ReceivedAt)
	}
	if got.QualitySummary != "Moisture: 11.5, Defects: 2, Cup Score: N/A" {
		t.Errorf("unexpected quality summary %q", got.QualitySummary)
	}

	_, err = svc.Reject(ctx, &dto.RejectWetTransferRequest{TransferID: wt.ID})
	if !errors.Is(err, ErrWetTransferNotPending) {
		t.Fatalf("expected ErrWetTransferNotPending, got %v", err)
	}

	if _, err := svc.Receive(ctx, &dto.ReceiveWetTransferRequest{TransferID: 99, ReceivingCWSID: 1}); !errors.Is(err, ErrWetTransferNotFound) {
		t.Errorf("expected ErrWetTransferNotFound, got %v", err)
	}
}

func TestWetTransferReject_DefaultReason(t *testing.T) {
	f := newFixture()
	_, wt := sendWet(t, f)
	svc := newWetTransferSvc(f)

	got, err := svc.Reject(context.Background(), &dto.RejectWetTransferRequest{TransferID: wt.ID})
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if got.Status != model.WetTransferRejected {
		t.Errorf("expected REJECTED, got %s", got.Status)
	}
	if got.RejectionReason == nil || *got.RejectionReason != "Rejected by receiver" {
		t.Errorf("unexpected rejection reason %v", got.RejectionReason)
	}
}

func TestWetTransferUpdate_Status(t *testing.T) {
	f := newFixture()
	_, wt := sendWet(t, f)
	svc := newWetTransferSvc(f)
	ctx := context.Background()

	if _, err := svc.Update(ctx, wt.ID, &dto.UpdateWetTransferRequest{Status: ptr("LOST")}); !errors.Is(err, ErrInvalidWetTransferStatus) {
		t.Errorf("expected ErrInvalidWetTransferStatus, got %v", err)
	}

	got, err := svc.Update(ctx, wt.ID, &dto.UpdateWetTransferRequest{Status: ptr("COMPLETED"), OutputKgs: ptr(140.0)})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Status != "COMPLETED" || got.OutputKgs != 140 {
		t.Errorf("unexpected transfer after update %s/%v", got.Status, got.OutputKgs)
	}
}

func TestWetTransferDelete_ResetsProcessing(t *testing.T) {
	f := newFixture()
	p, wt := sendWet(t, f)
	svc := newWetTransferSvc(f)

	if err := svc.Delete(context.Background(), wt.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(f.wet.transfers) != 0 {
		t.Error("transfer should be removed")
	}
	if got := f.processings.processings[p.ID].Status; got != model.StatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", got)
	}
	if err := svc.Delete(context.Background(), wt.ID); !errors.Is(err, ErrWetTransferNotFound) {
		t.Errorf("expected ErrWetTransferNotFound, got %v", err)
	}
}

func TestWetTransferSummaryAndRecent(t *testing.T) {
	f := newFixture()
	_, wt := sendWet(t, f)
	svc := newWetTransferSvc(f)
	ctx := context.Background()

	if _, err := svc.Reject(ctx, &dto.RejectWetTransferRequest{TransferID: wt.ID, RejectionReason: "too wet"}); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	sum, err := svc.Summary(ctx, wt.SourceCWSID)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if sum.Sent.Total != 1 || sum.Sent.Rejected != 1 || sum.Sent.TotalKgs != 120 {
		t.Errorf("unexpected sent counts %+v", sum.Sent)
	}
	if sum.Received.Total != 0 {
		t.Errorf("source station received nothing, got %+v", sum.Received)
	}

	out, err := svc.Recent(ctx, wt.SourceCWSID, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(out) != 1 || out[0].Direction != DirectionOutbound {
		t.Errorf("expected one OUTBOUND transfer, got %+v", out)
	}
	in, _ := svc.Recent(ctx, wt.DestinationCWSID, 3)
	if len(in) != 1 || in[0].Direction != DirectionInbound {
		t.Errorf("expected one INBOUND transfer, got %+v", in)
	}

	found, err := svc.SearchByBatch(ctx, "ky15")
	if err != nil || len(found) != 1 {
		t.Errorf("batch search should be case-insensitive, got %d (%v)", len(found), err)
	}
	if none, _ := svc.SearchByBatch(ctx, "  "); len(none) != 0 {
		t.Error("blank search returns nothing")
	}
}

// ────────────────────── dry transfers ──────────────────────

func completedBaggingOff(t *testing.T, f *fixture, status string) *model.BaggingOff {
	t.Helper()
	b := &model.BaggingOff{BatchNo: "24KY1503A", ProcessingID: 1, ProcessingType: model.ProcessingFullyWashed, Status: status}
	b.SetBuckets(model.OutputBuckets{"A0": 100})
	if err := f.baggingOffs.Create(context.Background(), b); err != nil {
		t.Fatalf("seed bagging off: %v", err)
	}
	return b
}

func TestTransferCreate_RequiresCompletedBaggingOff(t *testing.T) {
	f := newFixture()
	svc := &transferService{repo: f.repo, logger: f.logger, now: fixedClock(transferClock)}
	ctx := context.Background()

	open := completedBaggingOff(t, f, "BAGGING_STARTED")
	if _, err := svc.Create(ctx, &dto.CreateTransferRequest{BatchNo: "24KY1503A", BaggingOffID: open.ID}); !errors.Is(err, ErrBaggingOffNotComplete) {
		t.Fatalf("expected ErrBaggingOffNotComplete, got %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateTransferRequest{BatchNo: "24KY1503A", BaggingOffID: 77}); !errors.Is(err, ErrBaggingOffNotComplete) {
		t.Fatalf("missing bagging off: expected ErrBaggingOffNotComplete, got %v", err)
	}

	done := completedBaggingOff(t, f, "COMPLETED")
	tr, err := svc.Create(ctx, &dto.CreateTransferRequest{BatchNo: " 24KY1503A ", BaggingOffID: done.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if tr.Status != "PENDING" || tr.BatchNo != "24KY1503A" || !tr.TransferDate.Equal(transferClock) {
		t.Errorf("unexpected transfer %+v", tr)
	}
}

func TestTransferListByBatch_Empty(t *testing.T) {
	f := newFixture()
	svc := NewTransferService(f.repo, f.logger)
	if _, err := svc.ListByBatch(context.Background(), "24KY1503A"); !errors.Is(err, ErrNoTransfersForBatch) {
		t.Fatalf("expected ErrNoTransfersForBatch, got %v", err)
	}
}

func TestTransferListByStation_InclusiveEndDay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for _, d := range []time.Time{
		time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 10, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 11, 0, 0, 0, 0, time.UTC),
	} {
		_ = f.transfers.Create(ctx, &model.Transfer{BatchNo: "24KY1503A", BaggingOffID: 1, Status: "PENDING", TransferDate: d})
	}
	svc := NewTransferService(f.repo, f.logger)

	got, err := svc.ListByStation(ctx, 1, &dto.TransferRangeQuery{StartDate: "2024-04-10", EndDate: "2024-04-10"})
	if err != nil {
		t.Fatalf("ListByStation failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected the 2024-04-10 transfer only, got %d", len(got))
	}

	// one bound alone does not filter
	all, _ := svc.ListByStation(ctx, 1, &dto.TransferRangeQuery{StartDate: "2024-04-10"})
	if len(all) != 3 {
		t.Errorf("expected 3 transfers without a full range, got %d", len(all))
	}
}

// ────────────────────── pricing ──────────────────────

func TestPricing_LatestWins(t *testing.T) {
	f := newFixture()
	st := f.addStation("KY", false)
	svc := NewPricingService(f.repo, f.logger)
	ctx := context.Background()

	if _, err := svc.StationPricing(ctx, st.ID); !errors.Is(err, ErrPricingNotSet) {
		t.Fatalf("expected ErrPricingNotSet, got %v", err)
	}

	for _, price := range []int64{500, 550} {
		if _, err := svc.SetStationPricing(ctx, &dto.StationPricingRequest{
			CWSID: st.ID, GradeAPrice: decimal.NewFromInt(price), TransportFee: decimal.NewFromInt(20),
		}, 3); err != nil {
			t.Fatalf("SetStationPricing failed: %v", err)
		}
	}
	got, err := svc.StationPricing(ctx, st.ID)
	if err != nil {
		t.Fatalf("StationPricing failed: %v", err)
	}
	if !got.GradeAPrice.Equal(decimal.NewFromInt(550)) {
		t.Errorf("expected latest price 550, got %s", got.GradeAPrice)
	}
	if got.CreatedBy == nil || *got.CreatedBy != 3 {
		t.Errorf("expected createdBy 3, got %v", got.CreatedBy)
	}
}

func TestPricing_Validation(t *testing.T) {
	f := newFixture()
	svc := NewPricingService(f.repo, f.logger)
	ctx := context.Background()

	_, err := svc.SetGlobalFees(ctx, &dto.GlobalFeesRequest{CommissionFee: decimal.NewFromInt(-1)}, 1)
	if !errors.Is(err, ErrNegativePricing) {
		t.Errorf("expected ErrNegativePricing, got %v", err)
	}
	_, err = svc.SetStationPricing(ctx, &dto.StationPricingRequest{CWSID: 42}, 1)
	if !errors.Is(err, ErrStationNotFound) {
		t.Errorf("expected ErrStationNotFound, got %v", err)
	}
	_, err = svc.SetSiteCollectionFees(ctx, &dto.SiteCollectionFeesRequest{SiteCollectionID: 42}, 1)
	if !errors.Is(err, ErrSiteCollectionNotFound) {
		t.Errorf("expected ErrSiteCollectionNotFound, got %v", err)
	}
	if _, err := svc.GlobalFees(ctx); !errors.Is(err, ErrPricingNotSet) {
		t.Errorf("expected ErrPricingNotSet, got %v", err)
	}
}
