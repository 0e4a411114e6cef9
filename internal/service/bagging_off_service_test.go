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

var reconcileClock = time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)

func newBaggingOffSvc(f *fixture) *baggingOffService {
	return &baggingOffService{repo: f.repo, logger: f.logger, now: fixedClock(reconcileClock)}
}

func reconcileRequest(batchNo, ptype, status string, out map[string]float64) *dto.ReconcileBaggingOffRequest {
	return &dto.ReconcileBaggingOffRequest{
		Date:           "2024-04-02",
		OutputKgs:      out,
		ProcessingType: ptype,
		BatchNo:        batchNo,
		Status:         status,
	}
}

func TestReconcile_MissingFields(t *testing.T) {
	f := newFixture()
	svc := newBaggingOffSvc(f)

	req := reconcileRequest("24KY1503A", model.ProcessingFullyWashed, "BAGGING_STARTED", nil)
	if _, err := svc.Reconcile(context.Background(), req, 1); !errors.Is(err, ErrMissingRequiredFields) {
		t.Fatalf("expected ErrMissingRequiredFields, got %v", err)
	}

	req = reconcileRequest("  ", model.ProcessingFullyWashed, "BAGGING_STARTED", map[string]float64{"A0": 1})
	if _, err := svc.Reconcile(context.Background(), req, 1); !errors.Is(err, ErrMissingRequiredFields) {
		t.Errorf("blank batch should be missing, got %v", err)
	}
}

func TestReconcile_UnsupportedType(t *testing.T) {
	f := newFixture()
	svc := newBaggingOffSvc(f)

	req := reconcileRequest("24KY1503A", "ANAEROBIC", "BAGGING_STARTED", map[string]float64{"A0": 1})
	if _, err := svc.Reconcile(context.Background(), req, 1); !errors.Is(err, ErrUnsupportedProcessingType) {
		t.Fatalf("expected ErrUnsupportedProcessingType, got %v", err)
	}
}

func TestReconcile_UnknownBatch(t *testing.T) {
	f := newFixture()
	svc := newBaggingOffSvc(f)

	req := reconcileRequest("24KY1503A", model.ProcessingFullyWashed, "BAGGING_STARTED", map[string]float64{"A0": 1})
	if _, err := svc.Reconcile(context.Background(), req, 1); !errors.Is(err, ErrProcessingNotFound) {
		t.Fatalf("expected ErrProcessingNotFound, got %v", err)
	}
}

// purchase → processing → partial bagging-off, end to end
func TestReconcile_FromPurchaseToBaggingStarted(t *testing.T) {
	f := newFixture()
	st := f.addStation("KY", false)
	ctx := context.Background()

	purchases := NewPurchaseService(f.repo, f.logger)
	p, err := purchases.Create(ctx, &dto.CreatePurchaseRequest{
		DeliveryType: model.DeliveryDirect,
		TotalKgs:     500,
		TotalPrice:   decimal.NewFromInt(250000),
		CherryPrice:  decimal.NewFromInt(500),
		Grade:        "A",
		CWSID:        st.ID,
		PurchaseDate: "2024-03-15",
	}, 1)
	if err != nil {
		t.Fatalf("purchase Create failed: %v", err)
	}
	if p.BatchNo != "24KY1503A" {
		t.Fatalf("expected 24KY1503A, got %s", p.BatchNo)
	}

	processing := NewProcessingService(f.cfg, f.repo, f.logger)
	proc, err := processing.Start(ctx, &dto.StartProcessingRequest{
		BatchNo:        p.BatchNo,
		ProcessingType: model.ProcessingFullyWashed,
		TotalKgs:       500,
		Grade:          "A",
		CWSID:          st.ID,
	})
	if err != nil {
		t.Fatalf("processing Start failed: %v", err)
	}

	// batch is locked for further purchases now
	if _, err := purchases.Create(ctx, &dto.CreatePurchaseRequest{
		DeliveryType: model.DeliveryDirect, TotalKgs: 10, Grade: "A", CWSID: st.ID, PurchaseDate: "2024-03-15",
	}, 1); !errors.Is(err, ErrProcessingAlreadyStarted) {
		t.Fatalf("expected ErrProcessingAlreadyStarted, got %v", err)
	}

	svc := newBaggingOffSvc(f)
	rows, err := svc.Reconcile(ctx, reconcileRequest(p.BatchNo, model.ProcessingFullyWashed, "BAGGING_STARTED",
		map[string]float64{"A0": 100, "A1": 200}), 1)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0].TotalOutputKgs != 300 {
		t.Errorf("expected total 300, got %v", rows[0].TotalOutputKgs)
	}

	got := f.processings.processings[proc.ID]
	if got.Status != model.StatusBaggingStarted {
		t.Errorf("expected BAGGING_STARTED, got %s", got.Status)
	}
	if got.EndDate != nil {
		t.Error("processing must not be completed by a partial bagging off")
	}
}

func TestReconcile_SecondaryBatchKeepsOnlyB(t *testing.T) {
	f := newFixture()
	st := f.addStation("KY", true)
	f.addProcessing("24KY1503A-2", model.ProcessingFullyWashed, 80, model.StatusInProgress, st.ID)
	svc := newBaggingOffSvc(f)

	rows, err := svc.Reconcile(context.Background(), reconcileRequest("24KY1503A-2", model.ProcessingFullyWashed,
		"BAGGING_STARTED", map[string]float64{"A0": 50, "B1": 20, "B2": 10}), 1)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	b := rows[0].Buckets()
	if _, ok := b["A0"]; ok {
		t.Error("secondary batch must not hold A buckets")
	}
	if b["B1"] != 20 || b["B2"] != 10 || rows[0].TotalOutputKgs != 30 {
		t.Errorf("unexpected buckets %v total %v", b, rows[0].TotalOutputKgs)
	}
}

func TestReconcile_ProgressiveVersusRegular(t *testing.T) {
	ctx := context.Background()
	first := map[string]float64{"N1": 10, "N2": 5}
	second := map[string]float64{"N1": 3}

	run := func(progressive bool) *model.BaggingOff {
		f := newFixture()
		st := f.addStation("KY", true)
		f.addProcessing("24KY1503A", model.ProcessingNatural, 100, model.StatusInProgress, st.ID)
		svc := newBaggingOffSvc(f)

		req := reconcileRequest("24KY1503A", model.ProcessingNatural, "BAGGING_STARTED", first)
		if _, err := svc.Reconcile(ctx, req, 1); err != nil {
			t.Fatalf("first Reconcile failed: %v", err)
		}
		req = reconcileRequest("24KY1503A", model.ProcessingNatural, "BAGGING_STARTED", second)
		req.Progressive = progressive
		rows, err := svc.Reconcile(ctx, req, 1)
		if err != nil {
			t.Fatalf("second Reconcile failed: %v", err)
		}
		if len(f.baggingOffs.rows) != 1 {
			t.Fatalf("expected the row to be updated in place, got %d rows", len(f.baggingOffs.rows))
		}
		return &rows[0]
	}

	prog := run(true)
	if prog.Buckets()["N1"] != 13 || prog.Buckets()["N2"] != 5 || prog.TotalOutputKgs != 18 {
		t.Errorf("progressive: expected N1=13 N2=5 total 18, got %v total %v", prog.Buckets(), prog.TotalOutputKgs)
	}

	reg := run(false)
	if reg.Buckets()["N1"] != 3 || reg.TotalOutputKgs != 3 {
		t.Errorf("regular: expected N1=3 total 3, got %v total %v", reg.Buckets(), reg.TotalOutputKgs)
	}
	if _, ok := reg.Buckets()["N2"]; ok {
		t.Error("regular mode replaces the buckets")
	}
}

func TestReconcile_HoneyWritesCompanionRow(t *testing.T) {
	f := newFixture()
	st := f.addStation("KY", true)
	f.addProcessing("24KY1503A", model.ProcessingHoney, 100, model.StatusInProgress, st.ID)
	svc := newBaggingOffSvc(f)

	rows, err := svc.Reconcile(context.Background(), reconcileRequest("24KY1503A", model.ProcessingHoney,
		"BAGGING_STARTED", map[string]float64{"H1": 40, "A0": 12}), 1)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected honey and fully washed rows, got %d", len(rows))
	}
	if rows[0].ProcessingType != model.ProcessingHoney || rows[1].ProcessingType != model.ProcessingFullyWashed {
		t.Errorf("unexpected row types %s, %s", rows[0].ProcessingType, rows[1].ProcessingType)
	}
}

func TestReconcile_CompletedCascades(t *testing.T) {
	f := newFixture()
	src := f.addStation("KY", true)
	dst := f.addStation("MU", true)
	proc := f.addProcessing("24KY1503A", model.ProcessingFullyWashed, 400, model.StatusTransferred, src.ID)
	ctx := context.Background()

	wetA0 := &model.WetTransfer{ProcessingID: proc.ID, BatchNo: "24KY1503A", SourceCWSID: src.ID, DestinationCWSID: dst.ID,
		Grade: "A0", Status: model.WetTransferPending, ProcessingType: model.ProcessingFullyWashed}
	wetA2 := &model.WetTransfer{ProcessingID: proc.ID, BatchNo: "24KY1503A", SourceCWSID: src.ID, DestinationCWSID: dst.ID,
		Grade: "A2", Status: model.WetTransferPending, ProcessingType: model.ProcessingFullyWashed}
	_ = f.wet.Create(ctx, wetA0)
	_ = f.wet.Create(ctx, wetA2)

	svc := newBaggingOffSvc(f)
	_, err := svc.Reconcile(ctx, reconcileRequest("24KY1503A", model.ProcessingFullyWashed, "COMPLETED",
		map[string]float64{"A0": 150, "A1": 120}), 1)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	got := f.processings.processings[proc.ID]
	if got.Status != model.StatusCompleted {
		t.Errorf("expected COMPLETED, got %s", got.Status)
	}
	if got.EndDate == nil || !got.EndDate.Equal(reconcileClock) {
		t.Errorf("expected end date %v, got %v", reconcileClock, got.EndDate)
	}

	a0 := f.wet.transfers[wetA0.ID]
	if a0.Status != "COMPLETED" || a0.OutputKgs != 150 {
		t.Errorf("A0 transfer: expected COMPLETED/150, got %s/%v", a0.Status, a0.OutputKgs)
	}
	a2 := f.wet.transfers[wetA2.ID]
	if a2.Status != "COMPLETED" || a2.OutputKgs != 0 {
		t.Errorf("A2 transfer: expected COMPLETED/0, got %s/%v", a2.Status, a2.OutputKgs)
	}
}

func TestReconcile_ExistingProcessingFromAnotherBatch(t *testing.T) {
	f := newFixture()
	src := f.addStation("KY", true)
	dst := f.addStation("MU", true)
	proc := f.addProcessing("24KY1503A", model.ProcessingFullyWashed, 400, model.StatusTransferred, src.ID)
	other := f.addProcessing("24KY1603A", model.ProcessingFullyWashed, 300, model.StatusInProgress, src.ID)
	ctx := context.Background()

	wet := &model.WetTransfer{ProcessingID: proc.ID, BatchNo: "24KY1503A", SourceCWSID: src.ID, DestinationCWSID: dst.ID,
		Grade: "A0", Status: model.WetTransferPending, ProcessingType: model.ProcessingFullyWashed}
	_ = f.wet.Create(ctx, wet)

	svc := newBaggingOffSvc(f)
	req := reconcileRequest("24KY1503A", model.ProcessingFullyWashed, "COMPLETED", map[string]float64{"A0": 150})
	req.ExistingProcessing = &dto.ProcessingRef{ID: other.ID}
	if _, err := svc.Reconcile(ctx, req, 1); !errors.Is(err, ErrProcessingBatchMismatch) {
		t.Fatalf("expected ErrProcessingBatchMismatch, got %v", err)
	}

	if got := f.processings.processings[other.ID]; got.Status != model.StatusInProgress || got.EndDate != nil {
		t.Errorf("unrelated processing changed: %s/%v", got.Status, got.EndDate)
	}
	if got := f.processings.processings[proc.ID]; got.Status != model.StatusTransferred {
		t.Errorf("expected TRANSFERRED, got %s", got.Status)
	}
	if f.wet.transfers[wet.ID].Status != model.WetTransferPending {
		t.Errorf("expected the wet transfer to stay PENDING, got %s", f.wet.transfers[wet.ID].Status)
	}
	if len(f.baggingOffs.rows) != 0 {
		t.Errorf("expected no rows, got %d", len(f.baggingOffs.rows))
	}

	req.ExistingProcessing = &dto.ProcessingRef{ID: 999}
	if _, err := svc.Reconcile(ctx, req, 1); !errors.Is(err, ErrProcessingNotFound) {
		t.Errorf("expected ErrProcessingNotFound, got %v", err)
	}
}

func TestReconcile_ExistingProcessingOfSameBatch(t *testing.T) {
	f := newFixture()
	st := f.addStation("KY", true)
	proc := f.addProcessing("24KY1503A", model.ProcessingFullyWashed, 100, model.StatusInProgress, st.ID)
	svc := newBaggingOffSvc(f)

	req := reconcileRequest("24KY1503A", model.ProcessingFullyWashed, "COMPLETED", map[string]float64{"A0": 10})
	req.ExistingProcessing = &dto.ProcessingRef{ID: proc.ID}
	rows, err := svc.Reconcile(context.Background(), req, 1)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if rows[0].ProcessingID != proc.ID {
		t.Errorf("expected processing id %d, got %d", proc.ID, rows[0].ProcessingID)
	}
	if f.processings.processings[proc.ID].Status != model.StatusCompleted {
		t.Error("expected the processing to be COMPLETED")
	}
}

func TestReconcile_NegativeOutputRejected(t *testing.T) {
	f := newFixture()
	st := f.addStation("KY", true)
	f.addProcessing("24KY1503A", model.ProcessingNatural, 100, model.StatusInProgress, st.ID)
	svc := newBaggingOffSvc(f)

	req := reconcileRequest("24KY1503A", model.ProcessingNatural, "BAGGING_STARTED", map[string]float64{"N1": 10, "N2": -4})
	if _, err := svc.Reconcile(context.Background(), req, 1); !errors.Is(err, ErrNegativeOutput) {
		t.Fatalf("expected ErrNegativeOutput, got %v", err)
	}
	if len(f.baggingOffs.rows) != 0 {
		t.Errorf("expected no rows, got %d", len(f.baggingOffs.rows))
	}
}

func TestBaggingOffUpdate_NegativeOutputRejected(t *testing.T) {
	f := newFixture()
	st := f.addStation("KY", true)
	proc := f.addProcessing("24KY1503A", model.ProcessingFullyWashed, 100, model.StatusBaggingStarted, st.ID)
	ctx := context.Background()
	row := &model.BaggingOff{BatchNo: "24KY1503A", ProcessingID: proc.ID, ProcessingType: model.ProcessingFullyWashed,
		Status: "BAGGING_STARTED"}
	row.SetBuckets(model.OutputBuckets{"A0": 10})
	_ = f.baggingOffs.Create(ctx, row)

	svc := newBaggingOffSvc(f)
	_, err := svc.Update(ctx, row.ID, &dto.UpdateBaggingOffRequest{OutputKgs: map[string]float64{"A0": 20, "A1": -5}})
	if !errors.Is(err, ErrNegativeOutput) {
		t.Fatalf("expected ErrNegativeOutput, got %v", err)
	}
	if got := f.baggingOffs.rows[row.ID]; got.TotalOutputKgs != 10 {
		t.Errorf("expected the stored row untouched at 10, got %v", got.TotalOutputKgs)
	}
}

func TestBaggingOffUpdate_CompletedClosesProcessing(t *testing.T) {
	f := newFixture()
	st := f.addStation("KY", true)
	proc := f.addProcessing("24KY1503A", model.ProcessingFullyWashed, 100, model.StatusBaggingStarted, st.ID)
	ctx := context.Background()
	row := &model.BaggingOff{BatchNo: "24KY1503A", ProcessingID: proc.ID, ProcessingType: model.ProcessingFullyWashed,
		Status: "BAGGING_STARTED"}
	row.SetBuckets(model.OutputBuckets{"A0": 10})
	_ = f.baggingOffs.Create(ctx, row)

	svc := newBaggingOffSvc(f)
	got, err := svc.Update(ctx, row.ID, &dto.UpdateBaggingOffRequest{
		OutputKgs: map[string]float64{"A0": 20, "A1": 5, "N1": 99},
		Status:    ptr("COMPLETED"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.TotalOutputKgs != 25 {
		t.Errorf("buckets outside the schema are dropped, expected 25, got %v", got.TotalOutputKgs)
	}
	if f.processings.processings[proc.ID].Status != model.StatusCompleted {
		t.Error("expected the processing to be COMPLETED")
	}

	if _, err := svc.Update(ctx, row.ID, &dto.UpdateBaggingOffRequest{Status: ptr("FINISHED")}); !errors.Is(err, ErrInvalidProcessingStatus) {
		t.Errorf("expected ErrInvalidProcessingStatus, got %v", err)
	}
}

func TestBaggingOffDelete_NotFound(t *testing.T) {
	f := newFixture()
	svc := newBaggingOffSvc(f)
	if err := svc.Delete(context.Background(), 9); !errors.Is(err, ErrBaggingOffNotFound) {
		t.Fatalf("expected ErrBaggingOffNotFound, got %v", err)
	}
}
