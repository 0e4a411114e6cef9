package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/model"
)

func TestExportSummary_Workbook(t *testing.T) {
	f := newFixture()
	seedYields(t, f)
	svc := NewExportService(NewReportService(f.repo, f.logger), NewPurchaseService(f.repo, f.logger), f.logger)

	buf, name, err := svc.ExportSummary(context.Background(), nil)
	if err != nil {
		t.Fatalf("ExportSummary failed: %v", err)
	}
	if name != "yield_summary_start_present.xlsx" {
		t.Errorf("unexpected file name %q", name)
	}

	wb, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("workbook unreadable: %v", err)
	}
	defer wb.Close()

	if idx, _ := wb.GetSheetIndex("Sheet1"); idx != -1 {
		t.Error("default sheet should be removed")
	}
	rows, err := wb.GetRows("Batches")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 6 {
		t.Errorf("expected header plus 5 batches, got %d rows", len(rows))
	}
	stations, _ := wb.GetRows("Stations")
	if len(stations) != 3 || stations[2][0] != "Total" {
		t.Errorf("expected header, one station and a total row, got %v", stations)
	}
}

func TestExportPurchases_Workbook(t *testing.T) {
	f := newFixture()
	st := f.addStation("KY", false)
	ctx := context.Background()
	purchases := NewPurchaseService(f.repo, f.logger)
	for _, d := range []string{"2024-03-15", "2024-03-16"} {
		if _, err := purchases.Create(ctx, &dto.CreatePurchaseRequest{
			DeliveryType: model.DeliveryDirect,
			TotalKgs:     100,
			TotalPrice:   decimal.NewFromInt(50000),
			CherryPrice:  decimal.NewFromInt(500),
			Grade:        "A",
			CWSID:        st.ID,
			PurchaseDate: d,
		}, 1); err != nil {
			t.Fatalf("purchase Create failed: %v", err)
		}
	}
	svc := NewExportService(NewReportService(f.repo, f.logger), purchases, f.logger)

	buf, name, err := svc.ExportPurchases(ctx, &dto.DateRangeQuery{StartDate: "2024-03-15", EndDate: "2024-03-16"})
	if err != nil {
		t.Fatalf("ExportPurchases failed: %v", err)
	}
	if name != "purchases_2024-03-15_2024-03-16.xlsx" {
		t.Errorf("unexpected file name %q", name)
	}

	wb, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("workbook unreadable: %v", err)
	}
	defer wb.Close()

	rows, _ := wb.GetRows("Purchases")
	if len(rows) != 4 {
		t.Fatalf("expected header, 2 purchases and a total, got %d rows", len(rows))
	}
	if rows[3][5] != "200" {
		t.Errorf("expected 200 kg total, got %q", rows[3][5])
	}
}
