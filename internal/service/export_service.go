package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	apperr "github.com/benitha200/cherryapp-backend/pkg/errors"
)

// ── export errors ──

var (
	ErrExportGenerateFail = apperr.New(apperr.KindPersistence, 19001, "failed to generate spreadsheet")
)

// ExportService spreadsheet downloads of reports
//
// Workbooks are returned as a bytes.Buffer plus a suggested file name; the
// handler sets the download headers.
type ExportService interface {
	// ExportSummary yield summary: one sheet per station, one per batch
	ExportSummary(ctx context.Context, q *dto.ReportQuery) (*bytes.Buffer, string, error)
	// ExportPurchases purchases of an inclusive date range
	ExportPurchases(ctx context.Context, q *dto.DateRangeQuery) (*bytes.Buffer, string, error)
}

type exportService struct {
	reports   ReportService
	purchases PurchaseService
	logger    *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(reports ReportService, purchases PurchaseService, logger *zap.Logger) ExportService {
	return &exportService{reports: reports, purchases: purchases, logger: logger}
}

// ────────────────────── Summary ──────────────────────

func (s *exportService) ExportSummary(ctx context.Context, q *dto.ReportQuery) (*bytes.Buffer, string, error) {
	report, err := s.reports.Summary(ctx, q)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	w := newSheetWriter(f, "Stations")
	w.header("Station", "Input kg", "Output kg", "Natural input kg", "Natural output kg",
		"Non-natural input kg", "Non-natural output kg", "Outturn %", "Processings", "Batches")
	for _, st := range report.StationSummaries {
		w.row(st.StationName, st.TotalInputKgs, st.TotalOutputKgs, st.NaturalInputKgs, st.NaturalOutputKgs,
			st.NonNaturalInputKgs, st.NonNaturalOutputKgs, st.Outturn, st.TotalProcessings, st.TotalBatches)
	}
	o := report.Overall
	w.total("Total", o.TotalInputKgs, o.TotalOutputKgs, o.NaturalInputKgs, o.NaturalOutputKgs,
		o.NonNaturalInputKgs, o.NonNaturalOutputKgs, o.OverallOutturn, o.TotalProcessings, o.TotalBatches)

	w = newSheetWriter(f, "Batches")
	w.header("Batch", "Lot", "Station", "Processing type", "Natural", "Grade", "Input kg", "Output kg", "Outturn %", "End date")
	for _, b := range report.BatchSummaries {
		w.row(b.BatchNo, b.BatchPrefix, b.StationName, b.ProcessingInfo.ProcessingType,
			b.ProcessingInfo.TreatedAsNatural, b.ProcessingInfo.Grade,
			b.InputKgs, b.OutputKgs, b.Outturn, b.ProcessingInfo.EndDate)
	}

	f.DeleteSheet("Sheet1")
	buf, err := s.write(f)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("yield_summary_%s_%s.xlsx", fileDate(o.StartDate), fileDate(o.EndDate)), nil
}

// ────────────────────── Purchases ──────────────────────

func (s *exportService) ExportPurchases(ctx context.Context, q *dto.DateRangeQuery) (*bytes.Buffer, string, error) {
	rng, err := s.purchases.DateRange(ctx, q)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	w := newSheetWriter(f, "Purchases")
	w.header("Date", "Batch", "Station", "Delivery type", "Grade", "Kg", "Cherry price", "Transport fee", "Commission fee", "Total price")
	for _, p := range rng.Purchases {
		station := ""
		if p.CWS != nil {
			station = p.CWS.Name
		}
		w.row(dayKey(p.PurchaseDate), p.BatchNo, station, p.DeliveryType, p.Grade, p.TotalKgs,
			p.CherryPrice.InexactFloat64(), p.TransportFee.InexactFloat64(),
			p.CommissionFee.InexactFloat64(), p.TotalPrice.InexactFloat64())
	}
	t := rng.Totals
	w.total("Total", "", "", "", "", t.TotalKgs, "",
		t.TotalTransportFee.InexactFloat64(), t.TotalCommissionFee.InexactFloat64(), t.TotalPrice.InexactFloat64())

	f.DeleteSheet("Sheet1")
	buf, err := s.write(f)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("purchases_%s_%s.xlsx", rng.StartDate, rng.EndDate), nil
}

func (s *exportService) write(f *excelize.File) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write workbook", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

// ── sheet helpers ──

type sheetWriter struct {
	f     *excelize.File
	sheet string
	next  int
	bold  int
}

func newSheetWriter(f *excelize.File, sheet string) *sheetWriter {
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	bold, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	return &sheetWriter{f: f, sheet: sheet, next: 1, bold: bold}
}

func (w *sheetWriter) header(titles ...any) {
	first, _ := excelize.ColumnNumberToName(1)
	last, _ := excelize.ColumnNumberToName(len(titles))
	w.f.SetColWidth(w.sheet, first, last, 18)
	w.styled(titles)
}

func (w *sheetWriter) row(values ...any) {
	cell, _ := excelize.CoordinatesToCellName(1, w.next)
	w.f.SetSheetRow(w.sheet, cell, &values)
	w.next++
}

func (w *sheetWriter) total(values ...any) { w.styled(values) }

func (w *sheetWriter) styled(values []any) {
	start, _ := excelize.CoordinatesToCellName(1, w.next)
	end, _ := excelize.CoordinatesToCellName(len(values), w.next)
	w.f.SetSheetRow(w.sheet, start, &values)
	w.f.SetCellStyle(w.sheet, start, end, w.bold)
	w.next++
}

func fileDate(s string) string {
	switch s {
	case openRangeStart:
		return "start"
	case openRangeEnd:
		return "present"
	}
	return s
}
