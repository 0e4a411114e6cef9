package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/benitha200/cherryapp-backend/internal/batch"
	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/model"
	"github.com/benitha200/cherryapp-backend/internal/repository"
	apperr "github.com/benitha200/cherryapp-backend/pkg/errors"
)

const (
	unknownStation  = "Unknown"
	openRangeStart  = "All time"
	openRangeEnd    = "Present"
	reportTimestamp = time.RFC3339
)

// ReportService yield reports over completed processing
type ReportService interface {
	// Completed groups completed processings into lots by batch prefix
	Completed(ctx context.Context) (*dto.CompletedReport, error)
	// Summary station and batch yields, optionally filtered by station and end date
	Summary(ctx context.Context, q *dto.ReportQuery) (*dto.SummaryReport, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService creates a ReportService
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// ────────────────────── Completed ──────────────────────

func (s *reportService) Completed(ctx context.Context) (*dto.CompletedReport, error) {
	processings, err := s.repo.Processing.ListWithBaggingOffs(ctx, repository.ProcessingFilter{
		Status: string(model.StatusCompleted),
	})
	if err != nil {
		s.logger.Error("failed to load completed processing", zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	lots, order := groupByLot(processings)

	report := &dto.CompletedReport{Reports: make([]dto.LotReport, 0, len(order))}
	var overall, nonNatural yield
	for _, prefix := range order {
		members := lots[prefix]
		natural := anyNatural(members)

		lot := dto.LotReport{
			Metrics: dto.LotMetrics{
				OutputByType:   map[string]float64{},
				GradeBreakdown: map[string]float64{},
			},
			BaggingOffRecords: []model.BaggingOff{},
		}
		related := make([]string, 0, len(members))
		for _, p := range members {
			related = append(related, p.BatchNo)
			lot.Metrics.InputKgs += p.TotalKgs

			for _, b := range completedBaggingOffs(p) {
				lot.Metrics.OutputByType[b.ProcessingType] += b.TotalOutputKgs
				lot.Metrics.TotalOutputKgs += b.TotalOutputKgs
				for grade, kg := range b.Buckets() {
					lot.Metrics.GradeBreakdown[grade] += kg
				}
				lot.BaggingOffRecords = append(lot.BaggingOffRecords, b)
			}
		}
		lot.Metrics.Outturn = outturn(lot.Metrics.TotalOutputKgs, lot.Metrics.InputKgs)

		overall.add(lot.Metrics.InputKgs, lot.Metrics.TotalOutputKgs)
		if !natural {
			nonNatural.add(lot.Metrics.InputKgs, lot.Metrics.TotalOutputKgs)
		}

		first := members[0]
		ptype := first.ProcessingType
		if natural {
			ptype = model.ProcessingNatural
		}
		lot.BatchInfo = dto.LotInfo{
			BatchNo:        prefix,
			RelatedBatches: related,
			Station:        stationName(first),
			ProcessingType: ptype,
			Status:         string(first.Status),
			TotalInputKgs:  lot.Metrics.InputKgs,
			TotalOutputKgs: lot.Metrics.TotalOutputKgs,
			Outturn:        lot.Metrics.Outturn,
			StartDate:      first.StartDate.Format(reportTimestamp),
			EndDate:        formatOptional(first.EndDate),
			Grade:          first.Grade,
			ProcessingID:   first.ID,
		}
		report.Reports = append(report.Reports, lot)
	}

	report.TotalRecords = len(report.Reports)
	report.OverallMetrics = dto.CompletedOverall{
		TotalInputKgs:            overall.input,
		TotalOutputKgs:           overall.output,
		OverallOutturn:           overall.outturn(),
		TotalNonNaturalInputKgs:  nonNatural.input,
		TotalNonNaturalOutputKgs: nonNatural.output,
		OverallNonNaturalOutturn: nonNatural.outturn(),
	}
	return report, nil
}

// ────────────────────── Summary ──────────────────────

func (s *reportService) Summary(ctx context.Context, q *dto.ReportQuery) (*dto.SummaryReport, error) {
	filter := repository.ProcessingFilter{Status: string(model.StatusCompleted)}
	overallInfo := dto.SummaryOverall{StartDate: openRangeStart, EndDate: openRangeEnd}
	if q != nil {
		filter.CWSID = q.CWSID
		if q.StartDate != "" {
			d, err := batch.ParseDate(q.StartDate)
			if err != nil {
				return nil, ErrInvalidDateRange
			}
			start, _ := batch.DayBounds(d)
			filter.EndFrom = &start
			overallInfo.StartDate = q.StartDate
		}
		if q.EndDate != "" {
			d, err := batch.ParseDate(q.EndDate)
			if err != nil {
				return nil, ErrInvalidDateRange
			}
			_, next := batch.DayBounds(d)
			end := next.Add(-time.Nanosecond)
			filter.EndTo = &end
			overallInfo.EndDate = q.EndDate
		}
	}

	processings, err := s.repo.Processing.ListWithBaggingOffs(ctx, filter)
	if err != nil {
		s.logger.Error("failed to load processing for summary", zap.Error(err))
		return nil, apperr.Persistence(err)
	}

	lots, _ := groupByLot(processings)
	naturalLots := make(map[string]bool, len(lots))
	for prefix, members := range lots {
		naturalLots[prefix] = anyNatural(members)
	}

	var (
		stations     = map[uint]*dto.StationSummary{}
		stationOrder []uint
		batches      = make([]dto.BatchSummary, 0, len(processings))
		total        yield
		natural      yield
		nonNatural   yield
	)

	for _, p := range processings {
		prefix := batch.Prefix(p.BatchNo)
		asNatural := p.ProcessingType == model.ProcessingNatural || naturalLots[prefix]

		st, ok := stations[p.CWSID]
		if !ok {
			st = &dto.StationSummary{
				StationID:         p.CWSID,
				StationName:       stationName(&p),
				ProcessingTypes:   map[string]float64{},
				GradeBreakdown:    map[string]float64{},
				ProcessingDetails: []dto.ProcessingDetail{},
			}
			stations[p.CWSID] = st
			stationOrder = append(stationOrder, p.CWSID)
		}

		detail := dto.ProcessingDetail{
			ID:               p.ID,
			BatchNo:          p.BatchNo,
			ProcessingType:   p.ProcessingType,
			TreatedAsNatural: asNatural,
			TotalKgs:         p.TotalKgs,
			Grade:            p.Grade,
			Status:           string(p.Status),
			StartDate:        p.StartDate.Format(reportTimestamp),
			EndDate:          formatOptional(p.EndDate),
		}
		st.ProcessingDetails = append(st.ProcessingDetails, detail)

		bs := dto.BatchSummary{
			BatchNo:           p.BatchNo,
			BatchPrefix:       prefix,
			StationID:         p.CWSID,
			StationName:       st.StationName,
			ProcessingInfo:    detail,
			InputKgs:          p.TotalKgs,
			Grades:            map[string]float64{},
			BaggingOffSummary: []dto.BaggingOffSummary{},
		}
		for _, b := range completedBaggingOffs(&p) {
			buckets := b.Buckets()
			bs.OutputKgs += b.TotalOutputKgs
			bs.BaggingOffSummary = append(bs.BaggingOffSummary, dto.BaggingOffSummary{
				ID:             b.ID,
				Date:           b.Date.Format(reportTimestamp),
				ProcessingType: b.ProcessingType,
				OutputKgs:      buckets,
				TotalOutputKgs: b.TotalOutputKgs,
				Status:         b.Status,
			})
			st.ProcessingTypes[b.ProcessingType] += b.TotalOutputKgs
			for grade, kg := range buckets {
				bs.Grades[grade] += kg
				st.GradeBreakdown[grade] += kg
			}
		}
		bs.Outturn = outturn(bs.OutputKgs, bs.InputKgs)
		batches = append(batches, bs)

		st.TotalInputKgs += p.TotalKgs
		st.TotalOutputKgs += bs.OutputKgs
		total.add(p.TotalKgs, bs.OutputKgs)
		if asNatural {
			st.NaturalInputKgs += p.TotalKgs
			st.NaturalOutputKgs += bs.OutputKgs
			natural.add(p.TotalKgs, bs.OutputKgs)
		} else {
			st.NonNaturalInputKgs += p.TotalKgs
			st.NonNaturalOutputKgs += bs.OutputKgs
			nonNatural.add(p.TotalKgs, bs.OutputKgs)
		}
	}

	summaries := make([]dto.StationSummary, 0, len(stationOrder))
	for _, id := range stationOrder {
		st := stations[id]
		// station outturn leaves Natural processing out
		st.Outturn = outturn(st.NonNaturalOutputKgs, st.NonNaturalInputKgs)
		st.TotalProcessings = len(st.ProcessingDetails)
		seen := map[string]struct{}{}
		for _, d := range st.ProcessingDetails {
			seen[d.BatchNo] = struct{}{}
		}
		st.TotalBatches = len(seen)
		summaries = append(summaries, *st)
	}

	overallInfo.TotalInputKgs = total.input
	overallInfo.TotalOutputKgs = total.output
	overallInfo.NaturalInputKgs = natural.input
	overallInfo.NaturalOutputKgs = natural.output
	overallInfo.NonNaturalInputKgs = nonNatural.input
	overallInfo.NonNaturalOutputKgs = nonNatural.output
	overallInfo.OverallOutturn = nonNatural.outturn()
	overallInfo.TotalStations = len(summaries)
	overallInfo.TotalBatches = len(batches)
	overallInfo.TotalProcessings = len(processings)

	return &dto.SummaryReport{
		Overall:          overallInfo,
		StationSummaries: summaries,
		BatchSummaries:   batches,
	}, nil
}

// ────────────────────── helpers ──────────────────────

type yield struct {
	input  float64
	output float64
}

func (y *yield) add(input, output float64) {
	y.input += input
	y.output += output
}

func (y yield) outturn() float64 { return outturn(y.output, y.input) }

// outturn output as a percentage of input, two decimals, 0 without input
func outturn(output, input float64) float64 {
	if input <= 0 {
		return 0
	}
	pct := decimal.NewFromFloat(output).
		Div(decimal.NewFromFloat(input)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	v, _ := pct.Float64()
	return v
}

// groupByLot buckets processings by batch prefix, keeping first-seen order
func groupByLot(processings []model.Processing) (map[string][]*model.Processing, []string) {
	lots := make(map[string][]*model.Processing)
	var order []string
	for i := range processings {
		p := &processings[i]
		prefix := batch.Prefix(p.BatchNo)
		if _, ok := lots[prefix]; !ok {
			order = append(order, prefix)
		}
		lots[prefix] = append(lots[prefix], p)
	}
	return lots, order
}

func anyNatural(members []*model.Processing) bool {
	for _, p := range members {
		if p.ProcessingType == model.ProcessingNatural {
			return true
		}
	}
	return false
}

func completedBaggingOffs(p *model.Processing) []model.BaggingOff {
	var kept []model.BaggingOff
	for _, b := range p.BaggingOffs {
		if b.Status == string(model.StatusCompleted) {
			kept = append(kept, b)
		}
	}
	return kept
}

func stationName(p *model.Processing) string {
	if p.CWS == nil || p.CWS.Name == "" {
		return unknownStation
	}
	return p.CWS.Name
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(reportTimestamp)
}
