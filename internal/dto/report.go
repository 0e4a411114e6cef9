package dto

import "github.com/benitha200/cherryapp-backend/internal/model"

// ── reports ──

// ReportQuery summary report filters; dates are inclusive YYYY-MM-DD
type ReportQuery struct {
	CWSID     *uint  `form:"cwsId"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// LotInfo identity of a lot (batches sharing a prefix)
type LotInfo struct {
	BatchNo        string   `json:"batchNo"`
	RelatedBatches []string `json:"relatedBatches"`
	Station        string   `json:"station"`
	ProcessingType string   `json:"processingType"`
	Status         string   `json:"status"`
	TotalInputKgs  float64  `json:"totalInputKgs"`
	TotalOutputKgs float64  `json:"totalOutputKgs"`
	Outturn        float64  `json:"outturn"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate,omitempty"`
	Grade          string   `json:"grade"`
	ProcessingID   uint     `json:"processingId"`
}

// LotMetrics yield figures of a lot
type LotMetrics struct {
	InputKgs       float64            `json:"inputKgs"`
	TotalOutputKgs float64            `json:"totalOutputKgs"`
	Outturn        float64            `json:"outturn"`
	OutputByType   map[string]float64 `json:"outputByType"`
	GradeBreakdown map[string]float64 `json:"gradeBreakdown"`
}

// LotReport one lot in the completed-processing report
type LotReport struct {
	BatchInfo         LotInfo            `json:"batchInfo"`
	Metrics           LotMetrics         `json:"metrics"`
	BaggingOffRecords []model.BaggingOff `json:"baggingOffRecords"`
}

// CompletedOverall totals across every completed lot
type CompletedOverall struct {
	TotalInputKgs            float64 `json:"totalInputKgs"`
	TotalOutputKgs           float64 `json:"totalOutputKgs"`
	OverallOutturn           float64 `json:"overallOutturn"`
	TotalNonNaturalInputKgs  float64 `json:"totalNonNaturalInputKgs"`
	TotalNonNaturalOutputKgs float64 `json:"totalNonNaturalOutputKgs"`
	OverallNonNaturalOutturn float64 `json:"overallNonNaturalOutturn"`
}

// CompletedReport yield report over every completed processing
type CompletedReport struct {
	TotalRecords   int              `json:"totalRecords"`
	OverallMetrics CompletedOverall `json:"overallMetrics"`
	Reports        []LotReport      `json:"reports"`
}

// ProcessingDetail processing row as seen by the summary report
type ProcessingDetail struct {
	ID               uint    `json:"id"`
	BatchNo          string  `json:"batchNo"`
	ProcessingType   string  `json:"processingType"`
	TreatedAsNatural bool    `json:"treatedAsNatural"`
	TotalKgs         float64 `json:"totalKgs"`
	Grade            string  `json:"grade"`
	Status           string  `json:"status"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate,omitempty"`
}

// StationSummary yield figures of one station
type StationSummary struct {
	StationID           uint               `json:"stationId"`
	StationName         string             `json:"stationName"`
	TotalInputKgs       float64            `json:"totalInputKgs"`
	TotalOutputKgs      float64            `json:"totalOutputKgs"`
	NaturalInputKgs     float64            `json:"naturalInputKgs"`
	NaturalOutputKgs    float64            `json:"naturalOutputKgs"`
	NonNaturalInputKgs  float64            `json:"nonNaturalInputKgs"`
	NonNaturalOutputKgs float64            `json:"nonNaturalOutputKgs"`
	Outturn             float64            `json:"outturn"`
	ProcessingTypes     map[string]float64 `json:"processingTypes"`
	GradeBreakdown      map[string]float64 `json:"gradeBreakdown"`
	ProcessingDetails   []ProcessingDetail `json:"processingDetails"`
	TotalProcessings    int                `json:"totalProcessings"`
	TotalBatches        int                `json:"totalBatches"`
}

// BaggingOffSummary one bagging-off inside a batch summary
type BaggingOffSummary struct {
	ID             uint               `json:"id"`
	Date           string             `json:"date"`
	ProcessingType string             `json:"processingType"`
	OutputKgs      map[string]float64 `json:"outputKgs"`
	TotalOutputKgs float64            `json:"totalOutputKgs"`
	Status         string             `json:"status"`
}

// BatchSummary yield figures of one batch
type BatchSummary struct {
	BatchNo           string              `json:"batchNo"`
	BatchPrefix       string              `json:"batchPrefix"`
	StationID         uint                `json:"stationId"`
	StationName       string              `json:"stationName"`
	ProcessingInfo    ProcessingDetail    `json:"processingInfo"`
	InputKgs          float64             `json:"inputKgs"`
	OutputKgs         float64             `json:"outputKgs"`
	Grades            map[string]float64  `json:"grades"`
	Outturn           float64             `json:"outturn"`
	BaggingOffSummary []BaggingOffSummary `json:"baggingOffSummary"`
}

// SummaryOverall totals across the summary report
type SummaryOverall struct {
	TotalInputKgs       float64 `json:"totalInputKgs"`
	TotalOutputKgs      float64 `json:"totalOutputKgs"`
	NaturalInputKgs     float64 `json:"naturalInputKgs"`
	NaturalOutputKgs    float64 `json:"naturalOutputKgs"`
	NonNaturalInputKgs  float64 `json:"nonNaturalInputKgs"`
	NonNaturalOutputKgs float64 `json:"nonNaturalOutputKgs"`
	OverallOutturn      float64 `json:"overallOutturn"`
	TotalStations       int     `json:"totalStations"`
	TotalBatches        int     `json:"totalBatches"`
	TotalProcessings    int     `json:"totalProcessings"`
	StartDate           string  `json:"startDate"`
	EndDate             string  `json:"endDate"`
}

// SummaryReport station and batch yield summary
type SummaryReport struct {
	Overall          SummaryOverall   `json:"overall"`
	StationSummaries []StationSummary `json:"stationSummaries"`
	BatchSummaries   []BatchSummary   `json:"batchSummaries"`
}

// ProcessingStatsResponse totals per (type, status)
type ProcessingStatsResponse struct {
	ProcessingType string  `json:"processingType"`
	Status         string  `json:"status"`
	TotalKgs       float64 `json:"totalKgs"`
	Count          int64   `json:"count"`
}
