package dto

import "github.com/benitha200/cherryapp-backend/internal/model"

// ── wet transfers ──

// CreateWetTransferRequest send wet parchment to another station
type CreateWetTransferRequest struct {
	ProcessingID     uint     `json:"processingId"`
	BatchNo          string   `json:"batchNo"`
	Date             string   `json:"date"`
	SourceCWSID      uint     `json:"sourceCwsId"`
	DestinationCWSID uint     `json:"destinationCwsId"`
	TotalKgs         float64  `json:"totalKgs"`
	OutputKgs        float64  `json:"outputKgs"`
	Grade            string   `json:"grade"`
	ProcessingType   string   `json:"processingType"`
	MoistureContent  *float64 `json:"moistureContent"`
	Notes            *string  `json:"notes"`
}

// ReceiveWetTransferRequest receiving station accepts a transfer
type ReceiveWetTransferRequest struct {
	TransferID       uint     `json:"transferId"`
	ReceivingCWSID   uint     `json:"receivingCwsId"`
	ReceivedDate     string   `json:"receivedDate"`
	Moisture         *float64 `json:"moisture"`
	DefectPercentage *float64 `json:"defectPercentage"`
	CleanCupScore    *float64 `json:"cleanCupScore"`
	Notes            *string  `json:"notes"`
}

// RejectWetTransferRequest receiving station refuses a transfer
type RejectWetTransferRequest struct {
	TransferID      uint   `json:"transferId"`
	ReceivingCWSID  uint   `json:"receivingCwsId"`
	RejectionReason string `json:"rejectionReason"`
}

// UpdateWetTransferRequest partial update
type UpdateWetTransferRequest struct {
	Date            *string  `json:"date"`
	OutputKgs       *float64 `json:"outputKgs"       binding:"omitempty,gte=0"`
	MoistureContent *float64 `json:"moistureContent" binding:"omitempty,gte=0,lte=100"`
	Status          *string  `json:"status"`
	Notes           *string  `json:"notes"`
}

// WetTransferResponse wet transfer with the derived quality line
type WetTransferResponse struct {
	model.WetTransfer
	QualitySummary string `json:"qualitySummary,omitempty"`
	Direction      string `json:"direction,omitempty"`
}

// WetTransferCounts transfers of one direction by status
type WetTransferCounts struct {
	Total    int     `json:"total"`
	Pending  int     `json:"pending"`
	Received int     `json:"received"`
	Rejected int     `json:"rejected"`
	TotalKgs float64 `json:"totalKgs"`
}

// WetTransferSummary per-station transfer overview
type WetTransferSummary struct {
	CWSID    uint              `json:"cwsId"`
	Sent     WetTransferCounts `json:"sent"`
	Received WetTransferCounts `json:"received"`
}

// ── dry transfers ──

// CreateTransferRequest dispatch a completed bagging-off
type CreateTransferRequest struct {
	BatchNo      string  `json:"batchNo"      binding:"required"`
	BaggingOffID uint    `json:"baggingOffId" binding:"required"`
	Notes        *string `json:"notes"`
}

// UpdateTransferRequest notes/status edit
type UpdateTransferRequest struct {
	Notes  *string `json:"notes"`
	Status *string `json:"status" binding:"omitempty,max=30"`
}

// TransferRangeQuery optional transfer date window
type TransferRangeQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}
