package model

import (
	"fmt"
	"strings"
	"time"
)

// ── wet transfer states ──

const (
	WetTransferPending  = "PENDING"
	WetTransferReceived = "RECEIVED"
	WetTransferRejected = "REJECTED"
)

// ValidWetTransferStatus reports whether s may be stored on a wet transfer.
// Bagging-off reconciliation mirrors processing statuses onto transfers, so
// those are accepted too.
func ValidWetTransferStatus(s string) bool {
	switch s {
	case WetTransferPending, WetTransferReceived, WetTransferRejected:
		return true
	}
	return ProcessingStatus(s).Valid()
}

// DefaultMoisture moisture content assumed when the sender omits it
const DefaultMoisture = 12.0

// WetTransfer wet parchment moved from one station to another
type WetTransfer struct {
	ID               uint       `gorm:"primaryKey"                      json:"id"`
	ProcessingID     uint       `gorm:"not null;index"                  json:"processingId"`
	BatchNo          string     `gorm:"type:varchar(50);not null;index" json:"batchNo"`
	Date             time.Time  `gorm:"not null"                        json:"date"`
	SourceCWSID      uint       `gorm:"column:source_cws_id;not null;index"      json:"sourceCwsId"`
	DestinationCWSID uint       `gorm:"column:destination_cws_id;not null;index" json:"destinationCwsId"`
	TotalKgs         float64    `gorm:"not null"                        json:"totalKgs"`
	OutputKgs        float64    `gorm:"not null;default:0"              json:"outputKgs"`
	Grade            string     `gorm:"type:varchar(10);not null"       json:"grade"`
	Status           string     `gorm:"type:varchar(30);not null"       json:"status"`
	ProcessingType   string     `gorm:"type:varchar(30);not null"       json:"processingType"`
	MoistureContent  float64    `gorm:"not null;default:12"             json:"moistureContent"`
	Notes            *string    `gorm:"type:text"                       json:"notes,omitempty"`
	ReceivedMoisture *float64   `                                       json:"receivedMoisture,omitempty"`
	DefectPercentage *float64   `                                       json:"defectPercentage,omitempty"`
	CleanCupScore    *float64   `                                       json:"cleanCupScore,omitempty"`
	ReceivingCWSID   *uint      `gorm:"column:receiving_cws_id"         json:"receivingCwsId,omitempty"`
	ReceivedAt       *time.Time `                                       json:"receivedAt,omitempty"`
	RejectionReason  *string    `gorm:"type:text"                       json:"rejectionReason,omitempty"`
	BaseModel

	Processing     *Processing `gorm:"foreignKey:ProcessingID"     json:"processing,omitempty"`
	SourceCWS      *Station    `gorm:"foreignKey:SourceCWSID"      json:"sourceCws,omitempty"`
	DestinationCWS *Station    `gorm:"foreignKey:DestinationCWSID" json:"destinationCws,omitempty"`
}

// TableName table name
func (WetTransfer) TableName() string { return "wet_transfers" }

// QualitySummary renders the receiving quality check as one line,
// "N/A" for anything not measured.
func (w *WetTransfer) QualitySummary() string {
	if w.Status != WetTransferReceived {
		return ""
	}
	return fmt.Sprintf("Moisture: %s, Defects: %s, Cup Score: %s",
		optFloat(w.ReceivedMoisture), optFloat(w.DefectPercentage), optFloat(w.CleanCupScore))
}

func optFloat(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", *v), "0"), ".")
}
