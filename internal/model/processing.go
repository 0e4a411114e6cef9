package model

import (
	"strings"
	"time"
)

// ── processing types ──

const (
	ProcessingFullyWashed = "FULLY_WASHED"
	ProcessingNatural     = "NATURAL"
	ProcessingHoney       = "HONEY"
)

// NormalizeProcessingType maps accepted spellings onto the canonical type.
// Returns "" for anything unsupported.
func NormalizeProcessingType(t string) string {
	switch strings.ToUpper(strings.TrimSpace(t)) {
	case "FULLY_WASHED", "FULLY WASHED":
		return ProcessingFullyWashed
	case "NATURAL":
		return ProcessingNatural
	case "HONEY":
		return ProcessingHoney
	}
	return ""
}

// ProcessingStatus lifecycle state of a processing record
type ProcessingStatus string

const (
	StatusInProgress     ProcessingStatus = "IN_PROGRESS"
	StatusBaggingStarted ProcessingStatus = "BAGGING_STARTED"
	StatusTransferred    ProcessingStatus = "TRANSFERRED"
	StatusCompleted      ProcessingStatus = "COMPLETED"
)

var processingTransitions = map[ProcessingStatus][]ProcessingStatus{
	StatusInProgress:     {StatusBaggingStarted, StatusTransferred, StatusCompleted},
	StatusBaggingStarted: {StatusCompleted},
	StatusTransferred:    {StatusInProgress, StatusCompleted},
	StatusCompleted:      nil,
}

// Valid reports whether s is a known status
func (s ProcessingStatus) Valid() bool {
	_, ok := processingTransitions[s]
	return ok
}

// CanTransitionTo reports whether next is reachable from s in one step.
// Staying in the same status is always allowed.
func (s ProcessingStatus) CanTransitionTo(next ProcessingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range processingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Active reports whether the batch is locked for new purchases
func (s ProcessingStatus) Active() bool {
	return s == StatusInProgress || s == StatusCompleted
}

// Processing one batch going through a processing method
type Processing struct {
	ID             uint             `gorm:"primaryKey"                          json:"id"`
	BatchNo        string           `gorm:"type:varchar(50);not null;uniqueIndex" json:"batchNo"`
	ProcessingType string           `gorm:"type:varchar(30);not null"           json:"processingType"`
	TotalKgs       float64          `gorm:"not null"                            json:"totalKgs"`
	Grade          string           `gorm:"type:varchar(10);not null"           json:"grade"`
	Status         ProcessingStatus `gorm:"type:varchar(30);not null;index"     json:"status"`
	StartDate      time.Time        `gorm:"not null"                            json:"startDate"`
	EndDate        *time.Time       `                                           json:"endDate,omitempty"`
	Notes          *string          `gorm:"type:text"                           json:"notes,omitempty"`
	CWSID          uint             `gorm:"column:cws_id;not null;index"        json:"cwsId"`
	BaseModel

	CWS         *Station     `gorm:"foreignKey:CWSID"        json:"cws,omitempty"`
	BaggingOffs []BaggingOff `gorm:"foreignKey:ProcessingID" json:"baggingOffs,omitempty"`
}

// TableName table name
func (Processing) TableName() string { return "processings" }
