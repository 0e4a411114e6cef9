package model

import (
	"time"

	"gorm.io/datatypes"
)

// OutputBuckets grade bucket → kilograms of green output
type OutputBuckets map[string]float64

// Total sums every bucket
func (b OutputBuckets) Total() float64 {
	var total float64
	for _, kg := range b {
		total += kg
	}
	return total
}

// BaggingOff recorded output of a processing run for one processing type
type BaggingOff struct {
	ID             uint                              `gorm:"primaryKey"                      json:"id"`
	BatchNo        string                            `gorm:"type:varchar(50);not null;index" json:"batchNo"`
	ProcessingID   uint                              `gorm:"not null;index"                  json:"processingId"`
	Date           time.Time                         `gorm:"not null"                        json:"date"`
	OutputKgs      datatypes.JSONType[OutputBuckets] `gorm:"type:jsonb;not null"             json:"outputKgs"`
	TotalOutputKgs float64                           `gorm:"not null"                        json:"totalOutputKgs"`
	ProcessingType string                            `gorm:"type:varchar(30);not null"       json:"processingType"`
	Status         string                            `gorm:"type:varchar(30);not null"       json:"status"`
	Notes          *string                           `gorm:"type:text"                       json:"notes,omitempty"`
	AuditModel

	Processing *Processing `gorm:"foreignKey:ProcessingID" json:"processing,omitempty"`
	Transfers  []Transfer  `gorm:"foreignKey:BaggingOffID" json:"transfers,omitempty"`
}

// TableName table name
func (BaggingOff) TableName() string { return "bagging_offs" }

// Buckets returns the stored bucket map, never nil
func (b *BaggingOff) Buckets() OutputBuckets {
	m := b.OutputKgs.Data()
	if m == nil {
		return OutputBuckets{}
	}
	return m
}

// SetBuckets stores m and recomputes the total
func (b *BaggingOff) SetBuckets(m OutputBuckets) {
	b.OutputKgs = datatypes.NewJSONType(m)
	b.TotalOutputKgs = m.Total()
}

// Transfer dry parchment dispatch out of a completed bagging-off
type Transfer struct {
	ID           uint      `gorm:"primaryKey"                      json:"id"`
	BatchNo      string    `gorm:"type:varchar(50);not null;index" json:"batchNo"`
	BaggingOffID uint      `gorm:"not null;index"                  json:"baggingOffId"`
	Status       string    `gorm:"type:varchar(30);not null;default:'PENDING'" json:"status"`
	Notes        *string   `gorm:"type:text"                       json:"notes,omitempty"`
	TransferDate time.Time `gorm:"not null"                        json:"transferDate"`
	BaseModel

	BaggingOff *BaggingOff `gorm:"foreignKey:BaggingOffID" json:"baggingOff,omitempty"`
}

// TableName table name
func (Transfer) TableName() string { return "transfers" }
