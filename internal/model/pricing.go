package model

import "github.com/shopspring/decimal"

// Pricing tables are append-only; the newest row is the current one.

// GlobalFees fees applied across every station
type GlobalFees struct {
	ID            uint            `gorm:"primaryKey"                  json:"id"`
	CommissionFee decimal.Decimal `gorm:"type:numeric(16,2);not null" json:"commissionFee"`
	TransportFee  decimal.Decimal `gorm:"type:numeric(16,2);not null" json:"transportFee"`
	AuditModel
}

// TableName table name
func (GlobalFees) TableName() string { return "global_fees" }

// StationPricing cherry price and transport fee for one station
type StationPricing struct {
	ID           uint            `gorm:"primaryKey"                  json:"id"`
	CWSID        uint            `gorm:"column:cws_id;not null;index" json:"cwsId"`
	GradeAPrice  decimal.Decimal `gorm:"column:grade_a_price;type:numeric(16,2);not null" json:"gradeAPrice"`
	TransportFee decimal.Decimal `gorm:"type:numeric(16,2);not null" json:"transportFee"`
	AuditModel

	CWS *Station `gorm:"foreignKey:CWSID" json:"cws,omitempty"`
}

// TableName table name
func (StationPricing) TableName() string { return "cws_pricing" }

// SiteCollectionFees transport fee for one site collection
type SiteCollectionFees struct {
	ID               uint            `gorm:"primaryKey"                  json:"id"`
	SiteCollectionID uint            `gorm:"not null;index"              json:"siteCollectionId"`
	TransportFee     decimal.Decimal `gorm:"type:numeric(16,2);not null" json:"transportFee"`
	AuditModel

	SiteCollection *SiteCollection `gorm:"foreignKey:SiteCollectionID" json:"siteCollection,omitempty"`
}

// TableName table name
func (SiteCollectionFees) TableName() string { return "site_collection_fees" }
