package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── delivery types ──

const (
	DeliveryDirect         = "DIRECT_DELIVERY"
	DeliverySiteCollection = "SITE_COLLECTION"
)

// ValidDeliveryType reports whether t is a known delivery type
func ValidDeliveryType(t string) bool {
	switch t {
	case DeliveryDirect, DeliverySiteCollection:
		return true
	}
	return false
}

// Purchase one intake of cherries at a station.
// PurchaseDate is stored at day granularity (UTC).
type Purchase struct {
	ID               uint            `gorm:"primaryKey"                          json:"id"`
	DeliveryType     string          `gorm:"type:varchar(30);not null"           json:"deliveryType"`
	TotalKgs         float64         `gorm:"not null"                            json:"totalKgs"`
	TotalPrice       decimal.Decimal `gorm:"type:numeric(16,2);not null"         json:"totalPrice"`
	CherryPrice      decimal.Decimal `gorm:"type:numeric(16,2);not null"         json:"cherryPrice"`
	TransportFee     decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0" json:"transportFee"`
	CommissionFee    decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0" json:"commissionFee"`
	Grade            string          `gorm:"type:varchar(10);not null"           json:"grade"`
	CWSID            uint            `gorm:"column:cws_id;not null;index"        json:"cwsId"`
	SiteCollectionID *uint           `gorm:"index"                               json:"siteCollectionId,omitempty"`
	BatchNo          string          `gorm:"type:varchar(50);not null;index"     json:"batchNo"`
	PurchaseDate     time.Time       `gorm:"type:date;not null;index"            json:"purchaseDate"`
	AuditModel

	CWS            *Station        `gorm:"foreignKey:CWSID"            json:"cws,omitempty"`
	SiteCollection *SiteCollection `gorm:"foreignKey:SiteCollectionID" json:"siteCollection,omitempty"`
}

// TableName table name
func (Purchase) TableName() string { return "purchases" }
