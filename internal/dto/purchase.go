package dto

import (
	"github.com/shopspring/decimal"

	"github.com/benitha200/cherryapp-backend/internal/model"
)

// ── purchases ──

// CreatePurchaseRequest record a cherry intake
type CreatePurchaseRequest struct {
	DeliveryType     string          `json:"deliveryType"     binding:"required,oneof=DIRECT_DELIVERY SITE_COLLECTION"`
	TotalKgs         float64         `json:"totalKgs"         binding:"required,gt=0"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	CherryPrice      decimal.Decimal `json:"cherryPrice"`
	TransportFee     decimal.Decimal `json:"transportFee"`
	CommissionFee    decimal.Decimal `json:"commissionFee"`
	Grade            string          `json:"grade"            binding:"required,max=10"`
	CWSID            uint            `json:"cwsId"            binding:"required"`
	SiteCollectionID *uint           `json:"siteCollectionId"`
	PurchaseDate     string          `json:"purchaseDate"     binding:"required"`
}

// UpdatePurchaseRequest partial update. The purchase date is fixed once recorded.
type UpdatePurchaseRequest struct {
	DeliveryType     *string          `json:"deliveryType"     binding:"omitempty,oneof=DIRECT_DELIVERY SITE_COLLECTION"`
	TotalKgs         *float64         `json:"totalKgs"         binding:"omitempty,gt=0"`
	TotalPrice       *decimal.Decimal `json:"totalPrice"`
	CherryPrice      *decimal.Decimal `json:"cherryPrice"`
	TransportFee     *decimal.Decimal `json:"transportFee"`
	CommissionFee    *decimal.Decimal `json:"commissionFee"`
	Grade            *string          `json:"grade"            binding:"omitempty,max=10"`
	CWSID            *uint            `json:"cwsId"`
	SiteCollectionID *uint            `json:"siteCollectionId"`
}

// DateRangeQuery inclusive calendar range, YYYY-MM-DD
type DateRangeQuery struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate"   binding:"required"`
}

// ── rollups ──

// DeliveryTotals kilograms and money for one delivery channel
type DeliveryTotals struct {
	TotalKgs   float64         `json:"totalKgs"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// PurchaseDayGroup purchases of one calendar day
type PurchaseDayGroup struct {
	Date              string                    `json:"date"`
	TotalKgs          float64                   `json:"totalKgs"`
	TotalPrice        decimal.Decimal           `json:"totalPrice"`
	ByDeliveryType    map[string]DeliveryTotals `json:"deliveryTypes"`
	NumberOfPurchases int                       `json:"numberOfPurchases"`
}

// RangeTotals purchase totals over a date range; fees are per kg
type RangeTotals struct {
	TotalKgs           float64         `json:"totalKgs"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	TotalTransportFee  decimal.Decimal `json:"totalTransportFee"`
	TotalCommissionFee decimal.Decimal `json:"totalCommissionFee"`
}

// PurchaseRangeResponse purchases of a date range, newest first
type PurchaseRangeResponse struct {
	StartDate      string           `json:"startDate"`
	EndDate        string           `json:"endDate"`
	TotalPurchases int              `json:"totalPurchases"`
	Totals         RangeTotals      `json:"totals"`
	Purchases      []model.Purchase `json:"purchases"`
}

// StationDayTotals one station's purchases on a single day
type StationDayTotals struct {
	CWSID          uint             `json:"cwsId"`
	CWSName        string           `json:"cwsName"`
	CWSCode        string           `json:"cwsCode"`
	Purchases      []model.Purchase `json:"purchases"`
	DirectDelivery DeliveryTotals   `json:"directDelivery"`
	SiteCollection DeliveryTotals   `json:"siteCollection"`
	Total          DeliveryTotals   `json:"total"`
}

// DayGrandTotals totals of one day across stations
type DayGrandTotals struct {
	Total          DeliveryTotals `json:"total"`
	DirectDelivery DeliveryTotals `json:"directDelivery"`
	SiteCollection DeliveryTotals `json:"siteCollection"`
}

// PurchasesOnDate purchases of one day grouped per station
type PurchasesOnDate struct {
	Date        string             `json:"date"`
	Stations    []StationDayTotals `json:"cwsData"`
	GrandTotals DayGrandTotals     `json:"grandTotals"`
}

// StationTotals money and weight rolled up for one station
type StationTotals struct {
	TotalKgs           float64         `json:"totalKgs"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	TotalCherryPrice   decimal.Decimal `json:"totalCherryPrice"`
	TotalTransportFee  decimal.Decimal `json:"totalTransportFee"`
	TotalCommissionFee decimal.Decimal `json:"totalCommissionFee"`
}

// KgsAndPrice weight and value for one breakdown key
type KgsAndPrice struct {
	TotalKgs   float64         `json:"totalKgs"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// StationRollup purchase rollup for one station
type StationRollup struct {
	CWSID                 uint                   `json:"cwsId"`
	CWSName               string                 `json:"cwsName"`
	CWSCode               string                 `json:"cwsCode"`
	Totals                StationTotals          `json:"totals"`
	DeliveryTypeBreakdown map[string]KgsAndPrice `json:"deliveryTypeBreakdown"`
	GradeBreakdown        map[string]KgsAndPrice `json:"gradeBreakdown"`
	NumberOfPurchases     int                    `json:"numberOfPurchases"`
}

// StationRollupResponse rollup of every station in a window
type StationRollupResponse struct {
	StartDate     string          `json:"startDate,omitempty"`
	EndDate       string          `json:"endDate,omitempty"`
	Stations      []StationRollup `json:"cwsAggregations"`
	OverallTotals OverallTotals   `json:"overallTotals"`
}

// OverallTotals totals across stations
type OverallTotals struct {
	StationTotals
	NumberOfCWS       int `json:"numberOfCWS"`
	NumberOfPurchases int `json:"numberOfPurchases"`
}
