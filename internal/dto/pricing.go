package dto

import "github.com/shopspring/decimal"

// ── pricing ──

// GlobalFeesRequest new global fees
type GlobalFeesRequest struct {
	CommissionFee decimal.Decimal `json:"commissionFee"`
	TransportFee  decimal.Decimal `json:"transportFee"`
}

// StationPricingRequest new station pricing
type StationPricingRequest struct {
	CWSID        uint            `json:"cwsId" binding:"required"`
	GradeAPrice  decimal.Decimal `json:"gradeAPrice"`
	TransportFee decimal.Decimal `json:"transportFee"`
}

// SiteCollectionFeesRequest new site transport fee
type SiteCollectionFeesRequest struct {
	SiteCollectionID uint            `json:"siteCollectionId" binding:"required"`
	TransportFee     decimal.Decimal `json:"transportFee"`
}
