package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/service"
	"github.com/benitha200/cherryapp-backend/pkg/response"
)

// PricingHandler append-only fee and price settings
type PricingHandler struct {
	pricingSvc service.PricingService
}

// NewPricingHandler creates a PricingHandler
func NewPricingHandler(pricingSvc service.PricingService) *PricingHandler {
	return &PricingHandler{pricingSvc: pricingSvc}
}

// SetGlobalFees
// POST /api/pricing/global
func (h *PricingHandler) SetGlobalFees(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.GlobalFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	fees, err := h.pricingSvc.SetGlobalFees(c.Request.Context(), &req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, fees)
}

// GlobalFees newest global fees
// GET /api/pricing/global
func (h *PricingHandler) GlobalFees(c *gin.Context) {
	fees, err := h.pricingSvc.GlobalFees(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, fees)
}

// SetStationPricing
// POST /api/pricing/cws-pricing
func (h *PricingHandler) SetStationPricing(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.StationPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	pricing, err := h.pricingSvc.SetStationPricing(c.Request.Context(), &req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, pricing)
}

// StationPricing
// GET /api/pricing/cws-pricing/:cwsId
func (h *PricingHandler) StationPricing(c *gin.Context) {
	cwsID, ok := parseUintParam(c, "cwsId")
	if !ok {
		return
	}

	pricing, err := h.pricingSvc.StationPricing(c.Request.Context(), cwsID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, pricing)
}

// SetSiteCollectionFees
// POST /api/pricing/site-fees
func (h *PricingHandler) SetSiteCollectionFees(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SiteCollectionFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	fees, err := h.pricingSvc.SetSiteCollectionFees(c.Request.Context(), &req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, fees)
}

// SiteCollectionFees
// GET /api/pricing/site-fees/:siteCollectionId
func (h *PricingHandler) SiteCollectionFees(c *gin.Context) {
	siteID, ok := parseUintParam(c, "siteCollectionId")
	if !ok {
		return
	}

	fees, err := h.pricingSvc.SiteCollectionFees(c.Request.Context(), siteID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, fees)
}
