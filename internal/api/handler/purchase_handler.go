package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/service"
	"github.com/benitha200/cherryapp-backend/pkg/response"
)

// PurchaseHandler cherry purchase ledger
type PurchaseHandler struct {
	purchaseSvc service.PurchaseService
}

// NewPurchaseHandler creates a PurchaseHandler
func NewPurchaseHandler(purchaseSvc service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseSvc: purchaseSvc}
}

// Create records a purchase; the batch number is derived server-side
// POST /api/purchases
func (h *PurchaseHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	p, err := h.purchaseSvc.Create(c.Request.Context(), &req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, p)
}

// List
// GET /api/purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	list, err := h.purchaseSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// Get
// GET /api/purchases/:id
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	p, err := h.purchaseSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, p)
}

// ListByStation
// GET /api/purchases/cws/:cwsId
func (h *PurchaseHandler) ListByStation(c *gin.Context) {
	cwsID, ok := parseUintParam(c, "cwsId")
	if !ok {
		return
	}

	list, err := h.purchaseSvc.ListByStation(c.Request.Context(), cwsID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// Update
// PUT /api/purchases/:id
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	p, err := h.purchaseSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, p)
}

// Delete
// DELETE /api/purchases/:id
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.purchaseSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, nil)
}

// Grouped purchases per day with delivery type breakdown
// GET /api/purchases/grouped
func (h *PurchaseHandler) Grouped(c *gin.Context) {
	groups, err := h.purchaseSvc.Grouped(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, groups)
}

// DateRange purchases and totals between two inclusive days
// GET /api/purchases/date-range?startDate=&endDate=
func (h *PurchaseHandler) DateRange(c *gin.Context) {
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	resp, err := h.purchaseSvc.DateRange(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// ByDate one day grouped per station
// GET /api/purchases/date/:date
func (h *PurchaseHandler) ByDate(c *gin.Context) {
	resp, err := h.purchaseSvc.ByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// StationRollupYesterday
// GET /api/purchases/cws-aggregated
func (h *PurchaseHandler) StationRollupYesterday(c *gin.Context) {
	resp, err := h.purchaseSvc.StationRollupYesterday(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// StationRollupRange
// GET /api/purchases/cws-aggregated/date-range?startDate=&endDate=
func (h *PurchaseHandler) StationRollupRange(c *gin.Context) {
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	resp, err := h.purchaseSvc.StationRollupRange(c.Request.Context(), &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}

// StationRollupAll all-time per station totals
// GET /api/purchases/cws-aggregated-all
func (h *PurchaseHandler) StationRollupAll(c *gin.Context) {
	resp, err := h.purchaseSvc.StationRollupAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, resp)
}
