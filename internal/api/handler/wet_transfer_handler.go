package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/service"
	"github.com/benitha200/cherryapp-backend/pkg/response"
)

// WetTransferHandler wet parchment transfers between stations
type WetTransferHandler struct {
	wetSvc service.WetTransferService
}

// NewWetTransferHandler creates a WetTransferHandler
func NewWetTransferHandler(wetSvc service.WetTransferService) *WetTransferHandler {
	return &WetTransferHandler{wetSvc: wetSvc}
}

// Create dispatches wet parchment to another station
// POST /api/wet-transfer
func (h *WetTransferHandler) Create(c *gin.Context) {
	var req dto.CreateWetTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	wt, err := h.wetSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, wt)
}

// Receive accepts a pending transfer with its quality readings
// POST /api/wet-transfer/receive
func (h *WetTransferHandler) Receive(c *gin.Context) {
	var req dto.ReceiveWetTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	wt, err := h.wetSvc.Receive(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, wt)
}

// Reject refuses a pending transfer
// POST /api/wet-transfer/reject
func (h *WetTransferHandler) Reject(c *gin.Context) {
	var req dto.RejectWetTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	wt, err := h.wetSvc.Reject(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, wt)
}

// List
// GET /api/wet-transfer
func (h *WetTransferHandler) List(c *gin.Context) {
	list, err := h.wetSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// Get
// GET /api/wet-transfer/:id
func (h *WetTransferHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	wt, err := h.wetSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, wt)
}

// Update
// PUT /api/wet-transfer/:id
func (h *WetTransferHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateWetTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	wt, err := h.wetSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, wt)
}

// Delete also puts the source processing back to IN_PROGRESS
// DELETE /api/wet-transfer/:id
func (h *WetTransferHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.wetSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListBySource
// GET /api/wet-transfer/source/:cwsId
func (h *WetTransferHandler) ListBySource(c *gin.Context) {
	cwsID, ok := parseUintParam(c, "cwsId")
	if !ok {
		return
	}

	list, err := h.wetSvc.ListBySource(c.Request.Context(), cwsID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// ListByDestination
// GET /api/wet-transfer/destination/:cwsId
func (h *WetTransferHandler) ListByDestination(c *gin.Context) {
	cwsID, ok := parseUintParam(c, "cwsId")
	if !ok {
		return
	}

	list, err := h.wetSvc.ListByDestination(c.Request.Context(), cwsID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// SearchByBatch case-insensitive batch number search
// GET /api/wet-transfer/batch/:batchNo
func (h *WetTransferHandler) SearchByBatch(c *gin.Context) {
	list, err := h.wetSvc.SearchByBatch(c.Request.Context(), c.Param("batchNo"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// Summary sent and received counts for a station
// GET /api/wet-transfer/summary/:cwsId
func (h *WetTransferHandler) Summary(c *gin.Context) {
	cwsID, ok := parseUintParam(c, "cwsId")
	if !ok {
		return
	}

	summary, err := h.wetSvc.Summary(c.Request.Context(), cwsID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, summary)
}

// Recent latest transfers in or out of a station
// GET /api/wet-transfer/recent/:cwsId?limit=
func (h *WetTransferHandler) Recent(c *gin.Context) {
	cwsID, ok := parseUintParam(c, "cwsId")
	if !ok {
		return
	}

	var q dto.RecentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	list, err := h.wetSvc.Recent(c.Request.Context(), cwsID, q.GetLimit())
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}
