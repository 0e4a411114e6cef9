package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/service"
	"github.com/benitha200/cherryapp-backend/pkg/response"
)

// BaggingOffHandler output reconciliation
type BaggingOffHandler struct {
	baggingSvc service.BaggingOffService
}

// NewBaggingOffHandler creates a BaggingOffHandler
func NewBaggingOffHandler(baggingSvc service.BaggingOffService) *BaggingOffHandler {
	return &BaggingOffHandler{baggingSvc: baggingSvc}
}

// Reconcile records bagged output against a batch; may create several rows
// POST /api/bagging-off
func (h *BaggingOffHandler) Reconcile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReconcileBaggingOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	rows, err := h.baggingSvc.Reconcile(c.Request.Context(), &req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, rows)
}

// List
// GET /api/bagging-off
func (h *BaggingOffHandler) List(c *gin.Context) {
	list, err := h.baggingSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// Get
// GET /api/bagging-off/:id
func (h *BaggingOffHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	b, err := h.baggingSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, b)
}

// ListByBatch
// GET /api/bagging-off/batch/:batchNo
func (h *BaggingOffHandler) ListByBatch(c *gin.Context) {
	list, err := h.baggingSvc.ListByBatch(c.Request.Context(), c.Param("batchNo"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// ListCompletedByStation
// GET /api/bagging-off/cws/:cwsId
func (h *BaggingOffHandler) ListCompletedByStation(c *gin.Context) {
	cwsID, ok := parseUintParam(c, "cwsId")
	if !ok {
		return
	}

	list, err := h.baggingSvc.ListCompletedByStation(c.Request.Context(), cwsID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// Update recomputes the total; COMPLETED closes the processing
// PUT /api/bagging-off/:id
func (h *BaggingOffHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBaggingOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	b, err := h.baggingSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, b)
}

// Delete
// DELETE /api/bagging-off/:id
func (h *BaggingOffHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.baggingSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, nil)
}
