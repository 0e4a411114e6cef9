package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/benitha200/cherryapp-backend/internal/dto"
	"github.com/benitha200/cherryapp-backend/internal/service"
	"github.com/benitha200/cherryapp-backend/pkg/response"
)

// TransferHandler dry parchment dispatch
type TransferHandler struct {
	transferSvc service.TransferService
}

// NewTransferHandler creates a TransferHandler
func NewTransferHandler(transferSvc service.TransferService) *TransferHandler {
	return &TransferHandler{transferSvc: transferSvc}
}

// Create
// POST /api/transfer
func (h *TransferHandler) Create(c *gin.Context) {
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	t, err := h.transferSvc.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, t)
}

// List
// GET /api/transfer
func (h *TransferHandler) List(c *gin.Context) {
	list, err := h.transferSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// ListByBatch 404 when the batch has no transfers
// GET /api/transfer/batch/:batchNo
func (h *TransferHandler) ListByBatch(c *gin.Context) {
	list, err := h.transferSvc.ListByBatch(c.Request.Context(), c.Param("batchNo"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// ListByStation optional inclusive date window
// GET /api/transfer/cws/:cwsId?startDate=&endDate=
func (h *TransferHandler) ListByStation(c *gin.Context) {
	cwsID, ok := parseUintParam(c, "cwsId")
	if !ok {
		return
	}

	var q dto.TransferRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	list, err := h.transferSvc.ListByStation(c.Request.Context(), cwsID, &q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// ListByBaggingOff
// GET /api/transfer/bagging-off/:id
func (h *TransferHandler) ListByBaggingOff(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	list, err := h.transferSvc.ListByBaggingOff(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, list)
}

// Update notes or status
// PUT /api/transfer/:id
func (h *TransferHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	t, err := h.transferSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, t)
}
